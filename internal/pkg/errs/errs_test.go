package errs

import "testing"

func TestNewErrorFormatsDetails(t *testing.T) {
	err := NewError(ErrUserNotFound, "ghost")
	if err.Message != "User not found: ghost" {
		t.Errorf("expected formatted message, got %q", err.Message)
	}
}

func TestNewErrorWithoutDetailsKeepsTemplate(t *testing.T) {
	err := NewError(ErrRoomExists)
	if err.Message != "Room already exists." {
		t.Errorf("expected unmodified template, got %q", err.Message)
	}
}

func TestNewErrorUnknownCodeFallsBackToErrUnknown(t *testing.T) {
	err := NewError(99999)
	if err.Code != ErrUnknown {
		t.Errorf("expected fallback to ErrUnknown, got code %d", err.Code)
	}
}

func TestCustomErrorImplementsErrorInterface(t *testing.T) {
	var err error = &CustomError{Code: ErrNameEmpty, Message: "Name cannot be empty."}
	if err.Error() != "error 1001: Name cannot be empty." {
		t.Errorf("unexpected Error() output: %q", err.Error())
	}
}
