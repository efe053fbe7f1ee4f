package wire

import "testing"

func TestSystemAppendsPrefixAndNewline(t *testing.T) {
	if got := System("hello"); got != "[system] hello\n" {
		t.Errorf("unexpected system line: %q", got)
	}
}

func TestCatalogueEmpty(t *testing.T) {
	if got := Catalogue(nil); got != "ROOMS|\n" {
		t.Errorf("expected empty catalogue ROOMS|, got %q", got)
	}
}

func TestCatalogueListsEveryRoomWithState(t *testing.T) {
	got := Catalogue([]RoomState{
		{Name: "Lobby", Locked: false},
		{Name: "chess", Locked: true},
	})
	want := "ROOMS|Lobby|open|chess|locked\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRoomChatFormat(t *testing.T) {
	if got := RoomChat("chess", "alice", "hello"); got != "[chess] alice: hello\n" {
		t.Errorf("unexpected room chat line: %q", got)
	}
}

func TestPrivateFormat(t *testing.T) {
	if got := Private("alice", "ping"); got != "[private] alice: ping\n" {
		t.Errorf("unexpected private line: %q", got)
	}
}

func TestRoomAssignFormat(t *testing.T) {
	if got := RoomAssign("chess"); got != "ROOM|chess\n" {
		t.Errorf("unexpected room assign line: %q", got)
	}
}
