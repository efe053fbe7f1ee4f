/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError template, used to
produce the exact `[system]` line text the dispatcher sends back to a session.
*/
package errs

// errorMap stores the CustomError template corresponding to every error code.
// Message wording mirrors the exact strings the protocol's end-to-end scenarios
// require, where the spec pins one down; otherwise it follows the reference
// broker's wording.
var errorMap = map[int]CustomError{
	ErrNameEmpty: {Code: ErrNameEmpty, Message: "Name cannot be empty."},
	ErrNameTaken: {Code: ErrNameTaken, Message: "Name already in use."},

	ErrRoomNameEmpty:    {Code: ErrRoomNameEmpty, Message: "Room name cannot be empty."},
	ErrRoomExists:       {Code: ErrRoomExists, Message: "Room already exists."},
	ErrRoomNotFound:     {Code: ErrRoomNotFound, Message: "Room not found: %s"},
	ErrRoomAuth:         {Code: ErrRoomAuth, Message: "Unable to join room. Check name or password."},
	ErrAlreadyInLobby:   {Code: ErrAlreadyInLobby, Message: "You are already in the Lobby."},
	ErrNotRoomOwner:     {Code: ErrNotRoomOwner, Message: "Only the room owner can delete it."},
	ErrLobbyUndeletable: {Code: ErrLobbyUndeletable, Message: "The Lobby cannot be deleted."},

	ErrUsageMsg:     {Code: ErrUsageMsg, Message: "Usage: /msg <user> <message>"},
	ErrUserNotFound: {Code: ErrUserNotFound, Message: "User not found: %s"},

	ErrUnknownCommand: {Code: ErrUnknownCommand, Message: "Unknown command: %s"},

	ErrUnknown: {Code: ErrUnknown, Message: "An unexpected internal error occurred."},
}
