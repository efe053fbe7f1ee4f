/*
Package errs provides custom error types and application-level error code constants.

These error codes identify the usage errors a session can trigger via the command
protocol. Apart from ErrUnknown, every one of them is a client mistake, not a
broker fault. All of them are surfaced to the offending session only, as a
`[system]` line, and never end the session.
*/
package errs

// 1xxx: Name errors
const (
	// ErrNameEmpty indicates a /name command with an empty nickname.
	ErrNameEmpty = 1001

	// ErrNameTaken indicates the requested name is already in use by another live client.
	ErrNameTaken = 1002
)

// 2xxx: Room errors
const (
	// ErrRoomNameEmpty indicates a /create or /join with an empty room name.
	ErrRoomNameEmpty = 2001

	// ErrRoomExists indicates /create was attempted against an existing room name.
	ErrRoomExists = 2002

	// ErrRoomNotFound indicates /join or /delete targeted a room that does not exist.
	ErrRoomNotFound = 2003

	// ErrRoomAuth indicates a /join was rejected for a missing or incorrect room password.
	ErrRoomAuth = 2004

	// ErrAlreadyInLobby indicates /leave was issued while already in the Lobby.
	ErrAlreadyInLobby = 2005

	// ErrNotRoomOwner indicates /delete was attempted by a client other than the room's owner.
	ErrNotRoomOwner = 2006

	// ErrLobbyUndeletable indicates /delete was attempted against the Lobby.
	ErrLobbyUndeletable = 2007
)

// 3xxx: Message errors
const (
	// ErrUsageMsg indicates /msg was called with fewer than two fields (target and message).
	ErrUsageMsg = 3001

	// ErrUserNotFound indicates a /msg target name does not belong to any live client.
	ErrUserNotFound = 3002
)

// 4xxx: Protocol / framing errors
const (
	// ErrUnknownCommand indicates an unrecognized `/` command prefix.
	ErrUnknownCommand = 4001
)

// 5xxx: Internal errors
const (
	// ErrUnknown represents an unclassified, general internal error.
	ErrUnknown = 5000
)
