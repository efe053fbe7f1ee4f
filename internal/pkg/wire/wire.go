/*
Package wire centralizes the broker's outbound line formats (§6 External
Interfaces). Every server-to-client line shape is built here as a formatting
function that appends exactly one trailing `\n`, so no call site downstream can
emit a malformed frame — the discipline the original reference implementation
gets for free from its ad hoc `send_system`/string-concatenation helpers, made
explicit and centralized for the larger room-aware protocol.
*/
package wire

import "strings"

// RoomAssign builds the `ROOM|<name>` line that assigns the recipient to a room.
func RoomAssign(room string) string {
	return "ROOM|" + room + "\n"
}

// RoomState describes one room's name and lock state for a Catalogue line.
type RoomState struct {
	Name   string
	Locked bool
}

// Catalogue builds the `ROOMS|<name>|<state>|...` line. An empty room list
// yields `ROOMS|`.
func Catalogue(rooms []RoomState) string {
	var b strings.Builder
	b.WriteString("ROOMS|")
	for i, r := range rooms {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(r.Name)
		b.WriteByte('|')
		if r.Locked {
			b.WriteString("locked")
		} else {
			b.WriteString("open")
		}
	}
	b.WriteByte('\n')
	return b.String()
}

// System builds a `[system] <text>` line.
func System(text string) string {
	return "[system] " + text + "\n"
}

// Private builds a `[private] <sender>: <text>` line.
func Private(sender, text string) string {
	return "[private] " + sender + ": " + text + "\n"
}

// RoomChat builds a `[<room>] <sender>: <text>` line.
func RoomChat(room, sender, text string) string {
	return "[" + room + "] " + sender + ": " + text + "\n"
}
