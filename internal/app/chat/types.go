/*
Package chat implements the broker's core: the connection lifecycle, the
concurrent client and room registries, the command protocol dispatcher, and the
fan-out discipline described in spec.md §3 and §4.

The package keeps both registries in the same Go package deliberately: clients reference
rooms by name and rooms reference clients by Handle, never by pointer, and the
cross-registry operations that need both locks (room join/leave, room delete)
are implemented as Broker methods here rather than exposed as public API on
either registry in isolation, so the lock-ordering rule in §4.5 is enforced in
exactly one place.
*/
package chat

// Handle is an opaque, per-process-unique identifier for one live connection.
// The broker mints handles from a single monotonically increasing counter, the
// same counter used to derive a new client's placeholder name ("anon<N>").
type Handle uint64

// InvalidHandle is the sentinel owner for system-created rooms (the Lobby).
const InvalidHandle Handle = 0

// LobbyName is the name of the default, undeletable room every client
// initially belongs to.
const LobbyName = "Lobby"

// ClientSnapshot is a read-only copy of one client record.
type ClientSnapshot struct {
	Handle Handle
	Name   string
	Room   string
}

// RoomSnapshot is a read-only copy of one room record's catalogue-relevant
// fields.
type RoomSnapshot struct {
	Name   string
	Locked bool
}

// Peer is the delivery side of a live connection, implemented by *Session.
// Registries and fan-out code depend only on this interface, never on *Session
// directly, keeping the registries free of I/O concerns.
type Peer interface {
	// Deliver enqueues payload for asynchronous delivery to this peer. It
	// never blocks: a full outbound queue is treated as a dead peer, per
	// §4.2/§4.8 — the caller does not mutate any registry itself; the
	// peer's own read loop will observe the resulting connection close and
	// run its own teardown exactly once.
	Deliver(payload string) bool
}
