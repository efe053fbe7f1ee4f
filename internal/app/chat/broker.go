package chat

import (
	"strings"

	"broker/internal/pkg/errs"
	"broker/internal/pkg/eventlog"
	"broker/internal/pkg/logx"
)

// Broker owns both registries and is the only type that acquires both of
// their locks at once. Every cross-registry operation (room join/leave as a
// single atomic move, room deletion with survivor migration) lives here, in
// the lock order mandated by spec.md §4.5: RoomRegistry before ClientRegistry,
// released in reverse order. Besides this file, only Broker.BroadcastRoom in
// fanout.go takes both locks, in the same order.
type Broker struct {
	Clients *ClientRegistry
	Rooms   *RoomRegistry
	Events  *eventlog.Sink

	// BotPrefix, when non-empty, suppresses join/leave/rename system
	// broadcasts for clients whose name starts with it — the load-test
	// ergonomic filter from the "Bot/system traffic suppression" design
	// note. Empty disables the filter.
	BotPrefix string
}

// NewBroker wires a fresh client registry to a room registry that already has
// the Lobby bootstrapped.
func NewBroker(events *eventlog.Sink, botPrefix string) *Broker {
	return &Broker{
		Clients:   NewClientRegistry(),
		Rooms:     NewRoomRegistry(),
		Events:    events,
		BotPrefix: botPrefix,
	}
}

// suppressSystemFor reports whether join/leave/rename system chatter about
// name should be withheld.
func (b *Broker) suppressSystemFor(name string) bool {
	return b.BotPrefix != "" && strings.HasPrefix(name, b.BotPrefix)
}

// RoomChangeResult carries the snapshots a caller needs to emit the three
// notifications a room change produces, captured while the locks were held so
// the messages sent after release can never race with a concurrent mover.
// NoOp is set when the client was already in the destination room: per
// spec.md §8 this is a side-effect-free idempotent call (passwords are still
// checked, but no catalogue change or broadcast follows).
type RoomChangeResult struct {
	Mover    ClientSnapshot
	FromRoom string
	ToRoom   string
	NoOp     bool
}

// ChangeRoom moves handle from its current room into name, guarded by
// password, as one atomic step: add to the destination's member set before
// removing from the source's, so no concurrent observer of either room ever
// sees the mover belonging to zero rooms (spec.md §4.5 step sequence).
func (b *Broker) ChangeRoom(handle Handle, name, password string) (RoomChangeResult, *errs.CustomError) {
	b.Rooms.mu.Lock()
	defer b.Rooms.mu.Unlock()

	if !b.Rooms.canJoinLocked(name, password) {
		if !b.Rooms.existsLocked(name) {
			return RoomChangeResult{}, errs.NewError(errs.ErrRoomNotFound, name)
		}
		return RoomChangeResult{}, errs.NewError(errs.ErrRoomAuth)
	}

	b.Clients.mu.Lock()
	entry, exists := b.Clients.clients[handle]
	if !exists {
		b.Clients.mu.Unlock()
		return RoomChangeResult{}, errs.NewError(errs.ErrUnknown)
	}
	fromRoom := entry.room

	if fromRoom == name {
		mover := ClientSnapshot{Handle: handle, Name: entry.name, Room: name}
		b.Clients.mu.Unlock()
		return RoomChangeResult{Mover: mover, FromRoom: fromRoom, ToRoom: name, NoOp: true}, nil
	}

	b.Rooms.joinLocked(handle, name, password)
	b.Rooms.leaveLocked(handle, fromRoom)
	entry.room = name
	mover := ClientSnapshot{Handle: handle, Name: entry.name, Room: name}
	b.Clients.mu.Unlock()

	return RoomChangeResult{Mover: mover, FromRoom: fromRoom, ToRoom: name}, nil
}

// RoomDeleteResult carries the data a caller needs to migrate survivors to the
// Lobby and notify them, captured under lock.
type RoomDeleteResult struct {
	Room     string
	Migrated []ClientSnapshot
}

// DeleteRoom removes name (owner-only, Lobby undeletable), moving every
// surviving member into the Lobby as part of the same critical section so no
// member is ever left pointing at a room that no longer exists.
func (b *Broker) DeleteRoom(name string, requester Handle) (RoomDeleteResult, *errs.CustomError) {
	b.Rooms.mu.Lock()
	defer b.Rooms.mu.Unlock()

	outcome, members := b.Rooms.deleteLocked(name, requester)
	switch outcome {
	case DeleteIsLobby:
		return RoomDeleteResult{}, errs.NewError(errs.ErrLobbyUndeletable)
	case DeleteNotFound:
		return RoomDeleteResult{}, errs.NewError(errs.ErrRoomNotFound, name)
	case DeleteNotOwner:
		return RoomDeleteResult{}, errs.NewError(errs.ErrNotRoomOwner)
	}

	b.Clients.mu.Lock()
	migrated := make([]ClientSnapshot, 0, len(members))
	for _, h := range members {
		entry, exists := b.Clients.clients[h]
		if !exists {
			continue
		}
		b.Rooms.joinLocked(h, LobbyName, "")
		entry.room = LobbyName
		migrated = append(migrated, ClientSnapshot{Handle: h, Name: entry.name, Room: LobbyName})
	}
	b.Clients.mu.Unlock()

	return RoomDeleteResult{Room: name, Migrated: migrated}, nil
}

// logDropped logs a best-effort delivery failure without ever mutating a
// registry — the peer's own teardown path is solely responsible for that.
func logDropped(name, payload string) {
	logx.Warn("dropping undeliverable payload", "recipient", name, "bytes", len(payload))
}
