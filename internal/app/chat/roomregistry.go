package chat

import "sync"

// roomEntry is the room registry's internal record (spec.md §3 "Room record").
type roomEntry struct {
	name     string
	password string // empty => open room
	owner    Handle
	members  map[Handle]struct{}
}

// RoomRegistry is the concurrent mapping from room name to
// {password, owner, member_set}, enforcing the Lobby invariant and ownership
// rules (spec.md §4.4).
type RoomRegistry struct {
	mu    sync.RWMutex
	rooms map[string]*roomEntry
}

// NewRoomRegistry constructs a room registry with the Lobby already bootstrapped
// (spec.md §3: "The Lobby is created at startup with no owner, no password, and
// may never be deleted").
func NewRoomRegistry() *RoomRegistry {
	rr := &RoomRegistry{rooms: make(map[string]*roomEntry)}
	rr.rooms[LobbyName] = &roomEntry{
		name:    LobbyName,
		owner:   InvalidHandle,
		members: make(map[Handle]struct{}),
	}
	return rr
}

// Create inserts a new room, failing if name already exists.
func (rr *RoomRegistry) Create(name, password string, owner Handle) bool {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	return rr.createLocked(name, password, owner)
}

func (rr *RoomRegistry) createLocked(name, password string, owner Handle) bool {
	if _, exists := rr.rooms[name]; exists {
		return false
	}
	rr.rooms[name] = &roomEntry{
		name:     name,
		password: password,
		owner:    owner,
		members:  make(map[Handle]struct{}),
	}
	return true
}

// Join adds handle to name's member set, failing if the room is missing or
// locked with a password that doesn't match supplied exactly (byte-for-byte;
// an empty supplied password always fails against a locked room).
func (rr *RoomRegistry) Join(handle Handle, name, password string) bool {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	return rr.joinLocked(handle, name, password)
}

func (rr *RoomRegistry) canJoinLocked(name, password string) bool {
	room, exists := rr.rooms[name]
	if !exists {
		return false
	}
	if room.password != "" && room.password != password {
		return false
	}
	return true
}

func (rr *RoomRegistry) joinLocked(handle Handle, name, password string) bool {
	if !rr.canJoinLocked(name, password) {
		return false
	}
	rr.rooms[name].members[handle] = struct{}{}
	return true
}

// Leave removes handle from name's member set; a no-op if the room is missing.
func (rr *RoomRegistry) Leave(handle Handle, name string) {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	rr.leaveLocked(handle, name)
}

func (rr *RoomRegistry) leaveLocked(handle Handle, name string) {
	if room, exists := rr.rooms[name]; exists {
		delete(room.members, handle)
	}
}

// DeleteOutcome enumerates the possible results of a Delete call.
type DeleteOutcome int

const (
	DeleteOK DeleteOutcome = iota
	DeleteNotFound
	DeleteNotOwner
	DeleteIsLobby
)

// Delete removes name, returning a snapshot of its member set on success.
// The Lobby is undeletable; non-owners are rejected.
func (rr *RoomRegistry) Delete(name string, requester Handle) (DeleteOutcome, []Handle) {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	return rr.deleteLocked(name, requester)
}

func (rr *RoomRegistry) deleteLocked(name string, requester Handle) (DeleteOutcome, []Handle) {
	if name == LobbyName {
		return DeleteIsLobby, nil
	}

	room, exists := rr.rooms[name]
	if !exists {
		return DeleteNotFound, nil
	}

	if room.owner != requester {
		return DeleteNotOwner, nil
	}

	members := make([]Handle, 0, len(room.members))
	for h := range room.members {
		members = append(members, h)
	}
	delete(rr.rooms, name)

	return DeleteOK, members
}

// SnapshotList returns the catalogue: every room's name and lock state, with
// the Lobby always first (spec.md §6: Lobby is the fixed anchor field; the
// order of every other room is implementation-defined).
func (rr *RoomRegistry) SnapshotList() []RoomSnapshot {
	rr.mu.RLock()
	defer rr.mu.RUnlock()

	out := make([]RoomSnapshot, 0, len(rr.rooms))
	out = append(out, RoomSnapshot{Name: LobbyName, Locked: rr.rooms[LobbyName].password != ""})
	for name, room := range rr.rooms {
		if name == LobbyName {
			continue
		}
		out = append(out, RoomSnapshot{Name: room.name, Locked: room.password != ""})
	}
	return out
}

// Members returns a snapshot of name's member set.
func (rr *RoomRegistry) Members(name string) []Handle {
	rr.mu.RLock()
	defer rr.mu.RUnlock()
	return rr.membersLocked(name)
}

func (rr *RoomRegistry) membersLocked(name string) []Handle {
	room, exists := rr.rooms[name]
	if !exists {
		return nil
	}
	out := make([]Handle, 0, len(room.members))
	for h := range room.members {
		out = append(out, h)
	}
	return out
}

// Exists reports whether name currently names a live room.
func (rr *RoomRegistry) Exists(name string) bool {
	rr.mu.RLock()
	defer rr.mu.RUnlock()
	return rr.existsLocked(name)
}

func (rr *RoomRegistry) existsLocked(name string) bool {
	_, ok := rr.rooms[name]
	return ok
}
