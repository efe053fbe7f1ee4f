package chat

import (
	"strconv"
	"sync"
	"sync/atomic"

	"broker/internal/pkg/errs"
)

// clientEntry is the client registry's internal record: a connection handle's
// display name, current room, and delivery peer (spec.md §3 "Client record").
type clientEntry struct {
	name string
	room string
	peer Peer
}

// ClientRegistry is the concurrent mapping from connection handle to
// {name, current_room}, enforcing name uniqueness (spec.md §4.3).
type ClientRegistry struct {
	mu      sync.RWMutex
	clients map[Handle]*clientEntry
	names   map[string]Handle
	counter uint64
}

// NewClientRegistry constructs an empty client registry.
func NewClientRegistry() *ClientRegistry {
	return &ClientRegistry{
		clients: make(map[Handle]*clientEntry),
		names:   make(map[string]Handle),
	}
}

// Register inserts a new record for peer with an auto-generated placeholder
// name of the form "anon<N>" and current_room = Lobby. N is drawn from the
// registry's monotonically increasing counter, which also mints the handle
// itself, so the two are always in lockstep.
func (r *ClientRegistry) Register(peer Peer) (Handle, string) {
	n := atomic.AddUint64(&r.counter, 1)
	handle := Handle(n)
	name := placeholderName(n)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.clients[handle] = &clientEntry{name: name, room: LobbyName, peer: peer}
	r.names[name] = handle

	return handle, name
}

func placeholderName(n uint64) string {
	return "anon" + strconv.FormatUint(n, 10)
}

// Unregister removes and returns the record for handle. Used once per session
// at teardown.
func (r *ClientRegistry) Unregister(handle Handle) (name string, room string, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.clients[handle]
	if !exists {
		return "", "", false
	}

	delete(r.clients, handle)
	if r.names[entry.name] == handle {
		delete(r.names, entry.name)
	}

	return entry.name, entry.room, true
}

// Rename replaces handle's name, rejecting empty names and names already held
// by another live client. The uniqueness check and the write happen in the
// same critical section.
func (r *ClientRegistry) Rename(handle Handle, newName string) *errs.CustomError {
	if newName == "" {
		return errs.NewError(errs.ErrNameEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.clients[handle]
	if !exists {
		return errs.NewError(errs.ErrUnknown)
	}

	if owner, taken := r.names[newName]; taken && owner != handle {
		return errs.NewError(errs.ErrNameTaken)
	}
	// A rename to the client's own current name is rejected as a duplicate
	// against self — one of the two documented-acceptable behaviors for this
	// idempotence case (see DESIGN.md).
	if newName == entry.name {
		return errs.NewError(errs.ErrNameTaken)
	}

	delete(r.names, entry.name)
	entry.name = newName
	r.names[newName] = handle

	return nil
}

// Get returns a snapshot of handle's record.
func (r *ClientRegistry) Get(handle Handle) (ClientSnapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.clients[handle]
	if !ok {
		return ClientSnapshot{}, false
	}
	return ClientSnapshot{Handle: handle, Name: entry.name, Room: entry.room}, true
}

// FindByName returns the handle currently holding name, if any.
func (r *ClientRegistry) FindByName(name string) (Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	handle, ok := r.names[name]
	return handle, ok
}

// SetRoom updates handle's current-room field only. Callers that also need to
// keep room membership in sync must do so atomically via Broker.ChangeRoom,
// not by calling SetRoom directly.
func (r *ClientRegistry) SetRoom(handle Handle, room string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.clients[handle]
	if !ok {
		return false
	}
	entry.room = room
	return true
}

// Count returns the number of live clients.
func (r *ClientRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}
