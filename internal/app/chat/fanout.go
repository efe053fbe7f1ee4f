package chat

import "broker/internal/pkg/wire"

// BroadcastRoom delivers payload to every member of room except the handles in
// exclude. The room registry's exclusive lock is held for the entire
// enqueue loop — not merely RLock'd — because spec.md §4.5 requires a total
// delivery order per room: two concurrent senders must have their messages
// enqueued to every recipient in the same relative order, which only an
// exclusive critical section guarantees. This mirrors the original reference
// implementation's broadcast_message, which takes its lock_guard for every
// broadcast regardless of whether membership changes.
func (b *Broker) BroadcastRoom(room string, payload string, exclude ...Handle) {
	b.Rooms.mu.Lock()
	members := b.Rooms.membersLocked(room)
	b.deliverToLocked(members, payload, exclude)
	b.Rooms.mu.Unlock()
}

// BroadcastGlobal delivers payload to every connected client except the
// handles in exclude, under ClientRegistry's exclusive lock for the same
// total-ordering reason as BroadcastRoom.
func (b *Broker) BroadcastGlobal(payload string, exclude ...Handle) {
	b.Clients.mu.Lock()
	defer b.Clients.mu.Unlock()

	excluded := toSet(exclude)
	for h, entry := range b.Clients.clients {
		if _, skip := excluded[h]; skip {
			continue
		}
		if !entry.peer.Deliver(payload) {
			logDropped(entry.name, payload)
		}
	}
}

// deliverToLocked delivers payload to each handle in members, skipping the
// excluded set. Must be called with ClientRegistry's lock available to take;
// it takes a read lock itself since membership doesn't change here.
func (b *Broker) deliverToLocked(members []Handle, payload string, exclude []Handle) {
	excluded := toSet(exclude)

	b.Clients.mu.RLock()
	defer b.Clients.mu.RUnlock()

	for _, h := range members {
		if _, skip := excluded[h]; skip {
			continue
		}
		entry, ok := b.Clients.clients[h]
		if !ok {
			continue
		}
		if !entry.peer.Deliver(payload) {
			logDropped(entry.name, payload)
		}
	}
}

// SendCatalogue delivers the current room list to a single client.
func (b *Broker) SendCatalogue(handle Handle) {
	snapshots := b.Rooms.SnapshotList()
	states := make([]wire.RoomState, 0, len(snapshots))
	for _, s := range snapshots {
		states = append(states, wire.RoomState{Name: s.Name, Locked: s.Locked})
	}
	b.deliverTo(handle, wire.Catalogue(states))
}

// SendPrivate delivers a private message from sender to recipient, returning
// false if recipient is not a live client.
func (b *Broker) SendPrivate(recipientName, senderName, text string) bool {
	handle, ok := b.Clients.FindByName(recipientName)
	if !ok {
		return false
	}
	b.deliverTo(handle, wire.Private(senderName, text))
	return true
}

// deliverTo delivers payload to a single live client, a no-op if handle is
// stale.
func (b *Broker) deliverTo(handle Handle, payload string) {
	b.Clients.mu.RLock()
	entry, ok := b.Clients.clients[handle]
	b.Clients.mu.RUnlock()

	if !ok {
		return
	}
	if !entry.peer.Deliver(payload) {
		logDropped(entry.name, payload)
	}
}

func toSet(handles []Handle) map[Handle]struct{} {
	set := make(map[Handle]struct{}, len(handles))
	for _, h := range handles {
		set[h] = struct{}{}
	}
	return set
}
