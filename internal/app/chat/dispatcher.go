/*
Dispatcher parses one framed line per call into a command and invokes the
registry mutation plus fan-out that command requires (spec.md §4.5). It is the
only code in this package that decides *what* to send; fan-out and the
registries decide *whether* an operation succeeds.
*/
package chat

import (
	"fmt"
	"strings"

	"broker/internal/pkg/errs"
	"broker/internal/pkg/wire"
)

// Dispatch handles one trimmed, non-empty line from handle. It never panics on
// malformed input — usage errors are reported to the sender as a [system]
// line and the session continues (spec.md §4.8).
func (b *Broker) Dispatch(handle Handle, line string) {
	if strings.HasPrefix(line, "/") {
		b.dispatchCommand(handle, line)
		return
	}
	b.dispatchChat(handle, line)
}

func (b *Broker) dispatchCommand(handle Handle, line string) {
	fields := strings.Fields(line)
	cmd := fields[0]
	rest := strings.TrimSpace(strings.TrimPrefix(line, cmd))

	switch cmd {
	case "/name":
		b.cmdName(handle, rest)
	case "/msg":
		b.cmdMsg(handle, rest)
	case "/rooms":
		b.cmdRooms(handle)
	case "/create":
		b.cmdCreate(handle, rest)
	case "/join":
		b.cmdJoin(handle, rest)
	case "/leave":
		b.cmdLeave(handle)
	case "/delete":
		b.cmdDelete(handle, rest)
	default:
		// §9 Design Notes: the reference forwards unrecognized commands as
		// chat, but this is flagged as likely unintentional; a conforming
		// rewrite rejects unknown commands with a usage hint.
		b.replySystem(handle, errs.NewError(errs.ErrUnknownCommand, cmd).Message)
	}
}

// dispatchChat delivers line verbatim to the sender's current room, including
// back to the sender (spec.md §4.6: "chat is delivered to everyone in the
// room including the sender, so each client sees a canonical echo").
func (b *Broker) dispatchChat(handle Handle, line string) {
	snap, ok := b.Clients.Get(handle)
	if !ok {
		return
	}
	b.BroadcastRoom(snap.Room, wire.RoomChat(snap.Room, snap.Name, line))
	b.logEvent("room chat: %s in %s: %s", snap.Name, snap.Room, line)
}

func (b *Broker) cmdName(handle Handle, rest string) {
	newName := strings.Fields(rest)
	name := ""
	if len(newName) > 0 {
		name = newName[0]
	}

	snap, ok := b.Clients.Get(handle)
	if !ok {
		return
	}
	oldName := snap.Name

	if err := b.Clients.Rename(handle, name); err != nil {
		b.replySystem(handle, err.Message)
		return
	}

	if !b.suppressSystemFor(oldName) && !b.suppressSystemFor(name) {
		b.BroadcastGlobal(wire.System(oldName + " is now known as " + name + "."))
	}
	b.logEvent("rename: %s -> %s", oldName, name)
}

func (b *Broker) cmdMsg(handle Handle, rest string) {
	parts := strings.SplitN(rest, " ", 2)
	if len(parts) < 2 || parts[0] == "" || strings.TrimSpace(parts[1]) == "" {
		b.replySystem(handle, errs.NewError(errs.ErrUsageMsg).Message)
		return
	}
	target, text := parts[0], strings.TrimLeft(parts[1], " \t")

	sender, ok := b.Clients.Get(handle)
	if !ok {
		return
	}

	targetHandle, ok := b.Clients.FindByName(target)
	if !ok {
		b.replySystem(handle, errs.NewError(errs.ErrUserNotFound, target).Message)
		return
	}

	payload := wire.Private(sender.Name, text)
	b.deliverTo(targetHandle, payload)
	// Sender also sees their own message (spec.md §8 scenario 5), unless
	// they messaged themselves, in which case one delivery already covers it.
	if targetHandle != handle {
		b.deliverTo(handle, payload)
	}
	b.logEvent("private message: %s -> %s", sender.Name, target)
}

func (b *Broker) cmdRooms(handle Handle) {
	b.SendCatalogue(handle)
}

func (b *Broker) cmdCreate(handle Handle, rest string) {
	fields := strings.Fields(rest)
	if len(fields) == 0 || fields[0] == "" {
		b.replySystem(handle, errs.NewError(errs.ErrRoomNameEmpty).Message)
		return
	}
	name := fields[0]
	password := ""
	if len(fields) > 1 {
		password = fields[1]
	}

	if !b.Rooms.Create(name, password, handle) {
		b.replySystem(handle, errs.NewError(errs.ErrRoomExists).Message)
		return
	}

	result, err := b.ChangeRoom(handle, name, password)
	if err != nil {
		// Room creation succeeded but the atomic join failed unexpectedly;
		// surface the error and leave the (now ownerless-looking but still
		// joinable) room in place for a retry.
		b.replySystem(handle, err.Message)
		return
	}

	b.BroadcastCatalogue()
	b.deliverTo(handle, wire.RoomAssign(name))
	b.replySystem(handle, "Room created and joined: "+name)
	b.notifyRoomChange(result)
	b.logEvent("room create: %s by %s", name, result.Mover.Name)
}

func (b *Broker) cmdJoin(handle Handle, rest string) {
	fields := strings.Fields(rest)
	if len(fields) == 0 || fields[0] == "" {
		b.replySystem(handle, errs.NewError(errs.ErrRoomNameEmpty).Message)
		return
	}
	name := fields[0]
	password := ""
	if len(fields) > 1 {
		password = fields[1]
	}

	result, err := b.ChangeRoom(handle, name, password)
	if err != nil {
		b.replySystem(handle, err.Message)
		return
	}
	if result.NoOp {
		return
	}

	b.deliverTo(handle, wire.RoomAssign(name))
	b.notifyRoomChange(result)
	b.logEvent("join room: %s -> %s", result.Mover.Name, name)
}

func (b *Broker) cmdLeave(handle Handle) {
	snap, ok := b.Clients.Get(handle)
	if !ok {
		return
	}
	if snap.Room == LobbyName {
		b.replySystem(handle, errs.NewError(errs.ErrAlreadyInLobby).Message)
		return
	}

	result, err := b.ChangeRoom(handle, LobbyName, "")
	if err != nil {
		b.replySystem(handle, err.Message)
		return
	}

	b.deliverTo(handle, wire.RoomAssign(LobbyName))
	b.notifyRoomChange(result)
	b.logEvent("leave room: %s -> %s", result.Mover.Name, LobbyName)
}

func (b *Broker) cmdDelete(handle Handle, rest string) {
	fields := strings.Fields(rest)
	if len(fields) == 0 || fields[0] == "" {
		b.replySystem(handle, errs.NewError(errs.ErrRoomNameEmpty).Message)
		return
	}
	name := fields[0]

	result, err := b.DeleteRoom(name, handle)
	if err != nil {
		b.replySystem(handle, err.Message)
		return
	}

	for _, member := range result.Migrated {
		b.deliverTo(member.Handle, wire.RoomAssign(LobbyName))
		b.deliverTo(member.Handle, wire.System("Room deleted. You have been moved to Lobby."))
	}
	b.BroadcastCatalogue()
	b.logEvent("room delete: %s", name)
}

// notifyRoomChange emits the "left"/"joined" system lines for a completed
// room change, per spec.md §4.5 steps (5)-(6). Both broadcasts exclude the
// mover, who instead already received (or will receive) their own ROOM| line.
func (b *Broker) notifyRoomChange(result RoomChangeResult) {
	if b.suppressSystemFor(result.Mover.Name) {
		return
	}
	if result.FromRoom != "" && result.FromRoom != result.ToRoom {
		b.BroadcastRoom(result.FromRoom, wire.System(result.Mover.Name+" left the room."), result.Mover.Handle)
	}
	b.BroadcastRoom(result.ToRoom, wire.System(result.Mover.Name+" joined the room."), result.Mover.Handle)
}

// BroadcastCatalogue pushes the current room list to every connected client,
// satisfying the "Catalogue freshness" property (spec.md §8).
func (b *Broker) BroadcastCatalogue() {
	snapshots := b.Rooms.SnapshotList()
	states := make([]wire.RoomState, 0, len(snapshots))
	for _, s := range snapshots {
		states = append(states, wire.RoomState{Name: s.Name, Locked: s.Locked})
	}
	b.BroadcastGlobal(wire.Catalogue(states))
}

func (b *Broker) replySystem(handle Handle, text string) {
	b.deliverTo(handle, wire.System(text))
}

func (b *Broker) logEvent(format string, args ...any) {
	if b.Events == nil {
		return
	}
	b.Events.Log(fmt.Sprintf(format, args...))
}
