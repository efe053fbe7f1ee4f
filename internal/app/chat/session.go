package chat

import (
	"bufio"
	"net"
	"sync"

	"broker/internal/pkg/logx"
	"broker/internal/pkg/randx"
	"broker/internal/pkg/wire"
)

// outboundQueueDepth bounds the per-connection writer queue (spec.md §9: "a
// bounded outbound queue per connection and a dedicated writer task; on queue
// overflow, the peer is dropped").
const outboundQueueDepth = 64

// Session owns one accepted connection end to end: CONNECTING through CLOSED
// (spec.md §4.5 state machine). It implements Peer so fan-out code only ever
// talks to it through that narrow interface.
type Session struct {
	conn    net.Conn
	broker  *Broker
	handle  Handle
	traceID string

	outbound chan string
	done     chan struct{}
	closeOne sync.Once
}

// NewSession wraps an accepted connection; call Run to drive it.
func NewSession(conn net.Conn, broker *Broker) *Session {
	return &Session{
		conn:     conn,
		broker:   broker,
		traceID:  randx.SessionTraceID(),
		outbound: make(chan string, outboundQueueDepth),
		done:     make(chan struct{}),
	}
}

// Deliver enqueues payload for asynchronous delivery. It never blocks: a full
// queue means this peer isn't draining fast enough to keep up, so it is
// treated as dead — the session's own loops, not the caller, perform
// teardown (spec.md §4.2, §4.8).
func (s *Session) Deliver(payload string) bool {
	select {
	case s.outbound <- payload:
		return true
	case <-s.done:
		return false
	default:
		s.kick()
		return false
	}
}

// kick closes the connection exactly once, unblocking whichever of the read
// or write loop is currently parked so CLOSING runs exactly one time.
func (s *Session) kick() {
	s.closeOne.Do(func() {
		close(s.done)
		_ = s.conn.Close()
	})
}

// Run drives the session from ACTIVE entry through CLOSING teardown. It
// blocks until the connection ends, so callers run it on its own goroutine.
func (s *Session) Run() {
	s.handle, _ = s.broker.Clients.Register(s)

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeLoop()
	}()

	s.enterActive()
	s.readLoop()

	s.kick()
	<-writerDone
	s.enterClosing()
}

// enterActive performs the ACTIVE-entry sequence from spec.md §4.5: join the
// Lobby, send ROOM|Lobby, send the catalogue, send the welcome lines,
// broadcast the updated catalogue, and log the join.
func (s *Session) enterActive() {
	snap, _ := s.broker.Clients.Get(s.handle)
	s.broker.Rooms.Join(s.handle, LobbyName, "")

	s.Deliver(wire.RoomAssign(LobbyName))
	s.broker.SendCatalogue(s.handle)
	s.Deliver(wire.System("Welcome to the chat, " + snap.Name + "."))
	s.Deliver(wire.System("Type /rooms to see available rooms, /create or /join to change rooms."))
	s.Deliver(wire.System("Type /msg <user> <message> for a private message, /leave to return to Lobby."))

	s.broker.BroadcastCatalogue()
	s.broker.logEvent("join: %s connected (trace %s)", snap.Name, s.traceID)
}

// enterClosing removes the client from its room and the registry, broadcasts
// a farewell, and logs departure (spec.md §4.5 CLOSING).
func (s *Session) enterClosing() {
	name, room, ok := s.broker.Clients.Unregister(s.handle)
	if !ok {
		return
	}
	s.broker.Rooms.Leave(s.handle, room)

	if !s.broker.suppressSystemFor(name) {
		s.broker.BroadcastGlobal(wire.System(name + " has left the chat."))
	}
	s.broker.logEvent("leave: %s disconnected (trace %s)", name, s.traceID)
}

// readLoop frames incoming bytes into lines and dispatches each one, until
// recv returns <= 0 or the accumulator overflows (spec.md §4.1, §4.8).
func (s *Session) readLoop() {
	var framer Framer
	buf := make([]byte, 4096)

	for {
		n, err := s.conn.Read(buf)
		if n > 0 {
			lines, overflow := framer.Feed(buf[:n])
			for _, line := range lines {
				s.broker.Dispatch(s.handle, line)
			}
			if overflow {
				logx.Warn("connection exceeded line length bound, dropping", "trace", s.traceID)
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// writeLoop is the dedicated per-connection writer task: it owns the only
// write side of conn, so a slow peer never blocks fan-out to others.
func (s *Session) writeLoop() {
	w := bufio.NewWriter(s.conn)
	for {
		select {
		case payload, ok := <-s.outbound:
			if !ok {
				return
			}
			if _, err := w.WriteString(payload); err != nil {
				s.kick()
				return
			}
			if err := w.Flush(); err != nil {
				s.kick()
				return
			}
		case <-s.done:
			return
		}
	}
}
