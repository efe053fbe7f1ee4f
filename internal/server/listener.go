/*
Package server implements the listener / session supervisor (spec.md §4.7):
binds the TCP listening socket, accepts connections in a loop tolerant of
signal interruption, and spawns one session per accepted connection.
*/
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"

	"golang.org/x/sync/errgroup"

	"broker/internal/app/chat"
	"broker/internal/pkg/logx"
)

// Listener binds a single TCP/IPv4 port with SO_REUSEADDR and accepts
// connections until ctx is canceled.
type Listener struct {
	ln     net.Listener
	broker *chat.Broker
}

// Listen binds port, returning an error the caller should treat as a startup
// failure (spec.md §6: exit code 1 on bind/listen failure).
func Listen(port int, broker *chat.Broker) (*Listener, error) {
	lc := net.ListenConfig{
		Control: func(_, _ string, c syscall.RawConn) error {
			var sockErr error
			err := c.Control(func(fd uintptr) {
				sockErr = syscall.SetsockoptInt(int(fd), syscall.SOL_SOCKET, syscall.SO_REUSEADDR, 1)
			})
			if err != nil {
				return err
			}
			return sockErr
		},
	}

	ln, err := lc.Listen(context.Background(), "tcp4", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("bind :%d: %w", port, err)
	}

	return &Listener{ln: ln, broker: broker}, nil
}

// Serve runs the accept loop until ctx is canceled, spawning one session
// goroutine per accepted connection tracked through an errgroup (spec.md §4.7,
// §4.8). On a termination signal the accept loop exits; already-running
// sessions are not interrupted, and Serve returns only after every one of
// them has ended.
func (l *Listener) Serve(ctx context.Context) error {
	group, _ := errgroup.WithContext(context.Background())

	go func() {
		<-ctx.Done()
		_ = l.ln.Close()
	}()

	for {
		conn, err := l.ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			var syscallErr *net.OpError
			if errors.As(err, &syscallErr) && syscallErr.Timeout() {
				continue
			}
			logx.Error(err, "accept failed, stopping listener")
			break
		}

		session := chat.NewSession(conn, l.broker)
		group.Go(func() error {
			session.Run()
			return nil
		})
	}

	return group.Wait()
}
