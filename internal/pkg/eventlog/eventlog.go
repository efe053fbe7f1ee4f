/*
Package eventlog implements the broker's append-only persisted event log.

This is distinct from internal/pkg/logx's structured operational logging: it is
the spec's "Persisted state" (§6) — one line per domain event, in the fixed
format `[YYYY-MM-DD HH:MM:SS] <event>`, never read back by the broker. It mirrors
the original reference implementation's single log_file guarded by a single
log_mutex, ported from a global to an explicit, owned value per the broker
context design note (§9).
*/
package eventlog

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// Sink is a mutex-guarded append-only writer for the broker's event log.
type Sink struct {
	mu   sync.Mutex
	file *os.File
}

// Open opens (creating if necessary) the event log file at path for appending.
func Open(path string) (*Sink, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open event log %q: %w", path, err)
	}
	return &Sink{file: f}, nil
}

// Log appends one formatted event line, timestamped at the moment of the call.
func (s *Sink) Log(event string) {
	line := fmt.Sprintf("[%s] %s\n", time.Now().Format("2006-01-02 15:04:05"), event)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Best-effort: a failed write to the event log must never take down a
	// session or the broker. Nothing reads this log back at runtime.
	_, _ = s.file.WriteString(line)
}

// Close closes the underlying file.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}
