package chat

import (
	"bytes"
	"strings"
)

// maxLineBytes bounds a session's accumulator (spec.md §4.1, §5 "Resource
// bounds"); a connection that exceeds it without producing a newline is
// dropped rather than left to grow unbounded.
const maxLineBytes = 64 * 1024

// Framer splits one connection's byte stream into trimmed, non-empty lines,
// tolerant of partial reads and arbitrary chunk boundaries. It is not
// restartable after Feed reports overflow or the caller observes EOF.
type Framer struct {
	buf []byte
}

// Feed appends chunk to the accumulator and returns every complete line
// extracted so far, trimmed of leading/trailing space, tab, CR and LF, with
// empty trimmed lines discarded silently. overflow is true if the
// accumulator exceeded maxLineBytes without a newline; the caller should drop
// the connection in that case.
func (f *Framer) Feed(chunk []byte) (lines []string, overflow bool) {
	f.buf = append(f.buf, chunk...)

	for {
		idx := bytes.IndexByte(f.buf, '\n')
		if idx < 0 {
			break
		}
		raw := f.buf[:idx]
		f.buf = f.buf[idx+1:]

		trimmed := strings.Trim(string(raw), " \t\r\n")
		if trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	if len(f.buf) > maxLineBytes {
		return lines, true
	}
	return lines, false
}

