/*
Package randx provides identifier generation helpers.

This system has no client-generated room codes or guest IDs to mint (room names
and passwords are supplied by clients over the wire); the one identifier the
broker itself needs is a per-connection correlation ID for log lines, the same
role the teacher's MessageID plays for per-message client correlation.
*/
package randx

import "github.com/google/uuid"

// SessionTraceID generates a UUID used to correlate one session's log lines
// (its join/leave event log lines and its line-overflow warning).
func SessionTraceID() string {
	return uuid.New().String()
}
