package domain

import (
	"context"
)

// LogRepository stores the light log of each session
// This is a PORT - adapters (SQLite, Memory) will implement it
//
// The log is append-only: there is no update or delete operation.
type LogRepository interface {
	// Append persists an entry and assigns the next sequence number
	// of entry.SessionID
	Append(ctx context.Context, entry *LogEntry) error

	// List returns a session's entries in sequence order (oldest first)
	List(ctx context.Context, sessionID string) ([]*LogEntry, error)

	// Count returns the number of entries stored for a session
	Count(ctx context.Context, sessionID string) (int, error)
}
