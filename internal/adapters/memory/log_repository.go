package memory

import (
	"context"
	"sync"

	"github.com/quentinrf/sensor-panel/internal/domain"
)

// LogRepository implements domain.LogRepository with in-memory storage
// Entries live as long as the process.
type LogRepository struct {
	mu       sync.RWMutex
	sessions map[string][]*domain.LogEntry
}

// NewLogRepository creates an empty in-memory repository
func NewLogRepository() *LogRepository {
	return &LogRepository{
		sessions: make(map[string][]*domain.LogEntry),
	}
}

// Append stores an entry at the end of its session's log
func (r *LogRepository) Append(ctx context.Context, entry *domain.LogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := r.sessions[entry.SessionID]
	entry.Seq = int64(len(entries)) + 1
	r.sessions[entry.SessionID] = append(entries, entry.Clone())
	return nil
}

// List returns copies of the session's entries, oldest first
func (r *LogRepository) List(ctx context.Context, sessionID string) ([]*domain.LogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := r.sessions[sessionID]
	out := make([]*domain.LogEntry, len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	return out, nil
}

// Count returns the session's log length
func (r *LogRepository) Count(ctx context.Context, sessionID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions[sessionID]), nil
}
