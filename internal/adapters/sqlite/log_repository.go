package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/quentinrf/sensor-panel/internal/domain"
)

// LogRepository implements domain.LogRepository with SQLite
type LogRepository struct {
	db *sql.DB
}

// NewLogRepository creates a SQLite-backed repository
func NewLogRepository(dbPath string) (*LogRepository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Sequence assignment runs in a transaction; one connection keeps
	// SQLite from returning SQLITE_BUSY between concurrent appends
	db.SetMaxOpenConns(1)

	schema := `
	CREATE TABLE IF NOT EXISTS log_entries (
		session_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		text TEXT NOT NULL,
		intensity REAL,
		bucket TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL,
		PRIMARY KEY (session_id, seq)
	);
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &LogRepository{db: db}, nil
}

// Append stores an entry with the next sequence number of its session
func (r *LogRepository) Append(ctx context.Context, entry *domain.LogEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) + 1 FROM log_entries WHERE session_id = ?`,
		entry.SessionID,
	).Scan(&seq)
	if err != nil {
		return fmt.Errorf("failed to compute sequence: %w", err)
	}

	var intensity sql.NullFloat64
	if entry.Intensity != nil {
		intensity = sql.NullFloat64{Float64: *entry.Intensity, Valid: true}
	}

	query := `INSERT INTO log_entries (session_id, seq, text, intensity, bucket, created_at) VALUES (?, ?, ?, ?, ?, ?)`
	_, err = tx.ExecContext(ctx, query,
		entry.SessionID, seq, entry.Text, intensity, string(entry.Bucket), entry.Timestamp.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit entry: %w", err)
	}

	entry.Seq = seq
	return nil
}

// List returns a session's entries ordered by sequence
func (r *LogRepository) List(ctx context.Context, sessionID string) ([]*domain.LogEntry, error) {
	query := `
		SELECT seq, text, intensity, bucket, created_at
		FROM log_entries
		WHERE session_id = ?
		ORDER BY seq ASC
	`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.LogEntry
	for rows.Next() {
		entry := domain.LogEntry{SessionID: sessionID}
		var intensity sql.NullFloat64
		var bucket string
		var createdAt int64

		if err := rows.Scan(&entry.Seq, &entry.Text, &intensity, &bucket, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}

		if intensity.Valid {
			v := intensity.Float64
			entry.Intensity = &v
		}
		entry.Bucket = domain.Bucket(bucket)
		entry.Timestamp = time.Unix(0, createdAt)

		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}

	return entries, nil
}

// Count returns the number of entries for a session
func (r *LogRepository) Count(ctx context.Context, sessionID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM log_entries WHERE session_id = ?`, sessionID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return n, nil
}

// Close closes the database connection
func (r *LogRepository) Close() error {
	return r.db.Close()
}
