package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/quentinrf/sensor-panel/internal/domain"
)

func newTestRepo(t *testing.T) *LogRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	repo, err := NewLogRepository(dbPath)
	if err != nil {
		t.Fatalf("failed to create SQLite repo: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestAppendAndList(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	now := time.Now()
	banner := domain.NewBannerEntry("s1", &domain.SensorInfo{MaximumRange: 300}, now)
	light := domain.NewLightEntry("s1", domain.LightClassification{Intensity: 250, MaxRange: 300, Bucket: domain.BucketHigh}, now.Add(time.Second))

	if err := repo.Append(ctx, banner); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := repo.Append(ctx, light); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if banner.Seq != 1 || light.Seq != 2 {
		t.Fatalf("expected seqs 1,2 got %d,%d", banner.Seq, light.Seq)
	}

	entries, err := repo.List(ctx, "s1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	if entries[0].Text != banner.Text || entries[0].Intensity != nil {
		t.Errorf("unexpected banner entry: %+v", entries[0])
	}
	got := entries[1]
	if got.Text != light.Text {
		t.Errorf("got text %q, want %q", got.Text, light.Text)
	}
	if got.Intensity == nil || *got.Intensity != 250 {
		t.Errorf("expected intensity 250, got %v", got.Intensity)
	}
	if got.Bucket != domain.BucketHigh {
		t.Errorf("expected bucket HIGH, got %q", got.Bucket)
	}
	if !got.Timestamp.Equal(light.Timestamp) {
		t.Errorf("timestamp round trip: got %v, want %v", got.Timestamp, light.Timestamp)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_ = repo.Append(ctx, &domain.LogEntry{SessionID: "a", Text: "a1", Timestamp: time.Now()})
	_ = repo.Append(ctx, &domain.LogEntry{SessionID: "a", Text: "a2", Timestamp: time.Now()})
	b := &domain.LogEntry{SessionID: "b", Text: "b1", Timestamp: time.Now()}
	_ = repo.Append(ctx, b)

	if b.Seq != 1 {
		t.Errorf("expected first entry of session b to get seq 1, got %d", b.Seq)
	}

	n, err := repo.Count(ctx, "a")
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 entries for session a, got %d", n)
	}
}

func TestList_Empty(t *testing.T) {
	repo := newTestRepo(t)

	entries, err := repo.List(context.Background(), "missing")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}

func TestAppendSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	repo, err := NewLogRepository(dbPath)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	_ = repo.Append(ctx, &domain.LogEntry{SessionID: "s", Text: "kept", Timestamp: time.Now()})
	repo.Close()

	repo, err = NewLogRepository(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer repo.Close()

	next := &domain.LogEntry{SessionID: "s", Text: "next", Timestamp: time.Now()}
	if err := repo.Append(ctx, next); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if next.Seq != 2 {
		t.Errorf("expected seq 2 after reopen, got %d", next.Seq)
	}
}
