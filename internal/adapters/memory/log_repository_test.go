package memory

import (
	"context"
	"testing"
	"time"

	"github.com/quentinrf/sensor-panel/internal/domain"
)

func TestAppendAssignsSequence(t *testing.T) {
	repo := NewLogRepository()
	ctx := context.Background()

	for i, text := range []string{"first", "second", "third"} {
		entry := &domain.LogEntry{SessionID: "a", Text: text, Timestamp: time.Now()}
		if err := repo.Append(ctx, entry); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
		if entry.Seq != int64(i+1) {
			t.Errorf("entry %q: seq = %d, want %d", text, entry.Seq, i+1)
		}
	}

	// Another session starts its own sequence
	other := &domain.LogEntry{SessionID: "b", Text: "other"}
	_ = repo.Append(ctx, other)
	if other.Seq != 1 {
		t.Errorf("expected seq 1 for new session, got %d", other.Seq)
	}

	entries, err := repo.List(ctx, "a")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Text != "first" || entries[2].Text != "third" {
		t.Errorf("entries out of order: %q .. %q", entries[0].Text, entries[2].Text)
	}

	n, _ := repo.Count(ctx, "b")
	if n != 1 {
		t.Errorf("expected count 1, got %d", n)
	}
}

func TestListReturnsCopy(t *testing.T) {
	repo := NewLogRepository()
	ctx := context.Background()

	_ = repo.Append(ctx, &domain.LogEntry{SessionID: "a", Text: "first"})
	entries, _ := repo.List(ctx, "a")
	entries[0] = nil

	again, _ := repo.List(ctx, "a")
	if again[0] == nil {
		t.Fatal("mutating a List result changed the stored log")
	}

	// Entries themselves are copies too
	again[0].Text = "rewritten"
	stored, _ := repo.List(ctx, "a")
	if stored[0].Text != "first" {
		t.Errorf("editing a listed entry changed the stored log: %q", stored[0].Text)
	}
}

func TestAppendStoresCopy(t *testing.T) {
	repo := NewLogRepository()
	ctx := context.Background()

	lux := 250.0
	entry := &domain.LogEntry{SessionID: "a", Text: "original", Intensity: &lux}
	_ = repo.Append(ctx, entry)

	entry.Text = "rewritten"
	*entry.Intensity = 1

	stored, _ := repo.List(ctx, "a")
	if stored[0].Text != "original" {
		t.Errorf("expected stored text %q, got %q", "original", stored[0].Text)
	}
	if *stored[0].Intensity != 250 {
		t.Errorf("expected stored intensity 250, got %v", *stored[0].Intensity)
	}
	if stored[0].Seq != 1 {
		t.Errorf("expected seq 1, got %d", stored[0].Seq)
	}
}
