package scheduler

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"instagist/internal/database"
	"instagist/internal/domain"
)

func newTestDatabase(t *testing.T) *database.Database {
	t.Helper()

	db, err := database.New(
		context.Background(),
		filepath.Join(t.TempDir(), "test.sqlite"),
		slog.Default(),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Cleanup(func() {
		if closeErr := db.Close(); closeErr != nil {
			t.Errorf("close database: %v", closeErr)
		}
	})

	return db
}

func insertSummaryAt(t *testing.T, db *database.Database, createdAt time.Time) {
	t.Helper()

	_, err := db.InsertSummary(context.Background(), &domain.Summary{
		CreatedAt:  createdAt,
		Style:      domain.StyleBullets,
		SourceKind: domain.SourcePasted,
		Text:       "summary",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPruneSummariesDeletesOldEntries(t *testing.T) {
	db := newTestDatabase(t)

	now := time.Now().UTC()
	insertSummaryAt(t, db, now.AddDate(0, 0, -40))
	insertSummaryAt(t, db, now.AddDate(0, 0, -31))
	insertSummaryAt(t, db, now)

	s := New(context.Background(), db, 30, slog.Default())
	s.pruneSummaries()

	count, err := db.CountSummaries(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if count != 1 {
		t.Fatalf("expected 1 remaining summary, got %d", count)
	}
}

func TestStartWithRetentionDisabled(t *testing.T) {
	db := newTestDatabase(t)

	s := New(context.Background(), db, 0, slog.Default())
	defer s.Stop()

	if err := s.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPruneSummariesHonorsCanceledContext(t *testing.T) {
	db := newTestDatabase(t)

	now := time.Now().UTC()
	insertSummaryAt(t, db, now.AddDate(0, 0, -40))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(ctx, db, 30, slog.Default())
	s.pruneSummaries()

	count, err := db.CountSummaries(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if count != 1 {
		t.Fatalf("expected canceled prune to leave summaries, got %d", count)
	}
}
