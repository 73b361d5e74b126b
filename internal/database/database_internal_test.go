package database

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"instagist/internal/domain"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()

	db, err := New(
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

func newTestSummary(createdAt time.Time, text string) *domain.Summary {
	return &domain.Summary{
		CreatedAt:   createdAt,
		Style:       domain.StyleBullets,
		SourceKind:  domain.SourcePasted,
		SourceName:  "pasted text",
		Provider:    "ollama",
		Model:       "gemma:2b",
		InputChars:  42,
		InputSHA256: "deadbeef",
		Text:        text,
	}
}

func TestInsertAndGetSummary(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	id, err := db.InsertSummary(ctx, newTestSummary(createdAt, "- First point"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if id <= 0 {
		t.Fatalf("expected positive ID, got %d", id)
	}

	summary, err := db.GetSummary(ctx, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.ID != id {
		t.Fatalf("unexpected ID: %d", summary.ID)
	}

	if !summary.CreatedAt.Equal(createdAt) {
		t.Fatalf("unexpected creation time: %v", summary.CreatedAt)
	}

	if summary.Style != domain.StyleBullets ||
		summary.SourceKind != domain.SourcePasted {
		t.Fatalf("unexpected style/kind: %q/%q", summary.Style, summary.SourceKind)
	}

	if summary.Provider != "ollama" || summary.Model != "gemma:2b" {
		t.Fatalf("unexpected provenance: %q/%q", summary.Provider, summary.Model)
	}

	if summary.InputChars != 42 || summary.InputSHA256 != "deadbeef" {
		t.Fatalf("unexpected input metadata: %d/%q",
			summary.InputChars, summary.InputSHA256)
	}

	if summary.Text != "- First point" {
		t.Fatalf("unexpected text: %q", summary.Text)
	}
}

func TestGetSummaryNotFound(t *testing.T) {
	db := newTestDatabase(t)

	if _, err := db.GetSummary(context.Background(), 12345); !errors.Is(err, ErrSummaryNotFound) {
		t.Fatalf("expected ErrSummaryNotFound, got %v", err)
	}
}

func TestInsertSummaryRejectsEmptyText(t *testing.T) {
	db := newTestDatabase(t)

	summary := newTestSummary(time.Now().UTC(), "   ")
	if _, err := db.InsertSummary(context.Background(), summary); err == nil {
		t.Fatalf("expected error for empty summary text")
	}
}

func TestListSummariesOrdersAndPaginates(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	var ids []int64
	for i := range 3 {
		id, err := db.InsertSummary(ctx, newTestSummary(
			base.Add(time.Duration(i)*time.Hour),
			"summary",
		))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		ids = append(ids, id)
	}

	page, err := db.ListSummaries(ctx, 2, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(page) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(page))
	}

	if page[0].ID != ids[2] || page[1].ID != ids[1] {
		t.Fatalf("expected newest first, got %d then %d", page[0].ID, page[1].ID)
	}

	rest, err := db.ListSummaries(ctx, 2, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rest) != 1 || rest[0].ID != ids[0] {
		t.Fatalf("unexpected second page: %+v", rest)
	}

	count, err := db.CountSummaries(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if count != 3 {
		t.Fatalf("expected 3 summaries, got %d", count)
	}
}

func TestDeleteSummary(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	id, err := db.InsertSummary(ctx, newTestSummary(time.Now().UTC(), "summary"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err = db.DeleteSummary(ctx, id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err = db.GetSummary(ctx, id); !errors.Is(err, ErrSummaryNotFound) {
		t.Fatalf("expected ErrSummaryNotFound, got %v", err)
	}

	if err = db.DeleteSummary(ctx, id); !errors.Is(err, ErrSummaryNotFound) {
		t.Fatalf("expected ErrSummaryNotFound on repeat delete, got %v", err)
	}
}

func TestDeleteSummariesBefore(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for _, createdAt := range []time.Time{
		base.Add(-48 * time.Hour),
		base.Add(-36 * time.Hour),
		base,
	} {
		if _, err := db.InsertSummary(ctx, newTestSummary(createdAt, "summary")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	affected, err := db.DeleteSummariesBefore(ctx, base.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if affected != 2 {
		t.Fatalf("expected 2 deleted summaries, got %d", affected)
	}

	count, err := db.CountSummaries(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if count != 1 {
		t.Fatalf("expected 1 remaining summary, got %d", count)
	}
}
