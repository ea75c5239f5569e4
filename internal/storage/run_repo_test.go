package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error: %v", err)
	}
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := newTestDB(t)
	if err := Migrate(db); err != nil {
		t.Errorf("second Migrate() error: %v", err)
	}
}

func TestRunRepo_RecordAndLastByCorpus(t *testing.T) {
	repo := NewRunRepo(newTestDB(t))
	ctx := context.Background()

	first := &RunRecord{
		Corpus:         "docs",
		FilesProcessed: 10,
		FilesFailed:    1,
		ChunksCreated:  42,
		StartedAt:      time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		FinishedAt:     time.Date(2024, 3, 1, 10, 5, 0, 0, time.UTC),
	}
	second := &RunRecord{
		Corpus:         "docs",
		FilesProcessed: 12,
		FilesFailed:    0,
		ChunksCreated:  50,
		StartedAt:      time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC),
		FinishedAt:     time.Date(2024, 3, 2, 10, 4, 0, 0, time.UTC),
	}

	if err := repo.Record(ctx, first); err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	if err := repo.Record(ctx, second); err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	if first.ID == "" || second.ID == "" {
		t.Error("Record() did not generate IDs")
	}

	got, err := repo.LastByCorpus(ctx, "docs")
	if err != nil {
		t.Fatalf("LastByCorpus() error: %v", err)
	}
	if got.ID != second.ID {
		t.Errorf("LastByCorpus() returned run %s, want most recent %s", got.ID, second.ID)
	}
	if got.FilesProcessed != 12 || got.ChunksCreated != 50 {
		t.Errorf("LastByCorpus() tally = %d/%d, want 12/50", got.FilesProcessed, got.ChunksCreated)
	}
	if !got.FinishedAt.Equal(second.FinishedAt) {
		t.Errorf("FinishedAt = %v, want %v", got.FinishedAt, second.FinishedAt)
	}
}

func TestRunRepo_LastByCorpus_NotFound(t *testing.T) {
	repo := NewRunRepo(newTestDB(t))

	_, err := repo.LastByCorpus(context.Background(), "chat")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("LastByCorpus() error = %v, want ErrNotFound", err)
	}
}

func TestRunRepo_CorporaIsolated(t *testing.T) {
	repo := NewRunRepo(newTestDB(t))
	ctx := context.Background()

	err := repo.Record(ctx, &RunRecord{
		Corpus:     "code",
		StartedAt:  time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2024, 3, 1, 9, 1, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Record() error: %v", err)
	}

	if _, err := repo.LastByCorpus(ctx, "docs"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LastByCorpus(docs) error = %v, want ErrNotFound", err)
	}
	if got, err := repo.LastByCorpus(ctx, "code"); err != nil || got.Corpus != "code" {
		t.Errorf("LastByCorpus(code) = %v, %v", got, err)
	}
}
