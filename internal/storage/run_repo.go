package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// RunRecord is the persisted tally of one ingestion run.
type RunRecord struct {
	ID             string
	Corpus         string
	FilesProcessed int
	FilesFailed    int
	ChunksCreated  int
	StartedAt      time.Time
	FinishedAt     time.Time
}

// RunStore defines the interface for ingestion run ledger operations.
type RunStore interface {
	// Record persists the tally of a completed run. A missing ID is
	// generated.
	Record(ctx context.Context, run *RunRecord) error
	// LastByCorpus returns the most recently finished run for a corpus.
	// Returns ErrNotFound when the corpus has never been ingested.
	LastByCorpus(ctx context.Context, corpus string) (*RunRecord, error)
}

// RunRepo provides methods for ingestion run ledger operations.
// It implements the RunStore interface.
type RunRepo struct {
	db *sql.DB
}

var _ RunStore = (*RunRepo)(nil)

// NewRunRepo creates a new RunRepo.
func NewRunRepo(db *sql.DB) *RunRepo {
	return &RunRepo{db: db}
}

// Record persists the tally of a completed run.
func (r *RunRepo) Record(ctx context.Context, run *RunRecord) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO ingestion_runs
			(id, corpus, files_processed, files_failed, chunks_created, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Corpus, run.FilesProcessed, run.FilesFailed, run.ChunksCreated,
		run.StartedAt.UTC().Format(time.RFC3339), run.FinishedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to record ingestion run: %w", err)
	}
	return nil
}

// LastByCorpus returns the most recently finished run for a corpus.
func (r *RunRepo) LastByCorpus(ctx context.Context, corpus string) (*RunRecord, error) {
	var run RunRecord
	var startedAt, finishedAt string

	err := r.db.QueryRowContext(ctx,
		`SELECT id, corpus, files_processed, files_failed, chunks_created, started_at, finished_at
		 FROM ingestion_runs WHERE corpus = ? ORDER BY finished_at DESC LIMIT 1`,
		corpus,
	).Scan(&run.ID, &run.Corpus, &run.FilesProcessed, &run.FilesFailed, &run.ChunksCreated, &startedAt, &finishedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query ingestion run: %w", err)
	}

	if run.StartedAt, err = time.Parse(time.RFC3339, startedAt); err != nil {
		return nil, fmt.Errorf("failed to parse started_at timestamp: %w", err)
	}
	if run.FinishedAt, err = time.Parse(time.RFC3339, finishedAt); err != nil {
		return nil, fmt.Errorf("failed to parse finished_at timestamp: %w", err)
	}

	return &run, nil
}
