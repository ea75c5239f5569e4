// Package ingest walks corpus directories and drives files through
// normalization, chunking and indexing, producing a per-run tally.
package ingest

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"corpussearch/internal/contextutil"
	"corpussearch/internal/indexer"
	"corpussearch/internal/normalizer"
	"corpussearch/internal/splitter"
	"corpussearch/internal/storage"
)

// CorpusConfig describes one corpus to ingest.
type CorpusConfig struct {
	Type        normalizer.CorpusType
	Path        string
	Collection  string
	Splitter    *splitter.Splitter
	Extensions  []string // lower-case, with leading dot
	MaxFileSize int64    // 0 means unlimited
	IgnoredDirs []string
}

// Report is the tally of one ingestion run. It is always produced, even
// when some files failed.
type Report struct {
	Corpus         string
	FilesProcessed int
	FilesFailed    int
	ChunksCreated  int
}

// Runner ingests corpora into the vector store and records run tallies.
type Runner struct {
	pipeline *indexer.Pipeline
	runs     storage.RunStore
	now      func() time.Time
}

// NewRunner creates a runner. runs may be nil to skip ledger recording.
func NewRunner(pipeline *indexer.Pipeline, runs storage.RunStore) *Runner {
	return &Runner{
		pipeline: pipeline,
		runs:     runs,
		now:      time.Now,
	}
}

// Run ingests one corpus directory. Files are processed sequentially;
// per-file normalization errors are logged and counted without aborting the
// run, while an embedding or store failure aborts the run and propagates.
// The final tally is logged and recorded in the run ledger either way.
func (r *Runner) Run(ctx context.Context, cc CorpusConfig) (*Report, error) {
	logger := contextutil.LoggerFromContext(ctx)
	startedAt := r.now()

	norm, err := normalizer.ForCorpus(cc.Type)
	if err != nil {
		return nil, err
	}

	files, err := r.collectFiles(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to scan corpus directory: %w", err)
	}

	logger.InfoContext(ctx, "starting ingestion", "corpus", string(cc.Type), "path", cc.Path, "files", len(files))

	report := &Report{Corpus: string(cc.Type)}
	var chunks []indexer.Chunk

	for _, path := range files {
		select {
		case <-ctx.Done():
			return report, ctx.Err()
		default:
		}

		fileChunks, err := r.processFile(ctx, norm, cc, path)
		if err != nil {
			report.FilesFailed++
			logger.ErrorContext(ctx, "failed to process file", "file", path, "error", err)
			continue
		}
		report.FilesProcessed++
		chunks = append(chunks, fileChunks...)
	}

	report.ChunksCreated = len(chunks)

	indexErr := r.pipeline.Index(ctx, chunks, cc.Collection)

	logger.InfoContext(ctx, "ingestion completed",
		"corpus", string(cc.Type),
		"files_processed", report.FilesProcessed,
		"files_failed", report.FilesFailed,
		"chunks_created", report.ChunksCreated)

	if r.runs != nil {
		record := &storage.RunRecord{
			Corpus:         report.Corpus,
			FilesProcessed: report.FilesProcessed,
			FilesFailed:    report.FilesFailed,
			ChunksCreated:  report.ChunksCreated,
			StartedAt:      startedAt,
			FinishedAt:     r.now(),
		}
		if err := r.runs.Record(ctx, record); err != nil {
			logger.WarnContext(ctx, "failed to record ingestion run", "error", err)
		}
	}

	if indexErr != nil {
		return report, fmt.Errorf("indexing aborted: %w", indexErr)
	}
	return report, nil
}

// processFile normalizes one file and turns its blocks into chunks with
// complete metadata. The chunk index restarts at zero for every block, so
// it is contiguous per document or per conversation day.
func (r *Runner) processFile(ctx context.Context, norm normalizer.Normalizer, cc CorpusConfig, path string) ([]indexer.Chunk, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	blocks, err := norm.Normalize(ctx, normalizer.RawFile{Path: path, Content: content})
	if err != nil {
		return nil, fmt.Errorf("failed to normalize file: %w", err)
	}

	createdAt := r.now().UTC().Format(time.RFC3339)
	fileName := filepath.Base(path)

	var chunks []indexer.Chunk
	for _, block := range blocks {
		for i, text := range cc.Splitter.Split(block.Text) {
			meta := make(map[string]any, len(block.Meta)+6)
			for k, v := range block.Meta {
				meta[k] = v
			}
			meta[indexer.MetaSource] = path
			meta[indexer.MetaFileName] = fileName
			meta[indexer.MetaChunkIndex] = i
			meta[indexer.MetaType] = string(cc.Type)
			meta[indexer.MetaCreatedAt] = createdAt

			// Imports are matched against this chunk's text only, so each
			// chunk carries just the import statements that survived into it.
			if cc.Type == normalizer.CorpusCode {
				if imports := normalizer.ExtractImports(text); len(imports) > 0 {
					meta["importStatements"] = imports
				}
			}

			chunks = append(chunks, indexer.Chunk{Text: text, Metadata: meta})
		}
	}
	return chunks, nil
}

// collectFiles walks the corpus directory and returns matching file paths
// in walk order, pruning ignored directories and skipping oversized files.
func (r *Runner) collectFiles(ctx context.Context, cc CorpusConfig) ([]string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	var files []string
	err := filepath.WalkDir(cc.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if slices.Contains(cc.IgnoredDirs, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !slices.Contains(cc.Extensions, ext) {
			return nil
		}

		if cc.MaxFileSize > 0 {
			info, err := d.Info()
			if err != nil {
				return err
			}
			if info.Size() > cc.MaxFileSize {
				logger.InfoContext(ctx, "skipping large file", "file", path, "size", info.Size())
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
