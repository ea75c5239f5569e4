package indexer

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"corpussearch/internal/contextutil"
	"corpussearch/internal/llm"
	"corpussearch/internal/vectorstore"
)

// DefaultBatchSize is the number of chunks embedded and upserted per batch.
const DefaultBatchSize = 50

// Pipeline embeds chunks and upserts them into a vector store collection.
type Pipeline struct {
	embedder    llm.Embedder
	vectorStore vectorstore.VectorStore
	batchSize   int
}

// NewPipeline creates a new indexing pipeline with the default batch size.
func NewPipeline(embedder llm.Embedder, vectorStore vectorstore.VectorStore) *Pipeline {
	return &Pipeline{
		embedder:    embedder,
		vectorStore: vectorStore,
		batchSize:   DefaultBatchSize,
	}
}

// WithBatchSize overrides the batch size. Values below 1 keep the default.
func (p *Pipeline) WithBatchSize(size int) *Pipeline {
	if size >= 1 {
		p.batchSize = size
	}
	return p
}

// Index embeds and upserts chunks into the named collection in fixed-size
// batches, sequentially. A no-op on empty input. The first batch failure
// aborts the remaining batches and propagates; the run is not retried here.
func (p *Pipeline) Index(ctx context.Context, chunks []Chunk, collection string) error {
	logger := contextutil.LoggerFromContext(ctx)

	if len(chunks) == 0 {
		return nil
	}

	for start := 0; start < len(chunks); start += p.batchSize {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		end := start + p.batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, chunk := range batch {
			texts[i] = chunk.Text
		}

		embeddings, err := p.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return fmt.Errorf("failed to embed batch at offset %d: %w", start, err)
		}
		if len(embeddings) != len(batch) {
			return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(batch), len(embeddings))
		}

		points := make([]vectorstore.Point, len(batch))
		for i, chunk := range batch {
			meta := make(map[string]any, len(chunk.Metadata)+1)
			for k, v := range chunk.Metadata {
				meta[k] = v
			}
			meta["text"] = chunk.Text

			points[i] = vectorstore.Point{
				ID:   uuid.New().String(),
				Vec:  embeddings[i],
				Meta: meta,
			}
		}

		if err := p.vectorStore.Upsert(ctx, collection, points); err != nil {
			return fmt.Errorf("failed to upsert batch at offset %d: %w", start, err)
		}

		logger.DebugContext(ctx, "indexed batch", "collection", collection, "offset", start, "size", len(batch))
	}

	logger.InfoContext(ctx, "indexed chunks", "collection", collection, "chunks", len(chunks))
	return nil
}
