// Command ingest runs the ingestion pipeline for one corpus or all of them.
//
// Usage:
//
//	ingest [docs|chat|code|all]
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"corpussearch/internal/config"
	"corpussearch/internal/contextutil"
	"corpussearch/internal/indexer"
	"corpussearch/internal/ingest"
	"corpussearch/internal/llm"
	"corpussearch/internal/normalizer"
	"corpussearch/internal/splitter"
	"corpussearch/internal/storage"
	"corpussearch/internal/vectorstore"
)

func main() {
	target := "all"
	if len(os.Args) > 1 {
		target = os.Args[1]
	}
	switch target {
	case "docs", "chat", "code", "all":
	default:
		fmt.Fprintf(os.Stderr, "usage: %s [docs|chat|code|all]\n", os.Args[0])
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := contextutil.WithLogger(context.Background(), logger)

	// Initialize the run ledger database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	runRepo := storage.NewRunRepo(db)

	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL, cfg.QdrantAPIKey)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}

	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModel, cfg.VectorSize)
	pipeline := indexer.NewPipeline(embedder, vectorStore)
	runner := ingest.NewRunner(pipeline, runRepo)

	corpora, err := buildCorpusConfigs(cfg, target)
	if err != nil {
		log.Fatalf("Failed to build corpus configuration: %v", err)
	}

	failed := false
	for _, cc := range corpora {
		if err := vectorStore.EnsureCollection(ctx, cc.Collection, cfg.VectorSize); err != nil {
			log.Fatalf("Failed to ensure Qdrant collection %s: %v", cc.Collection, err)
		}

		report, err := runner.Run(ctx, cc)
		if err != nil {
			slog.Error("Ingestion run failed", "corpus", string(cc.Type), "error", err)
			failed = true
			continue
		}
		if report.FilesFailed > 0 {
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}

// buildCorpusConfigs resolves the requested target into corpus configs.
func buildCorpusConfigs(cfg *config.Config, target string) ([]ingest.CorpusConfig, error) {
	proseSplitter, err := splitter.NewProse(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		return nil, err
	}
	codeSplitter, err := splitter.NewCode(cfg.CodeChunkSize, cfg.CodeChunkOverlap)
	if err != nil {
		return nil, err
	}

	all := map[string]ingest.CorpusConfig{
		"docs": {
			Type:       normalizer.CorpusProse,
			Path:       cfg.DocsFolderPath,
			Collection: cfg.DocsCollection,
			Splitter:   proseSplitter,
			Extensions: cfg.DocsExtensions,
		},
		"chat": {
			Type:       normalizer.CorpusChat,
			Path:       cfg.ChatFolderPath,
			Collection: cfg.ChatCollection,
			Splitter:   proseSplitter,
			Extensions: []string{".json"},
		},
		"code": {
			Type:        normalizer.CorpusCode,
			Path:        cfg.CodeFolderPath,
			Collection:  cfg.CodeCollection,
			Splitter:    codeSplitter,
			Extensions:  cfg.CodeExtensions,
			MaxFileSize: cfg.CodeMaxFileSize,
			IgnoredDirs: cfg.CodeIgnoredDirs,
		},
	}

	if target == "all" {
		return []ingest.CorpusConfig{all["docs"], all["chat"], all["code"]}, nil
	}
	return []ingest.CorpusConfig{all[target]}, nil
}
