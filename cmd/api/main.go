package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"corpussearch/internal/config"
	"corpussearch/internal/http"
	"corpussearch/internal/llm"
	"corpussearch/internal/query"
	"corpussearch/internal/ratelimit"
	"corpussearch/internal/vectorstore"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
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
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	ctx := context.Background()

	// Initialize Qdrant vector store
	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL, cfg.QdrantAPIKey)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}

	// Ensure all corpus collections exist with the configured vector size
	collections := []string{cfg.DocsCollection, cfg.ChatCollection, cfg.CodeCollection}
	for _, collection := range collections {
		if err := vectorStore.EnsureCollection(ctx, collection, cfg.VectorSize); err != nil {
			log.Fatalf("Failed to ensure Qdrant collection %s: %v", collection, err)
		}
	}
	slog.Info("Qdrant collections ready", "collections", collections, "vector_size", cfg.VectorSize)

	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModel, cfg.VectorSize)

	queryService := query.NewService(embedder, vectorStore, map[string]string{
		"docs": cfg.DocsCollection,
		"chat": cfg.ChatCollection,
		"code": cfg.CodeCollection,
	})
	slog.Info("Query service initialized", "embedding_model", cfg.EmbeddingModel)

	limiter := ratelimit.New(cfg.RateMaxRequests, cfg.RateWindow)

	deps := &http.Deps{
		QueryService: queryService,
		VectorStore:  vectorStore,
		Collections:  collections,
		Limiter:      limiter,
	}
	router := http.NewRouter(deps)

	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
