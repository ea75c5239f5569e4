// Command mcp serves the corpus search tools over MCP stdio.
//
// Logs go to stderr so stdout stays clean for the MCP transport.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"corpussearch/internal/config"
	"corpussearch/internal/llm"
	"corpussearch/internal/mcp"
	"corpussearch/internal/query"
	"corpussearch/internal/vectorstore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))

	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL, cfg.QdrantAPIKey)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}

	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModel, cfg.VectorSize)

	queryService := query.NewService(embedder, vectorStore, map[string]string{
		"docs": cfg.DocsCollection,
		"chat": cfg.ChatCollection,
		"code": cfg.CodeCollection,
	})

	server, err := mcp.NewServer(queryService)
	if err != nil {
		log.Fatalf("Failed to create MCP server: %v", err)
	}

	slog.Info("Starting MCP server on stdio")
	if err := server.Run(context.Background()); err != nil {
		log.Fatalf("MCP server exited: %v", err)
	}
}
