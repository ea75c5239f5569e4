// Package query implements the search path: validate, embed, search the
// vector store and post-process result content.
package query

import (
	"context"
	"strings"

	"corpussearch/internal/contextutil"
	"corpussearch/internal/llm"
	"corpussearch/internal/service"
	"corpussearch/internal/vectorstore"
)

// DefaultResults is the number of results returned when the caller does not
// ask for a specific count.
const DefaultResults = 10

// SearchResult is one formatted query result.
type SearchResult struct {
	Score   float32 `json:"score"`
	Content string  `json:"content"`
}

// Service resolves corpus names to collections and serves similarity
// searches against them.
type Service struct {
	embedder    llm.Embedder
	vectorStore vectorstore.VectorStore
	collections map[string]string // corpus name -> collection name
}

// NewService creates a query service. collections maps logical corpus names
// (docs, chat, code) to physical collection names.
func NewService(embedder llm.Embedder, vectorStore vectorstore.VectorStore, collections map[string]string) *Service {
	return &Service{
		embedder:    embedder,
		vectorStore: vectorStore,
		collections: collections,
	}
}

// Corpora returns the known logical corpus names.
func (s *Service) Corpora() []string {
	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	return names
}

// Search embeds the query text, searches the corpus's collection for the
// top k candidates and returns formatted results. An empty query or an
// unknown corpus is rejected before any network call; embedding and store
// failures propagate with their upstream detail preserved.
func (s *Service) Search(ctx context.Context, corpus, queryText string, k int) ([]SearchResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(queryText) == "" {
		return nil, &service.ValidationError{Field: "query", Message: "must not be empty"}
	}
	collection, ok := s.collections[corpus]
	if !ok {
		return nil, &service.ValidationError{Field: "collection", Message: "unknown corpus " + corpus}
	}
	if k <= 0 {
		k = DefaultResults
	}

	vector, err := s.embedder.EmbedQuery(ctx, queryText)
	if err != nil {
		return nil, service.WrapError(err, "failed to embed query")
	}

	raw, err := s.vectorStore.Search(ctx, collection, vector, k)
	if err != nil {
		return nil, service.WrapError(err, "failed to search collection")
	}

	results := make([]SearchResult, 0, len(raw))
	for _, r := range raw {
		results = append(results, SearchResult{
			Score:   r.Score,
			Content: Format(r.Content),
		})
	}

	logger.InfoContext(ctx, "query served", "corpus", corpus, "k", k, "results", len(results))
	return results, nil
}
