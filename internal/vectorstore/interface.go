package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks corpussearch/internal/vectorstore VectorStore

import "context"

// Point represents a vector point with metadata.
type Point struct {
	ID   string
	Vec  []float32
	Meta map[string]any
}

// SearchResult represents a search result from vector search. Score is the
// store's similarity measure and is treated as opaque: it orders results
// within one search but is not comparable across store instances.
type SearchResult struct {
	PointID string
	Score   float32
	Content string
	Meta    map[string]any
}

// VectorStore defines the interface for vector storage operations.
type VectorStore interface {
	// Upsert inserts or updates points in the collection.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Search performs a similarity search returning the top k results.
	Search(ctx context.Context, collection string, query []float32, k int) ([]SearchResult, error)

	// EnsureCollection creates the collection with the given vector size if
	// it does not exist, and validates the size if it does.
	EnsureCollection(ctx context.Context, collection string, vectorSize int) error

	// CollectionExists checks if a collection exists.
	CollectionExists(ctx context.Context, collection string) (bool, error)
}
