package vectorstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryStore is a brute-force in-memory VectorStore using cosine-style dot
// product scoring. It backs tests and local runs without a Qdrant instance.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]*memoryCollection
}

type memoryCollection struct {
	vectorSize int
	points     []Point
}

var _ VectorStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]*memoryCollection)}
}

// Upsert inserts or replaces points by ID.
func (s *MemoryStore) Upsert(_ context.Context, collection string, points []Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.collections[collection]
	if !ok {
		return fmt.Errorf("collection %q does not exist", collection)
	}

	for _, p := range points {
		if len(p.Vec) != col.vectorSize {
			return fmt.Errorf("vector size mismatch: expected %d, got %d", col.vectorSize, len(p.Vec))
		}
		replaced := false
		for i := range col.points {
			if col.points[i].ID == p.ID {
				col.points[i] = p
				replaced = true
				break
			}
		}
		if !replaced {
			col.points = append(col.points, p)
		}
	}
	return nil
}

// Search scores every point by dot product and returns the top k.
func (s *MemoryStore) Search(_ context.Context, collection string, query []float32, k int) ([]SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if k <= 0 {
		return nil, fmt.Errorf("k must be greater than 0")
	}
	col, ok := s.collections[collection]
	if !ok {
		return nil, fmt.Errorf("collection %q does not exist", collection)
	}

	results := make([]SearchResult, 0, len(col.points))
	for _, p := range col.points {
		content, _ := p.Meta["text"].(string)
		results = append(results, SearchResult{
			PointID: p.ID,
			Score:   dot(p.Vec, query),
			Content: content,
			Meta:    p.Meta,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// EnsureCollection creates the collection or validates its vector size.
func (s *MemoryStore) EnsureCollection(_ context.Context, collection string, vectorSize int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if col, ok := s.collections[collection]; ok {
		if col.vectorSize != vectorSize {
			return fmt.Errorf("collection vector size mismatch: expected %d, got %d", vectorSize, col.vectorSize)
		}
		return nil
	}
	s.collections[collection] = &memoryCollection{vectorSize: vectorSize}
	return nil
}

// CollectionExists checks if a collection exists.
func (s *MemoryStore) CollectionExists(_ context.Context, collection string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.collections[collection]
	return ok, nil
}

// Count returns the number of points in a collection.
func (s *MemoryStore) Count(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if col, ok := s.collections[collection]; ok {
		return len(col.points)
	}
	return 0
}

// Points returns a copy of the points in a collection, in insertion order.
func (s *MemoryStore) Points(collection string) []Point {
	s.mu.RLock()
	defer s.mu.RUnlock()
	col, ok := s.collections[collection]
	if !ok {
		return nil
	}
	points := make([]Point, len(col.points))
	copy(points, col.points)
	return points
}

func dot(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float32
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
