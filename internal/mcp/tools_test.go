package mcp

import (
	"strings"
	"testing"

	"corpussearch/internal/query"
)

func TestNewServer_RequiresService(t *testing.T) {
	if _, err := NewServer(nil); err == nil {
		t.Error("NewServer(nil) expected error")
	}
}

func TestNewServer(t *testing.T) {
	svc := query.NewService(nil, nil, map[string]string{"docs": "docs_documents"})
	s, err := NewServer(svc)
	if err != nil {
		t.Fatalf("NewServer() error: %v", err)
	}
	if s == nil || s.server == nil {
		t.Fatal("NewServer() returned incomplete server")
	}
}

func TestRenderResults(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		if got := renderResults(nil); got != "No results found." {
			t.Errorf("renderResults(nil) = %q", got)
		}
	})

	t.Run("scored blocks", func(t *testing.T) {
		got := renderResults([]query.SearchResult{
			{Score: 0.92, Content: "First result."},
			{Score: 0.5, Content: "Second result."},
		})

		blocks := strings.Split(got, "\n\n")
		if len(blocks) != 2 {
			t.Fatalf("got %d blocks, want 2: %q", len(blocks), got)
		}
		if blocks[0] != "SIMILARITY: 0.92 First result." {
			t.Errorf("block 0 = %q", blocks[0])
		}
		if !strings.HasPrefix(blocks[1], "SIMILARITY: 0.5 ") {
			t.Errorf("block 1 = %q", blocks[1])
		}
	})
}
