package normalizer

import (
	"context"
	"path/filepath"

	"corpussearch/internal/contextutil"
)

// Source normalizes source code files. The text is the raw file content
// unmodified; the base metadata enumerates the declarations found in it.
type Source struct{}

// NewSource creates a source code normalizer.
func NewSource() *Source {
	return &Source{}
}

// Type returns the corpus type this normalizer handles.
func (s *Source) Type() CorpusType {
	return CorpusCode
}

// Normalize returns one block whose text is the raw file content and whose
// metadata carries the declared symbols. A structural scan failure yields
// empty symbol lists rather than an error, since partial metadata is
// preferred over aborting ingestion.
func (s *Source) Normalize(ctx context.Context, file RawFile) ([]Block, error) {
	logger := contextutil.LoggerFromContext(ctx)

	structural := ExtractSourceMetadata(file.Path, string(file.Content))
	if structural.Empty() {
		logger.DebugContext(ctx, "no declarations found in source file", "file", file.Path)
	}

	meta := map[string]any{
		"classes":       structural.Classes,
		"functions":     structural.Functions,
		"interfaces":    structural.Interfaces,
		"types":         structural.Types,
		"exports":       structural.Exports,
		"fileExtension": filepath.Ext(file.Path),
		"directoryPath": filepath.Dir(file.Path),
	}

	return []Block{{Text: string(file.Content), Meta: meta}}, nil
}
