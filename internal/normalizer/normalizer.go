// Package normalizer transforms raw corpus files into a canonical
// (text, metadata) shape before chunking. One variant exists per corpus
// type: prose documents, chat transcript exports and source files.
package normalizer

import (
	"context"
	"fmt"
)

// CorpusType identifies the corpus a file belongs to.
type CorpusType string

const (
	// CorpusProse is prose documentation with optional front-matter.
	CorpusProse CorpusType = "prose"
	// CorpusChat is a chat transcript export (guild/channel/messages JSON).
	CorpusChat CorpusType = "chat"
	// CorpusCode is a source code file.
	CorpusCode CorpusType = "code"
)

// RawFile is a file handed to a normalizer.
type RawFile struct {
	Path    string
	Content []byte
}

// Block is a normalized unit of text with its base metadata. A prose or
// source file yields one block; a chat export yields one block per
// conversation day.
type Block struct {
	Text string
	Meta map[string]any
}

// Normalizer converts a raw file into normalized blocks.
type Normalizer interface {
	// Type returns the corpus type this normalizer handles.
	Type() CorpusType
	// Normalize converts the raw file into one or more blocks. A returned
	// error means the whole file is skipped; it never aborts the batch.
	Normalize(ctx context.Context, file RawFile) ([]Block, error)
}

// ForCorpus returns the normalizer for the given corpus type.
func ForCorpus(t CorpusType) (Normalizer, error) {
	switch t {
	case CorpusProse:
		return NewProse(), nil
	case CorpusChat:
		return NewChat(), nil
	case CorpusCode:
		return NewSource(), nil
	}
	return nil, fmt.Errorf("unknown corpus type %q", t)
}
