// Package splitter implements recursive character text splitting with a
// separator priority list, greedy re-merging and configurable overlap.
package splitter

import (
	"fmt"
	"strings"
)

// ProseSeparators is the default separator priority for prose documents:
// paragraph break, line break, sentence end, clause, word, character.
var ProseSeparators = []string{"\n\n", "\n", ". ", ", ", " ", ""}

// CodeSeparators is the separator priority for source files. Blank lines
// usually separate declarations, so they are preferred over line breaks.
var CodeSeparators = []string{"\n\n", "\n", ". ", ", ", " ", ""}

// Splitter splits text into overlapping bounded-length chunks.
type Splitter struct {
	chunkSize  int
	overlap    int
	separators []string
}

// New creates a Splitter with the given chunk size, overlap and separator
// priority list. Overlap must be smaller than the chunk size.
func New(chunkSize, overlap int, separators []string) (*Splitter, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if overlap < 0 || overlap >= chunkSize {
		return nil, fmt.Errorf("overlap %d must be in [0, %d)", overlap, chunkSize)
	}
	if len(separators) == 0 {
		separators = ProseSeparators
	}
	return &Splitter{
		chunkSize:  chunkSize,
		overlap:    overlap,
		separators: separators,
	}, nil
}

// NewProse creates a splitter with the prose separator priority.
func NewProse(chunkSize, overlap int) (*Splitter, error) {
	return New(chunkSize, overlap, ProseSeparators)
}

// NewCode creates a splitter with the code separator priority.
func NewCode(chunkSize, overlap int) (*Splitter, error) {
	return New(chunkSize, overlap, CodeSeparators)
}

// Split splits text into chunks of at most chunkSize runes, each chunk
// starting with up to overlap runes repeated from the end of its predecessor.
// The input is trimmed once; empty input yields no chunks and an input that
// already fits yields exactly one chunk.
func (s *Splitter) Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if runeLen(text) <= s.chunkSize {
		return []string{text}
	}

	pieces := s.splitRecursive(text, s.separators)
	return s.merge(pieces)
}

// splitRecursive splits text on the first separator in seps that appears,
// recursing with the remaining separators on any piece still over the chunk
// size. The empty separator splits at rune level as a last resort.
func (s *Splitter) splitRecursive(text string, seps []string) []string {
	if runeLen(text) <= s.chunkSize {
		return []string{text}
	}

	sep := ""
	rest := []string{}
	for i, candidate := range seps {
		if candidate == "" {
			sep = ""
			rest = nil
			break
		}
		if strings.Contains(text, candidate) {
			sep = candidate
			rest = seps[i+1:]
			break
		}
	}

	if sep == "" {
		return splitRunes(text, s.chunkSize)
	}

	var pieces []string
	for _, part := range splitKeepSeparator(text, sep) {
		if runeLen(part) > s.chunkSize {
			pieces = append(pieces, s.splitRecursive(part, rest)...)
		} else {
			pieces = append(pieces, part)
		}
	}
	return pieces
}

// merge greedily accumulates pieces into chunks. When adding a piece would
// exceed the chunk size, the accumulated chunk is emitted and the next chunk
// is seeded with the trailing pieces of the previous one, up to overlap runes.
func (s *Splitter) merge(pieces []string) []string {
	var chunks []string
	var current []string
	curLen := 0

	for _, piece := range pieces {
		pieceLen := runeLen(piece)

		if curLen+pieceLen > s.chunkSize && curLen > 0 {
			chunks = append(chunks, strings.Join(current, ""))

			// Seed the next chunk with trailing pieces, bounded by both the
			// overlap budget and the room the incoming piece needs.
			for len(current) > 0 && (curLen > s.overlap || curLen+pieceLen > s.chunkSize) {
				curLen -= runeLen(current[0])
				current = current[1:]
			}
			current = append([]string{}, current...)
		}

		current = append(current, piece)
		curLen += pieceLen
	}

	if curLen > 0 {
		chunks = append(chunks, strings.Join(current, ""))
	}
	return chunks
}

// splitKeepSeparator splits text on sep, keeping the separator attached to
// the end of the preceding piece so no character is dropped and chunk
// boundaries never fall mid-separator.
func splitKeepSeparator(text, sep string) []string {
	parts := strings.Split(text, sep)
	pieces := make([]string, 0, len(parts))
	for i, part := range parts {
		if i < len(parts)-1 {
			part += sep
		}
		if part != "" {
			pieces = append(pieces, part)
		}
	}
	return pieces
}

// splitRunes splits text into consecutive runs of at most size runes.
func splitRunes(text string, size int) []string {
	runes := []rune(text)
	var pieces []string
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		pieces = append(pieces, string(runes[start:end]))
	}
	return pieces
}

func runeLen(s string) int {
	return len([]rune(s))
}
