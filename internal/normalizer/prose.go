package normalizer

import (
	"context"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// Prose normalizes prose documents. A leading YAML front-matter block is
// parsed into the base metadata; the remainder of the file becomes the text.
type Prose struct {
	parser goldmark.Markdown
}

// NewProse creates a prose normalizer.
func NewProse() *Prose {
	return &Prose{
		parser: goldmark.New(),
	}
}

// Type returns the corpus type this normalizer handles.
func (p *Prose) Type() CorpusType {
	return CorpusProse
}

// Normalize splits front-matter from body and returns a single block.
// Absent or malformed front-matter yields empty metadata, never an error.
// When the front-matter has no title, one is derived from the first heading
// of the body, falling back to the file name.
func (p *Prose) Normalize(_ context.Context, file RawFile) ([]Block, error) {
	meta, body := splitFrontMatter(string(file.Content))

	if _, ok := meta["title"]; !ok {
		if title := p.extractTitle([]byte(body), file.Path); title != "" {
			meta["title"] = title
		}
	}

	return []Block{{Text: body, Meta: meta}}, nil
}

// splitFrontMatter parses a leading "---" fenced YAML block. It returns the
// parsed mapping and the remaining content. Malformed YAML or a missing
// closing fence leaves the content untouched with empty metadata.
func splitFrontMatter(content string) (map[string]any, string) {
	meta := make(map[string]any)

	rest, ok := strings.CutPrefix(content, "---\n")
	if !ok {
		if rest, ok = strings.CutPrefix(content, "---\r\n"); !ok {
			return meta, content
		}
	}

	end := strings.Index(rest, "\n---")
	if end < 0 {
		return meta, content
	}
	header := rest[:end]

	body := rest[end+len("\n---"):]
	// Drop the remainder of the closing fence line
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		body = body[nl+1:]
	} else {
		body = ""
	}

	var parsed map[string]any
	if err := yaml.Unmarshal([]byte(header), &parsed); err != nil || parsed == nil {
		return make(map[string]any), content
	}

	return parsed, body
}

// extractTitle returns the first level-1 heading, then the first level-2
// heading, then a title derived from the file name.
func (p *Prose) extractTitle(body []byte, path string) string {
	var firstH1, firstH2 string

	doc := p.parser.Parser().Parse(gmtext.NewReader(body))
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if heading, ok := n.(*ast.Heading); ok {
			text := headingText(heading, body)
			if heading.Level == 1 && firstH1 == "" {
				firstH1 = text
			} else if heading.Level == 2 && firstH2 == "" && firstH1 == "" {
				firstH2 = text
			}
			if firstH1 != "" {
				return ast.WalkStop, nil
			}
		}
		return ast.WalkContinue, nil
	})

	if firstH1 != "" {
		return firstH1
	}
	if firstH2 != "" {
		return firstH2
	}
	return titleFromFilename(path)
}

// headingText extracts the plain text of a heading node.
func headingText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(source))
		case *ast.String:
			b.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// titleFromFilename derives a title from the file name by dropping the
// extension and capitalizing words.
func titleFromFilename(path string) string {
	name := filepath.Base(path)
	if ext := filepath.Ext(name); ext != "" {
		name = name[:len(name)-len(ext)]
	}
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)

	words := strings.Fields(name)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
