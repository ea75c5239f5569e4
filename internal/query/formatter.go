package query

import (
	"regexp"
	"strings"
)

// indentSize is the number of spaces per brace depth level.
const indentSize = 2

var (
	semiBeforeBraceRe = regexp.MustCompile(`\s*;\s*}`)
	openBraceRe       = regexp.MustCompile(`\{\s*`)
	braceSemiRe       = regexp.MustCompile(`}\s*;`)
	declKeywordRe     = regexp.MustCompile(`(function\s+\w+|const\s+|let\s+)`)
	blankRunRe        = regexp.MustCompile(`\n\s*\n\s*\n`)
	leadingNewlinesRe = regexp.MustCompile(`^\n+`)
)

// Format normalizes statement and block punctuation spacing in code-shaped
// content and re-indents it by brace depth. It is a best-effort cosmetic
// transform, not a parser: content that never was source code may come out
// oddly formatted.
func Format(content string) string {
	formatted := strings.TrimSpace(content)

	formatted = semiBeforeBraceRe.ReplaceAllString(formatted, ";\n}")
	formatted = openBraceRe.ReplaceAllString(formatted, "{\n  ")
	formatted = braceSemiRe.ReplaceAllString(formatted, "\n};")
	formatted = breakAfterSemicolons(formatted)
	formatted = declKeywordRe.ReplaceAllString(formatted, "\n$1")
	formatted = blankRunRe.ReplaceAllString(formatted, "\n\n")
	formatted = leadingNewlinesRe.ReplaceAllString(formatted, "")

	return reindent(formatted)
}

// breakAfterSemicolons inserts a line break after every statement
// terminator that is not immediately followed (modulo whitespace) by a
// closing delimiter or the end of the content.
func breakAfterSemicolons(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		b.WriteByte(c)
		if c != ';' {
			continue
		}

		j := i + 1
		for j < len(s) && (s[j] == ' ' || s[j] == '\t' || s[j] == '\n' || s[j] == '\r') {
			j++
		}
		if j < len(s) && s[j] != ')' && s[j] != '}' {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// reindent re-indents line by line using a brace depth counter: a line
// containing a closing brace is emitted at the decremented depth, a line
// containing an opening brace raises the depth for the lines after it.
func reindent(s string) string {
	lines := strings.Split(s, "\n")
	depth := 0

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			lines[i] = ""
			continue
		}
		if strings.Contains(trimmed, "}") {
			depth--
			if depth < 0 {
				depth = 0
			}
		}
		lines[i] = strings.Repeat(" ", depth*indentSize) + trimmed
		if strings.Contains(trimmed, "{") {
			depth++
		}
	}
	return strings.Join(lines, "\n")
}
