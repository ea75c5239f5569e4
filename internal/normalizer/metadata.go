package normalizer

import (
	"regexp"
	"strings"
)

// SourceMetadata lists the declarations found in a source file.
type SourceMetadata struct {
	Classes    []string
	Functions  []string
	Interfaces []string
	Types      []string
	Exports    []string
}

// Empty reports whether no declarations were found.
func (m SourceMetadata) Empty() bool {
	return len(m.Classes) == 0 && len(m.Functions) == 0 &&
		len(m.Interfaces) == 0 && len(m.Types) == 0 && len(m.Exports) == 0
}

var (
	classRe     = regexp.MustCompile(`(?m)^\s*(?:export\s+)?(?:default\s+)?(?:abstract\s+)?class\s+(\w+)`)
	functionRe  = regexp.MustCompile(`(?m)^\s*(?:export\s+)?(?:default\s+)?(?:async\s+)?function\s*\*?\s*(\w+)`)
	interfaceRe = regexp.MustCompile(`(?m)^\s*(?:export\s+)?interface\s+(\w+)`)
	typeAliasRe = regexp.MustCompile(`(?m)^\s*(?:export\s+)?type\s+(\w+)\s*=`)
	exportsRe   = regexp.MustCompile(`(?m)^\s*export\s*\{([^}]*)\}`)

	// importRe matches "import ... from '<module>'" and bare
	// "import '<module>'" statement shapes. Multi-line or syntactically
	// unusual import forms may be missed; this is a documented limitation
	// of the lexical scan, not something callers should rely on being
	// complete.
	importRe = regexp.MustCompile(`import\s+(?:[^'"]+\s+from\s+)?(?:'([^']+)'|"([^"]+)")`)
)

// ExtractSourceMetadata scans a source file for top-level declarations:
// classes, functions, interfaces, type aliases and named exports. The scan
// is lexical, not a real parse; content it cannot interpret simply yields
// fewer symbols.
func ExtractSourceMetadata(_ string, content string) SourceMetadata {
	meta := SourceMetadata{
		Classes:    matchNames(classRe, content),
		Functions:  matchNames(functionRe, content),
		Interfaces: matchNames(interfaceRe, content),
		Types:      matchNames(typeAliasRe, content),
	}

	for _, m := range exportsRe.FindAllStringSubmatch(content, -1) {
		for _, name := range strings.Split(m[1], ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			// "foo as bar" exports the alias
			if _, alias, ok := strings.Cut(name, " as "); ok {
				name = strings.TrimSpace(alias)
			}
			meta.Exports = append(meta.Exports, name)
		}
	}

	return meta
}

// ExtractImports returns the modules referenced by import statements whose
// text appears inside the given chunk. Imports split across chunk
// boundaries are not matched.
func ExtractImports(chunk string) []string {
	var imports []string
	for _, m := range importRe.FindAllStringSubmatch(chunk, -1) {
		if m[1] != "" {
			imports = append(imports, m[1])
		} else if m[2] != "" {
			imports = append(imports, m[2])
		}
	}
	return imports
}

func matchNames(re *regexp.Regexp, content string) []string {
	var names []string
	for _, m := range re.FindAllStringSubmatch(content, -1) {
		if m[1] != "" {
			names = append(names, m[1])
		}
	}
	return names
}
