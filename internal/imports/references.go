package imports

import (
	"regexp"

	"bennypowers.dev/sls/internal/symbols"
)

// ReferencePattern matches `// <reference path="...">` directives. The
// path is capture group 1 when double-quoted and group 2 when
// single-quoted, so either quote may appear inside the other.
var ReferencePattern = regexp.MustCompile(`//\s*<reference\s+path=(?:"([^"\n]*)"|'([^'\n]*)')\s*/?>`)

// ScanReferences finds reference directives in source, in source order.
// Paths are returned verbatim; Normalize resolves them.
func ScanReferences(source string) []symbols.Import {
	matches := ReferencePattern.FindAllStringSubmatchIndex(source, -1)
	refs := make([]symbols.Import, 0, len(matches))
	for _, m := range matches {
		start, end := m[2], m[3]
		if start < 0 {
			start, end = m[4], m[5]
		}
		refs = append(refs, symbols.Import{
			Filepath:  source[start:end],
			CSS:       false,
			Dynamic:   false,
			Reference: true,
			Span:      symbols.Span{Start: m[0], End: m[1]},
		})
	}
	return refs
}
