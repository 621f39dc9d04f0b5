package helpers

import (
	"regexp"
	"strings"

	"bennypowers.dev/sls/internal/symbols"
)

// ReferenceKind says what an identifier under the cursor names
type ReferenceKind int

const (
	ReferenceVariable ReferenceKind = iota + 1
	ReferenceMixin
	ReferenceFunction
)

// Reference is an identifier found at a cursor position
type Reference struct {
	Kind ReferenceKind
	// Name without the leading "$"
	Name string
	// Span covers the identifier, including "$" for variables
	Span symbols.Span
}

// ReferenceAt finds the variable, @include target or function call at
// offset in text. A cursor on either edge of the identifier counts.
func ReferenceAt(text string, offset int) (Reference, bool) {
	if offset < 0 || offset > len(text) {
		return Reference{}, false
	}
	if offset < len(text) && text[offset] == '$' {
		offset++
	}

	start := offset
	for start > 0 && isIdentByte(text[start-1]) {
		start--
	}
	end := offset
	for end < len(text) && isIdentByte(text[end]) {
		end++
	}
	if start == end {
		return Reference{}, false
	}
	name := text[start:end]

	switch {
	case start > 0 && text[start-1] == '$':
		return Reference{
			Kind: ReferenceVariable,
			Name: name,
			Span: symbols.Span{Start: start - 1, End: end},
		}, true
	case isIncludeTarget(text[:start]):
		return Reference{Kind: ReferenceMixin, Name: name, Span: symbols.Span{Start: start, End: end}}, true
	case end < len(text) && text[end] == '(':
		return Reference{Kind: ReferenceFunction, Name: name, Span: symbols.Span{Start: start, End: end}}, true
	}
	return Reference{}, false
}

func isIncludeTarget(prefix string) bool {
	trimmed := strings.TrimRight(prefix, " \t\r\n")
	return len(trimmed) < len(prefix) && strings.HasSuffix(trimmed, "@include")
}

func isIdentByte(c byte) bool {
	return c == '-' || c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c >= 0x80
}

// Occurrence is one appearance of a symbol name in source text
type Occurrence struct {
	// Span covers the name, including "$" for variables
	Span symbols.Span
	// Declaration marks `$name:`, `@mixin name` and `@function name`
	Declaration bool
}

// Occurrences lists every appearance of the symbol ref names in text, in
// source order. Matching is lexical: shadowed declarations of the same
// name are included.
func Occurrences(text string, ref Reference) []Occurrence {
	var pattern *regexp.Regexp
	name := regexp.QuoteMeta(ref.Name)
	switch ref.Kind {
	case ReferenceVariable:
		pattern = regexp.MustCompile(`\$` + name)
	case ReferenceMixin:
		pattern = regexp.MustCompile(`@(mixin|include)\s+` + name)
	case ReferenceFunction:
		pattern = regexp.MustCompile(`(@function\s+)?` + name + `\s*\(`)
	default:
		return nil
	}

	var out []Occurrence
	for _, m := range pattern.FindAllStringSubmatchIndex(text, -1) {
		start, end := m[0], m[0]+len(ref.Name)
		switch ref.Kind {
		case ReferenceVariable:
			end = m[1]
		case ReferenceMixin:
			start = m[1] - len(ref.Name)
			end = m[1]
		case ReferenceFunction:
			if m[2] >= 0 {
				start = m[3]
			}
			end = start + len(ref.Name)
		}
		// Reject partial identifiers on either side
		if end < len(text) && isIdentByte(text[end]) {
			continue
		}
		if ref.Kind == ReferenceFunction && start > 0 && (isIdentByte(text[start-1]) || text[start-1] == '$' || text[start-1] == '@') {
			continue
		}

		occ := Occurrence{Span: symbols.Span{Start: start, End: end}}
		switch ref.Kind {
		case ReferenceVariable:
			rest := strings.TrimLeft(text[end:], " \t")
			occ.Declaration = strings.HasPrefix(rest, ":")
		case ReferenceMixin:
			occ.Declaration = text[m[2]:m[3]] == "mixin"
		case ReferenceFunction:
			occ.Declaration = m[2] >= 0
		}
		out = append(out, occ)
	}
	return out
}

// Lookup finds declarations by name. *analysis.Result answers with what is
// visible at its offset, *symbols.Table with the last declaration anywhere.
type Lookup interface {
	LookupVariable(name string) (symbols.Variable, bool)
	LookupMixin(name string) (symbols.Mixin, bool)
	LookupFunction(name string) (symbols.Function, bool)
}

// Declaration finds where the symbol ref names is declared
func Declaration(table Lookup, ref Reference) (symbols.Span, bool) {
	switch ref.Kind {
	case ReferenceVariable:
		if v, ok := table.LookupVariable(ref.Name); ok {
			return v.Span, true
		}
	case ReferenceMixin:
		if m, ok := table.LookupMixin(ref.Name); ok {
			return m.Span, true
		}
	case ReferenceFunction:
		if f, ok := table.LookupFunction(ref.Name); ok {
			return f.Span, true
		}
	}
	return symbols.Span{}, false
}
