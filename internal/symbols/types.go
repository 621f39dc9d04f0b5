package symbols

import "strings"

// Span is a half-open byte range [Start, End) within a document's source text
type Span struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Contains reports whether offset falls inside the span (inclusive start, exclusive end)
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Variable is a `$name: value` declaration, or a mixin/function parameter
type Variable struct {
	// Name without the leading "$"
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
	Span  Span   `json:"span" yaml:"span"`

	// Mixin is the owning mixin or function when the variable is a parameter
	Mixin string `json:"mixin,omitempty" yaml:"mixin,omitempty"`
}

// Mixin is an `@mixin name(params) { ... }` declaration
type Mixin struct {
	Name       string     `json:"name" yaml:"name"`
	Parameters []Variable `json:"parameters" yaml:"parameters"`
	Span       Span       `json:"span" yaml:"span"`
}

// Function is an `@function name(params) { ... }` declaration
type Function struct {
	Name       string     `json:"name" yaml:"name"`
	Parameters []Variable `json:"parameters" yaml:"parameters"`
	Span       Span       `json:"span" yaml:"span"`
}

// Import is one target of an @import/@use/@forward statement or a reference comment
type Import struct {
	Filepath string `json:"filepath" yaml:"filepath"`

	// CSS is true when the target is a plain CSS resource (url(), .css, remote)
	CSS bool `json:"css" yaml:"css"`

	// Dynamic is true when the path is not a static string literal
	Dynamic bool `json:"dynamic" yaml:"dynamic"`

	// Reference is true when synthesized from a `// <reference path>` comment
	Reference bool `json:"reference" yaml:"reference"`

	Span Span `json:"span" yaml:"span"`
}

// Table is the symbol table of a single document.
// All four sequences keep declaration order.
type Table struct {
	Document  string     `json:"document" yaml:"document"`
	Variables []Variable `json:"variables" yaml:"variables"`
	Mixins    []Mixin    `json:"mixins" yaml:"mixins"`
	Functions []Function `json:"functions" yaml:"functions"`
	Imports   []Import   `json:"imports" yaml:"imports"`
}

// NewTable returns a table with empty, non-nil sequences
func NewTable() *Table {
	return &Table{
		Variables: []Variable{},
		Mixins:    []Mixin{},
		Functions: []Function{},
		Imports:   []Import{},
	}
}

// IsEmpty reports whether the table holds no symbols of any kind
func (t *Table) IsEmpty() bool {
	return len(t.Variables) == 0 && len(t.Mixins) == 0 && len(t.Functions) == 0 && len(t.Imports) == 0
}

// LookupVariable returns the last declaration of the named variable, if any.
// Later declarations shadow earlier ones.
func (t *Table) LookupVariable(name string) (Variable, bool) {
	for i := len(t.Variables) - 1; i >= 0; i-- {
		if t.Variables[i].Name == name {
			return t.Variables[i], true
		}
	}
	return Variable{}, false
}

// LookupMixin returns the last declaration of the named mixin, if any
func (t *Table) LookupMixin(name string) (Mixin, bool) {
	for i := len(t.Mixins) - 1; i >= 0; i-- {
		if t.Mixins[i].Name == name {
			return t.Mixins[i], true
		}
	}
	return Mixin{}, false
}

// LookupFunction returns the last declaration of the named function, if any
func (t *Table) LookupFunction(name string) (Function, bool) {
	for i := len(t.Functions) - 1; i >= 0; i-- {
		if t.Functions[i].Name == name {
			return t.Functions[i], true
		}
	}
	return Function{}, false
}

// Signature renders the mixin as `name($a, $b: default)`
func (m Mixin) Signature() string {
	return signature(m.Name, m.Parameters)
}

// Signature renders the function as `name($a, $b: default)`
func (f Function) Signature() string {
	return signature(f.Name, f.Parameters)
}

func signature(name string, params []Variable) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	for i, p := range params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('$')
		b.WriteString(p.Name)
		if p.Value != "" {
			b.WriteString(": ")
			b.WriteString(p.Value)
		}
	}
	b.WriteByte(')')
	return b.String()
}
