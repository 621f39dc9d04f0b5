// Package ast is the tree abstraction the symbol core works against.
//
// Parsers (the built-in SCSS tree builder, the tree-sitter adapter) produce
// values satisfying Node; the locator and scope resolver never see a
// parser's concrete node types.
package ast

import "fmt"

// Kind tags what a node declares or opens
type Kind int

const (
	KindOther Kind = iota
	KindStylesheet
	KindBlock
	KindRule
	KindAtRule
	KindDeclaration
	KindVariable
	KindMixin
	KindFunction
	KindParameter
	KindInclude
	KindImport
)

var kindNames = [...]string{
	KindOther:       "other",
	KindStylesheet:  "stylesheet",
	KindBlock:       "block",
	KindRule:        "rule",
	KindAtRule:      "at-rule",
	KindDeclaration: "declaration",
	KindVariable:    "variable",
	KindMixin:       "mixin",
	KindFunction:    "function",
	KindParameter:   "parameter",
	KindInclude:     "include",
	KindImport:      "import",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText lets kinds serialize by name in JSON and YAML output
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Node is one element of a parsed stylesheet.
// Start and End are byte offsets, End exclusive.
type Node interface {
	Kind() Kind
	Start() int
	End() int
	Children() []Node

	// Name is the declared name for variables, parameters, mixins,
	// functions and includes (without "$" or "@" sigils), the selector for
	// rules, the keyword for at-rules and the raw path for imports.
	Name() string

	// Value is the declared value for variables and parameters; empty otherwise.
	Value() string
}

// Parser turns source text into a tree. Implementations must tolerate
// incomplete input and cover the whole source with the root node.
type Parser interface {
	Parse(source string) (Node, error)
}

// ParserFunc adapts a plain function to the Parser interface
type ParserFunc func(source string) (Node, error)

// Parse calls f(source)
func (f ParserFunc) Parse(source string) (Node, error) {
	return f(source)
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the node's children.
func Walk(n Node, fn func(Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, child := range n.Children() {
		Walk(child, fn)
	}
}
