package treesitter

import "bennypowers.dev/sls/internal/ast"

// Node is a converted tree-sitter node
type Node struct {
	kind     ast.Kind
	start    int
	end      int
	name     string
	value    string
	children []ast.Node
}

var _ ast.Node = (*Node)(nil)

func (n *Node) Kind() ast.Kind       { return n.kind }
func (n *Node) Start() int           { return n.start }
func (n *Node) End() int             { return n.end }
func (n *Node) Children() []ast.Node { return n.children }
func (n *Node) Name() string         { return n.name }
func (n *Node) Value() string        { return n.value }
