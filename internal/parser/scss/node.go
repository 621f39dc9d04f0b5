package scss

import "bennypowers.dev/sls/internal/ast"

// Node is the tree element produced by Build
type Node struct {
	kind     ast.Kind
	start    int
	end      int
	name     string
	value    string
	children []ast.Node

	// import targets only
	css     bool
	dynamic bool
}

var _ ast.Node = (*Node)(nil)

func (n *Node) Kind() ast.Kind       { return n.kind }
func (n *Node) Start() int           { return n.start }
func (n *Node) End() int             { return n.end }
func (n *Node) Children() []ast.Node { return n.children }
func (n *Node) Name() string         { return n.name }
func (n *Node) Value() string        { return n.value }

// CSS reports whether an import node targets a plain CSS resource
func (n *Node) CSS() bool { return n.css }

// Dynamic reports whether an import node's path is not a static string
func (n *Node) Dynamic() bool { return n.dynamic }

func (n *Node) add(children ...*Node) {
	for _, child := range children {
		n.children = append(n.children, child)
	}
}
