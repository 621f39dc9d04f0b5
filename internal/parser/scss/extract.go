package scss

import (
	"bennypowers.dev/sls/internal/ast"
	"bennypowers.dev/sls/internal/symbols"
)

// Extract collects every variable, mixin, function and import declared in
// source, at any depth, in document order. The returned table has no
// Document set and no reference-comment imports.
func Extract(source string) (*symbols.Table, error) {
	root, err := Build(source, Strict)
	if err != nil {
		return nil, err
	}

	table := symbols.NewTable()
	ast.Walk(root, func(n ast.Node) bool {
		switch n.Kind() {
		case ast.KindVariable:
			table.Variables = append(table.Variables, ast.ToVariable(n))
		case ast.KindMixin:
			table.Mixins = append(table.Mixins, ast.ToMixin(n))
		case ast.KindFunction:
			table.Functions = append(table.Functions, ast.ToFunction(n))
		case ast.KindImport:
			imp := symbols.Import{Filepath: n.Name(), Span: ast.SpanOf(n)}
			if node, ok := n.(*Node); ok {
				imp.CSS = node.CSS()
				imp.Dynamic = node.Dynamic()
			}
			table.Imports = append(table.Imports, imp)
		}
		return true
	})
	return table, nil
}

// TreeParser is the default ast.Parser. It builds the same tree Extract
// walks, but leniently, so a half-typed document still yields a tree for
// position queries.
type TreeParser struct{}

var _ ast.Parser = (*TreeParser)(nil)

// NewTreeParser creates a new SCSS tree parser
func NewTreeParser() *TreeParser {
	return &TreeParser{}
}

// Parse builds a lenient tree for source
func (p *TreeParser) Parse(source string) (ast.Node, error) {
	root, err := Build(source, Lenient)
	if err != nil {
		return nil, err
	}
	return root, nil
}
