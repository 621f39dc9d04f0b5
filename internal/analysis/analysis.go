// Package analysis turns one SCSS document into its symbol table, optionally
// merged with the declarations visible at a position.
package analysis

import (
	"fmt"

	"bennypowers.dev/sls/internal/ast"
	"bennypowers.dev/sls/internal/imports"
	"bennypowers.dev/sls/internal/log"
	"bennypowers.dev/sls/internal/parser/scss"
	"bennypowers.dev/sls/internal/symbols"
)

// Options controls failure handling
type Options struct {
	// ShowErrors propagates syntax failures instead of degrading to an
	// empty symbol table
	ShowErrors bool
}

// Result is the outcome of one Parse call
type Result struct {
	Symbols *symbols.Table `json:"symbols" yaml:"symbols"`
	// Node is the innermost tree node at the requested offset. It is nil
	// for WholeDocument requests.
	Node ast.Node `json:"-" yaml:"-"`
	// Scope holds the declarations the scoped pass appended to Symbols,
	// outermost first. It is empty for WholeDocument requests.
	Scope ast.Scope `json:"-" yaml:"-"`

	root   ast.Node
	offset int
}

// Analyzer runs the extraction pipeline. It holds no mutable state, so one
// Analyzer may serve concurrent Parse calls when its tree parser allows it.
type Analyzer struct {
	trees ast.Parser
}

// New creates an Analyzer that uses trees for offset-scoped requests.
// A nil parser falls back to the lenient scss tree builder.
func New(trees ast.Parser) *Analyzer {
	if trees == nil {
		trees = scss.NewTreeParser()
	}
	return &Analyzer{trees: trees}
}

// Parse extracts the symbols of source, identified by document.
func (a *Analyzer) Parse(source, document string, req Request, opts Options) (*Result, error) {
	if req == nil {
		req = WholeDocument{}
	}

	table, err := scss.Extract(source)
	if err != nil {
		if opts.ShowErrors {
			return nil, err
		}
		log.Debug("Extraction failed for %s, continuing with empty table: %v", document, err)
		table = symbols.NewTable()
	}
	table.Document = document

	table.Imports = append(table.Imports, imports.ScanReferences(source)...)

	result := &Result{Symbols: table}

	switch r := req.(type) {
	case WholeDocument:
	case AtOffset:
		if err := ast.CheckOffset(r.Offset, len(source)); err != nil {
			return nil, err
		}
		root, err := a.trees.Parse(source)
		if err != nil {
			if opts.ShowErrors {
				return nil, fmt.Errorf("failed to parse tree for %s: %w", document, err)
			}
			log.Debug("Tree parse failed for %s, skipping scoped symbols: %v", document, err)
			break
		}
		scope := ast.Resolve(root, r.Offset)
		table.Variables = append(table.Variables, scope.Variables...)
		table.Mixins = append(table.Mixins, scope.Mixins...)
		result.Node = ast.Locate(root, r.Offset)
		result.Scope = scope
		result.root = root
		result.offset = r.Offset
		log.Debug("Scope at %s:%d has %d variables, %d mixins",
			document, r.Offset, len(scope.Variables), len(scope.Mixins))
	default:
		return nil, fmt.Errorf("unsupported request type %T", req)
	}

	table.Imports = imports.Normalize(table.Imports, document)

	return result, nil
}
