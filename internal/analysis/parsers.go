package analysis

import (
	"fmt"

	"bennypowers.dev/sls/internal/ast"
	"bennypowers.dev/sls/internal/config"
	"bennypowers.dev/sls/internal/parser/scss"
	"bennypowers.dev/sls/internal/parser/treesitter"
)

// TreeParser returns the tree parser registered under name
func TreeParser(name string) (ast.Parser, error) {
	switch name {
	case config.ParserSCSS, "":
		return scss.NewTreeParser(), nil
	case config.ParserTreeSitter:
		return treesitter.NewParser(), nil
	}
	return nil, fmt.Errorf("%w: unknown parser %q", config.ErrInvalidConfig, name)
}
