package lifecycle

import (
	"bennypowers.dev/sls/internal/log"
	"bennypowers.dev/sls/internal/parser/html"
	"bennypowers.dev/sls/internal/parser/treesitter"
	"bennypowers.dev/sls/lsp/types"
)

// Shutdown handles the LSP shutdown request
func Shutdown(req *types.RequestContext) error {
	log.Info("Server shutting down")

	treesitter.ClosePool()
	html.ClosePool()
	return nil
}
