package lifecycle

import (
	"bennypowers.dev/sls/internal/log"
	"bennypowers.dev/sls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Initialized handles the LSP initialized notification
func Initialized(req *types.RequestContext, params *protocol.InitializedParams) error {
	log.Info("Server initialized")

	// Keep the client context for log messages sent outside a request
	req.Server.SetGLSPContext(req.GLSP)
	return nil
}
