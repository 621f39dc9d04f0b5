package lifecycle

import (
	"bennypowers.dev/sls/internal/log"
	"bennypowers.dev/sls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// SetTrace handles the $/setTrace notification. A verbose trace turns on
// debug logging; any other value returns to the configured logLevel.
func SetTrace(req *types.RequestContext, params *protocol.SetTraceParams) error {
	level, ok := log.ParseLevel(req.Server.GetConfig().LogLevel)
	if !ok {
		level = log.LevelInfo
	}
	if params.Value == protocol.TraceValueVerbose {
		level = log.LevelDebug
	}
	log.SetLevel(level)
	log.Info("Trace set to %s, logging at %s", params.Value, level)
	return nil
}
