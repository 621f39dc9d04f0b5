package workspace

import (
	"fmt"

	"bennypowers.dev/sls/internal/config"
	"bennypowers.dev/sls/internal/log"
	"bennypowers.dev/sls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DidChangeConfiguration handles the workspace/didChangeConfiguration
// notification. Settings under the scssLanguageServer key overlay the
// current configuration; invalid settings are reported and ignored.
func DidChangeConfiguration(req *types.RequestContext, params *protocol.DidChangeConfigurationParams) error {
	log.Info("Configuration changed")

	cfg, err := parseConfiguration(req.Server.GetConfig(), params.Settings)
	if err != nil {
		err = fmt.Errorf("ignoring configuration: %w", err)
		req.AddWarning(err)
		ShowMessage(req.Server.GLSPContext(), protocol.MessageTypeWarning, "SCSS language server: "+err.Error())
		return nil
	}

	req.Server.SetConfig(cfg)
	log.Debug("New configuration: %+v", cfg)

	// showErrors may have changed, so republish for all open documents
	if glspCtx := req.Server.GLSPContext(); glspCtx != nil {
		for _, doc := range req.Server.AllDocuments() {
			if err := req.Server.PublishDiagnostics(glspCtx, doc.URI()); err != nil {
				log.Warn("Failed to publish diagnostics for %s: %v", doc.URI(), err)
			}
		}
	}

	return nil
}

// parseConfiguration overlays client settings onto current
func parseConfiguration(current types.ServerConfig, settings any) (types.ServerConfig, error) {
	if settings == nil {
		return current, nil
	}

	// Settings come as a nested object: { "scssLanguageServer": { ... } }
	settingsMap, ok := settings.(map[string]any)
	if !ok {
		return current, fmt.Errorf("%w: settings is not an object", config.ErrInvalidConfig)
	}

	section, err := config.Section(settingsMap)
	if err != nil || section == nil {
		return current, err
	}
	return current.Apply(section)
}
