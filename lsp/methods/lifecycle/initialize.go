package lifecycle

import (
	"slices"

	"bennypowers.dev/sls/internal/log"
	"bennypowers.dev/sls/internal/uriutil"
	"bennypowers.dev/sls/internal/version"
	"bennypowers.dev/sls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ServerName is reported to clients in the initialize result
const ServerName = "scss-language-server"

// Initialize handles the LSP initialize request
func Initialize(req *types.RequestContext, params *protocol.InitializeParams) (any, error) {
	clientName := "unknown"
	if params.ClientInfo != nil {
		clientName = params.ClientInfo.Name
	}
	log.Info("Initializing for client: %s", clientName)

	// Store the workspace root
	if params.RootURI != nil {
		req.Server.SetRootURI(*params.RootURI)
		req.Server.SetRootPath(uriutil.URIToPath(*params.RootURI))
		log.Info("Workspace root: %s", req.Server.RootPath())
	} else if params.RootPath != nil {
		req.Server.SetRootPath(*params.RootPath)
		req.Server.SetRootURI(uriutil.PathToURI(*params.RootPath))
		log.Info("Workspace root (from rootPath): %s", req.Server.RootPath())
	}

	if req.Server.RootPath() != "" {
		if err := req.Server.LoadPackageJSONConfig(); err != nil {
			// A broken package.json should not keep the server from starting
			req.AddWarning(err)
		}
	}

	req.Server.SetPreferredHoverFormat(hoverFormat(params.Capabilities))

	syncKind := protocol.TextDocumentSyncKindIncremental
	capabilities := protocol.ServerCapabilities{
		TextDocumentSync: protocol.TextDocumentSyncOptions{
			OpenClose: boolPtr(true),
			Change:    &syncKind,
		},
		HoverProvider: true,
		CompletionProvider: &protocol.CompletionOptions{
			TriggerCharacters: []string{"$", "@"},
		},
		DefinitionProvider:     true,
		ReferencesProvider:     true,
		DocumentSymbolProvider: true,
		DocumentLinkProvider:   &protocol.DocumentLinkOptions{},
		ColorProvider:          true,
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    ServerName,
			Version: strPtr(version.GetVersion()),
		},
	}, nil
}

// hoverFormat picks markdown unless the client only advertises plain text
func hoverFormat(caps protocol.ClientCapabilities) protocol.MarkupKind {
	if caps.TextDocument == nil || caps.TextDocument.Hover == nil {
		return protocol.MarkupKindMarkdown
	}
	formats := caps.TextDocument.Hover.ContentFormat
	if len(formats) == 0 || slices.Contains(formats, protocol.MarkupKindMarkdown) {
		return protocol.MarkupKindMarkdown
	}
	return protocol.MarkupKindPlainText
}

func boolPtr(b bool) *bool {
	return &b
}

func strPtr(s string) *string {
	return &s
}
