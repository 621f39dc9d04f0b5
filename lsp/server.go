package lsp

import (
	"fmt"
	"sync"

	"bennypowers.dev/sls/internal/analysis"
	"bennypowers.dev/sls/internal/documents"
	"bennypowers.dev/sls/internal/log"
	"bennypowers.dev/sls/internal/parser/html"
	"bennypowers.dev/sls/internal/parser/scss"
	"bennypowers.dev/sls/internal/parser/treesitter"
	"bennypowers.dev/sls/lsp/methods/lifecycle"
	"bennypowers.dev/sls/lsp/methods/textDocument"
	"bennypowers.dev/sls/lsp/methods/textDocument/completion"
	"bennypowers.dev/sls/lsp/methods/textDocument/definition"
	"bennypowers.dev/sls/lsp/methods/textDocument/diagnostic"
	documentcolor "bennypowers.dev/sls/lsp/methods/textDocument/documentColor"
	documentlink "bennypowers.dev/sls/lsp/methods/textDocument/documentLink"
	documentsymbol "bennypowers.dev/sls/lsp/methods/textDocument/documentSymbol"
	"bennypowers.dev/sls/lsp/methods/textDocument/hover"
	"bennypowers.dev/sls/lsp/methods/textDocument/references"
	"bennypowers.dev/sls/lsp/methods/workspace"
	"bennypowers.dev/sls/lsp/types"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

// Verify that Server implements ServerContext interface
var _ types.ServerContext = (*Server)(nil)

// Server represents the SCSS Language Server
type Server struct {
	documents   *documents.Manager
	glspServer  *server.Server
	context     *glsp.Context
	analyzer    *analysis.Analyzer
	rootURI     string              // Workspace root URI
	rootPath    string              // Workspace root path (file system)
	config      types.ServerConfig  // Server configuration
	hoverFormat protocol.MarkupKind // Preferred hover markup, from client capabilities
	configMu    sync.RWMutex        // Protects config, analyzer, roots, hoverFormat and context
}

// NewServer creates a new SCSS LSP server
func NewServer() (*Server, error) {
	s := &Server{
		documents:   documents.NewManager(),
		analyzer:    analysis.New(scss.NewTreeParser()),
		config:      types.DefaultConfig(),
		hoverFormat: protocol.MarkupKindMarkdown,
	}

	// Create the GLSP server with our handlers wrapped with middleware
	protocolHandler := protocol.Handler{
		Initialize:                      method(s, "initialize", lifecycle.Initialize),
		Initialized:                     notify(s, "initialized", lifecycle.Initialized),
		Shutdown:                        noParam(s, "shutdown", lifecycle.Shutdown),
		SetTrace:                        notify(s, "$/setTrace", lifecycle.SetTrace),
		WorkspaceDidChangeConfiguration: notify(s, "workspace/didChangeConfiguration", workspace.DidChangeConfiguration),
		TextDocumentDidOpen:             notify(s, "textDocument/didOpen", textDocument.DidOpen),
		TextDocumentDidChange:           notify(s, "textDocument/didChange", textDocument.DidChange),
		TextDocumentDidClose:            notify(s, "textDocument/didClose", textDocument.DidClose),
		TextDocumentHover:               method(s, "textDocument/hover", hover.Hover),
		TextDocumentCompletion:          method(s, "textDocument/completion", completion.Completion),
		TextDocumentDefinition:          method(s, "textDocument/definition", definition.Definition),
		TextDocumentReferences:          method(s, "textDocument/references", references.References),
		TextDocumentDocumentSymbol:      method(s, "textDocument/documentSymbol", documentsymbol.DocumentSymbol),
		TextDocumentDocumentLink:        method(s, "textDocument/documentLink", documentlink.DocumentLink),
		TextDocumentColor:               method(s, "textDocument/documentColor", documentcolor.DocumentColor),
		TextDocumentColorPresentation:   method(s, "textDocument/colorPresentation", documentcolor.ColorPresentation),
	}

	s.glspServer = server.NewServer(&protocolHandler, lifecycle.ServerName, false)

	return s, nil
}

// RunStdio starts the LSP server using stdio transport
func (s *Server) RunStdio() error {
	return s.glspServer.RunStdio()
}

// Close releases the pooled tree-sitter parsers.
// It is safe to call Close multiple times.
func (s *Server) Close() error {
	treesitter.ClosePool()
	html.ClosePool()
	return nil
}

// Document returns the document with the given URI
func (s *Server) Document(uri string) *documents.Document {
	return s.documents.Get(uri)
}

// DocumentManager returns the document manager
func (s *Server) DocumentManager() *documents.Manager {
	return s.documents
}

// AllDocuments returns all tracked documents
func (s *Server) AllDocuments() []*documents.Document {
	return s.documents.GetAll()
}

// RootURI returns the workspace root URI
func (s *Server) RootURI() string {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.rootURI
}

// RootPath returns the workspace root path
func (s *Server) RootPath() string {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.rootPath
}

// SetRootURI sets the workspace root URI
func (s *Server) SetRootURI(uri string) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.rootURI = uri
}

// SetRootPath sets the workspace root path
func (s *Server) SetRootPath(path string) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.rootPath = path
}

// PreferredHoverFormat returns the markup kind hover content is rendered in
func (s *Server) PreferredHoverFormat() protocol.MarkupKind {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.hoverFormat
}

// SetPreferredHoverFormat records the client's preferred hover markup
func (s *Server) SetPreferredHoverFormat(format protocol.MarkupKind) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.hoverFormat = format
}

// GLSPContext returns the GLSP context.
// Access is protected by configMu to prevent concurrent races.
func (s *Server) GLSPContext() *glsp.Context {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.context
}

// SetGLSPContext sets the GLSP context.
// Access is protected by configMu to prevent concurrent races.
func (s *Server) SetGLSPContext(ctx *glsp.Context) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.context = ctx
}

// PublishDiagnostics publishes diagnostics for a document
func (s *Server) PublishDiagnostics(context *glsp.Context, uri string) error {
	log.Debug("Publishing diagnostics for: %s", uri)

	// Use passed-in context if non-nil, otherwise fall back to server's context
	workingContext := context
	if workingContext == nil {
		workingContext = s.GLSPContext()
	}
	if workingContext == nil {
		return fmt.Errorf("cannot publish diagnostics: no client context available")
	}

	diagnostics, err := diagnostic.GetDiagnostics(s, uri)
	if err != nil {
		return err
	}

	workingContext.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})

	return nil
}
