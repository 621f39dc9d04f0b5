package types

import (
	"bennypowers.dev/sls/internal/analysis"
	"bennypowers.dev/sls/internal/documents"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ServerContext provides all dependencies needed for LSP handlers.
// Handlers depend on this interface so tests can substitute a mock.
type ServerContext interface {
	// Document operations
	Document(uri string) *documents.Document
	DocumentManager() *documents.Manager
	AllDocuments() []*documents.Document

	// Workspace operations
	RootURI() string
	RootPath() string
	SetRootURI(uri string)
	SetRootPath(path string)

	// Configuration
	GetConfig() ServerConfig
	SetConfig(config ServerConfig)
	LoadPackageJSONConfig() error

	// Analyzer returns the analyzer for the current configuration
	Analyzer() *analysis.Analyzer

	// Client capabilities
	PreferredHoverFormat() protocol.MarkupKind
	SetPreferredHoverFormat(format protocol.MarkupKind)

	// LSP context
	GLSPContext() *glsp.Context
	SetGLSPContext(ctx *glsp.Context)

	// Diagnostics
	PublishDiagnostics(context *glsp.Context, uri string) error
}
