package testutil

import (
	"sync"

	"bennypowers.dev/sls/internal/analysis"
	"bennypowers.dev/sls/internal/documents"
	"bennypowers.dev/sls/lsp/types"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// MockServerContext implements types.ServerContext for testing.
// It provides a minimal implementation with configurable behavior via callback functions.
type MockServerContext struct {
	mu          sync.RWMutex
	docs        *documents.Manager
	rootURI     string
	rootPath    string
	config      types.ServerConfig
	hoverFormat protocol.MarkupKind
	glspContext *glsp.Context

	// Optional callbacks for custom behavior in tests
	LoadPackageJSONConfigFunc func() error
	PublishDiagnosticsFunc    func(*glsp.Context, string) error

	// Tracking flags for tests that need to verify methods were called
	LoadPackageJSONConfigCalled bool
	PublishedURIs               []string
}

var _ types.ServerContext = (*MockServerContext)(nil)

// NewMockServerContext creates a new mock server context with default behavior
func NewMockServerContext() *MockServerContext {
	return &MockServerContext{
		docs:        documents.NewManager(),
		config:      types.DefaultConfig(),
		hoverFormat: protocol.MarkupKindMarkdown,
	}
}

// Document returns the document with the given URI
func (m *MockServerContext) Document(uri string) *documents.Document {
	return m.docs.Get(uri)
}

// DocumentManager returns the document manager
func (m *MockServerContext) DocumentManager() *documents.Manager {
	return m.docs
}

// AllDocuments returns all tracked documents
func (m *MockServerContext) AllDocuments() []*documents.Document {
	return m.docs.GetAll()
}

// OpenDocument is a test helper that registers a document
func (m *MockServerContext) OpenDocument(uri, languageID, content string) {
	_ = m.docs.DidOpen(uri, languageID, 1, content)
}

// RootURI returns the workspace root URI
func (m *MockServerContext) RootURI() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rootURI
}

// RootPath returns the workspace root path
func (m *MockServerContext) RootPath() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rootPath
}

// SetRootURI sets the workspace root URI
func (m *MockServerContext) SetRootURI(uri string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rootURI = uri
}

// SetRootPath sets the workspace root path
func (m *MockServerContext) SetRootPath(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rootPath = path
}

// GetConfig returns the server configuration
func (m *MockServerContext) GetConfig() types.ServerConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// SetConfig sets the server configuration
func (m *MockServerContext) SetConfig(config types.ServerConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.config = config
}

// LoadPackageJSONConfig records the call and runs the optional callback
func (m *MockServerContext) LoadPackageJSONConfig() error {
	m.LoadPackageJSONConfigCalled = true
	if m.LoadPackageJSONConfigFunc != nil {
		return m.LoadPackageJSONConfigFunc()
	}
	return nil
}

// Analyzer returns an analyzer for the configured tree parser
func (m *MockServerContext) Analyzer() *analysis.Analyzer {
	trees, err := analysis.TreeParser(m.GetConfig().Parser)
	if err != nil {
		return analysis.New(nil)
	}
	return analysis.New(trees)
}

// PreferredHoverFormat returns the hover markup kind
func (m *MockServerContext) PreferredHoverFormat() protocol.MarkupKind {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hoverFormat
}

// SetPreferredHoverFormat sets the hover markup kind
func (m *MockServerContext) SetPreferredHoverFormat(format protocol.MarkupKind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hoverFormat = format
}

// GLSPContext returns the GLSP context
func (m *MockServerContext) GLSPContext() *glsp.Context {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.glspContext
}

// SetGLSPContext sets the GLSP context
func (m *MockServerContext) SetGLSPContext(ctx *glsp.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.glspContext = ctx
}

// PublishDiagnostics records the URI and calls PublishDiagnosticsFunc if set
func (m *MockServerContext) PublishDiagnostics(context *glsp.Context, uri string) error {
	m.mu.Lock()
	m.PublishedURIs = append(m.PublishedURIs, uri)
	fn := m.PublishDiagnosticsFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(context, uri)
	}
	return nil
}
