package documents

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"bennypowers.dev/sls/internal/position"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Manager tracks the documents the client has opened
type Manager struct {
	documents map[string]*Document
	mu        sync.RWMutex
}

// NewManager creates an empty document manager
func NewManager() *Manager {
	return &Manager{documents: map[string]*Document{}}
}

// Get returns the open document with the given URI, or nil
func (m *Manager) Get(uri string) *Document {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.documents[uri]
}

// GetAll returns every open document, ordered by URI
func (m *Manager) GetAll() []*Document {
	m.mu.RLock()
	defer m.mu.RUnlock()

	docs := make([]*Document, 0, len(m.documents))
	for _, uri := range slices.Sorted(maps.Keys(m.documents)) {
		docs = append(docs, m.documents[uri])
	}
	return docs
}

// DidOpen starts tracking a document, replacing any earlier copy
func (m *Manager) DidOpen(uri, languageID string, version int, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.documents[uri] = NewDocument(uri, languageID, version, content)
	return nil
}

// DidClose stops tracking a document
func (m *Manager) DidClose(uri string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.documents[uri]; !ok {
		return fmt.Errorf("document not found: %s", uri)
	}
	delete(m.documents, uri)
	return nil
}

// DidChange applies content changes in order and stores the result under
// the new version
func (m *Manager) DidChange(uri string, version int, changes []protocol.TextDocumentContentChangeEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.documents[uri]
	if !ok {
		return fmt.Errorf("document not found: %s", uri)
	}

	content := doc.Content()
	for i, change := range changes {
		if change.Range == nil {
			content = change.Text
			continue
		}
		var err error
		if content, err = applyIncrementalChange(content, *change.Range, change.Text); err != nil {
			return fmt.Errorf("failed to apply change %d: %w", i, err)
		}
	}

	if err := doc.SetContent(content, version); err != nil {
		return fmt.Errorf("failed to set document content: %w", err)
	}
	return nil
}

// applyIncrementalChange splices text over r. Columns are UTF-16 code units
// and clamp to the end of their line; the line after the last one addresses
// the end of the content.
func applyIncrementalChange(content string, r protocol.Range, text string) (string, error) {
	lines := strings.Count(content, "\n") + 1
	if int(r.Start.Line) > lines {
		return "", fmt.Errorf("start line %d out of bounds (total lines: %d)", r.Start.Line, lines)
	}
	if int(r.End.Line) > lines {
		return "", fmt.Errorf("end line %d out of bounds (total lines: %d)", r.End.Line, lines)
	}

	start := position.LineColToOffset(content, int(r.Start.Line), int(r.Start.Character))
	end := position.LineColToOffset(content, int(r.End.Line), int(r.End.Character))
	if end < start {
		return "", fmt.Errorf("range end %d:%d precedes start %d:%d",
			r.End.Line, r.End.Character, r.Start.Line, r.Start.Character)
	}
	return content[:start] + text + content[end:], nil
}
