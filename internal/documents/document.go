package documents

import (
	"fmt"

	"bennypowers.dev/sls/internal/uriutil"
)

// Host classifies how a document embeds SCSS
type Host int

const (
	// HostUnsupported documents are tracked but never analyzed
	HostUnsupported Host = iota
	// HostStylesheet documents are SCSS (or CSS) throughout
	HostStylesheet
	// HostMarkup documents carry SCSS inside <style> elements
	HostMarkup
)

// HostFor maps an LSP language identifier to its Host
func HostFor(languageID string) Host {
	switch languageID {
	case "scss", "css":
		return HostStylesheet
	case "html", "vue":
		return HostMarkup
	}
	return HostUnsupported
}

// Document represents a text document being managed by the language server
type Document struct {
	uri        string
	languageID string
	content    string
	version    int
}

// NewDocument creates a new document
func NewDocument(uri, languageID string, version int, content string) *Document {
	return &Document{
		uri:        uri,
		languageID: languageID,
		version:    version,
		content:    content,
	}
}

// URI returns the document's URI
func (d *Document) URI() string {
	return d.uri
}

// Path returns the document's file system path, used as its identity
// when resolving imports
func (d *Document) Path() string {
	return uriutil.URIToPath(d.uri)
}

// LanguageID returns the document's language identifier
func (d *Document) LanguageID() string {
	return d.languageID
}

// Host reports how the document embeds SCSS
func (d *Document) Host() Host {
	return HostFor(d.languageID)
}

// Version returns the document's version
func (d *Document) Version() int {
	return d.version
}

// Content returns the document's current content
func (d *Document) Content() string {
	return d.content
}

// SetContent updates the document's content and version.
// Returns an error if the provided version is older than the current document version,
// preventing stale updates from being applied.
func (d *Document) SetContent(content string, version int) error {
	if version < d.version {
		return fmt.Errorf("rejected stale update: document version is %d but update version is %d", d.version, version)
	}
	d.content = content
	d.version = version
	return nil
}
