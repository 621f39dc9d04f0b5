package types

import (
	"github.com/tliron/glsp"
)

// RequestContext carries what one handler invocation needs: the server,
// the client connection, and the non-fatal problems the handler ran into.
type RequestContext struct {
	Server   ServerContext
	GLSP     *glsp.Context // nil outside a live connection, e.g. in tests
	warnings []error
}

// NewRequestContext creates a request context with no warnings
func NewRequestContext(server ServerContext, glsp *glsp.Context) *RequestContext {
	return &RequestContext{Server: server, GLSP: glsp}
}

// AddWarning records a problem that did not stop the handler, such as an
// ignored setting. The middleware logs warnings once the handler returns.
// Nil errors are dropped.
func (r *RequestContext) AddWarning(err error) {
	if err != nil {
		r.warnings = append(r.warnings, err)
	}
}

// Warnings returns the recorded warnings in order, or nil
func (r *RequestContext) Warnings() []error {
	return r.warnings
}

// HasWarnings reports whether any warning was recorded
func (r *RequestContext) HasWarnings() bool {
	return len(r.warnings) > 0
}
