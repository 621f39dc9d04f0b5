package diagnostic

import (
	"errors"
	"fmt"

	"bennypowers.dev/sls/internal/analysis"
	"bennypowers.dev/sls/internal/symbols"
	"bennypowers.dev/sls/lsp/helpers"
	"bennypowers.dev/sls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Source names this server in published diagnostics
const Source = "scss"

// GetDiagnostics returns syntax errors for each SCSS source of a document.
// Nothing is reported unless showErrors is enabled, and a closed document
// has no diagnostics.
func GetDiagnostics(ctx types.ServerContext, uri string) ([]protocol.Diagnostic, error) {
	doc := ctx.Document(uri)
	if doc == nil || !ctx.GetConfig().ShowErrors {
		return []protocol.Diagnostic{}, nil
	}

	content := doc.Content()
	diagnostics := []protocol.Diagnostic{}
	for _, src := range helpers.Sources(doc) {
		_, err := ctx.Analyzer().Parse(src.Text, doc.Path(), analysis.WholeDocument{}, analysis.Options{ShowErrors: true})
		if err == nil {
			continue
		}

		var syntaxErr *symbols.SyntaxExtractionError
		if !errors.As(err, &syntaxErr) {
			return nil, fmt.Errorf("failed to analyze %s: %w", uri, err)
		}
		diagnostics = append(diagnostics, syntaxDiagnostic(content, src, syntaxErr))
	}

	return diagnostics, nil
}

// syntaxDiagnostic marks the character where extraction gave up
func syntaxDiagnostic(content string, src helpers.Source, err *symbols.SyntaxExtractionError) protocol.Diagnostic {
	span := symbols.Span{Start: err.Offset, End: min(err.Offset+1, len(src.Text))}
	severity := protocol.DiagnosticSeverityError
	source := Source
	return protocol.Diagnostic{
		Range:    src.Range(content, span),
		Severity: &severity,
		Source:   &source,
		Message:  err.Reason,
	}
}
