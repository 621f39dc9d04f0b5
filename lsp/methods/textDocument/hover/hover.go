package hover

import (
	"bytes"
	"fmt"
	"text/template"

	"bennypowers.dev/sls/internal/log"
	"bennypowers.dev/sls/lsp/helpers"
	"bennypowers.dev/sls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// symbolHover is the data rendered into hover templates
type symbolHover struct {
	// Code is the declaration as written in SCSS
	Code string
	// Owner is the mixin or function a parameter belongs to
	Owner string
	Kind  string
}

var symbolHoverTemplate = template.Must(template.New("symbolHover").Parse("```scss\n{{.Code}}\n```" + `
{{if .Owner}}
Parameter of ` + "`{{.Owner}}`" + `
{{end}}`))

var symbolHoverPlaintextTemplate = template.Must(template.New("symbolHoverPlaintext").Parse(`{{.Code}}
{{if .Owner}}
Parameter of {{.Owner}}
{{end}}`))

var undeclaredTemplate = template.Must(template.New("undeclared").Parse(`**Undeclared**: ` + "`{{.}}`" + `

This variable is not declared in this document.`))

var undeclaredPlaintextTemplate = template.Must(template.New("undeclaredPlaintext").Parse(`Undeclared: {{.}}

This variable is not declared in this document.`))

func render(markdown, plaintext *template.Template, data any, format protocol.MarkupKind) (string, error) {
	tmpl := markdown
	if format == protocol.MarkupKindPlainText {
		tmpl = plaintext
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// describe finds the declaration ref names among the symbols visible at the
// cursor
func describe(table helpers.Lookup, ref helpers.Reference) (symbolHover, bool) {
	switch ref.Kind {
	case helpers.ReferenceVariable:
		v, ok := table.LookupVariable(ref.Name)
		if !ok {
			return symbolHover{}, false
		}
		code := "$" + v.Name
		if v.Value != "" {
			code += ": " + v.Value
		}
		if v.Mixin == "" {
			code += ";"
		}
		return symbolHover{Code: code, Owner: v.Mixin, Kind: "variable"}, true
	case helpers.ReferenceMixin:
		m, ok := table.LookupMixin(ref.Name)
		if !ok {
			return symbolHover{}, false
		}
		return symbolHover{Code: "@mixin " + m.Signature(), Kind: "mixin"}, true
	case helpers.ReferenceFunction:
		f, ok := table.LookupFunction(ref.Name)
		if !ok {
			return symbolHover{}, false
		}
		return symbolHover{Code: "@function " + f.Signature(), Kind: "function"}, true
	}
	return symbolHover{}, false
}

// Hover handles the textDocument/hover request
func Hover(req *types.RequestContext, params *protocol.HoverParams) (*protocol.Hover, error) {
	uri := params.TextDocument.URI
	position := params.Position

	log.Debug("Hover requested: %s at line %d, char %d", uri, position.Line, position.Character)

	doc := req.Server.Document(uri)
	if doc == nil {
		return nil, nil
	}

	cursor, err := helpers.AnalyzeAt(req, doc, position)
	if err != nil || cursor == nil {
		return nil, err
	}

	ref, ok := helpers.ReferenceAt(cursor.Source.Text, cursor.Offset)
	if !ok {
		return nil, nil
	}

	format := req.Server.PreferredHoverFormat()
	var content string
	switch data, found := describe(cursor.Result, ref); {
	case found:
		content, err = render(symbolHoverTemplate, symbolHoverPlaintextTemplate, data, format)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s hover: %w", data.Kind, err)
		}
	case ref.Kind == helpers.ReferenceVariable:
		content, err = render(undeclaredTemplate, undeclaredPlaintextTemplate, "$"+ref.Name, format)
		if err != nil {
			return nil, fmt.Errorf("failed to render undeclared variable message: %w", err)
		}
	default:
		// Mixins and functions may come from modules that are not loaded
		return nil, nil
	}

	r := cursor.Source.Range(doc.Content(), ref.Span)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  format,
			Value: content,
		},
		Range: &r,
	}, nil
}
