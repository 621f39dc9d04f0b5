package documentcolor

import (
	"fmt"
	"strings"
	"unicode"

	"bennypowers.dev/sls/internal/analysis"
	"bennypowers.dev/sls/internal/color"
	"bennypowers.dev/sls/internal/log"
	"bennypowers.dev/sls/internal/symbols"
	"bennypowers.dev/sls/lsp/helpers"
	"bennypowers.dev/sls/lsp/types"
	"github.com/mazznoer/csscolorparser"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DocumentColor handles the textDocument/documentColor request. Variables
// and parameter defaults whose value is a CSS color are reported, with the
// range covering the value only.
func DocumentColor(req *types.RequestContext, params *protocol.DocumentColorParams) ([]protocol.ColorInformation, error) {
	uri := params.TextDocument.URI

	log.Debug("DocumentColor requested: %s", uri)

	doc := req.Server.Document(uri)
	if doc == nil {
		return nil, nil
	}

	content := doc.Content()
	colors := []protocol.ColorInformation{}
	for _, src := range helpers.Sources(doc) {
		result, err := helpers.Analyze(req, doc, src, analysis.WholeDocument{})
		if err != nil {
			return nil, err
		}
		for _, v := range colorCandidates(result.Symbols) {
			if !looksLikeColor(v.Value) {
				continue
			}
			color, err := parseColor(v.Value)
			if err != nil {
				// Most values are not colors
				continue
			}
			span, ok := valueSpan(src.Text, v)
			if !ok {
				continue
			}
			colors = append(colors, protocol.ColorInformation{
				Range: src.Range(content, span),
				Color: *color,
			})
		}
	}

	log.Debug("Found %d colors", len(colors))
	return colors, nil
}

// ColorPresentation handles the textDocument/colorPresentation request,
// offering hex, rgb() and hsl() spellings of the picked color
func ColorPresentation(req *types.RequestContext, params *protocol.ColorPresentationParams) ([]protocol.ColorPresentation, error) {
	log.Debug("ColorPresentation requested: %s", params.TextDocument.URI)

	c := csscolorparser.Color{
		R: float64(params.Color.Red),
		G: float64(params.Color.Green),
		B: float64(params.Color.Blue),
		A: float64(params.Color.Alpha),
	}

	labels := color.Presentations(c)
	presentations := make([]protocol.ColorPresentation, 0, len(labels))
	for _, label := range labels {
		presentations = append(presentations, protocol.ColorPresentation{
			Label: label,
			TextEdit: &protocol.TextEdit{
				Range:   params.Range,
				NewText: label,
			},
		})
	}
	return presentations, nil
}

// colorCandidates lists every variable with a value, including mixin and
// function parameter defaults
func colorCandidates(table *symbols.Table) []symbols.Variable {
	candidates := append([]symbols.Variable{}, table.Variables...)
	for _, m := range table.Mixins {
		candidates = append(candidates, m.Parameters...)
	}
	for _, f := range table.Functions {
		candidates = append(candidates, f.Parameters...)
	}
	out := candidates[:0]
	for _, v := range candidates {
		if v.Value != "" {
			out = append(out, v)
		}
	}
	return out
}

// looksLikeColor accepts hex literals, color functions and keywords.
// Bare words made only of hex digits ("add", "fade") are not colors.
func looksLikeColor(value string) bool {
	switch {
	case value == "":
		return false
	case value[0] == '#':
		return true
	case strings.Contains(value, "("):
		return true
	}
	onlyHex := true
	for _, r := range value {
		if !unicode.IsLetter(r) {
			return false
		}
		if !strings.ContainsRune("abcdefABCDEF", r) {
			onlyHex = false
		}
	}
	return !onlyHex
}

// valueSpan finds the value of v after the colon inside its declaration
func valueSpan(text string, v symbols.Variable) (symbols.Span, bool) {
	if v.Span.Start < 0 || v.Span.End > len(text) || v.Span.Start > v.Span.End {
		return symbols.Span{}, false
	}
	decl := text[v.Span.Start:v.Span.End]
	colon := strings.IndexByte(decl, ':')
	if colon < 0 {
		return symbols.Span{}, false
	}
	i := strings.Index(decl[colon+1:], v.Value)
	if i < 0 {
		return symbols.Span{}, false
	}
	start := v.Span.Start + colon + 1 + i
	return symbols.Span{Start: start, End: start + len(v.Value)}, true
}

// parseColor parses a color string (hex, rgb, rgba, hsl, hsla, named colors)
func parseColor(value string) (*protocol.Color, error) {
	value = strings.TrimSpace(value)
	parsed, err := csscolorparser.Parse(value)
	if err != nil {
		return nil, fmt.Errorf("unsupported color format: %s", value)
	}
	return &protocol.Color{
		Red:   protocol.Decimal(parsed.R),
		Green: protocol.Decimal(parsed.G),
		Blue:  protocol.Decimal(parsed.B),
		Alpha: protocol.Decimal(parsed.A),
	}, nil
}
