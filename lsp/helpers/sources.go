package helpers

import (
	"bennypowers.dev/sls/internal/analysis"
	"bennypowers.dev/sls/internal/documents"
	"bennypowers.dev/sls/internal/log"
	"bennypowers.dev/sls/internal/parser/html"
	"bennypowers.dev/sls/internal/symbols"
	"bennypowers.dev/sls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Source is a stretch of SCSS inside a document
type Source struct {
	Text string
	// Base is the byte offset of Text in the document
	Base int
}

// Shift moves a span from source coordinates to document coordinates
func (s Source) Shift(span symbols.Span) symbols.Span {
	return symbols.Span{Start: span.Start + s.Base, End: span.End + s.Base}
}

// Sources returns the SCSS sources of a document: the whole text of a
// stylesheet, or each SCSS <style> region of a markup document.
func Sources(doc *documents.Document) []Source {
	switch doc.Host() {
	case documents.HostStylesheet:
		return []Source{{Text: doc.Content()}}
	case documents.HostMarkup:
		parser := html.AcquireParser()
		defer html.ReleaseParser(parser)

		var sources []Source
		for _, region := range parser.StyleRegions(doc.Content()) {
			if !region.IsSCSS() {
				continue
			}
			sources = append(sources, Source{Text: region.Content, Base: region.Start})
		}
		return sources
	}
	return nil
}

// SourceAt returns the source containing a document offset. The end of a
// source counts as inside it.
func SourceAt(doc *documents.Document, offset int) (Source, bool) {
	for _, src := range Sources(doc) {
		if offset >= src.Base && offset <= src.Base+len(src.Text) {
			return src, true
		}
	}
	return Source{}, false
}

// Analyze runs the analyzer over one source of doc. An AtOffset request
// carries a document offset, which is translated into the source.
func Analyze(req *types.RequestContext, doc *documents.Document, src Source, request analysis.Request) (*analysis.Result, error) {
	if at, ok := request.(analysis.AtOffset); ok {
		request = analysis.AtOffset{Offset: at.Offset - src.Base}
	}
	cfg := req.Server.GetConfig()
	result, err := req.Server.Analyzer().Parse(src.Text, doc.Path(), request, analysis.Options{
		ShowErrors: cfg.ShowErrors,
	})
	if err != nil {
		return nil, err
	}
	log.Debug("Analyzed %s: %d variables, %d mixins, %d functions, %d imports",
		doc.URI(),
		len(result.Symbols.Variables),
		len(result.Symbols.Mixins),
		len(result.Symbols.Functions),
		len(result.Symbols.Imports))
	return result, nil
}

// Range converts a span in source coordinates to an LSP range in the
// document whose text is content
func (s Source) Range(content string, span symbols.Span) protocol.Range {
	return SpanToRange(content, s.Shift(span))
}

// Cursor is a document position together with the symbols visible there
type Cursor struct {
	Source Source
	// Offset is relative to Source.Text
	Offset int
	Result *analysis.Result
}

// AnalyzeAt resolves the symbols visible at pos. The cursor is nil when pos
// lies outside every SCSS source of doc.
func AnalyzeAt(req *types.RequestContext, doc *documents.Document, pos protocol.Position) (*Cursor, error) {
	offset := PositionToOffset(doc.Content(), pos)
	src, ok := SourceAt(doc, offset)
	if !ok {
		return nil, nil
	}
	result, err := Analyze(req, doc, src, analysis.AtOffset{Offset: offset})
	if err != nil {
		return nil, err
	}
	return &Cursor{Source: src, Offset: offset - src.Base, Result: result}, nil
}
