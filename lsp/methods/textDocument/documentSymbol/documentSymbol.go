package documentsymbol

import (
	"bennypowers.dev/sls/internal/analysis"
	"bennypowers.dev/sls/internal/log"
	"bennypowers.dev/sls/internal/symbols"
	"bennypowers.dev/sls/lsp/helpers"
	"bennypowers.dev/sls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DocumentSymbol handles the textDocument/documentSymbol request. Mixins
// and functions list their parameters as children.
func DocumentSymbol(req *types.RequestContext, params *protocol.DocumentSymbolParams) (any, error) {
	uri := params.TextDocument.URI

	log.Debug("DocumentSymbol requested: %s", uri)

	doc := req.Server.Document(uri)
	if doc == nil {
		return nil, nil
	}

	content := doc.Content()
	result := []protocol.DocumentSymbol{}
	for _, src := range helpers.Sources(doc) {
		analyzed, err := helpers.Analyze(req, doc, src, analysis.WholeDocument{})
		if err != nil {
			return nil, err
		}
		table := analyzed.Symbols

		for _, v := range table.Variables {
			result = append(result, variableSymbol(content, src, v))
		}
		for _, m := range table.Mixins {
			result = append(result, callableSymbol(content, src, m.Name, m.Signature(), protocol.SymbolKindMethod, m.Span, m.Parameters))
		}
		for _, f := range table.Functions {
			result = append(result, callableSymbol(content, src, f.Name, f.Signature(), protocol.SymbolKindFunction, f.Span, f.Parameters))
		}
	}

	log.Debug("Returning %d symbols for %s", len(result), uri)
	return result, nil
}

func variableSymbol(content string, src helpers.Source, v symbols.Variable) protocol.DocumentSymbol {
	r := src.Range(content, v.Span)
	symbol := protocol.DocumentSymbol{
		Name:           "$" + v.Name,
		Kind:           protocol.SymbolKindVariable,
		Range:          r,
		SelectionRange: r,
	}
	if v.Value != "" {
		value := v.Value
		symbol.Detail = &value
	}
	return symbol
}

func callableSymbol(content string, src helpers.Source, name, signature string, kind protocol.SymbolKind, span symbols.Span, params []symbols.Variable) protocol.DocumentSymbol {
	r := src.Range(content, span)
	symbol := protocol.DocumentSymbol{
		Name:           name,
		Detail:         &signature,
		Kind:           kind,
		Range:          r,
		SelectionRange: r,
	}
	for _, p := range params {
		symbol.Children = append(symbol.Children, variableSymbol(content, src, p))
	}
	return symbol
}
