package definition

import (
	"bennypowers.dev/sls/internal/log"
	"bennypowers.dev/sls/lsp/helpers"
	"bennypowers.dev/sls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Definition returns the declaration of the variable, mixin or function
// under the cursor
func Definition(req *types.RequestContext, params *protocol.DefinitionParams) (any, error) {
	uri := params.TextDocument.URI
	position := params.Position

	log.Debug("Definition requested: %s at line %d, char %d", uri, position.Line, position.Character)

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

	span, ok := helpers.Declaration(cursor.Result, ref)
	if !ok {
		log.Debug("No declaration for %s in %s", ref.Name, uri)
		return nil, nil
	}

	return protocol.Location{
		URI:   uri,
		Range: cursor.Source.Range(doc.Content(), span),
	}, nil
}
