package references

import (
	"bennypowers.dev/sls/internal/log"
	"bennypowers.dev/sls/lsp/helpers"
	"bennypowers.dev/sls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// References handles the textDocument/references request.
//
// Occurrences are matched by name across every SCSS source of the
// document, so a shadowed variable and the one it shadows share their
// references.
func References(req *types.RequestContext, params *protocol.ReferenceParams) ([]protocol.Location, error) {
	uri := params.TextDocument.URI
	position := params.Position

	log.Debug("References requested: %s at line %d, char %d", uri, position.Line, position.Character)

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

	content := doc.Content()
	locations := []protocol.Location{}
	for _, src := range helpers.Sources(doc) {
		for _, occ := range helpers.Occurrences(src.Text, ref) {
			if occ.Declaration && !params.Context.IncludeDeclaration {
				continue
			}
			locations = append(locations, protocol.Location{
				URI:   uri,
				Range: src.Range(content, occ.Span),
			})
		}
	}

	log.Debug("Found %d references to %s", len(locations), ref.Name)
	return locations, nil
}
