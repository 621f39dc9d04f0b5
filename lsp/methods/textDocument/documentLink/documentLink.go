package documentlink

import (
	"os"
	"path/filepath"
	"strings"

	"bennypowers.dev/sls/internal/analysis"
	"bennypowers.dev/sls/internal/imports"
	"bennypowers.dev/sls/internal/log"
	"bennypowers.dev/sls/internal/symbols"
	"bennypowers.dev/sls/internal/uriutil"
	"bennypowers.dev/sls/lsp/helpers"
	"bennypowers.dev/sls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DocumentLink handles the textDocument/documentLink request. Every static
// import and reference comment becomes a link to its normalized target.
func DocumentLink(req *types.RequestContext, params *protocol.DocumentLinkParams) ([]protocol.DocumentLink, error) {
	uri := params.TextDocument.URI

	log.Debug("DocumentLink requested: %s", uri)

	doc := req.Server.Document(uri)
	if doc == nil {
		return nil, nil
	}

	content := doc.Content()
	links := []protocol.DocumentLink{}
	for _, src := range helpers.Sources(doc) {
		result, err := helpers.Analyze(req, doc, src, analysis.WholeDocument{})
		if err != nil {
			return nil, err
		}
		for _, imp := range result.Symbols.Imports {
			if imp.Dynamic {
				continue
			}
			target := linkTarget(imp)
			tooltip := imp.Filepath
			links = append(links, protocol.DocumentLink{
				Range:   src.Range(content, imp.Span),
				Target:  &target,
				Tooltip: &tooltip,
			})
		}
	}

	log.Debug("Returning %d links for %s", len(links), uri)
	return links, nil
}

// linkTarget turns a normalized import into a URI. Remote resources keep
// their URL. A missing SCSS target falls back to its `_partial` sibling
// when that exists on disk.
func linkTarget(imp symbols.Import) protocol.DocumentUri {
	if imports.IsRemote(imp.Filepath) {
		if strings.HasPrefix(imp.Filepath, "//") {
			return "https:" + imp.Filepath
		}
		return imp.Filepath
	}
	path := imp.Filepath
	if !imp.CSS {
		path = partial(path)
	}
	return uriutil.PathToURI(path)
}

func partial(path string) string {
	if _, err := os.Stat(path); err == nil {
		return path
	}
	dir, base := filepath.Split(path)
	if strings.HasPrefix(base, "_") {
		return path
	}
	candidate := filepath.Join(dir, "_"+base)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return path
}
