package completion

import (
	"fmt"
	"regexp"
	"strings"

	"bennypowers.dev/sls/internal/collections"
	"bennypowers.dev/sls/internal/log"
	"bennypowers.dev/sls/internal/symbols"
	"bennypowers.dev/sls/lsp/helpers"
	"bennypowers.dev/sls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

var (
	variablePrefix = regexp.MustCompile(`\$([\w-]*)$`)
	includePrefix  = regexp.MustCompile(`@include\s+([\w-]*)$`)
)

// Completion handles the textDocument/completion request
func Completion(req *types.RequestContext, params *protocol.CompletionParams) (any, error) {
	uri := params.TextDocument.URI
	pos := params.Position

	log.Debug("Completion requested: %s at line %d, char %d", uri, pos.Line, pos.Character)

	doc := req.Server.Document(uri)
	if doc == nil {
		return nil, nil
	}

	cursor, err := helpers.AnalyzeAt(req, doc, pos)
	if err != nil || cursor == nil {
		return nil, err
	}

	line := currentLine(cursor.Source.Text, cursor.Offset)

	var items []protocol.CompletionItem
	if m := includePrefix.FindStringSubmatch(line); m != nil {
		replace := editRange(pos, m[1])
		items = mixinItems(cursor.Result.VisibleMixins(), m[1], replace)
	} else if m := variablePrefix.FindStringSubmatch(line); m != nil {
		// The replaced range includes the "$" already typed
		replace := editRange(pos, m[0])
		items = variableItems(cursor.Result.VisibleVariables(), m[1], replace)
	} else {
		return nil, nil
	}

	log.Debug("Returning %d completion items", len(items))

	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        items,
	}, nil
}

// currentLine returns the text between the start of the line and offset
func currentLine(text string, offset int) string {
	before := text[:offset]
	if i := strings.LastIndexByte(before, '\n'); i >= 0 {
		return before[i+1:]
	}
	return before
}

// editRange spans the typed text that ends at pos. Completion prefixes are
// ASCII, so bytes and UTF-16 units agree.
func editRange(pos protocol.Position, typed string) protocol.Range {
	start := pos
	start.Character -= uint32(len(typed)) //nolint:gosec // G115: prefix is on the current line
	return protocol.Range{Start: start, End: pos}
}

// variableItems lists visible variables matching prefix. Later
// declarations shadow earlier ones, so the list is walked backwards.
func variableItems(vars []symbols.Variable, prefix string, replace protocol.Range) []protocol.CompletionItem {
	kind := protocol.CompletionItemKindVariable
	seen := collections.NewSet[string]()
	items := []protocol.CompletionItem{}
	for i := len(vars) - 1; i >= 0; i-- {
		v := vars[i]
		if !strings.HasPrefix(v.Name, prefix) || !seen.Insert(v.Name) {
			continue
		}

		label := "$" + v.Name
		detail := v.Value
		if v.Mixin != "" {
			detail = strings.TrimSpace(fmt.Sprintf("%s (parameter of %s)", v.Value, v.Mixin))
		}
		items = append(items, protocol.CompletionItem{
			Label:  label,
			Kind:   &kind,
			Detail: &detail,
			TextEdit: protocol.TextEdit{
				Range:   replace,
				NewText: label,
			},
		})
	}
	return items
}

// mixinItems lists visible mixins matching prefix, inserting a snippet
// with placeholders for required parameters
func mixinItems(mixins []symbols.Mixin, prefix string, replace protocol.Range) []protocol.CompletionItem {
	kind := protocol.CompletionItemKindFunction
	format := protocol.InsertTextFormatSnippet
	seen := collections.NewSet[string]()
	items := []protocol.CompletionItem{}
	for i := len(mixins) - 1; i >= 0; i-- {
		m := mixins[i]
		if !strings.HasPrefix(m.Name, prefix) || !seen.Insert(m.Name) {
			continue
		}

		detail := "@mixin " + m.Signature()
		items = append(items, protocol.CompletionItem{
			Label:            m.Name,
			Kind:             &kind,
			Detail:           &detail,
			InsertTextFormat: &format,
			TextEdit: protocol.TextEdit{
				Range:   replace,
				NewText: includeSnippet(m),
			},
		})
	}
	return items
}

// includeSnippet renders `name(${1:\$a})` for the parameters without a
// default value
func includeSnippet(m symbols.Mixin) string {
	var required []string
	for _, p := range m.Parameters {
		if p.Value == "" {
			required = append(required, p.Name)
		}
	}
	if len(required) == 0 {
		return m.Name
	}
	placeholders := make([]string, len(required))
	for i, name := range required {
		placeholders[i] = fmt.Sprintf("${%d:\\$%s}", i+1, name)
	}
	return m.Name + "(" + strings.Join(placeholders, ", ") + ")"
}
