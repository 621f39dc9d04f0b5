package definition

import (
	"testing"

	"bennypowers.dev/sls/lsp/testutil"
	"bennypowers.dev/sls/lsp/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const uri = "file:///proj/main.scss"

const source = `$primary: red;
@mixin pad($x) {
  margin: $x;
}
@function double($n) {
  @return $n * 2;
}
.card {
  $primary: blue;
  color: $primary;
  @include pad(1px);
  width: double(4px);
  border: $missing;
}
`

func definitionAt(t *testing.T, ctx *testutil.MockServerContext, line, char uint32) any {
	t.Helper()
	req := types.NewRequestContext(ctx, nil)
	result, err := Definition(req, &protocol.DefinitionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Position:     protocol.Position{Line: line, Character: char},
		},
	})
	require.NoError(t, err)
	return result
}

func TestDefinition(t *testing.T) {
	ctx := testutil.NewMockServerContext()
	ctx.OpenDocument(uri, "scss", source)

	tests := []struct {
		name      string
		line      uint32
		char      uint32
		wantLine  uint32
		wantChar  uint32
		wantFound bool
	}{
		{"innermost variable wins", 9, 11, 8, 2, true},
		{"mixin parameter", 2, 11, 1, 11, true},
		{"include target", 10, 12, 1, 0, true},
		{"function call", 11, 10, 4, 0, true},
		{"undeclared variable", 12, 12, 0, 0, false},
		{"no identifier", 7, 6, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := definitionAt(t, ctx, tt.line, tt.char)
			if !tt.wantFound {
				assert.Nil(t, result)
				return
			}
			location, ok := result.(protocol.Location)
			require.True(t, ok, "expected protocol.Location, got %T", result)
			assert.Equal(t, uri, location.URI)
			assert.Equal(t, protocol.Position{Line: tt.wantLine, Character: tt.wantChar}, location.Range.Start)
		})
	}
}

func TestDefinitionIgnoresSiblingBlocks(t *testing.T) {
	ctx := testutil.NewMockServerContext()
	ctx.OpenDocument(uri, "scss", "$c: red;\n.a {\n  color: $c;\n}\n.b {\n  $c: blue;\n}\n")

	result := definitionAt(t, ctx, 2, 10)
	location, ok := result.(protocol.Location)
	require.True(t, ok, "expected protocol.Location, got %T", result)
	assert.Equal(t, protocol.Position{Line: 0, Character: 0}, location.Range.Start)

	// .b's own reference still finds its local
	ctx.OpenDocument(uri, "scss", "$c: red;\n.a {\n  color: $c;\n}\n.b {\n  $c: blue;\n  color: $c;\n}\n")
	location, ok = definitionAt(t, ctx, 6, 10).(protocol.Location)
	require.True(t, ok)
	assert.Equal(t, protocol.Position{Line: 5, Character: 2}, location.Range.Start)
}

func TestDefinitionSiblingOnlyDeclaration(t *testing.T) {
	ctx := testutil.NewMockServerContext()
	ctx.OpenDocument(uri, "scss", ".a {\n  color: $c;\n}\n.b {\n  $c: blue;\n  @mixin m {}\n}\n.c {\n  @include m;\n}\n")

	assert.Nil(t, definitionAt(t, ctx, 1, 10))
	assert.Nil(t, definitionAt(t, ctx, 8, 11))
}

func TestDefinitionUnknownDocument(t *testing.T) {
	ctx := testutil.NewMockServerContext()
	assert.Nil(t, definitionAt(t, ctx, 0, 0))
}
