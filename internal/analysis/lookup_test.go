package analysis_test

import (
	"strings"
	"testing"

	"bennypowers.dev/sls/internal/analysis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const siblings = `$c: red;
@function f() { @return 1; }
.a {
  color: $c;
  width: f();
}
.b {
  $c: blue;
  $only: 1;
  @mixin m {}
  @function f() { @return 2; }
  color: $c;
}
`

func parseAt(t *testing.T, marker string) *analysis.Result {
	t.Helper()
	offset := strings.Index(siblings, marker)
	require.GreaterOrEqual(t, offset, 0, marker)
	result, err := analysis.New(nil).Parse(siblings, "/proj/s.scss", analysis.AtOffset{Offset: offset}, analysis.Options{ShowErrors: true})
	require.NoError(t, err)
	return result
}

func TestLookupSkipsSiblingBlocks(t *testing.T) {
	result := parseAt(t, "color: $c;\n  width")

	v, ok := result.LookupVariable("c")
	require.True(t, ok)
	assert.Equal(t, "red", v.Value)
	assert.Equal(t, 0, v.Span.Start)

	_, ok = result.LookupVariable("only")
	assert.False(t, ok)

	_, ok = result.LookupMixin("m")
	assert.False(t, ok)

	f, ok := result.LookupFunction("f")
	require.True(t, ok)
	assert.Equal(t, strings.Index(siblings, "@function f"), f.Span.Start)

	assert.Equal(t, []string{"c"}, variableNames(result.VisibleVariables()))
	assert.Empty(t, result.VisibleMixins())
}

func TestLookupInsideDeclaringBlock(t *testing.T) {
	result := parseAt(t, "color: $c;\n}")

	v, ok := result.LookupVariable("c")
	require.True(t, ok)
	assert.Equal(t, "blue", v.Value)

	_, ok = result.LookupMixin("m")
	assert.True(t, ok)

	f, ok := result.LookupFunction("f")
	require.True(t, ok)
	assert.Equal(t, strings.LastIndex(siblings, "@function f"), f.Span.Start)

	assert.Equal(t, []string{"c", "c", "only", "c", "only"}, variableNames(result.VisibleVariables()))
}

func TestLookupWholeDocument(t *testing.T) {
	result, err := analysis.New(nil).Parse(siblings, "/proj/s.scss", analysis.WholeDocument{}, analysis.Options{})
	require.NoError(t, err)

	v, ok := result.LookupVariable("c")
	require.True(t, ok)
	assert.Equal(t, "blue", v.Value, "without a position every declaration is visible")
	assert.Len(t, result.VisibleVariables(), 3)
}
