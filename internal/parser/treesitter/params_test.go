package treesitter

import (
	"testing"

	"bennypowers.dev/sls/internal/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParameters(t *testing.T) {
	prelude := " button($padding, $color: red, $args...) "
	base := 7

	params := parameters(prelude, base)
	require.Len(t, params, 3)

	var names, values []string
	for _, p := range params {
		assert.Equal(t, ast.KindParameter, p.Kind())
		names = append(names, p.Name())
		values = append(values, p.Value())
	}
	assert.Equal(t, []string{"padding", "color", "args"}, names)
	assert.Equal(t, []string{"", "red", ""}, values)

	first := params[0]
	assert.Equal(t, base+len(" button("), first.Start())
	assert.Equal(t, first.Start()+len("$padding"), first.End())
}

func TestParametersWithoutList(t *testing.T) {
	assert.Empty(t, parameters(" reset ", 0))
}

func TestLeadingIdent(t *testing.T) {
	assert.Equal(t, "button", leadingIdent(" button($a)"))
	assert.Equal(t, "my-mixin_2", leadingIdent("my-mixin_2 { "))
	assert.Equal(t, "compact", leadingIdent("compact"))
}
