package symbols_test

import (
	"testing"

	"bennypowers.dev/sls/internal/symbols"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable(t *testing.T) {
	table := symbols.NewTable()

	require.NotNil(t, table.Variables)
	require.NotNil(t, table.Mixins)
	require.NotNil(t, table.Functions)
	require.NotNil(t, table.Imports)
	assert.True(t, table.IsEmpty())
	assert.Empty(t, table.Document)
}

func TestSpanContains(t *testing.T) {
	span := symbols.Span{Start: 2, End: 5}

	assert.False(t, span.Contains(1))
	assert.True(t, span.Contains(2), "start is inclusive")
	assert.True(t, span.Contains(4))
	assert.False(t, span.Contains(5), "end is exclusive")
}

func TestLookupShadowing(t *testing.T) {
	table := symbols.NewTable()
	table.Variables = append(table.Variables,
		symbols.Variable{Name: "color", Value: "red"},
		symbols.Variable{Name: "size", Value: "1px"},
		symbols.Variable{Name: "color", Value: "blue"},
	)
	table.Mixins = append(table.Mixins, symbols.Mixin{Name: "reset"})

	v, ok := table.LookupVariable("color")
	require.True(t, ok)
	assert.Equal(t, "blue", v.Value, "last declaration wins")

	_, ok = table.LookupVariable("missing")
	assert.False(t, ok)

	m, ok := table.LookupMixin("reset")
	require.True(t, ok)
	assert.Equal(t, "reset", m.Name)
	assert.False(t, table.IsEmpty())
}

func TestLookupFunction(t *testing.T) {
	table := symbols.NewTable()
	table.Functions = append(table.Functions,
		symbols.Function{Name: "rem", Span: symbols.Span{Start: 0, End: 10}},
		symbols.Function{Name: "rem", Span: symbols.Span{Start: 20, End: 30}},
	)

	f, ok := table.LookupFunction("rem")
	require.True(t, ok)
	assert.Equal(t, 20, f.Span.Start)

	_, ok = table.LookupFunction("em")
	assert.False(t, ok)
}

func TestSignature(t *testing.T) {
	mixin := symbols.Mixin{
		Name: "pad",
		Parameters: []symbols.Variable{
			{Name: "x", Mixin: "pad"},
			{Name: "y", Value: "1px", Mixin: "pad"},
		},
	}
	assert.Equal(t, "pad($x, $y: 1px)", mixin.Signature())

	fn := symbols.Function{Name: "noop"}
	assert.Equal(t, "noop()", fn.Signature())
}
