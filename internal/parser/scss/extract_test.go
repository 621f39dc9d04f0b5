package scss_test

import (
	"errors"
	"os"
	"strings"
	"testing"

	"bennypowers.dev/sls/internal/parser/scss"
	"bennypowers.dev/sls/internal/symbols"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)
	return string(data)
}

func variableNames(vars []symbols.Variable) []string {
	out := make([]string, 0, len(vars))
	for _, v := range vars {
		out = append(out, v.Name)
	}
	return out
}

func TestExtractSingleVariable(t *testing.T) {
	table, err := scss.Extract("$a: 1;")
	require.NoError(t, err)

	require.Len(t, table.Variables, 1)
	assert.Equal(t, symbols.Variable{Name: "a", Value: "1", Span: symbols.Span{Start: 0, End: 6}}, table.Variables[0])
	assert.Empty(t, table.Mixins)
	assert.Empty(t, table.Functions)
	assert.Empty(t, table.Imports)
	assert.Empty(t, table.Document)
}

func TestExtractByteOrderMark(t *testing.T) {
	table, err := scss.Extract("\ufeff$a: 1;")
	require.NoError(t, err)

	require.Len(t, table.Variables, 1)
	assert.Equal(t, symbols.Variable{Name: "a", Value: "1", Span: symbols.Span{Start: 3, End: 9}}, table.Variables[0])
}

func TestExtractComponents(t *testing.T) {
	source := loadFixture(t, "components.scss")

	table, err := scss.Extract(source)
	require.NoError(t, err)

	t.Run("variables at every depth, comments ignored", func(t *testing.T) {
		assert.Equal(t, []string{"size", "brand", "radius", "card-gap", "hover-color"}, variableNames(table.Variables))

		size := table.Variables[0]
		assert.Equal(t, "10px", size.Value, "!default flag is stripped")
		start := strings.Index(source, "$size")
		assert.Equal(t, start, size.Span.Start)
		assert.Equal(t, start+len("$size: 10px !default;"), size.Span.End)

		assert.Equal(t, "#0000ff", table.Variables[1].Value)
		assert.Equal(t, "math.div($size, 2)", table.Variables[3].Value)
		assert.Equal(t, "darken($brand, 10%)", table.Variables[4].Value)
	})

	t.Run("mixins with parameters", func(t *testing.T) {
		require.Len(t, table.Mixins, 2)

		button := table.Mixins[0]
		assert.Equal(t, "button", button.Name)
		assert.Equal(t, []string{"padding", "color", "args"}, variableNames(button.Parameters))
		assert.Equal(t, "red", button.Parameters[1].Value)
		for _, p := range button.Parameters {
			assert.Equal(t, "button", p.Mixin)
		}

		compact := table.Mixins[1]
		assert.Equal(t, "compact", compact.Name)
		assert.Empty(t, compact.Parameters)
	})

	t.Run("functions", func(t *testing.T) {
		require.Len(t, table.Functions, 1)
		assert.Equal(t, "double", table.Functions[0].Name)
		assert.Equal(t, []string{"n"}, variableNames(table.Functions[0].Parameters))
	})

	t.Run("imports", func(t *testing.T) {
		type flags struct {
			path         string
			css, dynamic bool
		}
		var got []flags
		for _, imp := range table.Imports {
			assert.False(t, imp.Reference)
			got = append(got, flags{imp.Filepath, imp.CSS, imp.Dynamic})
		}
		assert.Equal(t, []flags{
			{"config", false, false},
			{"src/list", false, false},
			{"a", false, false},
			{"b.css", true, false},
			{"foo.css", true, false},
			{"c", true, false},
			{"#{$theme}", false, true},
			{"d.scss", true, false},
		}, got)
	})
}

func TestExtractImportClassification(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		path    string
		css     bool
		dynamic bool
	}{
		{"partial", `@import "partials/base";`, "partials/base", false, false},
		{"remote", `@import "https://fonts.example.com/x";`, "https://fonts.example.com/x", true, false},
		{"protocol relative", `@import "//cdn.example.com/x";`, "//cdn.example.com/x", true, false},
		{"raw url", `@import url(theme.css);`, "theme.css", true, false},
		{"unquoted variable", `@import $path;`, "$path", false, true},
		{"interpolated", `@import "themes/#{$name}";`, "themes/#{$name}", false, true},
		{"use with configuration", `@use "lib" with ($a: 1, $b: 2);`, "lib", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := scss.Extract(tt.source)
			require.NoError(t, err)
			require.Len(t, table.Imports, 1)

			imp := table.Imports[0]
			assert.Equal(t, tt.path, imp.Filepath)
			assert.Equal(t, tt.css, imp.CSS, "css")
			assert.Equal(t, tt.dynamic, imp.Dynamic, "dynamic")
		})
	}

	t.Run("sass built-in modules are not imports", func(t *testing.T) {
		table, err := scss.Extract(`@use "sass:map"; @use "sass:color" as c;`)
		require.NoError(t, err)
		assert.Empty(t, table.Imports)
	})
}

func TestExtractIsDeterministic(t *testing.T) {
	source := loadFixture(t, "components.scss")

	first, err := scss.Extract(source)
	require.NoError(t, err)
	second, err := scss.Extract(source)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExtractMalformed(t *testing.T) {
	table, err := scss.Extract("$a: 1;\n.x { $b: 2;")
	require.Error(t, err)
	assert.Nil(t, table)
	assert.True(t, errors.Is(err, symbols.ErrSyntaxExtraction))
}
