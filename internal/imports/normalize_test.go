package imports_test

import (
	"testing"

	"bennypowers.dev/sls/internal/imports"
	"bennypowers.dev/sls/internal/symbols"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		entry symbols.Import
		want  string
	}{
		{"relative partial", symbols.Import{Filepath: "foo"}, "/proj/foo.scss"},
		{"relative with extension", symbols.Import{Filepath: "lib/mixins.scss"}, "/proj/lib/mixins.scss"},
		{"parent directory", symbols.Import{Filepath: "../shared/vars"}, "/shared/vars.scss"},
		{"absolute path is kept", symbols.Import{Filepath: "/abs/theme"}, "/abs/theme.scss"},
		{"sass extension still gets scss", symbols.Import{Filepath: "old.sass"}, "/proj/old.sass.scss"},
		{"css is not extended", symbols.Import{Filepath: "reset.css", CSS: true}, "/proj/reset.css"},
		{"remote css untouched", symbols.Import{Filepath: "https://cdn.example.com/a.css", CSS: true}, "https://cdn.example.com/a.css"},
		{"protocol relative css untouched", symbols.Import{Filepath: "//cdn.example.com/a", CSS: true}, "//cdn.example.com/a"},
		{"reference", symbols.Import{Filepath: "foo", Reference: true}, "/proj/foo.scss"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := imports.Normalize([]symbols.Import{tt.entry}, "/proj/bar.scss")
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].Filepath)
			assert.Equal(t, tt.entry.CSS, got[0].CSS)
			assert.Equal(t, tt.entry.Dynamic, got[0].Dynamic)
			assert.Equal(t, tt.entry.Reference, got[0].Reference)
		})
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	entries := []symbols.Import{{Filepath: "foo"}}
	_ = imports.Normalize(entries, "/proj/bar.scss")
	assert.Equal(t, "foo", entries[0].Filepath)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	entries := []symbols.Import{
		{Filepath: "foo"},
		{Filepath: "nested/dir/baz.scss"},
		{Filepath: "#{$dynamic}", Dynamic: true},
	}

	once := imports.Normalize(entries, "/proj/bar.scss")
	twice := imports.Normalize(once, "/proj/bar.scss")
	assert.Equal(t, once, twice)
}

func TestNormalizeEmpty(t *testing.T) {
	got := imports.Normalize(nil, "/proj/bar.scss")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestIsRemote(t *testing.T) {
	assert.True(t, imports.IsRemote("https://fonts.example.com/a.css"))
	assert.True(t, imports.IsRemote("//cdn.example.com/b.css"))
	assert.True(t, imports.IsRemote("data://x"))
	assert.False(t, imports.IsRemote("/abs/path.css"))
	assert.False(t, imports.IsRemote("relative/path"))
	assert.False(t, imports.IsRemote("c:/windows/path.css"))
}
