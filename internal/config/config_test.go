package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"bennypowers.dev/sls/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePackageJSON(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(content), 0o644))
	return dir
}

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.False(t, cfg.ShowErrors)
	assert.Equal(t, config.ParserSCSS, cfg.Parser)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	t.Run("reads settings with comments", func(t *testing.T) {
		dir := writePackageJSON(t, `{
  // workspace settings
  "name": "test-project",
  "scssLanguageServer": {
    "showErrors": true,
    "parser": "tree-sitter", /* inline */
    "exclude": "dist/**",
  }
}`)

		cfg, err := config.Load(dir)
		require.NoError(t, err)
		assert.True(t, cfg.ShowErrors)
		assert.Equal(t, config.ParserTreeSitter, cfg.Parser)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, []string{"dist/**"}, cfg.Exclude)
	})

	t.Run("defaults when package.json does not exist", func(t *testing.T) {
		cfg, err := config.Load(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)
	})

	t.Run("defaults when the section is missing", func(t *testing.T) {
		dir := writePackageJSON(t, `{"name": "test-project"}`)

		section, err := config.LoadPackageJSON(dir)
		require.NoError(t, err)
		assert.Nil(t, section)

		cfg, err := config.Load(dir)
		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)
	})

	t.Run("rejects a non-object section", func(t *testing.T) {
		dir := writePackageJSON(t, `{"scssLanguageServer": true}`)

		_, err := config.Load(dir)
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
	})

	t.Run("reports malformed json", func(t *testing.T) {
		dir := writePackageJSON(t, `{"scssLanguageServer": `)

		_, err := config.Load(dir)
		assert.Error(t, err)
	})

	t.Run("empty root", func(t *testing.T) {
		section, err := config.LoadPackageJSON("")
		require.NoError(t, err)
		assert.Nil(t, section)
	})
}

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		settings map[string]any
		want     func(*config.Config)
		wantErr  bool
	}{
		{
			name:     "empty settings keep values",
			settings: map[string]any{},
			want:     func(*config.Config) {},
		},
		{
			name:     "log level",
			settings: map[string]any{"logLevel": "debug"},
			want:     func(c *config.Config) { c.LogLevel = "debug" },
		},
		{
			name:     "exclude list",
			settings: map[string]any{"exclude": []any{"a/**", 3, "b/**"}},
			want:     func(c *config.Config) { c.Exclude = []string{"a/**", "b/**"} },
		},
		{
			name:     "unknown parser",
			settings: map[string]any{"parser": "regex"},
			wantErr:  true,
		},
		{
			name:     "wrong type",
			settings: map[string]any{"showErrors": "yes"},
			wantErr:  true,
		},
		{
			name:     "unknown log level",
			settings: map[string]any{"logLevel": "verbose"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := config.Default().Apply(tt.settings)
			if tt.wantErr {
				assert.ErrorIs(t, err, config.ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			want := config.Default()
			tt.want(&want)
			assert.Equal(t, want, got)
		})
	}
}
