package types

import (
	"testing"

	"bennypowers.dev/sls/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, config.ParserSCSS, cfg.Parser)

	cfg.Exclude[0] = "dist/**"
	assert.Equal(t, []string{"**/node_modules/**"}, DefaultConfig().Exclude, "each call returns a fresh value")
}
