package lifecycle

import (
	"testing"

	"bennypowers.dev/sls/internal/log"
	"bennypowers.dev/sls/lsp/testutil"
	"bennypowers.dev/sls/lsp/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestInitialized(t *testing.T) {
	ctx := testutil.NewMockServerContext()
	glspCtx := &glsp.Context{}
	req := types.NewRequestContext(ctx, glspCtx)

	err := Initialized(req, &protocol.InitializedParams{})
	require.NoError(t, err)

	assert.Same(t, glspCtx, ctx.GLSPContext(), "context is kept for later notifications")
}

func TestShutdown(t *testing.T) {
	ctx := testutil.NewMockServerContext()
	req := types.NewRequestContext(ctx, nil)

	require.NoError(t, Shutdown(req))
	// Pools recreate parsers on demand, so shutting down twice is fine
	require.NoError(t, Shutdown(req))
}

func TestSetTrace(t *testing.T) {
	defer log.SetLevel(log.GetLevel())

	ctx := testutil.NewMockServerContext()
	cfg := ctx.GetConfig()
	cfg.LogLevel = "warn"
	ctx.SetConfig(cfg)
	req := types.NewRequestContext(ctx, nil)

	require.NoError(t, SetTrace(req, &protocol.SetTraceParams{Value: protocol.TraceValueVerbose}))
	assert.Equal(t, log.LevelDebug, log.GetLevel())

	require.NoError(t, SetTrace(req, &protocol.SetTraceParams{Value: protocol.TraceValueMessage}))
	assert.Equal(t, log.LevelWarn, log.GetLevel(), "back to the configured level")

	require.NoError(t, SetTrace(req, &protocol.SetTraceParams{Value: protocol.TraceValueOff}))
	assert.Equal(t, log.LevelWarn, log.GetLevel())
}
