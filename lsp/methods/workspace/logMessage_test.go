package workspace

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

type notification struct {
	method string
	params any
}

func recordingContext() (*glsp.Context, <-chan notification) {
	received := make(chan notification, 4)
	return &glsp.Context{
		Notify: func(method string, params any) {
			received <- notification{method, params}
		},
	}, received
}

func next(t *testing.T, received <-chan notification) notification {
	t.Helper()
	select {
	case n := <-received:
		return n
	case <-time.After(time.Second):
		t.Fatal("client was not notified")
		return notification{}
	}
}

func TestWithoutClient(t *testing.T) {
	assert.NotPanics(t, func() {
		LogError(nil, "unterminated block in %s", "a.scss")
		LogWarning(nil, "ignoring %s", "parser")
		ShowMessage(nil, protocol.MessageTypeInfo, "ready")
		LogError(&glsp.Context{}, "no notify func")
	})
}

func TestLogError(t *testing.T) {
	ctx, received := recordingContext()
	LogError(ctx, "hover: %v", "boom")

	n := next(t, received)
	assert.Equal(t, protocol.ServerWindowLogMessage, n.method)
	msg, ok := n.params.(*protocol.LogMessageParams)
	require.True(t, ok)
	assert.Equal(t, protocol.MessageTypeError, msg.Type)
	assert.Equal(t, "hover: boom", msg.Message)
}

func TestLogWarning(t *testing.T) {
	ctx, received := recordingContext()
	LogWarning(ctx, "color %s did not parse", "$x")

	n := next(t, received)
	msg, ok := n.params.(*protocol.LogMessageParams)
	require.True(t, ok)
	assert.Equal(t, protocol.MessageTypeWarning, msg.Type)
	assert.Equal(t, "color $x did not parse", msg.Message)
}

func TestShowMessage(t *testing.T) {
	ctx, received := recordingContext()
	ShowMessage(ctx, protocol.MessageTypeWarning, "bad settings")

	n := next(t, received)
	assert.Equal(t, protocol.ServerWindowShowMessage, n.method)
	msg, ok := n.params.(*protocol.ShowMessageParams)
	require.True(t, ok)
	assert.Equal(t, "bad settings", msg.Message)
}
