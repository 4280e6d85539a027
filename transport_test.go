package fastmcp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_UnsupportedTransport(t *testing.T) {
	s, _ := newTestServer(t)
	err := s.Run(context.Background(), TransportConfig{Kind: "carrier-pigeon"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedTransport)
	assert.Contains(t, err.Error(), "carrier-pigeon")
}

func TestRun_HTTPShutsDownOnContextCancel(t *testing.T) {
	s, _ := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx, TransportConfig{
			Kind: TransportStreamableHTTP,
			HTTP: &StreamableHTTPConfig{Addr: "127.0.0.1:0"},
		})
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}
