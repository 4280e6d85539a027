package fastmcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// TransportKind discriminates the supported serving transports.
type TransportKind string

const (
	TransportStdio          TransportKind = "stdio"
	TransportSSE            TransportKind = "sse"
	TransportStreamableHTTP TransportKind = "streamablehttp"
)

// SSEConfig configures the server-sent-events transport.
type SSEConfig struct {
	// Addr is the listen address, defaulting to ":8080".
	Addr string
	// Endpoint is the HTTP path serving the event stream, defaulting to
	// "/sse".
	Endpoint string
}

// StreamableHTTPConfig configures the streamable HTTP transport.
type StreamableHTTPConfig struct {
	// Addr is the listen address, defaulting to ":8080".
	Addr string
	// Endpoint is the HTTP path, defaulting to "/mcp".
	Endpoint string
	// JSONResponse asks the protocol layer for plain JSON responses where
	// the client allows it.
	JSONResponse bool
}

// TransportConfig selects and configures the serving transport. An empty
// Kind means stdio.
type TransportConfig struct {
	Kind TransportKind
	SSE  *SSEConfig
	HTTP *StreamableHTTPConfig
}

const httpShutdownTimeout = 5 * time.Second

// Run serves the bound operations over the configured transport until ctx
// is canceled. An unrecognized transport kind fails startup with
// ErrUnsupportedTransport.
func (s *Server) Run(ctx context.Context, cfg TransportConfig) error {
	switch cfg.Kind {
	case TransportStdio, "":
		s.logger.Info("serving on stdio")
		return s.mcp.Run(ctx, &mcp.StdioTransport{})

	case TransportSSE:
		sse := cfg.SSE
		if sse == nil {
			sse = &SSEConfig{}
		}
		endpoint := sse.Endpoint
		if endpoint == "" {
			endpoint = "/sse"
		}
		handler := mcp.NewSSEHandler(func(*http.Request) *mcp.Server { return s.mcp }, nil)
		return s.serveHTTP(ctx, sse.Addr, endpoint, handler)

	case TransportStreamableHTTP:
		hc := cfg.HTTP
		if hc == nil {
			hc = &StreamableHTTPConfig{}
		}
		endpoint := hc.Endpoint
		if endpoint == "" {
			endpoint = "/mcp"
		}
		handler := mcp.NewStreamableHTTPHandler(
			func(*http.Request) *mcp.Server { return s.mcp },
			&mcp.StreamableHTTPOptions{JSONResponse: hc.JSONResponse},
		)
		return s.serveHTTP(ctx, hc.Addr, endpoint, handler)

	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedTransport, cfg.Kind)
	}
}

func (s *Server) serveHTTP(ctx context.Context, addr, endpoint string, handler http.Handler) error {
	if addr == "" {
		addr = ":8080"
	}
	mux := http.NewServeMux()
	mux.Handle(endpoint, handler)
	srv := &http.Server{Addr: addr, Handler: mux}

	s.logger.Info("serving over http",
		zap.String("addr", addr), zap.String("endpoint", endpoint))

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
