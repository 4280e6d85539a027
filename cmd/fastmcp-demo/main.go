package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	fastmcp "github.com/liudonghua123/fastmcp-go"
	"github.com/liudonghua123/fastmcp-go/internal/logging"
)

type serveOptions struct {
	configPath string
	transport  string
	addr       string
}

func main() {
	logger := logging.FromEnv()
	defer func() { _ = logger.Sync() }()

	root := newRootCmd(logger)
	if err := root.Execute(); err != nil {
		logger.Fatal("command failed", zap.Error(err))
	}
}

func newRootCmd(logger *zap.Logger) *cobra.Command {
	opts := serveOptions{}

	root := &cobra.Command{
		Use:   "fastmcp-demo",
		Short: "Demo MCP server built on annotation-driven registration",
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file")
	root.PersistentFlags().StringVar(&opts.transport, "transport", "", "transport kind: stdio, sse or streamablehttp")
	root.PersistentFlags().StringVar(&opts.addr, "addr", "", "listen address for the http transports")

	root.AddCommand(
		newServeCmd(logger, &opts),
		newListCmd(logger, &opts),
	)

	return root
}

func newServeCmd(logger *zap.Logger, opts *serveOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo operations over the configured transport",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalAwareContext(cmd.Context())
			defer cancel()

			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			server, err := buildServer(logger)
			if err != nil {
				return err
			}
			return server.Run(ctx, cfg.transportConfig())
		},
	}
}

func newListCmd(logger *zap.Logger, opts *serveOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the registered operations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := buildServer(logger)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, t := range server.ListTools() {
				fmt.Fprintf(out, "tool\t%s\t%s\n", t.Name, t.Description)
			}
			for _, p := range server.ListPrompts() {
				fmt.Fprintf(out, "prompt\t%s\t%s\n", p.Name, p.Description)
			}
			for _, r := range server.ListResources() {
				fmt.Fprintf(out, "resource\t%s\t%s\n", r.URI, r.Description)
			}
			return nil
		},
	}
}

// buildServer wires the demo operation set through both binding models:
// the Calculator annotates itself in its constructor, while the Greeter and
// Library annotations run at package initialization (see operations.go).
func buildServer(logger *zap.Logger) (*fastmcp.Server, error) {
	server := fastmcp.NewServer(fastmcp.ServerOptions{
		Name:    "fastmcp-demo",
		Version: "0.1.0",
		Logger:  logger,
	})

	for _, instance := range []any{
		NewCalculator(),
		&Greeter{Salutation: "Hello"},
		&Library{Root: "."},
	} {
		if err := server.RegisterInstance(instance); err != nil {
			return nil, err
		}
	}
	return server, nil
}

func signalAwareContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(signals)
		select {
		case <-signals:
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
