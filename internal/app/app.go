// Package app builds a tool server for one variant and serves it over stdio.
package app

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/minimcp-servers/internal/common"
	"github.com/bobmcallan/minimcp-servers/internal/registrar"
	"github.com/bobmcallan/minimcp-servers/internal/servers"
	"github.com/bobmcallan/minimcp-servers/internal/tools"
)

// Build creates the variant's server, registers every eligible function of
// its modules and freezes the registry.
func Build(v servers.Variant, logger *common.Logger) (*tools.Server, registrar.Result) {
	srv := tools.New(v.Name, v.Version, v.Instructions, logger)
	res := registrar.RegisterModules(srv, logger, v.Namespaces()...)
	srv.Freeze()

	logger.Info().
		Str("server", v.Name).
		Str("version", v.Version).
		Int("tools", srv.Len()).
		Int("failures", res.Failed()).
		Msg("tool server built")

	return srv, res
}

// StdioOptions maps server config onto the stdio transport.
func StdioOptions(cfg common.ServerConfig, logger *common.Logger) []server.StdioOption {
	opts := []server.StdioOption{
		server.WithErrorLogger(log.New(&errorLogWriter{logger: logger}, "", 0)),
	}
	if cfg.WorkerPoolSize > 0 {
		opts = append(opts, server.WithWorkerPoolSize(cfg.WorkerPoolSize))
	}
	if cfg.QueueSize > 0 {
		opts = append(opts, server.WithQueueSize(cfg.QueueSize))
	}
	return opts
}

// Serve runs the stdio transport until in reaches EOF or ctx is cancelled.
// Both are a clean shutdown and return nil.
func Serve(ctx context.Context, srv *tools.Server, logger *common.Logger, in io.Reader, out io.Writer, opts ...server.StdioOption) error {
	stdio := server.NewStdioServer(srv.MCPServer())
	for _, opt := range opts {
		opt(stdio)
	}

	logger.Info().Str("server", srv.Name()).Msg("serving on stdio")

	err := stdio.Listen(ctx, in, out)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Str("server", srv.Name()).Msg("stdio transport failed")
		return err
	}

	logger.Info().Str("server", srv.Name()).Msg("server stopped")
	return nil
}

// Run builds the variant and serves it.
func Run(ctx context.Context, v servers.Variant, logger *common.Logger, in io.Reader, out io.Writer, opts ...server.StdioOption) error {
	srv, _ := Build(v, logger)
	return Serve(ctx, srv, logger, in, out, opts...)
}

// errorLogWriter routes the transport's standard library logger into ours.
type errorLogWriter struct {
	logger *common.Logger
}

func (w *errorLogWriter) Write(p []byte) (int, error) {
	w.logger.Warn().Str("source", "stdio").Msg(strings.TrimSpace(string(p)))
	return len(p), nil
}
