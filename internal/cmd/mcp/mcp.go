// Package mcp configures the MCP adapter command.
package mcp

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"go.uber.org/zap"

	entrypoint "github.com/louisbranch/oripheon/internal/platform/cmd"
	mcpservice "github.com/louisbranch/oripheon/internal/services/mcp/service"
)

// Config is read from ORIPHEON_* variables, then flags.
type Config struct {
	GenomeAddr string                   `env:"GENOME_ADDR"   envDefault:"localhost:8095"`
	HTTPAddr   string                   `env:"MCP_HTTP_ADDR" envDefault:"localhost:8097"`
	Transport  mcpservice.TransportKind `env:"MCP_TRANSPORT" envDefault:"stdio"`
}

// ParseConfig parses environment and flags into a Config and checks the
// transport name.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	transport := string(cfg.Transport)
	fs.StringVar(&cfg.GenomeAddr, "addr", cfg.GenomeAddr, "genome server address")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "listen address for the http transport")
	fs.StringVar(&transport, "transport", transport, "stdio or http")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}

	cfg.Transport = mcpservice.TransportKind(strings.ToLower(strings.TrimSpace(transport)))
	switch cfg.Transport {
	case mcpservice.TransportStdio, mcpservice.TransportHTTP:
		return cfg, nil
	default:
		return Config{}, fmt.Errorf("transport %q is not supported (stdio, http)", transport)
	}
}

// Run serves MCP until ctx ends, with tracing set up around it.
func Run(ctx context.Context, cfg Config, logger *zap.Logger) error {
	return entrypoint.Run(ctx, entrypoint.ServiceMCP, entrypoint.RunOptions{Logger: logger}, func(ctx context.Context) error {
		return mcpservice.Run(ctx, mcpservice.Config{
			GenomeAddr: cfg.GenomeAddr,
			Transport:  cfg.Transport,
			HTTPAddr:   cfg.HTTPAddr,
			Logger:     logger,
		})
	})
}
