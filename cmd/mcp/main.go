// Package main starts the MCP adapter on stdio or HTTP.
package main

import (
	"flag"
	"log"
	"os"

	"go.uber.org/zap"

	mcpcmd "github.com/louisbranch/oripheon/internal/cmd/mcp"
	entrypoint "github.com/louisbranch/oripheon/internal/platform/cmd"
)

func main() {
	cfg, err := mcpcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	// stdio carries the protocol, so logs always go to stderr.
	logger, err := entrypoint.NewLogger(entrypoint.ServiceMCP)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := entrypoint.SignalContext()
	defer stop()

	if err := mcpcmd.Run(ctx, cfg, logger); err != nil {
		logger.Fatal("failed to serve MCP", zap.Error(err))
	}
}
