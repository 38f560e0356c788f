// Package main starts the genome gRPC service process lifecycle.
package main

import (
	"flag"
	"log"
	"os"

	"go.uber.org/zap"

	genomecmd "github.com/louisbranch/oripheon/internal/cmd/genome"
	entrypoint "github.com/louisbranch/oripheon/internal/platform/cmd"
)

func main() {
	cfg, err := genomecmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	logger, err := entrypoint.NewLogger(entrypoint.ServiceGenome)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := entrypoint.SignalContext()
	defer stop()

	if err := genomecmd.Run(ctx, cfg, logger); err != nil {
		logger.Fatal("failed to serve", zap.Error(err))
	}
}
