// Package main fills a development genome store through the genome service.
package main

import (
	"flag"
	"fmt"
	"os"

	seedcmd "github.com/louisbranch/oripheon/internal/cmd/seed"
	entrypoint "github.com/louisbranch/oripheon/internal/platform/cmd"
)

func main() {
	cfg, err := seedcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := entrypoint.SignalContext()
	err = seedcmd.Run(ctx, cfg, os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
