// Package main runs the local oripheon CLI.
package main

import (
	"os"

	oripheon "github.com/louisbranch/oripheon/internal/cmd/oripheon"
	entrypoint "github.com/louisbranch/oripheon/internal/platform/cmd"
)

func main() {
	ctx, stop := entrypoint.SignalContext()
	code := oripheon.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
