// Package cmd holds the startup steps shared by every oripheon command:
// env-then-flag configuration, the process logger, signal handling and
// tracing around the run loop.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/louisbranch/oripheon/internal/platform/config"
	"github.com/louisbranch/oripheon/internal/platform/logging"
	"github.com/louisbranch/oripheon/internal/platform/otel"
)

const defaultOTelShutdownTimeout = 5 * time.Second

// Service names used for loggers and trace resources.
const (
	ServiceGenome = "genome"
	ServiceMCP    = "mcp"
	ServiceSeed   = "seed"
)

// RunOptions controls shared entrypoint behavior for service commands.
type RunOptions struct {
	// ShutdownTimeout bounds the final span flush.
	ShutdownTimeout time.Duration
	// Logger receives telemetry shutdown failures. Defaults to zap.L().
	Logger *zap.Logger
}

// ParseConfig loads environment defaults into cfg. Commands register flags
// with these defaults and then call ParseArgs.
func ParseConfig[T any](cfg *T) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	return config.ParseEnv(cfg)
}

// ParseArgs parses command-line flags.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// NewLogger builds the logger for service from ORIPHEON_LOG_* settings.
func NewLogger(service string) (*zap.Logger, error) {
	cfg, err := logging.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("parse log config: %w", err)
	}
	return logging.New(service, cfg)
}

// SignalContext is canceled on SIGINT or SIGTERM.
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// Run sets up tracing for service, executes run and flushes spans when it
// returns.
func Run(ctx context.Context, service string, options RunOptions, run func(context.Context) error) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return fmt.Errorf("service name is required")
	}
	if run == nil {
		return fmt.Errorf("run function is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	logger := options.Logger
	if logger == nil {
		logger = zap.L()
	}
	shutdown, err := otel.Setup(ctx, service)
	if err != nil {
		return err
	}
	defer func() {
		timeout := options.ShutdownTimeout
		if timeout <= 0 {
			timeout = defaultOTelShutdownTimeout
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			logger.Warn("otel shutdown", zap.String("service", service), zap.Error(err))
		}
	}()
	return run(ctx)
}
