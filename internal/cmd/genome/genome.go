// Package genome parses genome service flags and launches the service.
package genome

import (
	"context"
	"flag"

	"go.uber.org/zap"

	entrypoint "github.com/louisbranch/oripheon/internal/platform/cmd"
	server "github.com/louisbranch/oripheon/internal/services/genome/app"
)

// Config holds genome command configuration.
type Config struct {
	Port int `env:"GENOME_PORT" envDefault:"8095"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The genome gRPC server port")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the genome gRPC API service.
func Run(ctx context.Context, cfg Config, logger *zap.Logger) error {
	options := entrypoint.RunOptions{Logger: logger}
	return entrypoint.Run(ctx, entrypoint.ServiceGenome, options, func(ctx context.Context) error {
		return server.Run(ctx, cfg.Port, logger)
	})
}
