// Package logging builds the process zap logger.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/louisbranch/oripheon/internal/platform/config"
)

// Config selects the log level and encoding.
type Config struct {
	Level    string `env:"LOG_LEVEL" envDefault:"info"`
	Encoding string `env:"LOG_ENCODING" envDefault:"json"`
}

// LoadConfig reads logging settings from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// New builds a production logger named after service and installs it as the
// zap global so shared helpers can reach it.
func New(service string, cfg Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.TrimSpace(cfg.Level))
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	if enc := strings.TrimSpace(cfg.Encoding); enc != "" {
		zc.Encoding = enc
	}
	if zc.Encoding == "console" {
		zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	logger = logger.Named(service)
	zap.ReplaceGlobals(logger)
	return logger, nil
}

// Printf adapts logger to the printf-style callbacks used by the gRPC dial
// helpers.
func Printf(logger *zap.Logger) func(string, ...any) {
	if logger == nil {
		return nil
	}
	sugar := logger.Sugar()
	return func(format string, args ...any) {
		sugar.Infof(format, args...)
	}
}
