// Package config loads process configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every env tag, so `env:"GENOME_PORT"` reads
// ORIPHEON_GENOME_PORT.
const EnvPrefix = "ORIPHEON_"

// ParseEnv loads configuration from prefixed environment variables.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
