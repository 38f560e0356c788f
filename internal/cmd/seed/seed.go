// Package seed parses seed command flags and fills a genome store through
// the genome service.
package seed

import (
	"context"
	"flag"
	"fmt"
	"io"

	entrypoint "github.com/louisbranch/oripheon/internal/platform/cmd"
	"github.com/louisbranch/oripheon/internal/tools/seed/generator"
)

// Config holds seed command configuration.
type Config struct {
	GenomeAddr string `env:"GENOME_ADDR" envDefault:"localhost:8095"`
	List       bool
	Preset     generator.Preset
	Seed       int64
	Genomes    int
	Verbose    bool
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	var preset string

	fs.StringVar(&cfg.GenomeAddr, "addr", cfg.GenomeAddr, "genome server address")
	fs.BoolVar(&cfg.Verbose, "v", false, "verbose output")
	fs.BoolVar(&cfg.List, "list", false, "list available presets")
	fs.StringVar(&preset, "preset", string(generator.PresetDemo), "generation preset (demo, variety, stress-test)")
	fs.Int64Var(&cfg.Seed, "seed", 0, "random seed for reproducibility (0 = random)")
	fs.IntVar(&cfg.Genomes, "genomes", 0, "number of genomes to generate (0 = use preset default)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.Preset = generator.Preset(preset)
	return cfg, nil
}

// Run executes the seed command.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}

	if cfg.List {
		fmt.Fprintln(out, "Available presets:")
		fmt.Fprintln(out, "  demo        - One genome per archetype, neighbours compared")
		fmt.Fprintln(out, "  variety     - 36 genomes cycling archetype, heritage and gender")
		fmt.Fprintln(out, "  stress-test - 500 genomes with no overrides")
		return nil
	}

	if _, err := generator.ParsePreset(string(cfg.Preset)); err != nil {
		return err
	}
	if cfg.Genomes < 0 {
		return fmt.Errorf("genomes must be zero or positive, got %d", cfg.Genomes)
	}

	return entrypoint.Run(ctx, entrypoint.ServiceSeed, entrypoint.RunOptions{}, func(ctx context.Context) error {
		gen, err := generator.New(ctx, generator.Config{
			GenomeAddr: cfg.GenomeAddr,
			Preset:     cfg.Preset,
			Seed:       cfg.Seed,
			Genomes:    cfg.Genomes,
			Verbose:    cfg.Verbose,
		}, out)
		if err != nil {
			return err
		}
		defer gen.Close()

		summary, err := gen.Run(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(errOut, "stored %d genome(s), %d comparison(s), %d repeated name(s)\n",
			summary.Generated, summary.Compared, summary.DuplicateNames)
		return nil
	})
}
