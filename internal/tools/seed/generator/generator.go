// Package generator bulk-generates genomes through the genome service so a
// development store has a predictable population to browse and compare.
package generator

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"google.golang.org/grpc"

	platformgrpc "github.com/louisbranch/oripheon/internal/platform/grpc"
	"github.com/louisbranch/oripheon/internal/platform/timeouts"
	genomeservice "github.com/louisbranch/oripheon/internal/services/genome/api/grpc/genome"
	"github.com/louisbranch/oripheon/internal/services/genome/domain/compat"
	"github.com/louisbranch/oripheon/internal/services/genome/domain/genome"
	"github.com/louisbranch/oripheon/internal/services/genome/domain/tables"
)

// Preset names a population shape.
type Preset string

const (
	// PresetDemo stores one genome per archetype and compares neighbours.
	PresetDemo Preset = "demo"
	// PresetVariety cycles archetypes, heritages and genders.
	PresetVariety Preset = "variety"
	// PresetStressTest stores many genomes with no overrides.
	PresetStressTest Preset = "stress-test"
)

// Presets lists every preset in display order.
var Presets = []Preset{PresetDemo, PresetVariety, PresetStressTest}

// PresetConfig is the population a preset produces.
type PresetConfig struct {
	Genomes int
	// PinArchetype cycles the archetype override through every archetype.
	PinArchetype bool
	// VaryHeritage also cycles heritage, gender and relic overrides.
	VaryHeritage bool
	// CompareNeighbours compares each genome with the one stored before it.
	CompareNeighbours bool
}

// GetPresetConfig returns the configuration for preset. Unknown presets fall
// back to demo.
func GetPresetConfig(preset Preset) PresetConfig {
	switch preset {
	case PresetVariety:
		return PresetConfig{Genomes: 36, PinArchetype: true, VaryHeritage: true, CompareNeighbours: true}
	case PresetStressTest:
		return PresetConfig{Genomes: 500}
	default:
		return PresetConfig{Genomes: len(tables.Archetypes), PinArchetype: true, CompareNeighbours: true}
	}
}

// ParsePreset validates a preset name.
func ParsePreset(value string) (Preset, error) {
	for _, p := range Presets {
		if string(p) == value {
			return p, nil
		}
	}
	names := make([]string, len(Presets))
	for i, p := range Presets {
		names[i] = string(p)
	}
	return "", fmt.Errorf("unknown preset %q (valid presets: %s)", value, strings.Join(names, ", "))
}

// Config holds configuration for the generator.
type Config struct {
	GenomeAddr string
	Preset     Preset
	Seed       int64
	Genomes    int // Override preset's genome count (0 = use preset default)
	Verbose    bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		GenomeAddr: "localhost:8095",
		Preset:     PresetDemo,
	}
}

// genomeClient is the subset of GenomeServiceClient used by Generator.
type genomeClient interface {
	Reroll(ctx context.Context, in *genomeservice.RerollRequest, opts ...grpc.CallOption) (*genomeservice.GenomeResponse, error)
	Compare(ctx context.Context, in *genomeservice.CompareRequest, opts ...grpc.CallOption) (*genomeservice.CompareResponse, error)
}

// Summary reports what a run stored.
type Summary struct {
	Generated      int
	Compared       int
	Labels         map[compat.Label]int
	DuplicateNames int
}

// Generator orchestrates genome generation.
type Generator struct {
	config Config
	rng    *rand.Rand
	names  *nameRegistry
	conn   *grpc.ClientConn
	client genomeClient
	out    io.Writer
}

// newGenerator constructs a Generator from pre-built dependencies.
// Used by tests to inject fakes without establishing gRPC connections.
func newGenerator(cfg Config, rng *rand.Rand, client genomeClient, out io.Writer) *Generator {
	if out == nil {
		out = io.Discard
	}
	return &Generator{
		config: cfg,
		rng:    rng,
		names:  newNameRegistry(),
		client: client,
		out:    out,
	}
}

// New dials the genome service and waits for it to report SERVING.
func New(ctx context.Context, cfg Config, out io.Writer) (*Generator, error) {
	if out == nil {
		out = io.Discard
	}
	rng := NewSeededRNG(cfg.Seed, cfg.Verbose)

	addr := strings.TrimSpace(cfg.GenomeAddr)
	if addr == "" {
		return nil, fmt.Errorf("genome server address is required")
	}
	if cfg.Verbose {
		fmt.Fprintf(os.Stderr, "Connecting to genome server at %s (waiting for server to be ready)...\n", addr)
	}

	var logf func(string, ...any)
	if cfg.Verbose {
		logf = func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}
	}
	conn, err := platformgrpc.DialWithHealth(ctx, nil, addr, genomeservice.ServiceName, timeouts.GRPCDial, logf, platformgrpc.DefaultClientDialOptions()...)
	if err != nil {
		return nil, fmt.Errorf("connect to genome server: %w", err)
	}

	gen := newGenerator(cfg, rng, genomeservice.NewClient(conn), out)
	gen.conn = conn
	return gen, nil
}

// NewSeededRNG returns a generator seeded with seed, or with the clock when
// seed is zero. The chosen seed is printed in verbose mode so a run can be
// repeated.
func NewSeededRNG(seed int64, verbose bool) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Using seed %d\n", seed)
	}
	return rand.New(rand.NewSource(seed))
}

// Close releases resources held by the generator.
func (g *Generator) Close() error {
	if g.conn != nil {
		return g.conn.Close()
	}
	return nil
}

// Run stores the configured population and reports what it stored.
func (g *Generator) Run(ctx context.Context) (Summary, error) {
	presetCfg := GetPresetConfig(g.config.Preset)

	numGenomes := presetCfg.Genomes
	if g.config.Genomes > 0 {
		numGenomes = g.config.Genomes
	}

	if g.config.Verbose {
		fmt.Fprintf(os.Stderr, "Running preset %q: %d genome(s)\n", g.config.Preset, numGenomes)
	}

	summary := Summary{Labels: make(map[compat.Label]int)}
	var previous string
	for i := 0; i < numGenomes; i++ {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		created, err := g.generateGenome(ctx, i, presetCfg)
		if err != nil {
			return summary, fmt.Errorf("generate genome %d: %w", i+1, err)
		}
		summary.Generated++
		if g.names.observe(created.Name.DisplayName) > 1 {
			summary.DuplicateNames++
		}
		fmt.Fprintf(g.out, "%s\t%s\t%s\n", created.ID, created.Archetype.Primary, created.Name.DisplayName)

		if presetCfg.CompareNeighbours && previous != "" {
			label, err := g.compare(ctx, previous, created.ID)
			if err != nil {
				return summary, fmt.Errorf("compare genome %d: %w", i+1, err)
			}
			summary.Compared++
			summary.Labels[label]++
		}
		previous = created.ID
	}

	if g.config.Verbose {
		fmt.Fprintf(os.Stderr, "Generation complete: %d genome(s) stored, %d comparison(s)\n",
			summary.Generated, summary.Compared)
	}
	return summary, nil
}

func (g *Generator) generateGenome(ctx context.Context, index int, cfg PresetConfig) (genome.CharacterGenome, error) {
	callCtx, cancel := context.WithTimeout(ctx, timeouts.GenomeCall)
	defer cancel()

	resp, err := g.client.Reroll(callCtx, &genomeservice.RerollRequest{
		Seed:      g.rng.Int63(),
		Overrides: g.overridesFor(index, cfg),
		Persist:   true,
	})
	if err != nil {
		return genome.CharacterGenome{}, err
	}
	if resp == nil {
		return genome.CharacterGenome{}, fmt.Errorf("reroll response is missing")
	}
	return resp.Genome, nil
}

func (g *Generator) compare(ctx context.Context, source, target string) (compat.Label, error) {
	callCtx, cancel := context.WithTimeout(ctx, timeouts.GenomeCall)
	defer cancel()

	resp, err := g.client.Compare(callCtx, &genomeservice.CompareRequest{
		Source: genomeservice.GenomeRef{GenomeID: source},
		Target: genomeservice.GenomeRef{GenomeID: target},
	})
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", fmt.Errorf("compare response is missing")
	}
	return resp.Result.Label, nil
}

// overridesFor pins the parts of genome index that the preset cycles.
func (g *Generator) overridesFor(index int, cfg PresetConfig) genome.OverrideSet {
	var o genome.OverrideSet
	if cfg.PinArchetype {
		o.Archetype = tables.Archetypes[index%len(tables.Archetypes)]
	}
	if cfg.VaryHeritage {
		o.Heritage = tables.Heritages[index%len(tables.Heritages)]
		o.Gender = tables.Genders[index%len(tables.Genders)]
		if index%5 == 4 {
			off := false
			o.HasRelic = &off
		}
	}
	return o
}
