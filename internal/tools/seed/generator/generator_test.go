package generator

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"google.golang.org/grpc"

	genomeservice "github.com/louisbranch/oripheon/internal/services/genome/api/grpc/genome"
	"github.com/louisbranch/oripheon/internal/services/genome/domain/compat"
	"github.com/louisbranch/oripheon/internal/services/genome/domain/genome"
	"github.com/louisbranch/oripheon/internal/services/genome/domain/tables"
)

type fakeGenomeClient struct {
	stored    map[string]genome.CharacterGenome
	rerolls   []*genomeservice.RerollRequest
	compares  int
	rerollErr error
}

func newFakeGenomeClient() *fakeGenomeClient {
	return &fakeGenomeClient{stored: make(map[string]genome.CharacterGenome)}
}

func (f *fakeGenomeClient) Reroll(_ context.Context, in *genomeservice.RerollRequest, _ ...grpc.CallOption) (*genomeservice.GenomeResponse, error) {
	if f.rerollErr != nil {
		return nil, f.rerollErr
	}
	f.rerolls = append(f.rerolls, in)
	g, err := genome.Reroll(in.Seed, in.Overrides)
	if err != nil {
		return nil, err
	}
	f.stored[g.ID] = g
	return &genomeservice.GenomeResponse{Genome: g, Seed: in.Seed}, nil
}

func (f *fakeGenomeClient) Compare(_ context.Context, in *genomeservice.CompareRequest, _ ...grpc.CallOption) (*genomeservice.CompareResponse, error) {
	f.compares++
	a, ok := f.stored[in.Source.GenomeID]
	if !ok {
		return nil, errors.New("source not stored")
	}
	b, ok := f.stored[in.Target.GenomeID]
	if !ok {
		return nil, errors.New("target not stored")
	}
	res, err := compat.Compare(a, b, nil)
	if err != nil {
		return nil, err
	}
	return &genomeservice.CompareResponse{Result: res}, nil
}

func TestNewSeededRNGDeterministic(t *testing.T) {
	first := NewSeededRNG(42, false)
	second := NewSeededRNG(42, false)

	if first.Int63() != second.Int63() {
		t.Fatal("expected deterministic RNG for same seed")
	}
	if first.Int63() != second.Int63() {
		t.Fatal("expected deterministic RNG sequence for same seed")
	}
}

func TestParsePreset(t *testing.T) {
	for _, p := range Presets {
		got, err := ParsePreset(string(p))
		if err != nil || got != p {
			t.Fatalf("ParsePreset(%q) = %q, %v", p, got, err)
		}
	}
	_, err := ParsePreset("session-heavy")
	if err == nil || !strings.Contains(err.Error(), "demo, variety, stress-test") {
		t.Fatalf("error = %v", err)
	}
}

func TestGetPresetConfig(t *testing.T) {
	if got := GetPresetConfig(PresetDemo).Genomes; got != len(tables.Archetypes) {
		t.Fatalf("demo genomes = %d, want %d", got, len(tables.Archetypes))
	}
	if cfg := GetPresetConfig(PresetStressTest); cfg.PinArchetype || cfg.CompareNeighbours {
		t.Fatalf("stress-test config = %+v", cfg)
	}
	if GetPresetConfig("unknown") != GetPresetConfig(PresetDemo) {
		t.Fatal("unknown preset should fall back to demo")
	}
}

func TestRunDemoCoversEveryArchetype(t *testing.T) {
	client := newFakeGenomeClient()
	var out bytes.Buffer
	gen := newGenerator(Config{Preset: PresetDemo}, rand.New(rand.NewSource(7)), client, &out)

	summary, err := gen.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Generated != len(tables.Archetypes) {
		t.Fatalf("generated = %d, want %d", summary.Generated, len(tables.Archetypes))
	}
	if summary.Compared != len(tables.Archetypes)-1 || client.compares != summary.Compared {
		t.Fatalf("compared = %d (client %d), want %d", summary.Compared, client.compares, len(tables.Archetypes)-1)
	}
	labelTotal := 0
	for _, n := range summary.Labels {
		labelTotal += n
	}
	if labelTotal != summary.Compared {
		t.Fatalf("label total = %d, want %d", labelTotal, summary.Compared)
	}

	seen := make(map[tables.Archetype]bool)
	for _, g := range client.stored {
		seen[g.Archetype.Primary] = true
	}
	for _, a := range tables.Archetypes {
		if !seen[a] {
			t.Fatalf("archetype %s not generated", a)
		}
	}
	for _, req := range client.rerolls {
		if !req.Persist {
			t.Fatal("seed run must persist genomes")
		}
	}
	if lines := strings.Count(out.String(), "\n"); lines != summary.Generated {
		t.Fatalf("output lines = %d, want %d", lines, summary.Generated)
	}
}

func TestRunIsReproducible(t *testing.T) {
	run := func() []string {
		client := newFakeGenomeClient()
		var out bytes.Buffer
		gen := newGenerator(Config{Preset: PresetVariety, Genomes: 10}, NewSeededRNG(99, false), client, &out)
		if _, err := gen.Run(context.Background()); err != nil {
			t.Fatalf("run: %v", err)
		}
		return strings.Split(out.String(), "\n")
	}
	first, second := run(), run()
	if strings.Join(first, "\n") != strings.Join(second, "\n") {
		t.Fatalf("runs differ:\n%v\n%v", first, second)
	}
}

func TestVarietyOverrides(t *testing.T) {
	gen := newGenerator(Config{}, rand.New(rand.NewSource(1)), nil, nil)
	cfg := GetPresetConfig(PresetVariety)

	o := gen.overridesFor(4, cfg)
	if o.Archetype != tables.Archetypes[4] || o.Heritage != tables.Heritages[4%len(tables.Heritages)] {
		t.Fatalf("overrides = %+v", o)
	}
	if o.HasRelic == nil || *o.HasRelic {
		t.Fatal("every fifth variety genome should carry no relic")
	}
	if err := o.Validate(); err != nil {
		t.Fatalf("variety overrides invalid: %v", err)
	}

	if o := gen.overridesFor(3, GetPresetConfig(PresetStressTest)); o != (genome.OverrideSet{}) {
		t.Fatalf("stress-test overrides = %+v, want none", o)
	}
}

func TestRunStopsOnError(t *testing.T) {
	client := newFakeGenomeClient()
	client.rerollErr = errors.New("unavailable")
	gen := newGenerator(Config{Preset: PresetDemo}, rand.New(rand.NewSource(1)), client, nil)

	summary, err := gen.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "generate genome 1") {
		t.Fatalf("error = %v", err)
	}
	if summary.Generated != 0 {
		t.Fatalf("generated = %d, want 0", summary.Generated)
	}
}

func TestRunHonorsCanceledContext(t *testing.T) {
	client := newFakeGenomeClient()
	gen := newGenerator(Config{Preset: PresetStressTest}, rand.New(rand.NewSource(1)), client, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := gen.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if len(client.rerolls) != 0 {
		t.Fatalf("rerolls = %d, want 0", len(client.rerolls))
	}
}

func TestNameRegistryCountsCollisions(t *testing.T) {
	r := newNameRegistry()
	if got := r.observe("Ada"); got != 1 {
		t.Fatalf("first observe = %d, want 1", got)
	}
	if got := r.observe(" Ada "); got != 2 {
		t.Fatalf("second observe = %d, want 2", got)
	}
	if got := r.observe("ADA"); got != 3 {
		t.Fatalf("folded observe = %d, want 3", got)
	}
	if got := r.observe(""); got != 0 {
		t.Fatalf("empty observe = %d, want 0", got)
	}
}

func TestNewRequiresAddress(t *testing.T) {
	if _, err := New(context.Background(), Config{GenomeAddr: " ", Seed: 1}, nil); err == nil {
		t.Fatal("expected address error")
	}
}
