package disclosure

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	apperrors "github.com/louisbranch/oripheon/internal/platform/errors"
	"github.com/louisbranch/oripheon/internal/services/genome/domain/genome"
	"github.com/louisbranch/oripheon/internal/services/genome/domain/tables"
)

func heroGenome(t *testing.T, o genome.OverrideSet) genome.CharacterGenome {
	t.Helper()
	o.Archetype = tables.ArchetypeHero
	g, err := genome.Reroll(21, o)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	return g
}

func TestProjectTiers(t *testing.T) {
	t.Parallel()

	g := heroGenome(t, genome.OverrideSet{})

	symbol := Project(g, TierSymbol)
	if symbol.Glyph != "⚔" || symbol.Epithet != "the one who answers the call" {
		t.Fatalf("symbol = %+v", symbol)
	}
	if symbol.Camino != "" || symbol.Polarity != "" || symbol.Genome != nil {
		t.Fatalf("symbol tier leaked detail: %+v", symbol)
	}

	tooltip := Project(g, TierTooltip)
	if tooltip.Camino != g.Archetype.Camino || tooltip.Polarity != tables.PolarityHot || tooltip.Trajectory != tables.TrajectoryAscent {
		t.Fatalf("tooltip = %+v", tooltip)
	}
	if tooltip.Genome != nil {
		t.Fatal("tooltip tier leaked the full genome")
	}

	full := Project(g, TierFull)
	if full.Genome == nil {
		t.Fatal("full tier missing genome")
	}
	if diff := cmp.Diff(g, *full.Genome); diff != "" {
		t.Fatalf("full genome mismatch (-want +got):\n%s", diff)
	}

	if got := Project(g, Tier("secret")); got.Tier != TierSymbol || got.Camino != "" {
		t.Fatalf("unknown tier projection = %+v", got)
	}
}

func TestDiscloseRejectsUnknownTier(t *testing.T) {
	t.Parallel()

	g := heroGenome(t, genome.OverrideSet{})
	if _, err := Disclose(g, "tooltip"); err != nil {
		t.Fatalf("disclose tooltip: %v", err)
	}
	_, err := Disclose(g, "everything")
	if !apperrors.IsCode(err, apperrors.CodeGenomeUnknownTier) {
		t.Fatalf("error = %v, want %s", err, apperrors.CodeGenomeUnknownTier)
	}
}

func TestProjectionsDoNotMutate(t *testing.T) {
	t.Parallel()

	g := heroGenome(t, genome.OverrideSet{})
	before, err := ExportJSON(g)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	full := Project(g, TierFull)
	full.Genome.Name.DisplayName = "changed"
	full.Genome.Archetype.Camino = "changed"
	_ = Summary(g, "es-ES")
	_ = SystemPrompt(g)

	after, err := ExportJSON(g)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if string(before) != string(after) {
		t.Fatal("projection mutated the genome")
	}
}

func TestStructuredExports(t *testing.T) {
	t.Parallel()

	g := heroGenome(t, genome.OverrideSet{})

	raw, err := Export(g, "json", "")
	if err != nil {
		t.Fatalf("export json: %v", err)
	}
	var decoded genome.CharacterGenome
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if diff := cmp.Diff(g, decoded); diff != "" {
		t.Fatalf("json export mismatch (-want +got):\n%s", diff)
	}

	raw, err = Export(g, "yaml", "")
	if err != nil {
		t.Fatalf("export yaml: %v", err)
	}
	if !strings.Contains(raw, "primary_archetype: hero") {
		t.Fatalf("yaml export missing primary archetype:\n%s", raw)
	}
	var fromYAML genome.CharacterGenome
	if err := yaml.Unmarshal([]byte(raw), &fromYAML); err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	if fromYAML.ID != g.ID || fromYAML.Name.DisplayName != g.Name.DisplayName {
		t.Fatalf("yaml decoded id/name = %q/%q", fromYAML.ID, fromYAML.Name.DisplayName)
	}

	_, err = Export(g, "xml", "")
	if !apperrors.IsCode(err, apperrors.CodeGenomeUnknownFormat) {
		t.Fatalf("error = %v, want %s", err, apperrors.CodeGenomeUnknownFormat)
	}
}

func TestSummaryLocales(t *testing.T) {
	t.Parallel()

	g := heroGenome(t, genome.OverrideSet{})

	en := Summary(g, "en-US")
	if !strings.HasPrefix(en, g.Name.DisplayName+", the one who answers the call, climbs the "+g.Archetype.Camino) {
		t.Fatalf("en summary = %q", en)
	}
	if !strings.Contains(en, "Their arc is one of ascent; their energy runs hot from the seat of gevurah.") {
		t.Fatalf("en summary arc = %q", en)
	}
	if !strings.Contains(en, "They carry "+g.Relic.Pseudonym) {
		t.Fatalf("en summary relic = %q", en)
	}

	es := Summary(g, "es")
	if !strings.Contains(es, "quien responde a la llamada") || !strings.Contains(es, "Lleva «"+g.Relic.Pseudonym+"»") {
		t.Fatalf("es summary = %q", es)
	}

	if fallback := Summary(g, "fr-FR"); fallback != en {
		t.Fatalf("fr-FR summary = %q, want en-US fallback %q", fallback, en)
	}
}

func TestSpanishSummaryQuotesRelicLore(t *testing.T) {
	t.Parallel()

	checked := 0
	for seed := int64(0); seed < 40; seed++ {
		g, err := genome.GenerateWithSeed(seed)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if g.Relic == nil {
			continue
		}
		es := Summary(g, "es-ES")
		for _, lore := range []string{g.Relic.Pseudonym, g.Relic.Origin} {
			if !strings.Contains(es, "«"+lore+"»") {
				t.Fatalf("seed %d: es summary %q does not quote %q", seed, es, lore)
			}
		}
		if strings.Contains(es, string(g.Relic.Category)+")") || strings.Contains(es, "un objeto") {
			t.Fatalf("seed %d: es summary %q splices the raw category", seed, es)
		}
		checked++
	}
	if checked == 0 {
		t.Fatal("no seed produced a relic")
	}
}

func TestSummaryWithoutRelic(t *testing.T) {
	t.Parallel()

	off := false
	g := heroGenome(t, genome.OverrideSet{HasRelic: &off})
	if got := Summary(g, "en-US"); !strings.HasSuffix(got, "They carry no relic.") {
		t.Fatalf("summary = %q", got)
	}
	if got := Summary(g, "es-ES"); !strings.HasSuffix(got, "No lleva ninguna reliquia.") {
		t.Fatalf("summary = %q", got)
	}
	if strings.Contains(SystemPrompt(g), "Relic:") {
		t.Fatal("system prompt describes a missing relic")
	}
}

func TestSystemPromptEncodesMarkers(t *testing.T) {
	t.Parallel()

	g := heroGenome(t, genome.OverrideSet{})
	prompt := SystemPrompt(g)

	if !strings.HasPrefix(prompt, "You are ⚔ "+g.Name.DisplayName) {
		t.Fatalf("prompt opening = %q", strings.SplitN(prompt, "\n", 2)[0])
	}
	if !strings.Contains(prompt, g.Markers.Checksum) {
		t.Fatal("prompt missing checksum")
	}
	for _, c := range g.Markers.Constraints {
		if !strings.Contains(prompt, c.Rule) {
			t.Fatalf("prompt missing constraint %s: %q", c.Key, c.Rule)
		}
	}
	if !strings.Contains(prompt, g.Relic.SampleText) {
		t.Fatal("prompt missing relic sample text")
	}
}
