package tables

import (
	"strings"
	"testing"
)

func TestArchetypeProfilesAreComplete(t *testing.T) {
	t.Parallel()

	if len(archetypeProfiles) != len(Archetypes) {
		t.Fatalf("profiles = %d, want %d", len(archetypeProfiles), len(Archetypes))
	}
	for _, a := range Archetypes {
		p, ok := Profile(a)
		if !ok {
			t.Fatalf("missing profile for %s", a)
		}
		if _, ok := positionPillars[p.Position]; !ok {
			t.Fatalf("%s: position %q has no pillar", a, p.Position)
		}
		if _, ok := generating[p.Element]; !ok {
			t.Fatalf("%s: unknown element %q", a, p.Element)
		}
		if p.Polarity != PolarityHot && p.Polarity != PolarityCool {
			t.Fatalf("%s: polarity = %q", a, p.Polarity)
		}
		if _, ok := energyShift[p.Trajectory]; !ok {
			t.Fatalf("%s: unknown trajectory %q", a, p.Trajectory)
		}
		if !IsArchetype(p.Growth) || p.Growth == a {
			t.Fatalf("%s: growth arrow = %q", a, p.Growth)
		}
		if !IsArchetype(p.Stress) || p.Stress == a {
			t.Fatalf("%s: stress arrow = %q", a, p.Stress)
		}
		if p.SacredNumber <= 0 {
			t.Fatalf("%s: sacred number = %d", a, p.SacredNumber)
		}
		if p.Glyph == "" || p.Epithet == "" || p.VoiceFamily == "" {
			t.Fatalf("%s: glyph, epithet and voice family are required", a)
		}
		if len(p.Caminos) == 0 {
			t.Fatalf("%s: no caminos", a)
		}
	}
}

func TestCaminosBelongToOneArchetype(t *testing.T) {
	t.Parallel()

	owner := map[string]Archetype{}
	for _, a := range Archetypes {
		for _, c := range Caminos(a) {
			if prev, ok := owner[c]; ok {
				t.Fatalf("camino %q owned by %s and %s", c, prev, a)
			}
			owner[c] = a
			if !HasCamino(a, c) {
				t.Fatalf("HasCamino(%s, %q) = false", a, c)
			}
		}
	}
}

func TestCaminosReturnsCopy(t *testing.T) {
	t.Parallel()

	c := Caminos(ArchetypeHero)
	c[0] = "mutated"
	if Caminos(ArchetypeHero)[0] == "mutated" {
		t.Fatal("expected Caminos to return a copy")
	}
}

func TestSecondaryTablesCanResolve(t *testing.T) {
	t.Parallel()

	for _, a := range Archetypes {
		other := false
		for _, option := range SecondaryWeights(a) {
			if !IsArchetype(option.Value) {
				t.Fatalf("%s: unknown secondary %q", a, option.Value)
			}
			if option.Value != a && option.Weight > 0 {
				other = true
			}
		}
		if !other {
			t.Fatalf("%s: secondary table only yields the primary", a)
		}
		if NeutralSecondary(a) == a {
			t.Fatalf("%s: neutral secondary equals primary", a)
		}
	}
}

func TestHeritageWeightsCoverEveryArchetype(t *testing.T) {
	t.Parallel()

	for _, h := range Heritages {
		options := ArchetypeWeights(h)
		if len(options) != len(Archetypes) {
			t.Fatalf("%s: options = %d, want %d", h, len(options), len(Archetypes))
		}
		for i, option := range options {
			if option.Value != Archetypes[i] {
				t.Fatalf("%s[%d] = %s, want %s", h, i, option.Value, Archetypes[i])
			}
			if option.Weight <= 0 {
				t.Fatalf("%s: %s has weight %d", h, option.Value, option.Weight)
			}
		}
	}
	if ArchetypeWeights("atlantean") != nil {
		t.Fatal("expected nil weights for unknown heritage")
	}
}

func TestSyllablePoolsAreLowercaseASCII(t *testing.T) {
	t.Parallel()

	for _, h := range Heritages {
		pool, ok := Syllables(h)
		if !ok {
			t.Fatalf("missing syllables for %s", h)
		}
		groups := map[string][]string{
			"prefixes": pool.Prefixes,
			"cores":    pool.Cores,
			"suffixes": pool.Suffixes,
			"roots":    pool.SurnameRoots,
			"endings":  pool.SurnameEndings,
		}
		for name, group := range groups {
			if len(group) == 0 {
				t.Fatalf("%s: empty %s", h, name)
			}
			for _, s := range group {
				if s == "" || strings.Trim(s, "abcdefghijklmnopqrstuvwxyz") != "" {
					t.Fatalf("%s %s: %q is not lowercase ascii", h, name, s)
				}
			}
		}
	}
}

func TestElementCycles(t *testing.T) {
	t.Parallel()

	elements := []Element{ElementWood, ElementFire, ElementEarth, ElementMetal, ElementWater}
	for _, from := range elements {
		generates, overcomes := 0, 0
		for _, to := range elements {
			if Generates(from, to) {
				generates++
			}
			if Overcomes(from, to) {
				overcomes++
			}
			if Generates(from, to) && Overcomes(from, to) {
				t.Fatalf("%s both generates and overcomes %s", from, to)
			}
		}
		if generates != 1 || overcomes != 1 {
			t.Fatalf("%s: generates %d, overcomes %d, want 1 each", from, generates, overcomes)
		}
	}
	if !Generates(ElementMetal, ElementWater) {
		t.Fatal("expected metal to generate water")
	}
	if !Overcomes(ElementWater, ElementFire) {
		t.Fatal("expected water to overcome fire")
	}
}

func TestRelicCategoriesHaveEraAndLore(t *testing.T) {
	t.Parallel()

	for _, c := range RelicCategories {
		p, ok := Relic(c)
		if !ok {
			t.Fatalf("missing relic profile for %s", c)
		}
		if p.Object == "" || len(p.Eras) == 0 || len(p.Origins) == 0 || len(p.Pseudonyms) == 0 {
			t.Fatalf("%s: incomplete profile %+v", c, p)
		}
		for _, e := range p.Eras {
			if !IsEra(e) {
				t.Fatalf("%s: unknown era %q", c, e)
			}
		}
	}
	for _, e := range Eras {
		if len(CategoriesForEra(e)) == 0 {
			t.Fatalf("era %s has no categories", e)
		}
	}
}

func TestEveryArchetypeHasSampleTemplates(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for _, tpl := range SampleTemplates() {
		if seen[tpl.ID] {
			t.Fatalf("duplicate template id %q", tpl.ID)
		}
		seen[tpl.ID] = true
		for _, placeholder := range []string{"{pseudonym}", "{object}", "{number}"} {
			if !strings.Contains(tpl.Text, placeholder) {
				t.Fatalf("%s: missing %s", tpl.ID, placeholder)
			}
		}
	}
	for _, a := range Archetypes {
		pool := TemplatesFor(a)
		if len(pool) == 0 {
			t.Fatalf("%s has no templates", a)
		}
		for _, tpl := range pool {
			if !tpl.TaggedWith(a) {
				t.Fatalf("%s: template %s not tagged", a, tpl.ID)
			}
		}
	}
}

func TestTemplateRender(t *testing.T) {
	t.Parallel()

	tpl, ok := Template("tpl-ruler-crown")
	if !ok {
		t.Fatal("expected tpl-ruler-crown")
	}
	got := tpl.Render("Side B", "mixtape", 10)
	want := "Side B has outlasted 10 councils. an mixtape does not need a vote."
	if got != want {
		t.Fatalf("render = %q, want %q", got, want)
	}
}

func TestSignatureTablesAreComplete(t *testing.T) {
	t.Parallel()

	for _, a := range Archetypes {
		p, _ := Profile(a)
		if len(Palette(a)) == 0 || len(Gestures(a)) == 0 {
			t.Fatalf("%s: missing palette or gestures", a)
		}
		if len(Motifs(p.Position)) == 0 || Mode(p.Position) == "" {
			t.Fatalf("%s: missing motifs or mode for %s", a, p.Position)
		}
		if Timbre(p.Element) == "" || len(Instrumentation(p.Element)) == 0 {
			t.Fatalf("%s: missing timbre or instruments for %s", a, p.Element)
		}
		if Meter(p.Trajectory) == "" || Spatial(p.Trajectory) == "" {
			t.Fatalf("%s: missing meter or spatial for %s", a, p.Trajectory)
		}
		if Posture(PillarOf(p.Position)) == "" {
			t.Fatalf("%s: missing posture", a)
		}
		for _, g := range Genders {
			if VoiceRegister(g, p.Polarity) == "" {
				t.Fatalf("%s/%s: missing voice register", a, g)
			}
		}
	}
}

func TestHotArchetypesCarryMoreEnergy(t *testing.T) {
	t.Parallel()

	for _, tr := range []Trajectory{TrajectoryAscent, TrajectoryDescent, TrajectoryReturn, TrajectoryTransformation} {
		hot := EnergyLevel(PolarityHot, tr)
		cool := EnergyLevel(PolarityCool, tr)
		if hot <= cool {
			t.Fatalf("%s: hot energy %d <= cool energy %d", tr, hot, cool)
		}
		if Tempo(PolarityHot, tr) <= Tempo(PolarityCool, tr) {
			t.Fatalf("%s: hot tempo not above cool", tr)
		}
	}
}
