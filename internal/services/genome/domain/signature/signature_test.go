package signature

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/louisbranch/oripheon/internal/services/genome/domain/archetype"
	"github.com/louisbranch/oripheon/internal/services/genome/domain/tables"
)

func tupleFor(a tables.Archetype) archetype.Tuple {
	return archetype.Tuple{
		Primary:    a,
		Secondary:  tables.NeutralSecondary(a),
		Position:   tables.PositionOf(a),
		Polarity:   tables.Energy(a),
		Trajectory: tables.TrajectoryOf(a),
		Camino:     tables.Caminos(a)[0],
	}
}

func TestDeriveIsPure(t *testing.T) {
	t.Parallel()

	for _, a := range tables.Archetypes {
		for _, g := range tables.Genders {
			first := Derive(tupleFor(a), g)
			second := Derive(tupleFor(a), g)
			if diff := cmp.Diff(first, second); diff != "" {
				t.Fatalf("%s/%s: signature mismatch (-first +second):\n%s", a, g, diff)
			}
		}
	}
}

func TestDeriveIgnoresCaminoAndSecondary(t *testing.T) {
	t.Parallel()

	base := tupleFor(tables.ArchetypeMagician)
	other := base
	other.Camino = tables.Caminos(tables.ArchetypeMagician)[2]
	other.Secondary = tables.ArchetypeCreator
	if diff := cmp.Diff(Derive(base, tables.GenderFemale), Derive(other, tables.GenderFemale)); diff != "" {
		t.Fatalf("signature depends on camino or secondary (-base +other):\n%s", diff)
	}
}

func TestDeriveFollowsTables(t *testing.T) {
	t.Parallel()

	hero := Derive(tupleFor(tables.ArchetypeHero), tables.GenderMale)
	if hero.Voice.Register != "tenor" {
		t.Fatalf("register = %q, want tenor", hero.Voice.Register)
	}
	if hero.Voice.Energy != 8 {
		t.Fatalf("energy = %d, want 8", hero.Voice.Energy)
	}
	if hero.Music.Tempo != 136 {
		t.Fatalf("tempo = %d, want 136", hero.Music.Tempo)
	}
	if hero.Visual.Finish != "burnished" || hero.Movement.Quality != "staccato" {
		t.Fatalf("hot archetype qualities = %q/%q", hero.Visual.Finish, hero.Movement.Quality)
	}
	if hero.Movement.Posture != "guarded" {
		t.Fatalf("posture = %q, want guarded", hero.Movement.Posture)
	}
	if hero.Visual.Glyph != "⚔" {
		t.Fatalf("glyph = %q", hero.Visual.Glyph)
	}

	innocent := Derive(tupleFor(tables.ArchetypeInnocent), tables.GenderFemale)
	if innocent.Voice.Register != "contralto" || innocent.Voice.Energy != 3 {
		t.Fatalf("innocent voice = %+v", innocent.Voice)
	}
	if innocent.Music.Tempo != 76 || innocent.Music.Meter != "3/4" {
		t.Fatalf("innocent music = %+v", innocent.Music)
	}
}

func TestHotArchetypesOutpaceCoolOnes(t *testing.T) {
	t.Parallel()

	for _, hot := range tables.Archetypes {
		if tables.Energy(hot) != tables.PolarityHot {
			continue
		}
		for _, cool := range tables.Archetypes {
			if tables.Energy(cool) != tables.PolarityCool || tables.TrajectoryOf(cool) != tables.TrajectoryOf(hot) {
				continue
			}
			h := Derive(tupleFor(hot), tables.GenderNonbinary)
			c := Derive(tupleFor(cool), tables.GenderNonbinary)
			if h.Voice.Energy <= c.Voice.Energy {
				t.Fatalf("%s energy %d <= %s energy %d", hot, h.Voice.Energy, cool, c.Voice.Energy)
			}
		}
	}
}

func TestDeriveReturnsIndependentSlices(t *testing.T) {
	t.Parallel()

	first := Derive(tupleFor(tables.ArchetypeSage), tables.GenderMale)
	first.Visual.Palette[0] = "#000000"
	second := Derive(tupleFor(tables.ArchetypeSage), tables.GenderMale)
	if second.Visual.Palette[0] == "#000000" {
		t.Fatal("expected palette to be copied per derivation")
	}
}
