// Package genome assembles character genomes and exposes the generation entry
// points.
//
// Assemble is the only producer of CharacterGenome. It re-checks every
// correspondence before returning, so projections downstream of a successful
// assembly never see an inconsistent genome.
package genome

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	apperrors "github.com/louisbranch/oripheon/internal/platform/errors"
	"github.com/louisbranch/oripheon/internal/platform/id"
	"github.com/louisbranch/oripheon/internal/services/genome/domain/archetype"
	"github.com/louisbranch/oripheon/internal/services/genome/domain/naming"
	"github.com/louisbranch/oripheon/internal/services/genome/domain/relic"
	"github.com/louisbranch/oripheon/internal/services/genome/domain/signature"
	"github.com/louisbranch/oripheon/internal/services/genome/domain/tables"
)

// CharacterGenome is the assembled, immutable character record.
type CharacterGenome struct {
	ID         string               `json:"id" yaml:"id"`
	Seed       int64                `json:"seed" yaml:"seed"`
	Overrides  OverrideSet          `json:"overrides" yaml:"overrides"`
	Gender     tables.Gender        `json:"gender" yaml:"gender"`
	Archetype  archetype.Tuple      `json:"archetype" yaml:"archetype"`
	Name       naming.Record        `json:"name" yaml:"name"`
	Relic      *relic.Record        `json:"relic,omitempty" yaml:"relic,omitempty"`
	MultiModal signature.MultiModal `json:"multi_modal" yaml:"multi_modal"`
	Markers    InvariantMarkers     `json:"invariant_markers" yaml:"invariant_markers"`
	Evolution  []EvolutionRule      `json:"evolution_rules" yaml:"evolution_rules"`
}

// InvariantMarkers summarise the tuple for fast comparison and prompting.
type InvariantMarkers struct {
	Checksum    string         `json:"checksum" yaml:"checksum"`
	Glyph       string         `json:"glyph" yaml:"glyph"`
	Element     tables.Element `json:"element" yaml:"element"`
	Pillar      tables.Pillar  `json:"pillar" yaml:"pillar"`
	Constraints []Constraint   `json:"constraints" yaml:"constraints"`
}

// Constraint is one behavioural rule implied by the tuple.
type Constraint struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
	Rule  string `json:"rule" yaml:"rule"`
}

// Drift says how far a field may move during later character-arc events.
type Drift string

const (
	DriftLocked  Drift = "locked"
	DriftBounded Drift = "bounded"
	DriftFree    Drift = "free"
	DriftDerived Drift = "derived"
)

// EvolutionRule binds a genome field to its drift allowance.
type EvolutionRule struct {
	Field   string   `json:"field" yaml:"field"`
	Drift   Drift    `json:"drift" yaml:"drift"`
	Allowed []string `json:"allowed,omitempty" yaml:"allowed,omitempty"`
}

// Parts are the stage outputs merged into one genome.
type Parts struct {
	Seed       int64
	Overrides  OverrideSet
	Gender     tables.Gender
	Tuple      archetype.Tuple
	Name       naming.Record
	Relic      *relic.Record
	MultiModal signature.MultiModal
}

// Assemble validates parts and composes them into a genome.
func Assemble(parts Parts) (CharacterGenome, error) {
	if err := parts.Overrides.Validate(); err != nil {
		return CharacterGenome{}, err
	}
	if err := checkParts(parts); err != nil {
		return CharacterGenome{}, apperrors.WrapWithMetadata(
			apperrors.CodeGenomeInvariantViolation,
			fmt.Sprintf("assemble genome for seed %d: %v", parts.Seed, err),
			map[string]string{"Invariant": err.Error()},
			err,
		)
	}

	overrides := parts.Overrides.Clone()
	genomeID, err := DeriveID(parts.Seed, overrides)
	if err != nil {
		return CharacterGenome{}, err
	}

	var rel *relic.Record
	if parts.Relic != nil {
		copied := *parts.Relic
		rel = &copied
	}

	return CharacterGenome{
		ID:         genomeID,
		Seed:       parts.Seed,
		Overrides:  overrides,
		Gender:     parts.Gender,
		Archetype:  parts.Tuple,
		Name:       parts.Name,
		Relic:      rel,
		MultiModal: parts.MultiModal,
		Markers:    markersFor(parts.Tuple),
		Evolution:  evolutionFor(parts.Tuple),
	}, nil
}

// DeriveID returns the deterministic identifier for a seed and override set.
func DeriveID(seed int64, overrides OverrideSet) (string, error) {
	payload, err := json.Marshal(struct {
		Seed      int64       `json:"seed"`
		Overrides OverrideSet `json:"overrides"`
	}{Seed: seed, Overrides: overrides})
	if err != nil {
		return "", fmt.Errorf("encode genome identity: %w", err)
	}
	return id.Derive(id.GenomeNamespace, payload), nil
}

// Checksum fingerprints the parts of a tuple that drive compatibility.
func Checksum(tuple archetype.Tuple) string {
	canonical := strings.Join([]string{
		string(tuple.Primary),
		string(tuple.Secondary),
		string(tuple.Position),
		string(tuple.Polarity),
		string(tuple.Trajectory),
		tuple.Camino,
	}, "|")
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:8])
}

func checkParts(parts Parts) error {
	o := parts.Overrides
	tuple := parts.Tuple

	if !tables.IsGender(parts.Gender) {
		return fmt.Errorf("unknown gender %q", parts.Gender)
	}
	if o.Gender != "" && parts.Gender != o.Gender {
		return fmt.Errorf("gender %s does not honour override %s", parts.Gender, o.Gender)
	}
	if err := tuple.Check(); err != nil {
		return err
	}
	if o.Archetype != "" && tuple.Primary != o.Archetype {
		return fmt.Errorf("primary %s does not honour override %s", tuple.Primary, o.Archetype)
	}

	name := parts.Name
	if err := name.Check(); err != nil {
		return err
	}
	if o.Heritage != "" && name.HeritageSources[0] != o.Heritage {
		return fmt.Errorf("heritage sources %v do not include override %s", name.HeritageSources, o.Heritage)
	}
	if name.IsBlended != o.BlendHeritage {
		return fmt.Errorf("blended = %v, override requested %v", name.IsBlended, o.BlendHeritage)
	}
	if o.Mononym != nil && name.IsMononym != *o.Mononym {
		return fmt.Errorf("mononym = %v, override requested %v", name.IsMononym, *o.Mononym)
	}
	if o.Totem != nil && (name.TotemAnimal != "") != *o.Totem {
		return fmt.Errorf("totem %q does not honour override %v", name.TotemAnimal, *o.Totem)
	}

	if !o.WantsRelic() {
		if parts.Relic != nil {
			return fmt.Errorf("relic present although disabled")
		}
	} else {
		if parts.Relic == nil {
			return fmt.Errorf("relic missing")
		}
		if err := parts.Relic.Check(tuple.Primary, o.LockedRelic); err != nil {
			return err
		}
		if o.RelicEra != "" && parts.Relic.Era != o.RelicEra {
			return fmt.Errorf("relic era %s does not honour override %s", parts.Relic.Era, o.RelicEra)
		}
	}

	if !reflect.DeepEqual(parts.MultiModal, signature.Derive(tuple, parts.Gender)) {
		return fmt.Errorf("multi-modal signature does not derive from the tuple")
	}
	return nil
}

var trajectoryArcs = map[tables.Trajectory]string{
	tables.TrajectoryAscent:         "rising toward a hard-won summit",
	tables.TrajectoryDescent:        "descending toward roots and hidden truths",
	tables.TrajectoryReturn:         "returning home changed",
	tables.TrajectoryTransformation: "becoming something that did not exist before",
}

func markersFor(tuple archetype.Tuple) InvariantMarkers {
	profile, _ := tables.Profile(tuple.Primary)

	temperament := "Keep energy measured and replies deliberate."
	if tuple.Polarity == tables.PolarityHot {
		temperament = "Keep energy high and replies quick."
	}

	return InvariantMarkers{
		Checksum: Checksum(tuple),
		Glyph:    profile.Glyph,
		Element:  profile.Element,
		Pillar:   tables.PillarOf(tuple.Position),
		Constraints: []Constraint{
			{Key: "archetype.primary", Value: string(tuple.Primary), Rule: fmt.Sprintf("Respond as the %s, %s.", tuple.Primary, profile.Epithet)},
			{Key: "archetype.secondary", Value: string(tuple.Secondary), Rule: fmt.Sprintf("Let the %s surface under pressure but never lead.", tuple.Secondary)},
			{Key: "archetype.polarity", Value: string(tuple.Polarity), Rule: temperament},
			{Key: "archetype.trajectory", Value: string(tuple.Trajectory), Rule: fmt.Sprintf("Bend every story toward %s.", trajectoryArcs[tuple.Trajectory])},
			{Key: "archetype.camino", Value: tuple.Camino, Rule: fmt.Sprintf("Speak of your path as the %s.", tuple.Camino)},
			{Key: "arrow.growth", Value: string(profile.Growth), Rule: fmt.Sprintf("When things go well, drift toward the %s.", profile.Growth)},
			{Key: "arrow.stress", Value: string(profile.Stress), Rule: fmt.Sprintf("When cornered, slip toward the %s.", profile.Stress)},
			{Key: "element", Value: string(profile.Element), Rule: fmt.Sprintf("Carry the temper of %s.", profile.Element)},
		},
	}
}

func evolutionFor(tuple archetype.Tuple) []EvolutionRule {
	return []EvolutionRule{
		{Field: "archetype.primary", Drift: DriftLocked},
		{Field: "archetype.secondary", Drift: DriftBounded, Allowed: []string{
			string(tables.Growth(tuple.Primary)),
			string(tables.Stress(tuple.Primary)),
		}},
		{Field: "archetype.kabbalistic_position", Drift: DriftDerived},
		{Field: "archetype.polarity", Drift: DriftDerived},
		{Field: "archetype.trajectory", Drift: DriftDerived},
		{Field: "archetype.camino", Drift: DriftBounded, Allowed: tables.Caminos(tuple.Primary)},
		{Field: "name.display_name", Drift: DriftFree},
		{Field: "name.heritage_sources", Drift: DriftLocked},
		{Field: "relic.category", Drift: DriftLocked},
		{Field: "relic.pseudonym", Drift: DriftFree},
		{Field: "multi_modal", Drift: DriftDerived},
	}
}
