// Package archetype resolves the archetype tuple every other part of a genome
// is derived from: heritage, gender, primary and secondary archetype,
// kabbalistic position, polarity, trajectory and camino.
//
// Only heritage, gender, primary, secondary and camino are drawn. Position,
// polarity and trajectory are lookups on the primary archetype.
package archetype

import (
	"fmt"

	apperrors "github.com/louisbranch/oripheon/internal/platform/errors"
	"github.com/louisbranch/oripheon/internal/services/genome/domain/seedstream"
	"github.com/louisbranch/oripheon/internal/services/genome/domain/tables"
)

// Stream labels for each drawn decision.
const (
	labelHeritage      = "archetype.heritage"
	labelHeritageBlend = "archetype.heritage.blend"
	labelGender        = "archetype.gender"
	labelPrimary       = "archetype.primary"
	labelSecondary     = "archetype.secondary"
	labelCamino        = "archetype.camino"
)

// Table hooks. Tests replace these to exercise the retry fallback.
var (
	secondaryCandidates = tables.SecondaryWeights
	neutralSecondary    = tables.NeutralSecondary
)

// Tuple is the resolved archetype correspondence.
type Tuple struct {
	Primary    tables.Archetype  `json:"primary_archetype" yaml:"primary_archetype"`
	Secondary  tables.Archetype  `json:"secondary_archetype" yaml:"secondary_archetype"`
	Position   tables.Position   `json:"kabbalistic_position" yaml:"kabbalistic_position"`
	Polarity   tables.Polarity   `json:"polarity" yaml:"polarity"`
	Trajectory tables.Trajectory `json:"trajectory" yaml:"trajectory"`
	Camino     string            `json:"camino" yaml:"camino"`
}

// Check reports the first correspondence the tuple breaks, or nil.
func (t Tuple) Check() error {
	if !tables.IsArchetype(t.Primary) {
		return fmt.Errorf("unknown primary archetype %q", t.Primary)
	}
	if !tables.IsArchetype(t.Secondary) {
		return fmt.Errorf("unknown secondary archetype %q", t.Secondary)
	}
	if t.Secondary == t.Primary {
		return fmt.Errorf("secondary archetype equals primary %q", t.Primary)
	}
	if t.Position != tables.PositionOf(t.Primary) {
		return fmt.Errorf("position %q does not match %s", t.Position, t.Primary)
	}
	if t.Polarity != tables.Energy(t.Primary) {
		return fmt.Errorf("polarity %q does not match %s", t.Polarity, t.Primary)
	}
	if t.Trajectory != tables.TrajectoryOf(t.Primary) {
		return fmt.Errorf("trajectory %q does not match %s", t.Trajectory, t.Primary)
	}
	if !tables.HasCamino(t.Primary, t.Camino) {
		return fmt.Errorf("camino %q is not a path of %s", t.Camino, t.Primary)
	}
	return nil
}

// Request carries the seed and any pinned resolver inputs. Zero values mean
// the field is drawn.
type Request struct {
	Seed      int64
	Heritage  tables.Heritage
	Gender    tables.Gender
	Blend     bool
	Archetype tables.Archetype
}

// Resolution is the resolver output consumed by the name, relic and
// signature stages.
type Resolution struct {
	Heritages []tables.Heritage
	Blended   bool
	Gender    tables.Gender
	Tuple     Tuple
}

// Resolve selects a consistent archetype tuple for req.
func Resolve(req Request) (Resolution, error) {
	if err := validate(req); err != nil {
		return Resolution{}, err
	}

	heritages, err := resolveHeritages(req)
	if err != nil {
		return Resolution{}, err
	}

	gender := req.Gender
	if gender == "" {
		gender, err = seedstream.Choose(req.Seed, labelGender, tables.GenderWeights)
		if err != nil {
			return Resolution{}, err
		}
	}

	primary := req.Archetype
	if primary == "" {
		primary, err = seedstream.Choose(req.Seed, labelPrimary, tables.ArchetypeWeights(heritages[0]))
		if err != nil {
			return Resolution{}, err
		}
	}

	secondary, err := resolveSecondary(req.Seed, primary)
	if err != nil {
		return Resolution{}, err
	}

	camino, err := seedstream.Uniform(req.Seed, labelCamino, tables.Caminos(primary))
	if err != nil {
		return Resolution{}, err
	}

	return Resolution{
		Heritages: heritages,
		Blended:   req.Blend,
		Gender:    gender,
		Tuple: Tuple{
			Primary:    primary,
			Secondary:  secondary,
			Position:   tables.PositionOf(primary),
			Polarity:   tables.Energy(primary),
			Trajectory: tables.TrajectoryOf(primary),
			Camino:     camino,
		},
	}, nil
}

func validate(req Request) error {
	if req.Heritage != "" && !tables.IsHeritage(req.Heritage) {
		return invalidOverride("heritage", string(req.Heritage))
	}
	if req.Gender != "" && !tables.IsGender(req.Gender) {
		return invalidOverride("gender", string(req.Gender))
	}
	if req.Archetype != "" && !tables.IsArchetype(req.Archetype) {
		return invalidOverride("archetype", string(req.Archetype))
	}
	return nil
}

func resolveHeritages(req Request) ([]tables.Heritage, error) {
	first := req.Heritage
	if first == "" {
		drawn, err := seedstream.Uniform(req.Seed, labelHeritage, tables.Heritages)
		if err != nil {
			return nil, err
		}
		first = drawn
	}
	if !req.Blend {
		return []tables.Heritage{first}, nil
	}

	remaining := make([]tables.Heritage, 0, len(tables.Heritages)-1)
	for _, h := range tables.Heritages {
		if h != first {
			remaining = append(remaining, h)
		}
	}
	second, err := seedstream.Uniform(req.Seed, labelHeritageBlend, remaining)
	if err != nil {
		return nil, err
	}
	return []tables.Heritage{first, second}, nil
}

func resolveSecondary(seed int64, primary tables.Archetype) (tables.Archetype, error) {
	candidates := secondaryCandidates(primary)
	for attempt := 0; attempt < tables.MaxSecondaryAttempts; attempt++ {
		secondary, err := seedstream.Choose(seed, seedstream.Attempt(labelSecondary, attempt), candidates)
		if err != nil {
			return "", err
		}
		if secondary != primary {
			return secondary, nil
		}
	}

	fallback := neutralSecondary(primary)
	if fallback == primary {
		return "", apperrors.WithMetadata(
			apperrors.CodeGenomeExhaustedRetry,
			fmt.Sprintf("secondary archetype for %s exhausted %d attempts and neutral fallback matches primary", primary, tables.MaxSecondaryAttempts),
			map[string]string{"Primary": string(primary)},
		)
	}
	return fallback, nil
}

func invalidOverride(field, value string) error {
	return apperrors.WithMetadata(
		apperrors.CodeGenomeInvalidOverride,
		fmt.Sprintf("invalid %s override %q", field, value),
		map[string]string{"Field": field, "Value": value},
	)
}
