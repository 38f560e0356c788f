// Package disclosure projects assembled genomes into visibility tiers and
// export formats. Every projection is a read-only view of its genome.
package disclosure

import (
	"fmt"

	apperrors "github.com/louisbranch/oripheon/internal/platform/errors"
	"github.com/louisbranch/oripheon/internal/services/genome/domain/genome"
	"github.com/louisbranch/oripheon/internal/services/genome/domain/tables"
)

// Tier is a visibility level.
type Tier string

const (
	TierSymbol  Tier = "symbol"
	TierTooltip Tier = "tooltip"
	TierFull    Tier = "full"
)

// Tiers lists every tier from least to most revealing.
var Tiers = []Tier{TierSymbol, TierTooltip, TierFull}

// ParseTier validates a tier name.
func ParseTier(value string) (Tier, error) {
	for _, t := range Tiers {
		if string(t) == value {
			return t, nil
		}
	}
	return "", apperrors.WithMetadata(
		apperrors.CodeGenomeUnknownTier,
		fmt.Sprintf("unknown disclosure tier %q", value),
		map[string]string{"Tier": value},
	)
}

// View is one tier of a genome. Fields above the tier are left empty.
type View struct {
	Tier       Tier                    `json:"tier" yaml:"tier"`
	GenomeID   string                  `json:"genome_id" yaml:"genome_id"`
	Glyph      string                  `json:"glyph" yaml:"glyph"`
	Epithet    string                  `json:"epithet" yaml:"epithet"`
	Camino     string                  `json:"camino,omitempty" yaml:"camino,omitempty"`
	Polarity   tables.Polarity         `json:"polarity,omitempty" yaml:"polarity,omitempty"`
	Trajectory tables.Trajectory       `json:"trajectory,omitempty" yaml:"trajectory,omitempty"`
	Genome     *genome.CharacterGenome `json:"genome,omitempty" yaml:"genome,omitempty"`
}

// Project returns the view of g at tier. Unknown tiers reveal only the
// symbol.
func Project(g genome.CharacterGenome, tier Tier) View {
	profile, _ := tables.Profile(g.Archetype.Primary)
	view := View{
		Tier:     TierSymbol,
		GenomeID: g.ID,
		Glyph:    g.Markers.Glyph,
		Epithet:  profile.Epithet,
	}
	if tier != TierTooltip && tier != TierFull {
		return view
	}

	view.Tier = tier
	view.Camino = g.Archetype.Camino
	view.Polarity = g.Archetype.Polarity
	view.Trajectory = g.Archetype.Trajectory
	if tier == TierFull {
		full := g
		view.Genome = &full
	}
	return view
}

// Disclose parses tier and projects g.
func Disclose(g genome.CharacterGenome, tier string) (View, error) {
	t, err := ParseTier(tier)
	if err != nil {
		return View{}, err
	}
	return Project(g, t), nil
}
