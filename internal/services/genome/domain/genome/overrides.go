package genome

import (
	"fmt"

	apperrors "github.com/louisbranch/oripheon/internal/platform/errors"
	"github.com/louisbranch/oripheon/internal/services/genome/domain/relic"
	"github.com/louisbranch/oripheon/internal/services/genome/domain/tables"
)

// OverrideSet holds caller constraints on generation. Zero values and nil
// pointers leave the field to the generator.
type OverrideSet struct {
	Heritage      tables.Heritage  `json:"heritage,omitempty" yaml:"heritage,omitempty"`
	Gender        tables.Gender    `json:"gender,omitempty" yaml:"gender,omitempty"`
	BlendHeritage bool             `json:"blend_heritage,omitempty" yaml:"blend_heritage,omitempty"`
	Mononym       *bool            `json:"mononym,omitempty" yaml:"mononym,omitempty"`
	Totem         *bool            `json:"totem,omitempty" yaml:"totem,omitempty"`
	HasRelic      *bool            `json:"has_relic,omitempty" yaml:"has_relic,omitempty"`
	RelicEra      tables.Era       `json:"relic_era,omitempty" yaml:"relic_era,omitempty"`
	LockedRelic   *relic.Lock      `json:"locked_relic,omitempty" yaml:"locked_relic,omitempty"`
	Archetype     tables.Archetype `json:"archetype,omitempty" yaml:"archetype,omitempty"`
}

// Validate checks every override on its own and against the others.
func (o OverrideSet) Validate() error {
	if o.Heritage != "" && !tables.IsHeritage(o.Heritage) {
		return invalidOverride("heritage", string(o.Heritage))
	}
	if o.Gender != "" && !tables.IsGender(o.Gender) {
		return invalidOverride("gender", string(o.Gender))
	}
	if o.Archetype != "" && !tables.IsArchetype(o.Archetype) {
		return invalidOverride("archetype", string(o.Archetype))
	}
	if err := o.relicRequest(0, "").Validate(); err != nil {
		return err
	}
	if !o.WantsRelic() {
		if o.LockedRelic != nil {
			return apperrors.WithMetadata(
				apperrors.CodeGenomeConstraintConflict,
				"locked relic given while relic is disabled",
				map[string]string{"Fields": "hasRelic, lockedRelic"},
			)
		}
		if o.RelicEra != "" {
			return apperrors.WithMetadata(
				apperrors.CodeGenomeConstraintConflict,
				"relic era given while relic is disabled",
				map[string]string{"Fields": "hasRelic, relicEra"},
			)
		}
	}
	return nil
}

// WantsRelic reports whether the genome carries a relic. Relics are on
// unless explicitly disabled.
func (o OverrideSet) WantsRelic() bool {
	return o.HasRelic == nil || *o.HasRelic
}

// Clone returns a deep copy so the caller's pointers never alias a genome.
func (o OverrideSet) Clone() OverrideSet {
	out := o
	out.Mononym = cloneBool(o.Mononym)
	out.Totem = cloneBool(o.Totem)
	out.HasRelic = cloneBool(o.HasRelic)
	if o.LockedRelic != nil {
		lock := *o.LockedRelic
		out.LockedRelic = &lock
	}
	return out
}

func (o OverrideSet) relicRequest(seed int64, primary tables.Archetype) relic.Request {
	return relic.Request{
		Seed:    seed,
		Primary: primary,
		Era:     o.RelicEra,
		Lock:    o.LockedRelic,
	}
}

func cloneBool(v *bool) *bool {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func invalidOverride(field, value string) error {
	return apperrors.WithMetadata(
		apperrors.CodeGenomeInvalidOverride,
		fmt.Sprintf("invalid %s override %q", field, value),
		map[string]string{"Field": field, "Value": value},
	)
}
