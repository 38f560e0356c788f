package genome

import (
	"github.com/louisbranch/oripheon/internal/random"
	"github.com/louisbranch/oripheon/internal/services/genome/domain/archetype"
	"github.com/louisbranch/oripheon/internal/services/genome/domain/naming"
	"github.com/louisbranch/oripheon/internal/services/genome/domain/relic"
	"github.com/louisbranch/oripheon/internal/services/genome/domain/signature"
)

// newSeed draws entropy for requests without a seed.
var newSeed = random.NewSeed

// Generate builds a genome from seed and overrides. A nil seed is drawn from
// system entropy and returned so the caller can reproduce the genome.
func Generate(seed *int64, overrides *OverrideSet) (CharacterGenome, int64, error) {
	resolved, _, err := random.ResolveSeed(seed, newSeed)
	if err != nil {
		return CharacterGenome{}, 0, err
	}
	var o OverrideSet
	if overrides != nil {
		o = overrides.Clone()
	}
	g, err := build(resolved, o)
	if err != nil {
		return CharacterGenome{}, resolved, err
	}
	return g, resolved, nil
}

// GenerateWithSeed reproduces the genome for seed with no overrides.
func GenerateWithSeed(seed int64) (CharacterGenome, error) {
	return build(seed, OverrideSet{})
}

// Reroll regenerates a genome for a known seed under a changed override set.
// Every unpinned field is re-derived from its own stream, so only the fields
// the overrides touch can change.
func Reroll(seed int64, overrides OverrideSet) (CharacterGenome, error) {
	return build(seed, overrides.Clone())
}

func build(seed int64, o OverrideSet) (CharacterGenome, error) {
	if err := o.Validate(); err != nil {
		return CharacterGenome{}, err
	}

	res, err := archetype.Resolve(archetype.Request{
		Seed:      seed,
		Heritage:  o.Heritage,
		Gender:    o.Gender,
		Blend:     o.BlendHeritage,
		Archetype: o.Archetype,
	})
	if err != nil {
		return CharacterGenome{}, err
	}

	name, err := naming.Generate(naming.Request{
		Seed:      seed,
		Heritages: res.Heritages,
		Mononym:   o.Mononym,
		Totem:     o.Totem,
	})
	if err != nil {
		return CharacterGenome{}, err
	}

	var rel *relic.Record
	if o.WantsRelic() {
		drawn, err := relic.Generate(o.relicRequest(seed, res.Tuple.Primary))
		if err != nil {
			return CharacterGenome{}, err
		}
		rel = &drawn
	}

	return Assemble(Parts{
		Seed:       seed,
		Overrides:  o,
		Gender:     res.Gender,
		Tuple:      res.Tuple,
		Name:       name,
		Relic:      rel,
		MultiModal: signature.Derive(res.Tuple, res.Gender),
	})
}
