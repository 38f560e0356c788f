package compat

import (
	"fmt"

	"github.com/louisbranch/oripheon/internal/services/genome/domain/tables"
)

// features are the pairwise signals read from the correspondence tables. AB
// fields read from the first genome toward the second.
type features struct {
	generatesAB  bool
	generatesBA  bool
	overcomesAB  bool
	overcomesBA  bool
	sameElement  bool
	growthAB     bool
	growthBA     bool
	stressAB     bool
	stressBA     bool
	sameArc      bool
	samePolarity bool
	samePillar   bool

	elementA, elementB tables.Element
}

// mirrorFeatures describe a pair with identical tuples.
var mirrorFeatures = features{
	sameElement:  true,
	sameArc:      true,
	samePolarity: true,
	samePillar:   true,
}

// weights are per-context adjustments applied on top of baseScore.
type weights struct {
	romantic, platonic, creative, tension int
}

func (w weights) of(c Context) int {
	switch c {
	case ContextRomantic:
		return w.romantic
	case ContextPlatonic:
		return w.platonic
	case ContextCreative:
		return w.creative
	case ContextNarrativeTension:
		return w.tension
	}
	return 0
}

const baseScore = 50

var (
	weightGenerates   = weights{romantic: 15, platonic: 10, creative: 20, tension: -5}
	weightOvercomes   = weights{romantic: -15, platonic: -10, creative: -5, tension: 20}
	weightSameElement = weights{romantic: 5, platonic: 10, creative: 5, tension: -5}
	weightGrowthOut   = weights{romantic: 10, platonic: 5, creative: 15, tension: 5}
	weightGrowthIn    = weights{romantic: 5, platonic: 5, creative: 10}
	weightStressOut   = weights{romantic: -15, platonic: -10, creative: -5, tension: 20}
	weightStressIn    = weights{romantic: -10, platonic: -10, creative: -5, tension: 15}
	weightSameArc     = weights{romantic: 5, platonic: 15, creative: 5, tension: -5}
	weightSamePolar   = weights{romantic: 5, platonic: 10, tension: -10}
	weightSplitPolar  = weights{romantic: 5, platonic: -5, creative: 5, tension: 15}
	weightSamePillar  = weights{platonic: 5, creative: 5}
)

func featuresOf(a, b tables.Archetype) features {
	ea, eb := tables.ElementOf(a), tables.ElementOf(b)
	return features{
		generatesAB:  tables.Generates(ea, eb),
		generatesBA:  tables.Generates(eb, ea),
		overcomesAB:  tables.Overcomes(ea, eb),
		overcomesBA:  tables.Overcomes(eb, ea),
		sameElement:  ea == eb,
		growthAB:     tables.Growth(a) == b,
		growthBA:     tables.Growth(b) == a,
		stressAB:     tables.Stress(a) == b,
		stressBA:     tables.Stress(b) == a,
		sameArc:      tables.TrajectoryOf(a) == tables.TrajectoryOf(b),
		samePolarity: tables.Energy(a) == tables.Energy(b),
		samePillar:   tables.PillarOf(tables.PositionOf(a)) == tables.PillarOf(tables.PositionOf(b)),
		elementA:     ea,
		elementB:     eb,
	}
}

func (f features) score(c Context) int {
	total := baseScore
	add := func(on bool, w weights) {
		if on {
			total += w.of(c)
		}
	}
	add(f.generatesAB || f.generatesBA, weightGenerates)
	add(f.overcomesAB || f.overcomesBA, weightOvercomes)
	add(f.sameElement, weightSameElement)
	add(f.growthAB, weightGrowthOut)
	add(f.growthBA, weightGrowthIn)
	add(f.stressAB, weightStressOut)
	add(f.stressBA, weightStressIn)
	add(f.sameArc, weightSameArc)
	add(f.samePolarity, weightSamePolar)
	add(!f.samePolarity, weightSplitPolar)
	add(f.samePillar, weightSamePillar)
	return min(max(total, 0), 100)
}

// rationale lists the signals that fired, in a fixed order.
func (f features) rationale() []string {
	out := []string{}
	switch {
	case f.sameElement:
		out = append(out, "same element")
	case f.generatesAB:
		out = append(out, fmt.Sprintf("%s feeds %s", f.elementA, f.elementB))
	case f.generatesBA:
		out = append(out, fmt.Sprintf("%s feeds %s", f.elementB, f.elementA))
	case f.overcomesAB:
		out = append(out, fmt.Sprintf("%s overcomes %s", f.elementA, f.elementB))
	case f.overcomesBA:
		out = append(out, fmt.Sprintf("%s overcomes %s", f.elementB, f.elementA))
	}
	if f.growthAB {
		out = append(out, "first grows toward second")
	}
	if f.growthBA {
		out = append(out, "second grows toward first")
	}
	if f.stressAB {
		out = append(out, "first breaks toward second under stress")
	}
	if f.stressBA {
		out = append(out, "second breaks toward first under stress")
	}
	if f.sameArc {
		out = append(out, "shared trajectory")
	}
	if f.samePolarity {
		out = append(out, "shared polarity")
	} else {
		out = append(out, "divergent polarity")
	}
	if f.samePillar {
		out = append(out, "shared pillar")
	}
	return out
}
