// Package compat scores how well two assembled genomes fit each other.
//
// Scores are built from a fixed set of pairwise features: the elemental cycle
// between the two primaries, the growth and stress arrows in both directions,
// and overlap on trajectory, polarity and pillar. Each context weighs the same
// features differently. Labels are inferred by a fixed priority list, so the
// result is a handful of table lookups per pair.
package compat

import (
	"fmt"

	apperrors "github.com/louisbranch/oripheon/internal/platform/errors"
	"github.com/louisbranch/oripheon/internal/services/genome/domain/genome"
	"github.com/louisbranch/oripheon/internal/services/genome/domain/tables"
)

// Context is a relationship setting a pair is scored for.
type Context string

const (
	ContextRomantic         Context = "romantic"
	ContextPlatonic         Context = "platonic"
	ContextCreative         Context = "creative"
	ContextNarrativeTension Context = "narrative_tension"
)

// Contexts lists every context in tie-break order.
var Contexts = []Context{
	ContextRomantic,
	ContextPlatonic,
	ContextCreative,
	ContextNarrativeTension,
}

// ParseContext validates a context name.
func ParseContext(value string) (Context, error) {
	for _, c := range Contexts {
		if string(c) == value {
			return c, nil
		}
	}
	return "", apperrors.WithMetadata(
		apperrors.CodeGenomeUnknownContext,
		fmt.Sprintf("unknown compatibility context %q", value),
		map[string]string{"Context": value},
	)
}

// Label is the inferred relationship.
type Label string

const (
	LabelEnemy   Label = "ENEMY"
	LabelRival   Label = "RIVAL"
	LabelMentor  Label = "MENTOR"
	LabelSibling Label = "SIBLING"
	LabelFamily  Label = "FAMILY"
	LabelFriend  Label = "FRIEND"
	LabelAlly    Label = "ALLY"
	LabelCustom  Label = "CUSTOM"
)

// genericLabels name the fallback relationship for the best-scoring context.
var genericLabels = map[Context]Label{
	ContextRomantic:         LabelCustom,
	ContextPlatonic:         LabelFriend,
	ContextCreative:         LabelAlly,
	ContextNarrativeTension: LabelCustom,
}

// Result is the derived compatibility of a pair. Source and Target carry the
// genome ids in the direction the label reads: the mentor or rival is the
// source. Symmetric labels put the smaller id first.
type Result struct {
	ContextScores map[Context]int `json:"context_scores" yaml:"context_scores"`
	Label         Label           `json:"relationship_label" yaml:"relationship_label"`
	Rationale     []string        `json:"rationale" yaml:"rationale"`
	Source        string          `json:"source" yaml:"source"`
	Target        string          `json:"target" yaml:"target"`
}

// Compare scores a against b. A nil context scores every context.
func Compare(a, b genome.CharacterGenome, context *Context) (Result, error) {
	contexts := Contexts
	if context != nil {
		c, err := ParseContext(string(*context))
		if err != nil {
			return Result{}, err
		}
		contexts = []Context{c}
	}

	f := mirrorFeatures
	if a.Markers.Checksum != b.Markers.Checksum {
		f = featuresOf(a.Archetype.Primary, b.Archetype.Primary)
	}

	scores := make(map[Context]int, len(contexts))
	for _, c := range contexts {
		scores[c] = f.score(c)
	}

	label, source, target := infer(f, a.ID, b.ID, contexts, scores)
	return Result{
		ContextScores: scores,
		Label:         label,
		Rationale:     f.rationale(),
		Source:        source,
		Target:        target,
	}, nil
}

// Scores returns the per-context scores for two archetypes, keyed in
// Contexts order. It ignores ids and checksums.
func Scores(a, b tables.Archetype) []int {
	f := featuresOf(a, b)
	out := make([]int, len(Contexts))
	for i, c := range Contexts {
		out[i] = f.score(c)
	}
	return out
}

// infer walks the label tiers in priority order.
func infer(f features, aID, bID string, contexts []Context, scores map[Context]int) (Label, string, string) {
	lo, hi := aID, bID
	if hi < lo {
		lo, hi = hi, lo
	}

	switch {
	case f.stressAB && f.stressBA:
		return LabelEnemy, lo, hi
	case f.stressAB:
		return LabelRival, aID, bID
	case f.stressBA:
		return LabelRival, bID, aID
	case f.overcomesAB:
		return LabelRival, aID, bID
	case f.overcomesBA:
		return LabelRival, bID, aID
	case f.generatesAB && f.growthAB:
		return LabelMentor, aID, bID
	case f.samePillar && !f.samePolarity:
		return LabelSibling, lo, hi
	case f.samePillar:
		return LabelFamily, lo, hi
	}

	best := bestContext(contexts, scores)
	return genericLabels[best], lo, hi
}

// bestContext returns the highest scoring context. contexts is always in
// Contexts order, so ties keep the earlier one.
func bestContext(contexts []Context, scores map[Context]int) Context {
	best := contexts[0]
	for _, c := range contexts[1:] {
		if scores[c] > scores[best] {
			best = c
		}
	}
	return best
}
