package tables

import "github.com/louisbranch/oripheon/internal/services/genome/domain/seedstream"

// ArchetypeProfile is the fixed correspondence row for one archetype.
type ArchetypeProfile struct {
	Position     Position
	Element      Element
	Polarity     Polarity
	Trajectory   Trajectory
	VoiceFamily  VoiceFamily
	Growth       Archetype
	Stress       Archetype
	SacredNumber int
	Glyph        string
	Epithet      string
	Caminos      []string
	Secondaries  []seedstream.Weighted[Archetype]
}

// MaxSecondaryAttempts bounds the secondary archetype re-draw loop.
const MaxSecondaryAttempts = 8

var archetypeProfiles = map[Archetype]ArchetypeProfile{
	ArchetypeInnocent: {
		Position:     PositionKeter,
		Element:      ElementWater,
		Polarity:     PolarityCool,
		Trajectory:   TrajectoryDescent,
		VoiceFamily:  VoiceFamilyTender,
		Growth:       ArchetypeExplorer,
		Stress:       ArchetypeOrphan,
		SacredNumber: 1,
		Glyph:        "☀",
		Epithet:      "the one who still believes",
		Caminos:      []string{"Camino del Alba", "Camino de la Fuente", "Camino del Jardín"},
		Secondaries: []seedstream.Weighted[Archetype]{
			{Value: ArchetypeSage, Weight: 3},
			{Value: ArchetypeCaregiver, Weight: 2},
			{Value: ArchetypeInnocent, Weight: 1},
		},
	},
	ArchetypeOrphan: {
		Position:     PositionYesod,
		Element:      ElementEarth,
		Polarity:     PolarityCool,
		Trajectory:   TrajectoryAscent,
		VoiceFamily:  VoiceFamilyRaw,
		Growth:       ArchetypeCaregiver,
		Stress:       ArchetypeJester,
		SacredNumber: 4,
		Glyph:        "☾",
		Epithet:      "the one who walks without a roof",
		Caminos:      []string{"Camino del Polvo", "Camino de la Posada", "Camino del Puente Roto"},
		Secondaries: []seedstream.Weighted[Archetype]{
			{Value: ArchetypeRebel, Weight: 2},
			{Value: ArchetypeCaregiver, Weight: 2},
			{Value: ArchetypeExplorer, Weight: 1},
		},
	},
	ArchetypeHero: {
		Position:     PositionGevurah,
		Element:      ElementFire,
		Polarity:     PolarityHot,
		Trajectory:   TrajectoryAscent,
		VoiceFamily:  VoiceFamilyDeclamatory,
		Growth:       ArchetypeCaregiver,
		Stress:       ArchetypeRebel,
		SacredNumber: 9,
		Glyph:        "⚔",
		Epithet:      "the one who answers the call",
		Caminos:      []string{"Camino de la Espada", "Camino del Umbral", "Camino de la Cumbre"},
		Secondaries: []seedstream.Weighted[Archetype]{
			{Value: ArchetypeRuler, Weight: 2},
			{Value: ArchetypeExplorer, Weight: 2},
			{Value: ArchetypeHero, Weight: 1},
		},
	},
	ArchetypeCaregiver: {
		Position:     PositionChesed,
		Element:      ElementEarth,
		Polarity:     PolarityCool,
		Trajectory:   TrajectoryReturn,
		VoiceFamily:  VoiceFamilyTender,
		Growth:       ArchetypeCreator,
		Stress:       ArchetypeRuler,
		SacredNumber: 6,
		Glyph:        "✚",
		Epithet:      "the one who keeps the fire lit",
		Caminos:      []string{"Camino del Hogar", "Camino de la Lámpara", "Camino del Pan"},
		Secondaries: []seedstream.Weighted[Archetype]{
			{Value: ArchetypeInnocent, Weight: 2},
			{Value: ArchetypeSage, Weight: 2},
			{Value: ArchetypeLover, Weight: 1},
		},
	},
	ArchetypeExplorer: {
		Position:     PositionNetzach,
		Element:      ElementWood,
		Polarity:     PolarityHot,
		Trajectory:   TrajectoryReturn,
		VoiceFamily:  VoiceFamilyLyrical,
		Growth:       ArchetypeLover,
		Stress:       ArchetypeOrphan,
		SacredNumber: 5,
		Glyph:        "☄",
		Epithet:      "the one who cannot stay",
		Caminos:      []string{"Camino del Horizonte", "Camino de las Estrellas", "Camino del Río"},
		Secondaries: []seedstream.Weighted[Archetype]{
			{Value: ArchetypeRebel, Weight: 2},
			{Value: ArchetypeSage, Weight: 1},
			{Value: ArchetypeCreator, Weight: 2},
		},
	},
	ArchetypeRebel: {
		Position:     PositionGevurah,
		Element:      ElementFire,
		Polarity:     PolarityHot,
		Trajectory:   TrajectoryTransformation,
		VoiceFamily:  VoiceFamilyRaw,
		Growth:       ArchetypeMagician,
		Stress:       ArchetypeHero,
		SacredNumber: 13,
		Glyph:        "⚡",
		Epithet:      "the one who breaks the rule",
		Caminos:      []string{"Camino de la Llama", "Camino de la Grieta", "Camino del Lobo"},
		Secondaries: []seedstream.Weighted[Archetype]{
			{Value: ArchetypeMagician, Weight: 2},
			{Value: ArchetypeJester, Weight: 2},
			{Value: ArchetypeRebel, Weight: 1},
		},
	},
	ArchetypeLover: {
		Position:     PositionTiferet,
		Element:      ElementWood,
		Polarity:     PolarityHot,
		Trajectory:   TrajectoryTransformation,
		VoiceFamily:  VoiceFamilyLyrical,
		Growth:       ArchetypeHero,
		Stress:       ArchetypeJester,
		SacredNumber: 2,
		Glyph:        "❦",
		Epithet:      "the one who gives everything",
		Caminos:      []string{"Camino de la Rosa", "Camino del Encuentro", "Camino de la Marea"},
		Secondaries: []seedstream.Weighted[Archetype]{
			{Value: ArchetypeCreator, Weight: 2},
			{Value: ArchetypeJester, Weight: 1},
			{Value: ArchetypeCaregiver, Weight: 2},
		},
	},
	ArchetypeCreator: {
		Position:     PositionNetzach,
		Element:      ElementWood,
		Polarity:     PolarityCool,
		Trajectory:   TrajectoryAscent,
		VoiceFamily:  VoiceFamilyLyrical,
		Growth:       ArchetypeJester,
		Stress:       ArchetypeSage,
		SacredNumber: 7,
		Glyph:        "✎",
		Epithet:      "the one who makes what was not",
		Caminos:      []string{"Camino del Telar", "Camino de la Forja", "Camino del Barro"},
		Secondaries: []seedstream.Weighted[Archetype]{
			{Value: ArchetypeMagician, Weight: 3},
			{Value: ArchetypeExplorer, Weight: 1},
			{Value: ArchetypeCreator, Weight: 1},
		},
	},
	ArchetypeJester: {
		Position:     PositionHod,
		Element:      ElementMetal,
		Polarity:     PolarityHot,
		Trajectory:   TrajectoryReturn,
		VoiceFamily:  VoiceFamilyPlayful,
		Growth:       ArchetypeSage,
		Stress:       ArchetypeCreator,
		SacredNumber: 3,
		Glyph:        "♣",
		Epithet:      "the one who laughs at the crown",
		Caminos:      []string{"Camino del Espejo", "Camino de la Máscara", "Camino del Cascabel"},
		Secondaries: []seedstream.Weighted[Archetype]{
			{Value: ArchetypeRebel, Weight: 2},
			{Value: ArchetypeLover, Weight: 2},
			{Value: ArchetypeOrphan, Weight: 1},
		},
	},
	ArchetypeSage: {
		Position:     PositionChokhmah,
		Element:      ElementMetal,
		Polarity:     PolarityCool,
		Trajectory:   TrajectoryReturn,
		VoiceFamily:  VoiceFamilyOracular,
		Growth:       ArchetypeInnocent,
		Stress:       ArchetypeRuler,
		SacredNumber: 8,
		Glyph:        "✶",
		Epithet:      "the one who seeks the pattern",
		Caminos:      []string{"Camino del Pergamino", "Camino de la Torre", "Camino del Silencio"},
		Secondaries: []seedstream.Weighted[Archetype]{
			{Value: ArchetypeMagician, Weight: 2},
			{Value: ArchetypeRuler, Weight: 1},
			{Value: ArchetypeInnocent, Weight: 2},
		},
	},
	ArchetypeMagician: {
		Position:     PositionBinah,
		Element:      ElementWater,
		Polarity:     PolarityCool,
		Trajectory:   TrajectoryTransformation,
		VoiceFamily:  VoiceFamilyOracular,
		Growth:       ArchetypeCreator,
		Stress:       ArchetypeJester,
		SacredNumber: 11,
		Glyph:        "☿",
		Epithet:      "the one who bends the weave",
		Caminos:      []string{"Camino del Velo", "Camino de la Serpiente", "Camino del Eclipse"},
		Secondaries: []seedstream.Weighted[Archetype]{
			{Value: ArchetypeSage, Weight: 2},
			{Value: ArchetypeCreator, Weight: 2},
			{Value: ArchetypeMagician, Weight: 1},
		},
	},
	ArchetypeRuler: {
		Position:     PositionMalkhut,
		Element:      ElementEarth,
		Polarity:     PolarityHot,
		Trajectory:   TrajectoryDescent,
		VoiceFamily:  VoiceFamilyDeclamatory,
		Growth:       ArchetypeSage,
		Stress:       ArchetypeRebel,
		SacredNumber: 10,
		Glyph:        "♛",
		Epithet:      "the one who holds the line",
		Caminos:      []string{"Camino de la Corona", "Camino del Trono", "Camino de la Ley"},
		Secondaries: []seedstream.Weighted[Archetype]{
			{Value: ArchetypeHero, Weight: 2},
			{Value: ArchetypeSage, Weight: 2},
			{Value: ArchetypeCaregiver, Weight: 1},
		},
	},
}

var positionPillars = map[Position]Pillar{
	PositionKeter:    PillarBalance,
	PositionChokhmah: PillarMercy,
	PositionBinah:    PillarSeverity,
	PositionChesed:   PillarMercy,
	PositionGevurah:  PillarSeverity,
	PositionTiferet:  PillarBalance,
	PositionNetzach:  PillarMercy,
	PositionHod:      PillarSeverity,
	PositionYesod:    PillarBalance,
	PositionMalkhut:  PillarBalance,
}

// heritageArchetypeWeights rows follow the order of Archetypes.
var heritageArchetypeWeights = map[Heritage][12]int{
	HeritageIberian:  {2, 2, 3, 2, 3, 2, 4, 2, 2, 1, 2, 3},
	HeritageCeltic:   {2, 2, 3, 2, 2, 3, 2, 2, 3, 2, 4, 1},
	HeritageHellenic: {1, 2, 4, 1, 2, 2, 2, 2, 1, 4, 2, 3},
	HeritageNorse:    {1, 2, 4, 2, 4, 3, 1, 2, 1, 2, 2, 2},
	HeritageYoruba:   {2, 1, 2, 3, 1, 2, 2, 3, 3, 3, 3, 2},
	HeritageNahua:    {2, 2, 3, 2, 2, 2, 1, 3, 1, 3, 4, 3},
	HeritageNipponic: {3, 1, 2, 2, 1, 2, 2, 4, 2, 3, 2, 2},
	HeritageHebrew:   {2, 3, 1, 3, 2, 2, 2, 2, 1, 4, 3, 2},
}

// generating holds the productive cycle: each element feeds the next.
var generating = map[Element]Element{
	ElementWood:  ElementFire,
	ElementFire:  ElementEarth,
	ElementEarth: ElementMetal,
	ElementMetal: ElementWater,
	ElementWater: ElementWood,
}

// overcoming holds the controlling cycle.
var overcoming = map[Element]Element{
	ElementWood:  ElementEarth,
	ElementEarth: ElementWater,
	ElementWater: ElementFire,
	ElementFire:  ElementMetal,
	ElementMetal: ElementWood,
}

// Profile returns the correspondence row for a.
func Profile(a Archetype) (ArchetypeProfile, bool) {
	p, ok := archetypeProfiles[a]
	return p, ok
}

// Energy returns the polarity an archetype carries.
func Energy(a Archetype) Polarity {
	return archetypeProfiles[a].Polarity
}

// TrajectoryOf returns the narrative arc of a.
func TrajectoryOf(a Archetype) Trajectory {
	return archetypeProfiles[a].Trajectory
}

// PositionOf returns the sephira a sits on.
func PositionOf(a Archetype) Position {
	return archetypeProfiles[a].Position
}

// PillarOf returns the pillar for a position.
func PillarOf(p Position) Pillar {
	return positionPillars[p]
}

// ElementOf returns the element mapped to a.
func ElementOf(a Archetype) Element {
	return archetypeProfiles[a].Element
}

// Caminos returns a copy of the camino list for a.
func Caminos(a Archetype) []string {
	caminos := archetypeProfiles[a].Caminos
	out := make([]string, len(caminos))
	copy(out, caminos)
	return out
}

// HasCamino reports whether camino belongs to the list of a.
func HasCamino(a Archetype, camino string) bool {
	for _, c := range archetypeProfiles[a].Caminos {
		if c == camino {
			return true
		}
	}
	return false
}

// Growth returns the archetype a integrates toward.
func Growth(a Archetype) Archetype {
	return archetypeProfiles[a].Growth
}

// Stress returns the archetype a disintegrates toward.
func Stress(a Archetype) Archetype {
	return archetypeProfiles[a].Stress
}

// SacredNumber returns the lore number bound to a.
func SacredNumber(a Archetype) int {
	return archetypeProfiles[a].SacredNumber
}

// Generates reports whether from feeds to in the productive cycle.
func Generates(from, to Element) bool {
	next, ok := generating[from]
	return ok && next == to
}

// Overcomes reports whether from controls to in the controlling cycle.
func Overcomes(from, to Element) bool {
	next, ok := overcoming[from]
	return ok && next == to
}

// ArchetypeWeights returns the weighted archetype options for a heritage.
func ArchetypeWeights(h Heritage) []seedstream.Weighted[Archetype] {
	row, ok := heritageArchetypeWeights[h]
	if !ok {
		return nil
	}
	options := make([]seedstream.Weighted[Archetype], len(Archetypes))
	for i, a := range Archetypes {
		options[i] = seedstream.Weighted[Archetype]{Value: a, Weight: row[i]}
	}
	return options
}

// SecondaryWeights returns a copy of the weighted secondary options for a.
func SecondaryWeights(a Archetype) []seedstream.Weighted[Archetype] {
	options := archetypeProfiles[a].Secondaries
	out := make([]seedstream.Weighted[Archetype], len(options))
	copy(out, options)
	return out
}

// NeutralSecondary returns the fallback secondary used when every re-draw
// matched the primary.
func NeutralSecondary(primary Archetype) Archetype {
	if primary == ArchetypeSage {
		return ArchetypeInnocent
	}
	return ArchetypeSage
}
