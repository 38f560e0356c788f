// Package tables holds the static correspondence tables that tie heritages,
// archetypes, kabbalistic positions, elements, relics and signatures together.
//
// Every mapping is data keyed by an enumerated value so invariants can be
// checked exhaustively over all entries. Nothing in this package draws random
// values; callers combine these tables with seeded streams.
package tables

// Heritage names a cultural syllable and archetype-weight family.
type Heritage string

const (
	HeritageIberian  Heritage = "iberian"
	HeritageCeltic   Heritage = "celtic"
	HeritageHellenic Heritage = "hellenic"
	HeritageNorse    Heritage = "norse"
	HeritageYoruba   Heritage = "yoruba"
	HeritageNahua    Heritage = "nahua"
	HeritageNipponic Heritage = "nipponic"
	HeritageHebrew   Heritage = "hebrew"
)

// Heritages lists every heritage in draw order.
var Heritages = []Heritage{
	HeritageIberian,
	HeritageCeltic,
	HeritageHellenic,
	HeritageNorse,
	HeritageYoruba,
	HeritageNahua,
	HeritageNipponic,
	HeritageHebrew,
}

// Gender drives the voice register of a signature.
type Gender string

const (
	GenderFemale    Gender = "female"
	GenderMale      Gender = "male"
	GenderNonbinary Gender = "nonbinary"
)

// Genders lists every gender in draw order.
var Genders = []Gender{GenderFemale, GenderMale, GenderNonbinary}

// Archetype is one of the twelve personality/role categories.
type Archetype string

const (
	ArchetypeInnocent  Archetype = "innocent"
	ArchetypeOrphan    Archetype = "orphan"
	ArchetypeHero      Archetype = "hero"
	ArchetypeCaregiver Archetype = "caregiver"
	ArchetypeExplorer  Archetype = "explorer"
	ArchetypeRebel     Archetype = "rebel"
	ArchetypeLover     Archetype = "lover"
	ArchetypeCreator   Archetype = "creator"
	ArchetypeJester    Archetype = "jester"
	ArchetypeSage      Archetype = "sage"
	ArchetypeMagician  Archetype = "magician"
	ArchetypeRuler     Archetype = "ruler"
)

// Archetypes lists every archetype in table order.
var Archetypes = []Archetype{
	ArchetypeInnocent,
	ArchetypeOrphan,
	ArchetypeHero,
	ArchetypeCaregiver,
	ArchetypeExplorer,
	ArchetypeRebel,
	ArchetypeLover,
	ArchetypeCreator,
	ArchetypeJester,
	ArchetypeSage,
	ArchetypeMagician,
	ArchetypeRuler,
}

// Position is a kabbalistic sephira.
type Position string

const (
	PositionKeter    Position = "keter"
	PositionChokhmah Position = "chokhmah"
	PositionBinah    Position = "binah"
	PositionChesed   Position = "chesed"
	PositionGevurah  Position = "gevurah"
	PositionTiferet  Position = "tiferet"
	PositionNetzach  Position = "netzach"
	PositionHod      Position = "hod"
	PositionYesod    Position = "yesod"
	PositionMalkhut  Position = "malkhut"
)

// Pillar is the origin axis a position sits on.
type Pillar string

const (
	PillarMercy    Pillar = "mercy"
	PillarSeverity Pillar = "severity"
	PillarBalance  Pillar = "balance"
)

// Polarity is the energy quality of an archetype.
type Polarity string

const (
	PolarityHot  Polarity = "hot"
	PolarityCool Polarity = "cool"
)

// Trajectory is the narrative arc direction of an archetype.
type Trajectory string

const (
	TrajectoryAscent         Trajectory = "ascent"
	TrajectoryDescent        Trajectory = "descent"
	TrajectoryReturn         Trajectory = "return"
	TrajectoryTransformation Trajectory = "transformation"
)

// Element is a phase of the five-element cycle.
type Element string

const (
	ElementWood  Element = "wood"
	ElementFire  Element = "fire"
	ElementEarth Element = "earth"
	ElementMetal Element = "metal"
	ElementWater Element = "water"
)

// VoiceFamily groups archetypes by how they speak.
type VoiceFamily string

const (
	VoiceFamilyLyrical     VoiceFamily = "lyrical"
	VoiceFamilyDeclamatory VoiceFamily = "declamatory"
	VoiceFamilyOracular    VoiceFamily = "oracular"
	VoiceFamilyPlayful     VoiceFamily = "playful"
	VoiceFamilyTender      VoiceFamily = "tender"
	VoiceFamilyRaw         VoiceFamily = "raw"
)

// Era is the age a relic belongs to.
type Era string

const (
	EraArchaic  Era = "archaic"
	EraModern   Era = "modern"
	EraTimeless Era = "timeless"
)

// Eras lists every era in draw order.
var Eras = []Era{EraArchaic, EraModern, EraTimeless}

// IsHeritage reports whether h is a known heritage.
func IsHeritage(h Heritage) bool {
	for _, known := range Heritages {
		if known == h {
			return true
		}
	}
	return false
}

// IsGender reports whether g is a known gender.
func IsGender(g Gender) bool {
	for _, known := range Genders {
		if known == g {
			return true
		}
	}
	return false
}

// IsArchetype reports whether a is a known archetype.
func IsArchetype(a Archetype) bool {
	_, ok := archetypeProfiles[a]
	return ok
}

// IsEra reports whether e is a known era.
func IsEra(e Era) bool {
	for _, known := range Eras {
		if known == e {
			return true
		}
	}
	return false
}
