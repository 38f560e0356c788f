package tables

// Visual tables.
var (
	palettes = map[Archetype][]string{
		ArchetypeInnocent:  {"#F7F3E3", "#BFD7EA", "#F2D0A4"},
		ArchetypeOrphan:    {"#7A6C5D", "#B3A394", "#3E4E50"},
		ArchetypeHero:      {"#B22222", "#D4AF37", "#1C1C1C"},
		ArchetypeCaregiver: {"#E8C39E", "#A3B18A", "#F4EBD0"},
		ArchetypeExplorer:  {"#2E8B57", "#DAA520", "#4682B4"},
		ArchetypeRebel:     {"#8B0000", "#111111", "#FF4500"},
		ArchetypeLover:     {"#C71585", "#FFB6C1", "#8B3A62"},
		ArchetypeCreator:   {"#6A5ACD", "#E9967A", "#F0E68C"},
		ArchetypeJester:    {"#FFD700", "#9932CC", "#00CED1"},
		ArchetypeSage:      {"#2F4F4F", "#C0C0C0", "#191970"},
		ArchetypeMagician:  {"#4B0082", "#00FFCC", "#0B0B2B"},
		ArchetypeRuler:     {"#4B2E83", "#C9A227", "#7F0000"},
	}

	positionMotifs = map[Position][]string{
		PositionKeter:    {"crown", "point of light"},
		PositionChokhmah: {"spark", "spiral"},
		PositionBinah:    {"vessel", "veil"},
		PositionChesed:   {"open hand", "spring"},
		PositionGevurah:  {"sword", "scale"},
		PositionTiferet:  {"sun", "heart"},
		PositionNetzach:  {"laurel", "rose"},
		PositionHod:      {"caduceus", "mirror"},
		PositionYesod:    {"moon", "foundation stone"},
		PositionMalkhut:  {"kingdom gate", "wheat"},
	}

	polarityFinish = map[Polarity]string{
		PolarityHot:  "burnished",
		PolarityCool: "matte",
	}
)

// Voice tables.
var (
	voiceRegisters = map[Gender]map[Polarity]string{
		GenderFemale:    {PolarityHot: "mezzo-soprano", PolarityCool: "contralto"},
		GenderMale:      {PolarityHot: "tenor", PolarityCool: "baritone"},
		GenderNonbinary: {PolarityHot: "alto", PolarityCool: "tenor"},
	}

	baseEnergy = map[Polarity]int{
		PolarityHot:  7,
		PolarityCool: 4,
	}

	energyShift = map[Trajectory]int{
		TrajectoryAscent:         1,
		TrajectoryDescent:        -1,
		TrajectoryReturn:         0,
		TrajectoryTransformation: 1,
	}

	elementTimbre = map[Element]string{
		ElementWood:  "breathy",
		ElementFire:  "bright",
		ElementEarth: "warm",
		ElementMetal: "clear",
		ElementWater: "smoky",
	}
)

// Music tables.
var (
	baseTempo = map[Polarity]int{
		PolarityHot:  128,
		PolarityCool: 84,
	}

	tempoShift = map[Trajectory]int{
		TrajectoryAscent:         8,
		TrajectoryDescent:        -8,
		TrajectoryReturn:         0,
		TrajectoryTransformation: 4,
	}

	positionModes = map[Position]string{
		PositionKeter:    "lydian",
		PositionChokhmah: "ionian",
		PositionBinah:    "aeolian",
		PositionChesed:   "mixolydian",
		PositionGevurah:  "phrygian",
		PositionTiferet:  "ionian",
		PositionNetzach:  "lydian",
		PositionHod:      "dorian",
		PositionYesod:    "aeolian",
		PositionMalkhut:  "dorian",
	}

	elementInstruments = map[Element][]string{
		ElementWood:  {"flute", "guitar", "marimba"},
		ElementFire:  {"brass", "taiko", "electric guitar"},
		ElementEarth: {"cello", "frame drum", "upright bass"},
		ElementMetal: {"bells", "harpsichord", "glass harmonica"},
		ElementWater: {"harp", "piano", "strings pad"},
	}

	trajectoryMeters = map[Trajectory]string{
		TrajectoryAscent:         "4/4",
		TrajectoryDescent:        "3/4",
		TrajectoryReturn:         "6/8",
		TrajectoryTransformation: "7/8",
	}
)

// Movement tables.
var (
	archetypeGestures = map[Archetype][]string{
		ArchetypeInnocent:  {"open palms", "head tilt", "skipping step"},
		ArchetypeOrphan:    {"arms folded", "glance back", "shoulder hunch"},
		ArchetypeHero:      {"chin up", "planted stance", "forward lunge"},
		ArchetypeCaregiver: {"reaching hand", "soft nod", "lean in"},
		ArchetypeExplorer:  {"shading eyes", "long stride", "pivot"},
		ArchetypeRebel:     {"pointed finger", "kicked chair", "smirk"},
		ArchetypeLover:     {"lingering touch", "sway", "hand to heart"},
		ArchetypeCreator:   {"sketching air", "tapping rhythm", "squinting frame"},
		ArchetypeJester:    {"exaggerated bow", "spin", "wink"},
		ArchetypeSage:      {"steepled fingers", "slow blink", "stroked chin"},
		ArchetypeMagician:  {"circling hand", "sudden stillness", "whisper lean"},
		ArchetypeRuler:     {"raised hand", "measured pace", "seated command"},
	}

	polarityQuality = map[Polarity]string{
		PolarityHot:  "staccato",
		PolarityCool: "legato",
	}

	pillarPosture = map[Pillar]string{
		PillarMercy:    "open",
		PillarSeverity: "guarded",
		PillarBalance:  "centered",
	}

	trajectorySpatial = map[Trajectory]string{
		TrajectoryAscent:         "rising",
		TrajectoryDescent:        "grounding",
		TrajectoryReturn:         "circling",
		TrajectoryTransformation: "spiraling",
	}
)

// Palette returns a copy of the palette for a.
func Palette(a Archetype) []string { return cloneStrings(palettes[a]) }

// Motifs returns a copy of the motifs for p.
func Motifs(p Position) []string { return cloneStrings(positionMotifs[p]) }

// Finish returns the surface finish for a polarity.
func Finish(p Polarity) string { return polarityFinish[p] }

// VoiceRegister returns the vocal register for a gender and polarity.
func VoiceRegister(g Gender, p Polarity) string { return voiceRegisters[g][p] }

// EnergyLevel returns the voice energy on a 1..10 scale.
func EnergyLevel(p Polarity, t Trajectory) int {
	return clamp(baseEnergy[p]+energyShift[t], 1, 10)
}

// Timbre returns the vocal timbre for an element.
func Timbre(e Element) string { return elementTimbre[e] }

// Tempo returns the signature tempo in beats per minute.
func Tempo(p Polarity, t Trajectory) int { return baseTempo[p] + tempoShift[t] }

// Mode returns the musical mode for a position.
func Mode(p Position) string { return positionModes[p] }

// Instrumentation returns a copy of the instruments for an element.
func Instrumentation(e Element) []string { return cloneStrings(elementInstruments[e]) }

// Meter returns the time signature for a trajectory.
func Meter(t Trajectory) string { return trajectoryMeters[t] }

// Gestures returns a copy of the gesture vocabulary for a.
func Gestures(a Archetype) []string { return cloneStrings(archetypeGestures[a]) }

// MovementQuality returns the movement quality for a polarity.
func MovementQuality(p Polarity) string { return polarityQuality[p] }

// Posture returns the resting posture for a pillar.
func Posture(p Pillar) string { return pillarPosture[p] }

// Spatial returns the spatial pattern for a trajectory.
func Spatial(t Trajectory) string { return trajectorySpatial[t] }

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
