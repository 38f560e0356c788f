// Package signature derives the visual, voice, music and movement signatures
// of a character. Derivation is a pure function of the archetype tuple and
// gender and consumes no seed.
package signature

import (
	"github.com/louisbranch/oripheon/internal/services/genome/domain/archetype"
	"github.com/louisbranch/oripheon/internal/services/genome/domain/tables"
)

// Visual describes how the character looks on the page.
type Visual struct {
	Palette []string `json:"palette" yaml:"palette"`
	Motifs  []string `json:"motifs" yaml:"motifs"`
	Finish  string   `json:"finish" yaml:"finish"`
	Glyph   string   `json:"glyph" yaml:"glyph"`
}

// Voice describes how the character sounds.
type Voice struct {
	Register string             `json:"register" yaml:"register"`
	Family   tables.VoiceFamily `json:"family" yaml:"family"`
	Energy   int                `json:"energy" yaml:"energy"`
	Timbre   string             `json:"timbre" yaml:"timbre"`
}

// Music describes the character's theme.
type Music struct {
	Tempo           int      `json:"tempo_bpm" yaml:"tempo_bpm"`
	Mode            string   `json:"mode" yaml:"mode"`
	Meter           string   `json:"meter" yaml:"meter"`
	Instrumentation []string `json:"instrumentation" yaml:"instrumentation"`
}

// Movement describes how the character moves.
type Movement struct {
	Gestures []string `json:"gestures" yaml:"gestures"`
	Quality  string   `json:"quality" yaml:"quality"`
	Posture  string   `json:"posture" yaml:"posture"`
	Spatial  string   `json:"spatial" yaml:"spatial"`
}

// MultiModal bundles the four parallel signatures.
type MultiModal struct {
	Visual   Visual   `json:"visual" yaml:"visual"`
	Voice    Voice    `json:"voice" yaml:"voice"`
	Music    Music    `json:"music" yaml:"music"`
	Movement Movement `json:"movement" yaml:"movement"`
}

// Derive maps a resolved tuple and gender to its signatures.
func Derive(tuple archetype.Tuple, gender tables.Gender) MultiModal {
	profile, _ := tables.Profile(tuple.Primary)
	element := tables.ElementOf(tuple.Primary)
	pillar := tables.PillarOf(tuple.Position)

	return MultiModal{
		Visual: Visual{
			Palette: tables.Palette(tuple.Primary),
			Motifs:  tables.Motifs(tuple.Position),
			Finish:  tables.Finish(tuple.Polarity),
			Glyph:   profile.Glyph,
		},
		Voice: Voice{
			Register: tables.VoiceRegister(gender, tuple.Polarity),
			Family:   profile.VoiceFamily,
			Energy:   tables.EnergyLevel(tuple.Polarity, tuple.Trajectory),
			Timbre:   tables.Timbre(element),
		},
		Music: Music{
			Tempo:           tables.Tempo(tuple.Polarity, tuple.Trajectory),
			Mode:            tables.Mode(tuple.Position),
			Meter:           tables.Meter(tuple.Trajectory),
			Instrumentation: tables.Instrumentation(element),
		},
		Movement: Movement{
			Gestures: tables.Gestures(tuple.Primary),
			Quality:  tables.MovementQuality(tuple.Polarity),
			Posture:  tables.Posture(pillar),
			Spatial:  tables.Spatial(tuple.Trajectory),
		},
	}
}
