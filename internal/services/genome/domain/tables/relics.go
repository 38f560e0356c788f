package tables

import (
	"strconv"
	"strings"
)

// RelicCategory is the kind of object a relic is.
type RelicCategory string

const (
	RelicBlade      RelicCategory = "blade"
	RelicAmulet     RelicCategory = "amulet"
	RelicCodex      RelicCategory = "codex"
	RelicMirror     RelicCategory = "mirror"
	RelicInstrument RelicCategory = "instrument"
	RelicDevice     RelicCategory = "device"
	RelicPhotograph RelicCategory = "photograph"
	RelicMixtape    RelicCategory = "mixtape"
)

// RelicCategories lists every category in draw order.
var RelicCategories = []RelicCategory{
	RelicBlade,
	RelicAmulet,
	RelicCodex,
	RelicMirror,
	RelicInstrument,
	RelicDevice,
	RelicPhotograph,
	RelicMixtape,
}

// RelicProfile describes what a category can be and where it comes from.
type RelicProfile struct {
	Object     string
	Eras       []Era
	Origins    []string
	Pseudonyms []string
}

var relicProfiles = map[RelicCategory]RelicProfile{
	RelicBlade: {
		Object:     "blade",
		Eras:       []Era{EraArchaic, EraTimeless},
		Origins:    []string{"a drowned armory", "a smith who refused a king", "the last battle at the ford"},
		Pseudonyms: []string{"Thornwake", "the Quiet Edge", "Vow-Cutter"},
	},
	RelicAmulet: {
		Object:     "amulet",
		Eras:       []Era{EraArchaic, EraTimeless},
		Origins:    []string{"a grandmother's grave", "a temple sold for salt", "a river stone split by lightning"},
		Pseudonyms: []string{"the Warden", "Little Sun", "Keeper of Names"},
	},
	RelicCodex: {
		Object:     "codex",
		Eras:       []Era{EraArchaic, EraTimeless},
		Origins:    []string{"a burned monastery", "a library no map shows", "a scribe's unfinished copy"},
		Pseudonyms: []string{"the Margin", "Ink of Ash", "the Unbound"},
	},
	RelicMirror: {
		Object:     "mirror",
		Eras:       []Era{EraArchaic, EraModern, EraTimeless},
		Origins:    []string{"a palace hall of glass", "a pawn shop window", "a lake that never froze"},
		Pseudonyms: []string{"Second Face", "the Listener", "Silverback"},
	},
	RelicInstrument: {
		Object:     "instrument",
		Eras:       []Era{EraArchaic, EraModern, EraTimeless},
		Origins:    []string{"a street musician's case", "a wedding that ended early", "a cathedral loft"},
		Pseudonyms: []string{"Low Hum", "the Caller", "Old Throat"},
	},
	RelicDevice: {
		Object:     "device",
		Eras:       []Era{EraModern},
		Origins:    []string{"a lost-and-found bin", "a dead engineer's desk", "a satellite that fell twice"},
		Pseudonyms: []string{"Static", "the Ghost Signal", "Blinker"},
	},
	RelicPhotograph: {
		Object:     "photograph",
		Eras:       []Era{EraModern},
		Origins:    []string{"an estate sale box", "a wallet found on a train", "a darkroom that burned"},
		Pseudonyms: []string{"the Stranger", "Half-Smile", "Polaroid Saint"},
	},
	RelicMixtape: {
		Object:     "mixtape",
		Eras:       []Era{EraModern},
		Origins:    []string{"a first love's glovebox", "a radio station basement", "a thrift store bin"},
		Pseudonyms: []string{"Side B", "the Rewind", "Track Zero"},
	},
}

// Relic returns the profile for category c.
func Relic(c RelicCategory) (RelicProfile, bool) {
	p, ok := relicProfiles[c]
	return p, ok
}

// IsRelicCategory reports whether c is a known category.
func IsRelicCategory(c RelicCategory) bool {
	_, ok := relicProfiles[c]
	return ok
}

// CategoryAllowsEra reports whether c can exist in era e.
func CategoryAllowsEra(c RelicCategory, e Era) bool {
	for _, era := range relicProfiles[c].Eras {
		if era == e {
			return true
		}
	}
	return false
}

// CategoriesForEra returns the categories valid in era e, in draw order.
func CategoriesForEra(e Era) []RelicCategory {
	var out []RelicCategory
	for _, c := range RelicCategories {
		if CategoryAllowsEra(c, e) {
			out = append(out, c)
		}
	}
	return out
}

// SampleTemplate is a short social post a relic might have written about it.
type SampleTemplate struct {
	ID         string
	Archetypes []Archetype
	Text       string
}

// TaggedWith reports whether the template belongs to a's pool.
func (t SampleTemplate) TaggedWith(a Archetype) bool {
	for _, tag := range t.Archetypes {
		if tag == a {
			return true
		}
	}
	return false
}

// Render fills the template placeholders.
func (t SampleTemplate) Render(pseudonym, object string, number int) string {
	return strings.NewReplacer(
		"{pseudonym}", pseudonym,
		"{object}", object,
		"{number}", strconv.Itoa(number),
	).Replace(t.Text)
}

var sampleTemplates = []SampleTemplate{
	{ID: "tpl-innocent-dawn", Archetypes: []Archetype{ArchetypeInnocent}, Text: "woke up early just to hold {pseudonym} in the first light. {number} quiet minutes. the {object} knows."},
	{ID: "tpl-innocent-garden", Archetypes: []Archetype{ArchetypeInnocent, ArchetypeCaregiver}, Text: "planted {number} seeds today and told {pseudonym} every one of their names. this {object} has never been lonely."},
	{ID: "tpl-orphan-road", Archetypes: []Archetype{ArchetypeOrphan}, Text: "{number} cities, one {object}. {pseudonym} is the only thing that came with me."},
	{ID: "tpl-orphan-bridge", Archetypes: []Archetype{ArchetypeOrphan, ArchetypeRebel}, Text: "nobody asked where {pseudonym} came from. nobody asks where i came from either. {number} miles, one {object}."},
	{ID: "tpl-hero-oath", Archetypes: []Archetype{ArchetypeHero}, Text: "day {number}. {pseudonym} is sharpened and so am i. the {object} does not get tired."},
	{ID: "tpl-hero-summit", Archetypes: []Archetype{ArchetypeHero, ArchetypeRuler}, Text: "carried {pseudonym} up {number} flights tonight. some {object}s are meant to be lifted."},
	{ID: "tpl-caregiver-hearth", Archetypes: []Archetype{ArchetypeCaregiver}, Text: "fed {number} people tonight with {pseudonym} on the mantel watching. a good {object} keeps the house warm."},
	{ID: "tpl-explorer-horizon", Archetypes: []Archetype{ArchetypeExplorer}, Text: "{pseudonym} has crossed {number} borders in my bag. the {object} wants to keep going. so do i."},
	{ID: "tpl-explorer-river", Archetypes: []Archetype{ArchetypeExplorer, ArchetypeLover}, Text: "followed the river {number} miles because {pseudonym} hummed when i faced it. trust the {object}."},
	{ID: "tpl-rebel-spark", Archetypes: []Archetype{ArchetypeRebel}, Text: "they said the {object} was cursed. {pseudonym} and i have broken {number} rules since breakfast."},
	{ID: "tpl-lover-rose", Archetypes: []Archetype{ArchetypeLover}, Text: "{number} letters tucked behind {pseudonym}. every {object} is a love letter if you wait long enough."},
	{ID: "tpl-lover-tide", Archetypes: []Archetype{ArchetypeLover, ArchetypeInnocent}, Text: "watched the tide with {pseudonym} for {number} hours. the {object} remembers every face it loved."},
	{ID: "tpl-creator-loom", Archetypes: []Archetype{ArchetypeCreator}, Text: "finished piece number {number}. {pseudonym} sat on the workbench the whole time. this {object} is a muse."},
	{ID: "tpl-creator-forge", Archetypes: []Archetype{ArchetypeCreator, ArchetypeMagician}, Text: "rebuilt the {object} from scratch and it still answers to {pseudonym}. {number} tries. worth it."},
	{ID: "tpl-jester-mirror", Archetypes: []Archetype{ArchetypeJester}, Text: "asked {pseudonym} for advice {number} times. the {object} laughed every time. rude. correct."},
	{ID: "tpl-jester-mask", Archetypes: []Archetype{ArchetypeJester, ArchetypeOrphan}, Text: "wore {pseudonym} to a funeral. {number} people smiled. a {object} should earn its keep."},
	{ID: "tpl-sage-scroll", Archetypes: []Archetype{ArchetypeSage}, Text: "{number} pages of notes on {pseudonym} and i still cannot explain this {object}. good."},
	{ID: "tpl-sage-tower", Archetypes: []Archetype{ArchetypeSage, ArchetypeHero}, Text: "climbed the tower to read {pseudonym} by starlight. {number} answers, each one a new {object} of a question."},
	{ID: "tpl-magician-veil", Archetypes: []Archetype{ArchetypeMagician}, Text: "the {object} hums at {number} past midnight. {pseudonym} is not a name, it is an instruction."},
	{ID: "tpl-magician-eclipse", Archetypes: []Archetype{ArchetypeMagician, ArchetypeSage}, Text: "held {pseudonym} up to the eclipse. {number} shadows where there should be one. the {object} knows things."},
	{ID: "tpl-ruler-crown", Archetypes: []Archetype{ArchetypeRuler}, Text: "{pseudonym} has outlasted {number} councils. an {object} does not need a vote."},
	{ID: "tpl-ruler-law", Archetypes: []Archetype{ArchetypeRuler, ArchetypeCaregiver}, Text: "signed {number} decrees with {pseudonym} on the desk. order is a kind of {object} too."},
	{ID: "tpl-rebel-wolf", Archetypes: []Archetype{ArchetypeRebel, ArchetypeExplorer}, Text: "{pseudonym} and i ran with the wolves for {number} nights. no {object} was ever tamed."},
}

// SampleTemplates returns a copy of the full template pool.
func SampleTemplates() []SampleTemplate {
	out := make([]SampleTemplate, len(sampleTemplates))
	copy(out, sampleTemplates)
	return out
}

// TemplatesFor returns the templates tagged with a, in pool order.
func TemplatesFor(a Archetype) []SampleTemplate {
	var out []SampleTemplate
	for _, t := range sampleTemplates {
		if t.TaggedWith(a) {
			out = append(out, t)
		}
	}
	return out
}

// Template looks up a template by id.
func Template(id string) (SampleTemplate, bool) {
	for _, t := range sampleTemplates {
		if t.ID == id {
			return t, true
		}
	}
	return SampleTemplate{}, false
}
