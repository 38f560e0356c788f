package tables

import "github.com/louisbranch/oripheon/internal/services/genome/domain/seedstream"

// SyllablePool holds the heritage-specific fragments a name is built from.
// Fragments are lowercase ASCII; casing and adornment are applied later.
type SyllablePool struct {
	Prefixes       []string
	Cores          []string
	Suffixes       []string
	SurnameRoots   []string
	SurnameEndings []string
}

var syllablePools = map[Heritage]SyllablePool{
	HeritageIberian: {
		Prefixes:       []string{"al", "bel", "car", "dol", "es", "mar", "ro", "val"},
		Cores:          []string{"an", "ei", "ma", "ri", "si", "te", "lo", "vi"},
		Suffixes:       []string{"a", "o", "es", "ia", "ez"},
		SurnameRoots:   []string{"alv", "bar", "cas", "fern", "gar", "mor", "ped", "vill"},
		SurnameEndings: []string{"ado", "anez", "era", "eira", "ez", "ino"},
	},
	HeritageCeltic: {
		Prefixes:       []string{"bri", "cai", "dei", "ea", "fi", "mor", "ros", "tal"},
		Cores:          []string{"an", "dh", "gh", "li", "ne", "ra", "wy", "ve"},
		Suffixes:       []string{"ach", "an", "een", "wen", "ith"},
		SurnameRoots:   []string{"mac", "bren", "con", "dun", "fal", "kel", "mur", "quil"},
		SurnameEndings: []string{"an", "ach", "ey", "ough", "in", "ly"},
	},
	HeritageHellenic: {
		Prefixes:       []string{"al", "ath", "dem", "eu", "kal", "ly", "the", "xen"},
		Cores:          []string{"an", "do", "ke", "li", "ni", "ra", "so", "ta"},
		Suffixes:       []string{"os", "ia", "is", "on", "e"},
		SurnameRoots:   []string{"andr", "dimitr", "kost", "leon", "nik", "pap", "stav", "vas"},
		SurnameEndings: []string{"akis", "ides", "opoulos", "ou", "as", "eas"},
	},
	HeritageNorse: {
		Prefixes:       []string{"ar", "bjo", "ei", "fro", "gun", "hal", "sig", "thor"},
		Cores:          []string{"dis", "ga", "hil", "mund", "rik", "ulf", "vald", "ny"},
		Suffixes:       []string{"a", "r", "ir", "un", "ny"},
		SurnameRoots:   []string{"ander", "bjorn", "erik", "halv", "ingv", "magn", "sig", "thor"},
		SurnameEndings: []string{"sen", "son", "dottir", "heim", "vik", "stad"},
	},
	HeritageYoruba: {
		Prefixes:       []string{"ade", "ayo", "bo", "fo", "ife", "ola", "to", "yemi"},
		Cores:          []string{"ba", "de", "ke", "la", "mi", "nu", "ro", "wa"},
		Suffixes:       []string{"de", "la", "mi", "nle", "wa"},
		SurnameRoots:   []string{"ade", "bab", "ogun", "olu", "oyel", "ako", "fash", "ibi"},
		SurnameEndings: []string{"bayo", "ola", "ade", "eye", "tunde", "wale"},
	},
	HeritageNahua: {
		Prefixes:       []string{"citla", "cua", "ilhui", "itz", "mix", "necal", "te", "xo"},
		Cores:          []string{"ca", "li", "pa", "co", "to", "ma", "hu", "ye"},
		Suffixes:       []string{"tl", "li", "atl", "in", "tzin"},
		SurnameRoots:   []string{"ehe", "mazat", "ollin", "quet", "tena", "tlal", "yol", "zac"},
		SurnameEndings: []string{"catl", "tli", "tzin", "otl", "pan", "co"},
	},
	HeritageNipponic: {
		Prefixes:       []string{"a", "hi", "ka", "mi", "na", "sa", "ta", "yu"},
		Cores:          []string{"ki", "ra", "su", "to", "ne", "mo", "ri", "ko"},
		Suffixes:       []string{"ko", "mi", "ro", "ta", "ya"},
		SurnameRoots:   []string{"fuji", "hashi", "kawa", "mori", "naka", "sato", "taka", "yama"},
		SurnameEndings: []string{"da", "moto", "no", "shita", "mura", "gawa"},
	},
	HeritageHebrew: {
		Prefixes:       []string{"av", "el", "ha", "mi", "na", "sha", "ta", "ye"},
		Cores:          []string{"di", "el", "ha", "ri", "mo", "na", "sh", "va"},
		Suffixes:       []string{"a", "el", "ah", "iel", "on"},
		SurnameRoots:   []string{"ben", "cohen", "dav", "gold", "lev", "mal", "rosen", "shal"},
		SurnameEndings: []string{"i", "el", "stein", "berg", "or", "an"},
	},
}

// Syllables returns the syllable pool for h.
func Syllables(h Heritage) (SyllablePool, bool) {
	pool, ok := syllablePools[h]
	return pool, ok
}

// TotemAnimals is the heritage-independent totem pool.
var TotemAnimals = []string{
	"heron",
	"jaguar",
	"raven",
	"stag",
	"salamander",
	"owl",
	"fox",
	"serpent",
	"hare",
	"wolf",
	"crane",
	"bee",
}

// Adornment names a cosmetic treatment of the display name.
type Adornment string

const (
	AdornmentNone   Adornment = "none"
	AdornmentAcute  Adornment = "acute"
	AdornmentMacron Adornment = "macron"
	AdornmentStar   Adornment = "star"
)

// Adornments lists the weighted adornment options.
var Adornments = []seedstream.Weighted[Adornment]{
	{Value: AdornmentNone, Weight: 6},
	{Value: AdornmentAcute, Weight: 2},
	{Value: AdornmentMacron, Weight: 1},
	{Value: AdornmentStar, Weight: 1},
}

// Adornment glyphs recorded on the name.
const (
	GlyphAcute  = "\u0301"
	GlyphMacron = "\u0304"
	GlyphStar   = "✦"
)

// Probabilities for drawn name features when no override pins them.
const (
	SuffixProbability  = 0.5
	MononymProbability = 0.15
	TotemProbability   = 0.3
)

// GenderWeights lists the weighted gender options.
var GenderWeights = []seedstream.Weighted[Gender]{
	{Value: GenderFemale, Weight: 4},
	{Value: GenderMale, Weight: 4},
	{Value: GenderNonbinary, Weight: 2},
}
