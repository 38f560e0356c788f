// Package naming builds display names from heritage syllable pools.
//
// A given name is prefix + core + optional suffix and a surname is
// root + ending. Blended names alternate heritages slot by slot in a fixed
// order, so the result depends only on the seed and the two heritages.
// Adornment runs last and only touches the display string.
package naming

import (
	"fmt"
	"strings"

	"github.com/louisbranch/oripheon/internal/services/genome/domain/seedstream"
	"github.com/louisbranch/oripheon/internal/services/genome/domain/tables"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

const (
	labelPrefix        = "name.prefix"
	labelCore          = "name.core"
	labelSuffixEnabled = "name.suffix.enabled"
	labelSuffix        = "name.suffix"
	labelSurnameRoot   = "name.surname.root"
	labelSurnameEnding = "name.surname.ending"
	labelMononym       = "name.mononym"
	labelTotem         = "name.totem"
	labelTotemAnimal   = "name.totem.animal"
	labelAdornment     = "name.adornment"
)

// Record is the generated name.
type Record struct {
	DisplayName     string            `json:"display_name" yaml:"display_name"`
	Given           string            `json:"given" yaml:"given"`
	Surname         string            `json:"surname,omitempty" yaml:"surname,omitempty"`
	HeritageSources []tables.Heritage `json:"heritage_sources" yaml:"heritage_sources"`
	IsMononym       bool              `json:"is_mononym" yaml:"is_mononym"`
	IsBlended       bool              `json:"is_blended" yaml:"is_blended"`
	TotemAnimal     string            `json:"totem_animal,omitempty" yaml:"totem_animal,omitempty"`
	AdornmentGlyphs []string          `json:"adornment_glyphs" yaml:"adornment_glyphs"`
}

// Check reports the first name invariant the record breaks, or nil.
func (r Record) Check() error {
	if strings.TrimSpace(r.DisplayName) == "" {
		return fmt.Errorf("display name is empty")
	}
	if len(r.HeritageSources) == 0 || len(r.HeritageSources) > 2 {
		return fmt.Errorf("name has %d heritage sources", len(r.HeritageSources))
	}
	if r.IsBlended && len(r.HeritageSources) != 2 {
		return fmt.Errorf("blended name has %d heritage sources", len(r.HeritageSources))
	}
	for _, h := range r.HeritageSources {
		if !tables.IsHeritage(h) {
			return fmt.Errorf("unknown heritage source %q", h)
		}
	}
	return nil
}

// Request selects the heritage pools and optional pinned features.
type Request struct {
	Seed      int64
	Heritages []tables.Heritage
	Mononym   *bool
	Totem     *bool
}

// Generate builds the name for req.
func Generate(req Request) (Record, error) {
	if len(req.Heritages) == 0 || len(req.Heritages) > 2 {
		return Record{}, fmt.Errorf("name requires one or two heritages, got %d", len(req.Heritages))
	}
	first, ok := tables.Syllables(req.Heritages[0])
	if !ok {
		return Record{}, fmt.Errorf("no syllables for heritage %q", req.Heritages[0])
	}
	// Single-heritage names read every slot from the same pool.
	second := first
	if len(req.Heritages) == 2 {
		second, ok = tables.Syllables(req.Heritages[1])
		if !ok {
			return Record{}, fmt.Errorf("no syllables for heritage %q", req.Heritages[1])
		}
	}

	seed := req.Seed
	given, err := buildGiven(seed, first, second)
	if err != nil {
		return Record{}, err
	}

	mononym := resolveFlag(seed, labelMononym, req.Mononym, tables.MononymProbability)
	surname := ""
	if !mononym {
		surname, err = buildSurname(seed, first, second)
		if err != nil {
			return Record{}, err
		}
	}

	totem := ""
	if resolveFlag(seed, labelTotem, req.Totem, tables.TotemProbability) {
		totem, err = seedstream.Uniform(seed, labelTotemAnimal, tables.TotemAnimals)
		if err != nil {
			return Record{}, err
		}
	}

	adornment, err := seedstream.Choose(seed, labelAdornment, tables.Adornments)
	if err != nil {
		return Record{}, err
	}

	caser := cases.Title(language.Und)
	given = caser.String(given)
	if surname != "" {
		surname = caser.String(surname)
	}

	adornedGiven, glyphs := adorn(given, adornment)
	parts := []string{adornedGiven}
	if surname != "" {
		parts = append(parts, surname)
	}
	display := strings.Join(parts, " ")
	// Mononyms stay a single token; the totem is kept on the record only.
	if totem != "" && !mononym {
		display += " of the " + caser.String(totem)
	}
	if adornment == tables.AdornmentStar {
		display = tables.GlyphStar + " " + display + " " + tables.GlyphStar
	}

	sources := make([]tables.Heritage, len(req.Heritages))
	copy(sources, req.Heritages)

	return Record{
		DisplayName:     display,
		Given:           given,
		Surname:         surname,
		HeritageSources: sources,
		IsMononym:       mononym,
		IsBlended:       len(sources) == 2,
		TotemAnimal:     totem,
		AdornmentGlyphs: glyphs,
	}, nil
}

// buildGiven alternates pools: prefix and suffix from the first heritage,
// core from the second.
func buildGiven(seed int64, first, second tables.SyllablePool) (string, error) {
	prefix, err := seedstream.Uniform(seed, labelPrefix, first.Prefixes)
	if err != nil {
		return "", err
	}
	core, err := seedstream.Uniform(seed, labelCore, second.Cores)
	if err != nil {
		return "", err
	}
	given := prefix + core
	if seedstream.Float64(seed, labelSuffixEnabled) < tables.SuffixProbability {
		suffix, err := seedstream.Uniform(seed, labelSuffix, first.Suffixes)
		if err != nil {
			return "", err
		}
		given += suffix
	}
	return given, nil
}

// buildSurname continues the alternation: root from the second heritage,
// ending from the first.
func buildSurname(seed int64, first, second tables.SyllablePool) (string, error) {
	root, err := seedstream.Uniform(seed, labelSurnameRoot, second.SurnameRoots)
	if err != nil {
		return "", err
	}
	ending, err := seedstream.Uniform(seed, labelSurnameEnding, first.SurnameEndings)
	if err != nil {
		return "", err
	}
	return root + ending, nil
}

func resolveFlag(seed int64, label string, pinned *bool, probability float64) bool {
	if pinned != nil {
		return *pinned
	}
	return seedstream.Float64(seed, label) < probability
}

// adorn applies a diacritic to the given name. Star framing wraps the whole
// display name and is handled by the caller.
func adorn(given string, adornment tables.Adornment) (string, []string) {
	switch adornment {
	case tables.AdornmentAcute:
		if i := firstVowel(given); i >= 0 {
			return norm.NFC.String(given[:i+1] + tables.GlyphAcute + given[i+1:]), []string{tables.GlyphAcute}
		}
	case tables.AdornmentMacron:
		if i := lastVowel(given); i >= 0 {
			return norm.NFC.String(given[:i+1] + tables.GlyphMacron + given[i+1:]), []string{tables.GlyphMacron}
		}
	case tables.AdornmentStar:
		return given, []string{tables.GlyphStar}
	}
	return given, []string{}
}

// Syllables are ASCII, so byte indexes are rune indexes.
func firstVowel(s string) int {
	return strings.IndexAny(s, "aeiouAEIOU")
}

func lastVowel(s string) int {
	return strings.LastIndexAny(s, "aeiouAEIOU")
}
