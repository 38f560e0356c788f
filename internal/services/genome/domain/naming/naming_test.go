package naming

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/louisbranch/oripheon/internal/services/genome/domain/tables"
	"golang.org/x/text/unicode/norm"
)

func boolPtr(v bool) *bool { return &v }

func TestGenerateIsDeterministic(t *testing.T) {
	t.Parallel()

	req := Request{Seed: 42, Heritages: []tables.Heritage{tables.HeritageCeltic}}
	first, err := Generate(req)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := Generate(req)
	if err != nil {
		t.Fatalf("generate again: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("name mismatch (-first +second):\n%s", diff)
	}
}

func TestGenerateProducesValidNamesForEveryHeritage(t *testing.T) {
	t.Parallel()

	for _, h := range tables.Heritages {
		for seed := int64(0); seed < 100; seed++ {
			rec, err := Generate(Request{Seed: seed, Heritages: []tables.Heritage{h}})
			if err != nil {
				t.Fatalf("%s seed %d: %v", h, seed, err)
			}
			if err := rec.Check(); err != nil {
				t.Fatalf("%s seed %d: %v", h, seed, err)
			}
			if !utf8.ValidString(rec.DisplayName) || !norm.NFC.IsNormalString(rec.DisplayName) {
				t.Fatalf("%s seed %d: display name %q is not NFC", h, seed, rec.DisplayName)
			}
			if rec.IsMononym != (rec.Surname == "") {
				t.Fatalf("%s seed %d: mononym = %v, surname = %q", h, seed, rec.IsMononym, rec.Surname)
			}
		}
	}
}

func TestGenerateMononymSuppressesSurname(t *testing.T) {
	t.Parallel()

	full, err := Generate(Request{Seed: 7, Heritages: []tables.Heritage{tables.HeritageIberian}, Mononym: boolPtr(false), Totem: boolPtr(false)})
	if err != nil {
		t.Fatalf("generate full: %v", err)
	}
	mono, err := Generate(Request{Seed: 7, Heritages: []tables.Heritage{tables.HeritageIberian}, Mononym: boolPtr(true), Totem: boolPtr(false)})
	if err != nil {
		t.Fatalf("generate mononym: %v", err)
	}
	if !mono.IsMononym || mono.Surname != "" {
		t.Fatalf("mononym record = %+v", mono)
	}
	if full.Surname == "" || full.IsMononym {
		t.Fatalf("full record = %+v", full)
	}
	if mono.Given != full.Given {
		t.Fatalf("given name changed with mononym: %q vs %q", mono.Given, full.Given)
	}
	if strings.Contains(mono.DisplayName, full.Surname) {
		t.Fatalf("mononym display %q still carries surname %q", mono.DisplayName, full.Surname)
	}
}

func TestGenerateTotemAugmentsDisplayName(t *testing.T) {
	t.Parallel()

	rec, err := Generate(Request{Seed: 11, Heritages: []tables.Heritage{tables.HeritageYoruba}, Mononym: boolPtr(false), Totem: boolPtr(true)})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if rec.TotemAnimal == "" {
		t.Fatal("expected totem animal")
	}
	found := false
	for _, animal := range tables.TotemAnimals {
		if animal == rec.TotemAnimal {
			found = true
		}
	}
	if !found {
		t.Fatalf("totem %q not in pool", rec.TotemAnimal)
	}
	if !strings.Contains(rec.DisplayName, " of the ") {
		t.Fatalf("display name %q missing totem", rec.DisplayName)
	}

	other, err := Generate(Request{Seed: 11, Heritages: []tables.Heritage{tables.HeritageHebrew}, Totem: boolPtr(true)})
	if err != nil {
		t.Fatalf("generate other heritage: %v", err)
	}
	if other.TotemAnimal != rec.TotemAnimal {
		t.Fatalf("totem depends on heritage: %q vs %q", other.TotemAnimal, rec.TotemAnimal)
	}
}

func TestMononymDisplayNameStaysOneToken(t *testing.T) {
	t.Parallel()

	for seed := int64(0); seed < 50; seed++ {
		rec, err := Generate(Request{
			Seed:      seed,
			Heritages: []tables.Heritage{tables.HeritageNipponic},
			Mononym:   boolPtr(true),
			Totem:     boolPtr(true),
		})
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if rec.TotemAnimal == "" {
			t.Fatalf("seed %d: totem animal dropped from record", seed)
		}
		name := strings.TrimSpace(strings.ReplaceAll(rec.DisplayName, tables.GlyphStar, ""))
		if fields := strings.Fields(name); len(fields) != 1 {
			t.Fatalf("seed %d: mononym display %q has %d tokens, want 1", seed, rec.DisplayName, len(fields))
		}
	}
}

func TestGenerateBlendAlternatesPools(t *testing.T) {
	t.Parallel()

	heritages := []tables.Heritage{tables.HeritageNipponic, tables.HeritageNorse}
	nipponic, _ := tables.Syllables(tables.HeritageNipponic)
	norse, _ := tables.Syllables(tables.HeritageNorse)

	for seed := int64(0); seed < 50; seed++ {
		rec, err := Generate(Request{Seed: seed, Heritages: heritages, Mononym: boolPtr(false)})
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if !rec.IsBlended || len(rec.HeritageSources) != 2 {
			t.Fatalf("seed %d: record = %+v", seed, rec)
		}
		given := strings.ToLower(rec.Given)
		if !hasPrefixFrom(given, nipponic.Prefixes) {
			t.Fatalf("seed %d: given %q does not start with a nipponic prefix", seed, given)
		}
		surname := strings.ToLower(rec.Surname)
		if !hasPrefixFrom(surname, norse.SurnameRoots) || !hasSuffixFrom(surname, nipponic.SurnameEndings) {
			t.Fatalf("seed %d: surname %q does not alternate norse root and nipponic ending", seed, surname)
		}
	}
}

func TestAdornmentDoesNotTouchHeritage(t *testing.T) {
	t.Parallel()

	seen := map[tables.Adornment]bool{}
	for seed := int64(0); seed < 300; seed++ {
		rec, err := Generate(Request{Seed: seed, Heritages: []tables.Heritage{tables.HeritageHellenic}})
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if len(rec.HeritageSources) != 1 || rec.HeritageSources[0] != tables.HeritageHellenic {
			t.Fatalf("seed %d: heritage sources = %v", seed, rec.HeritageSources)
		}
		switch {
		case len(rec.AdornmentGlyphs) == 0:
			seen[tables.AdornmentNone] = true
		case rec.AdornmentGlyphs[0] == tables.GlyphStar:
			seen[tables.AdornmentStar] = true
			if !strings.HasPrefix(rec.DisplayName, tables.GlyphStar) || !strings.HasSuffix(rec.DisplayName, tables.GlyphStar) {
				t.Fatalf("seed %d: star name %q not framed", seed, rec.DisplayName)
			}
		default:
			seen[tables.AdornmentAcute] = true
			if utf8.RuneCountInString(rec.DisplayName) == len(rec.DisplayName) {
				t.Fatalf("seed %d: diacritic missing from %q", seed, rec.DisplayName)
			}
			if !strings.Contains(rec.DisplayName, rec.Surname) {
				t.Fatalf("seed %d: adornment altered surname in %q", seed, rec.DisplayName)
			}
		}
	}
	if !seen[tables.AdornmentNone] || !seen[tables.AdornmentStar] || !seen[tables.AdornmentAcute] {
		t.Fatalf("expected every adornment family across seeds, saw %v", seen)
	}
}

func TestAdornPlacesDiacritics(t *testing.T) {
	t.Parallel()

	got, glyphs := adorn("Alanei", tables.AdornmentAcute)
	if got != "Álanei" || len(glyphs) != 1 {
		t.Fatalf("acute = %q %v, want Álanei", got, glyphs)
	}
	got, _ = adorn("Alanei", tables.AdornmentMacron)
	if got != "Alaneī" {
		t.Fatalf("macron = %q, want Alaneī", got)
	}
	got, glyphs = adorn("Brr", tables.AdornmentAcute)
	if got != "Brr" || len(glyphs) != 0 {
		t.Fatalf("vowelless = %q %v", got, glyphs)
	}
}

func TestGenerateRejectsBadHeritages(t *testing.T) {
	t.Parallel()

	if _, err := Generate(Request{Seed: 1}); err == nil {
		t.Fatal("expected error for no heritages")
	}
	if _, err := Generate(Request{Seed: 1, Heritages: []tables.Heritage{"atlantean"}}); err == nil {
		t.Fatal("expected error for unknown heritage")
	}
}

func hasPrefixFrom(s string, options []string) bool {
	for _, o := range options {
		if strings.HasPrefix(s, o) {
			return true
		}
	}
	return false
}

func hasSuffixFrom(s string, options []string) bool {
	for _, o := range options {
		if strings.HasSuffix(s, o) {
			return true
		}
	}
	return false
}
