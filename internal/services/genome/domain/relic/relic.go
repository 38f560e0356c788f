// Package relic draws the object a character carries and the lore attached
// to it.
//
// Sample text is selected by filtering the template pool to the primary
// archetype first and drawing second, so a relic can never carry another
// archetype's post.
package relic

import (
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/oripheon/internal/platform/errors"
	"github.com/louisbranch/oripheon/internal/services/genome/domain/seedstream"
	"github.com/louisbranch/oripheon/internal/services/genome/domain/tables"
)

const (
	labelCategory  = "relic.category"
	labelEra       = "relic.era"
	labelOrigin    = "relic.origin"
	labelPseudonym = "relic.pseudonym"
	labelSample    = "relic.sample"
)

// Lock is a caller-pinned relic. Category and origin are required; era and
// pseudonym are filled when absent.
type Lock struct {
	Category  tables.RelicCategory `json:"category" yaml:"category"`
	Origin    string               `json:"origin" yaml:"origin"`
	Era       tables.Era           `json:"era,omitempty" yaml:"era,omitempty"`
	Pseudonym string               `json:"pseudonym,omitempty" yaml:"pseudonym,omitempty"`
}

// Record is the generated relic.
type Record struct {
	Category         tables.RelicCategory `json:"category" yaml:"category"`
	Era              tables.Era           `json:"era" yaml:"era"`
	Origin           string               `json:"origin" yaml:"origin"`
	Pseudonym        string               `json:"pseudonym" yaml:"pseudonym"`
	SacredNumber     int                  `json:"sacred_number" yaml:"sacred_number"`
	SampleText       string               `json:"sample_text" yaml:"sample_text"`
	SampleTemplateID string               `json:"sample_template_id" yaml:"sample_template_id"`
	Locked           bool                 `json:"locked" yaml:"locked"`
}

// Request carries the seed, the resolved primary archetype and any relic
// overrides.
type Request struct {
	Seed    int64
	Primary tables.Archetype
	Era     tables.Era
	Lock    *Lock
}

// Validate checks the relic overrides alone and together.
func (r Request) Validate() error {
	if r.Era != "" && !tables.IsEra(r.Era) {
		return invalidOverride("relicEra", string(r.Era))
	}
	if r.Lock == nil {
		return nil
	}
	lock := r.Lock
	if !tables.IsRelicCategory(lock.Category) {
		return invalidOverride("lockedRelic.category", string(lock.Category))
	}
	if strings.TrimSpace(lock.Origin) == "" {
		return invalidOverride("lockedRelic.origin", lock.Origin)
	}
	if lock.Era != "" && !tables.IsEra(lock.Era) {
		return invalidOverride("lockedRelic.era", string(lock.Era))
	}
	if lock.Era != "" && r.Era != "" && lock.Era != r.Era {
		return constraintConflict(
			fmt.Sprintf("locked relic era %s differs from requested era %s", lock.Era, r.Era),
			"lockedRelic.era", "relicEra",
		)
	}
	era := lock.Era
	field := "lockedRelic.era"
	if era == "" {
		era, field = r.Era, "relicEra"
	}
	if era != "" && !tables.CategoryAllowsEra(lock.Category, era) {
		return constraintConflict(
			fmt.Sprintf("locked relic category %s is not defined for era %s", lock.Category, era),
			"lockedRelic.category", field,
		)
	}
	return nil
}

// Generate draws the relic for req.
func Generate(req Request) (Record, error) {
	if !tables.IsArchetype(req.Primary) {
		return Record{}, fmt.Errorf("relic requires a known primary archetype, got %q", req.Primary)
	}
	if err := req.Validate(); err != nil {
		return Record{}, err
	}

	var (
		rec Record
		err error
	)
	if req.Lock != nil {
		rec, err = fromLock(req)
	} else {
		rec, err = draw(req)
	}
	if err != nil {
		return Record{}, err
	}

	profile, _ := tables.Relic(rec.Category)
	rec.SacredNumber = tables.SacredNumber(req.Primary)

	pool := tables.TemplatesFor(req.Primary)
	template, err := seedstream.Uniform(req.Seed, labelSample, pool)
	if err != nil {
		return Record{}, fmt.Errorf("sample text for %s: %w", req.Primary, err)
	}
	rec.SampleTemplateID = template.ID
	rec.SampleText = template.Render(rec.Pseudonym, profile.Object, rec.SacredNumber)
	return rec, nil
}

func draw(req Request) (Record, error) {
	categories := tables.RelicCategories
	if req.Era != "" {
		categories = tables.CategoriesForEra(req.Era)
	}
	category, err := seedstream.Uniform(req.Seed, labelCategory, categories)
	if err != nil {
		return Record{}, err
	}
	profile, _ := tables.Relic(category)

	era := req.Era
	if era == "" {
		era, err = seedstream.Uniform(req.Seed, labelEra, profile.Eras)
		if err != nil {
			return Record{}, err
		}
	}
	origin, err := seedstream.Uniform(req.Seed, labelOrigin, profile.Origins)
	if err != nil {
		return Record{}, err
	}
	pseudonym, err := seedstream.Uniform(req.Seed, labelPseudonym, profile.Pseudonyms)
	if err != nil {
		return Record{}, err
	}
	return Record{
		Category:  category,
		Era:       era,
		Origin:    origin,
		Pseudonym: pseudonym,
	}, nil
}

func fromLock(req Request) (Record, error) {
	lock := req.Lock
	profile, _ := tables.Relic(lock.Category)

	era := lock.Era
	if era == "" {
		era = req.Era
	}
	if era == "" {
		era = profile.Eras[0]
	}

	pseudonym := lock.Pseudonym
	if pseudonym == "" {
		var err error
		pseudonym, err = seedstream.Uniform(req.Seed, labelPseudonym, profile.Pseudonyms)
		if err != nil {
			return Record{}, err
		}
	}
	return Record{
		Category:  lock.Category,
		Era:       era,
		Origin:    lock.Origin,
		Pseudonym: pseudonym,
		Locked:    true,
	}, nil
}

// Check reports the first relic invariant the record breaks for primary and
// lock, or nil.
func (r Record) Check(primary tables.Archetype, lock *Lock) error {
	profile, ok := tables.Relic(r.Category)
	if !ok {
		return fmt.Errorf("unknown relic category %q", r.Category)
	}
	if !tables.CategoryAllowsEra(r.Category, r.Era) {
		return fmt.Errorf("relic category %s is not defined for era %s", r.Category, r.Era)
	}
	if r.SacredNumber != tables.SacredNumber(primary) {
		return fmt.Errorf("sacred number %d does not match %s", r.SacredNumber, primary)
	}
	template, ok := tables.Template(r.SampleTemplateID)
	if !ok || !template.TaggedWith(primary) {
		return fmt.Errorf("sample template %q is not tagged with %s", r.SampleTemplateID, primary)
	}
	if r.SampleText != template.Render(r.Pseudonym, profile.Object, r.SacredNumber) {
		return fmt.Errorf("sample text does not render from template %q", r.SampleTemplateID)
	}
	if lock != nil {
		if r.Category != lock.Category || r.Origin != lock.Origin {
			return fmt.Errorf("relic %s/%q does not honour lock %s/%q", r.Category, r.Origin, lock.Category, lock.Origin)
		}
		if lock.Era != "" && r.Era != lock.Era {
			return fmt.Errorf("relic era %s does not honour locked era %s", r.Era, lock.Era)
		}
		if lock.Pseudonym != "" && r.Pseudonym != lock.Pseudonym {
			return fmt.Errorf("relic pseudonym %q does not honour lock %q", r.Pseudonym, lock.Pseudonym)
		}
	}
	return nil
}

func invalidOverride(field, value string) error {
	return apperrors.WithMetadata(
		apperrors.CodeGenomeInvalidOverride,
		fmt.Sprintf("invalid %s override %q", field, value),
		map[string]string{"Field": field, "Value": value},
	)
}

func constraintConflict(message string, fields ...string) error {
	return apperrors.WithMetadata(
		apperrors.CodeGenomeConstraintConflict,
		message,
		map[string]string{"Fields": strings.Join(fields, ", ")},
	)
}
