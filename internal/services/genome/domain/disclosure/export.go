package disclosure

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	apperrors "github.com/louisbranch/oripheon/internal/platform/errors"
	"github.com/louisbranch/oripheon/internal/platform/i18n/catalog"
	"github.com/louisbranch/oripheon/internal/services/genome/domain/genome"
	"github.com/louisbranch/oripheon/internal/services/genome/domain/tables"
)

// Format is an export encoding.
type Format string

const (
	FormatJSON         Format = "json"
	FormatYAML         Format = "yaml"
	FormatSummary      Format = "summary"
	FormatSystemPrompt Format = "system_prompt"
)

// Formats lists every export format.
var Formats = []Format{FormatJSON, FormatYAML, FormatSummary, FormatSystemPrompt}

// ParseFormat validates a format name.
func ParseFormat(value string) (Format, error) {
	for _, f := range Formats {
		if string(f) == value {
			return f, nil
		}
	}
	return "", apperrors.WithMetadata(
		apperrors.CodeGenomeUnknownFormat,
		fmt.Sprintf("unknown export format %q", value),
		map[string]string{"Format": value},
	)
}

// Export renders g in the named format. Locale only affects summaries.
func Export(g genome.CharacterGenome, format, locale string) (string, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return "", err
	}
	switch f {
	case FormatJSON:
		data, err := ExportJSON(g)
		return string(data), err
	case FormatYAML:
		data, err := ExportYAML(g)
		return string(data), err
	case FormatSummary:
		return Summary(g, locale), nil
	default:
		return SystemPrompt(g), nil
	}
}

// ExportJSON encodes the genome as indented JSON.
func ExportJSON(g genome.CharacterGenome) ([]byte, error) {
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode genome json: %w", err)
	}
	return append(data, '\n'), nil
}

// ExportYAML encodes the genome as YAML.
func ExportYAML(g genome.CharacterGenome) ([]byte, error) {
	data, err := yaml.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("encode genome yaml: %w", err)
	}
	return data, nil
}

// Summary renders the narrative summary in the closest available locale.
func Summary(g genome.CharacterGenome, locale string) string {
	_, tag := catalog.Default().Match(locale)
	p := message.NewPrinter(tag)
	tuple := g.Archetype

	lines := []string{
		p.Sprintf("genome.summary."+string(tuple.Primary),
			g.Name.DisplayName,
			p.Sprintf("genome.epithet."+string(tuple.Primary)),
			tuple.Camino,
			p.Sprintf("genome.archetype."+string(tuple.Secondary)),
		),
		p.Sprintf("genome.summary.arc",
			p.Sprintf("genome.trajectory."+string(tuple.Trajectory)),
			p.Sprintf("genome.polarity."+string(tuple.Polarity)),
			string(tuple.Position),
		),
	}
	if r := g.Relic; r != nil {
		lines = append(lines, p.Sprintf("genome.summary.relic",
			r.Pseudonym,
			p.Sprintf("genome.relic."+string(r.Category)),
			r.Origin,
			p.Sprintf("genome.era."+string(r.Era)),
			r.SacredNumber,
		))
	} else {
		lines = append(lines, p.Sprintf("genome.summary.no_relic"))
	}
	return strings.Join(lines, " ")
}

// SystemPrompt renders the genome as instructions for a language model. The
// invariant markers become hard constraints.
func SystemPrompt(g genome.CharacterGenome) string {
	profile, _ := tables.Profile(g.Archetype.Primary)
	sig := g.MultiModal

	var b strings.Builder
	fmt.Fprintf(&b, "You are %s %s, %s.\n", g.Markers.Glyph, g.Name.DisplayName, profile.Epithet)
	fmt.Fprintf(&b, "Character genome %s (checksum %s).\n\n", g.ID, g.Markers.Checksum)

	b.WriteString("Constraints:\n")
	for _, c := range g.Markers.Constraints {
		fmt.Fprintf(&b, "- [%s=%s] %s\n", c.Key, c.Value, c.Rule)
	}

	b.WriteString("\nVoice:\n")
	fmt.Fprintf(&b, "- Register %s, %s delivery, energy %d of 10, %s timbre.\n",
		sig.Voice.Register, sig.Voice.Family, sig.Voice.Energy, sig.Voice.Timbre)
	fmt.Fprintf(&b, "- Move with %s gestures (%s), %s posture.\n",
		sig.Movement.Quality, strings.Join(sig.Movement.Gestures, ", "), sig.Movement.Posture)
	fmt.Fprintf(&b, "- Your theme is %d bpm in %s, %s.\n", sig.Music.Tempo, sig.Music.Mode, sig.Music.Meter)

	if r := g.Relic; r != nil {
		b.WriteString("\nRelic:\n")
		fmt.Fprintf(&b, "- You carry %s, a %s %s from %s. Its number is %d.\n",
			r.Pseudonym, r.Era, r.Category, r.Origin, r.SacredNumber)
		fmt.Fprintf(&b, "- When you post about it you sound like this: %q\n", r.SampleText)
	}

	b.WriteString("\nNever contradict a constraint, even if asked to.\n")
	return b.String()
}
