package oripheon

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	i18ncatalog "github.com/louisbranch/oripheon/internal/platform/i18n/catalog"
	"github.com/louisbranch/oripheon/internal/services/genome/domain/compat"
	"github.com/louisbranch/oripheon/internal/services/genome/domain/disclosure"
	"github.com/louisbranch/oripheon/internal/services/genome/domain/genome"
	"github.com/louisbranch/oripheon/internal/tools/i18nstatus"
)

func newGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	var seedFlag string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a genome",
		Long: `Generate a character genome from an optional seed and override file.

Without --seed a random seed is drawn and reported on stderr so the genome
can be regenerated later.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides, err := loadOverrides(rootOpts.Overrides)
			if err != nil {
				return err
			}
			var seed *int64
			if strings.TrimSpace(seedFlag) != "" {
				s, err := parseSeed(seedFlag)
				if err != nil {
					return err
				}
				seed = &s
			}
			g, used, err := genome.Generate(seed, &overrides)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "seed: %d\n", used)
			return writeValue(cmd.OutOrStdout(), rootOpts.Output, g)
		},
	}
	cmd.Flags().StringVar(&seedFlag, "seed", "", "64-bit seed (random when empty)")
	return cmd
}

func newRerollCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reroll <seed>",
		Short: "Regenerate a genome from a known seed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := genomeFromArgs(args[0], rootOpts.Overrides)
			if err != nil {
				return err
			}
			return writeValue(cmd.OutOrStdout(), rootOpts.Output, g)
		},
	}
}

func newCompareCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		contextFlag     string
		targetOverrides string
	)

	cmd := &cobra.Command{
		Use:   "compare <source-seed> <target-seed>",
		Short: "Score how two genomes relate",
		Long: `Compare two genomes regenerated from their seeds.

--overrides applies to the source genome and --target-overrides to the
target. Directional labels read from source to target.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := genomeFromArgs(args[0], rootOpts.Overrides)
			if err != nil {
				return err
			}
			target, err := genomeFromArgs(args[1], targetOverrides)
			if err != nil {
				return err
			}
			var only *compat.Context
			if c := strings.TrimSpace(contextFlag); c != "" {
				parsed, err := compat.ParseContext(c)
				if err != nil {
					return err
				}
				only = &parsed
			}
			res, err := compat.Compare(source, target, only)
			if err != nil {
				return err
			}
			return writeValue(cmd.OutOrStdout(), rootOpts.Output, res)
		},
	}
	cmd.Flags().StringVar(&contextFlag, "context", "", "score a single context (romantic, platonic, creative, narrative_tension)")
	cmd.Flags().StringVar(&targetOverrides, "target-overrides", "", "YAML file with overrides for the target genome")
	return cmd
}

func newDiscloseCommand(rootOpts *RootOptions) *cobra.Command {
	var tier string

	cmd := &cobra.Command{
		Use:   "disclose <seed>",
		Short: "Show the part of a genome visible at a tier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := genomeFromArgs(args[0], rootOpts.Overrides)
			if err != nil {
				return err
			}
			view, err := disclosure.Disclose(g, strings.TrimSpace(tier))
			if err != nil {
				return err
			}
			return writeValue(cmd.OutOrStdout(), rootOpts.Output, view)
		},
	}
	cmd.Flags().StringVar(&tier, "tier", string(disclosure.TierSymbol), "visibility tier (symbol, tooltip, full)")
	return cmd
}

func newExportCommand(rootOpts *RootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export <seed>",
		Short: "Render a genome as json, yaml, summary or system_prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := genomeFromArgs(args[0], rootOpts.Overrides)
			if err != nil {
				return err
			}
			content, err := disclosure.Export(g, strings.TrimSpace(format), rootOpts.Locale)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), content)
			if err == nil && !strings.HasSuffix(content, "\n") {
				_, err = io.WriteString(cmd.OutOrStdout(), "\n")
			}
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", string(disclosure.FormatSummary), "export format (json, yaml, summary, system_prompt)")
	return cmd
}

func newLocalesCommand(rootOpts *RootOptions) *cobra.Command {
	var markdown bool

	cmd := &cobra.Command{
		Use:   "locales",
		Short: "Report translation coverage of the embedded catalogs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := i18nstatus.Build(i18ncatalog.Default(), i18ncatalog.BaseLocale)
			if err != nil {
				return err
			}
			if markdown {
				_, err = io.WriteString(cmd.OutOrStdout(), rep.Markdown())
			} else {
				err = writeValue(cmd.OutOrStdout(), rootOpts.Output, rep)
			}
			if err != nil {
				return err
			}
			if !rep.Complete() {
				return fmt.Errorf("catalogs are missing translations")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&markdown, "markdown", false, "render the report as markdown tables")
	return cmd
}

// genomeFromArgs regenerates the genome for a seed argument and override file.
func genomeFromArgs(seedArg, overridesPath string) (genome.CharacterGenome, error) {
	seed, err := parseSeed(seedArg)
	if err != nil {
		return genome.CharacterGenome{}, err
	}
	overrides, err := loadOverrides(overridesPath)
	if err != nil {
		return genome.CharacterGenome{}, err
	}
	return genome.Reroll(seed, overrides)
}

// writeValue encodes v in the structured output encoding.
func writeValue(w io.Writer, output string, v any) error {
	switch output {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
}
