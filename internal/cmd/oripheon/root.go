// Package oripheon implements the local oripheon CLI. Every command runs the
// genome engine in-process; nothing is stored.
package oripheon

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	apperrors "github.com/louisbranch/oripheon/internal/platform/errors"
	"github.com/louisbranch/oripheon/internal/platform/errors/i18n"
	"github.com/louisbranch/oripheon/internal/services/genome/domain/genome"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Engine failure
	ExitCommandError = 2 // Bad arguments, flags or override files
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Locale    string
	Output    string // "json" | "yaml"
	Overrides string // path to a YAML override file
}

// ValidOutputs defines the allowed structured output encodings.
var ValidOutputs = []string{"json", "yaml"}

// NewRootCommand creates the root command for the oripheon CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "oripheon",
		Short: "Deterministic character genomes",
		Long:  "Generate, compare and export character genomes. The same seed and overrides always produce the same genome.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidOutputs, opts.Output) {
				return fmt.Errorf("invalid output %q: must be one of %v", opts.Output, ValidOutputs)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Locale, "locale", apperrors.DefaultLocale, "locale for summaries and error messages")
	cmd.PersistentFlags().StringVarP(&opts.Output, "output", "o", "json", "structured output encoding (json|yaml)")
	cmd.PersistentFlags().StringVar(&opts.Overrides, "overrides", "", "YAML file with genome overrides")

	cmd.AddCommand(newGenerateCommand(opts))
	cmd.AddCommand(newRerollCommand(opts))
	cmd.AddCommand(newCompareCommand(opts))
	cmd.AddCommand(newDiscloseCommand(opts))
	cmd.AddCommand(newExportCommand(opts))
	cmd.AddCommand(newLocalesCommand(opts))

	return cmd
}

// Execute runs the CLI with args and returns the process exit code. Domain
// errors are printed in the requested locale.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}
	locale, _ := cmd.PersistentFlags().GetString("locale")
	fmt.Fprintf(stderr, "Error: %s\n", userMessage(err, locale))
	return exitCode(err)
}

// userMessage renders domain errors from the errors catalog.
func userMessage(err error, locale string) string {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return i18n.GetCatalog(locale).Format(string(appErr.Code), appErr.Metadata)
	}
	return err.Error()
}

func exitCode(err error) int {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		return ExitCommandError
	}
	switch appErr.Code {
	case apperrors.CodeGenomeExhaustedRetry, apperrors.CodeGenomeInvariantViolation:
		return ExitFailure
	default:
		return ExitCommandError
	}
}

// parseSeed reads a decimal int64 seed.
func parseSeed(value string) (int64, error) {
	seed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, apperrors.WrapWithMetadata(
			apperrors.CodeSeedOutOfRange,
			fmt.Sprintf("seed %q is not a 64-bit integer", value),
			map[string]string{"Seed": value},
			err,
		)
	}
	return seed, nil
}

// loadOverrides reads an override file. An empty path means no overrides.
func loadOverrides(path string) (genome.OverrideSet, error) {
	var o genome.OverrideSet
	path = strings.TrimSpace(path)
	if path == "" {
		return o, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return o, fmt.Errorf("read overrides: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&o); err != nil && !errors.Is(err, io.EOF) {
		return genome.OverrideSet{}, fmt.Errorf("parse overrides %s: %w", path, err)
	}
	if err := o.Validate(); err != nil {
		return genome.OverrideSet{}, err
	}
	return o, nil
}
