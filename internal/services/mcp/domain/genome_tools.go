package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	apperrors "github.com/louisbranch/oripheon/internal/platform/errors"
	"github.com/louisbranch/oripheon/internal/platform/timeouts"
	genomeservice "github.com/louisbranch/oripheon/internal/services/genome/api/grpc/genome"
	"github.com/louisbranch/oripheon/internal/services/genome/domain/compat"
	"github.com/louisbranch/oripheon/internal/services/genome/domain/disclosure"
	"github.com/louisbranch/oripheon/internal/services/genome/domain/genome"
)

// GenomeRefInput names a genome by stored id or by the seed that reproduces it.
type GenomeRefInput struct {
	GenomeID  string              `json:"genome_id,omitempty" jsonschema:"stored genome identifier"`
	Seed      *int64              `json:"seed,omitempty" jsonschema:"seed that regenerates the genome when no id is given"`
	Overrides *genome.OverrideSet `json:"overrides,omitempty" jsonschema:"overrides applied together with the seed"`
}

func (r GenomeRefInput) toRef() genomeservice.GenomeRef {
	return genomeservice.GenomeRef{
		GenomeID:  strings.TrimSpace(r.GenomeID),
		Seed:      r.Seed,
		Overrides: r.Overrides,
	}
}

// GenomeResult is the MCP tool output for a single genome.
type GenomeResult struct {
	Seed   int64                  `json:"seed" jsonschema:"seed the genome was generated from"`
	Genome genome.CharacterGenome `json:"genome" jsonschema:"assembled character genome"`
}

// GenomeGenerateInput represents the MCP tool input for generating a genome.
type GenomeGenerateInput struct {
	Seed      *int64              `json:"seed,omitempty" jsonschema:"optional seed; a random one is drawn when omitted"`
	Overrides *genome.OverrideSet `json:"overrides,omitempty" jsonschema:"optional overrides that pin parts of the genome"`
	Persist   bool                `json:"persist,omitempty" jsonschema:"store the genome so it can be read back by id"`
	Locale    string              `json:"locale,omitempty" jsonschema:"locale for error messages (en-US or es-ES)"`
}

// GenomeGenerateTool defines the MCP tool schema for generating a genome.
func GenomeGenerateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "genome_generate",
		Description: "Generates a character genome. The same seed and overrides always produce the same genome.",
	}
}

// GenomeGenerateHandler executes a genome generate request.
func GenomeGenerateHandler(client genomeservice.GenomeServiceClient) mcp.ToolHandlerFor[GenomeGenerateInput, GenomeResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GenomeGenerateInput) (*mcp.CallToolResult, GenomeResult, error) {
		runCtx, cancel := context.WithTimeout(ctx, timeouts.GenomeCall)
		defer cancel()

		response, err := client.Generate(outgoingContext(runCtx, input.Locale), &genomeservice.GenerateRequest{
			Seed:      input.Seed,
			Overrides: input.Overrides,
			Persist:   input.Persist,
		})
		if err != nil {
			return nil, GenomeResult{}, callError("genome generate", err)
		}
		if response == nil {
			return nil, GenomeResult{}, fmt.Errorf("genome generate response is missing")
		}
		return nil, GenomeResult{Seed: response.Seed, Genome: response.Genome}, nil
	}
}

// GenomeRerollInput represents the MCP tool input for rerolling a genome.
type GenomeRerollInput struct {
	Seed      int64              `json:"seed" jsonschema:"seed to regenerate"`
	Overrides genome.OverrideSet `json:"overrides,omitempty" jsonschema:"overrides to apply on top of the seed"`
	Persist   bool               `json:"persist,omitempty" jsonschema:"store the genome so it can be read back by id"`
	Locale    string             `json:"locale,omitempty" jsonschema:"locale for error messages (en-US or es-ES)"`
}

// GenomeRerollTool defines the MCP tool schema for rerolling a genome.
func GenomeRerollTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "genome_reroll",
		Description: "Regenerates a genome from a known seed with a changed set of overrides.",
	}
}

// GenomeRerollHandler executes a genome reroll request.
func GenomeRerollHandler(client genomeservice.GenomeServiceClient) mcp.ToolHandlerFor[GenomeRerollInput, GenomeResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GenomeRerollInput) (*mcp.CallToolResult, GenomeResult, error) {
		runCtx, cancel := context.WithTimeout(ctx, timeouts.GenomeCall)
		defer cancel()

		response, err := client.Reroll(outgoingContext(runCtx, input.Locale), &genomeservice.RerollRequest{
			Seed:      input.Seed,
			Overrides: input.Overrides,
			Persist:   input.Persist,
		})
		if err != nil {
			return nil, GenomeResult{}, callError("genome reroll", err)
		}
		if response == nil {
			return nil, GenomeResult{}, fmt.Errorf("genome reroll response is missing")
		}
		return nil, GenomeResult{Seed: response.Seed, Genome: response.Genome}, nil
	}
}

// GenomeCompareInput represents the MCP tool input for comparing two genomes.
type GenomeCompareInput struct {
	Source  GenomeRefInput `json:"source" jsonschema:"genome the comparison reads from"`
	Target  GenomeRefInput `json:"target" jsonschema:"genome the comparison reads toward"`
	Context string         `json:"context,omitempty" jsonschema:"optional single context (romantic, platonic, creative, narrative_tension)"`
	Locale  string         `json:"locale,omitempty" jsonschema:"locale for error messages (en-US or es-ES)"`
}

// GenomeCompareResult represents the MCP tool output for a comparison.
type GenomeCompareResult struct {
	Result compat.Result `json:"result" jsonschema:"scores, relationship label and rationale"`
}

// GenomeCompareTool defines the MCP tool schema for comparing genomes.
func GenomeCompareTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "genome_compare",
		Description: "Scores how two genomes relate and labels the relationship. Order matters for directional labels.",
	}
}

// GenomeCompareHandler executes a genome compare request.
func GenomeCompareHandler(client genomeservice.GenomeServiceClient) mcp.ToolHandlerFor[GenomeCompareInput, GenomeCompareResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GenomeCompareInput) (*mcp.CallToolResult, GenomeCompareResult, error) {
		runCtx, cancel := context.WithTimeout(ctx, timeouts.GenomeCall)
		defer cancel()

		response, err := client.Compare(outgoingContext(runCtx, input.Locale), &genomeservice.CompareRequest{
			Source:  input.Source.toRef(),
			Target:  input.Target.toRef(),
			Context: strings.TrimSpace(input.Context),
		})
		if err != nil {
			return nil, GenomeCompareResult{}, callError("genome compare", err)
		}
		if response == nil {
			return nil, GenomeCompareResult{}, fmt.Errorf("genome compare response is missing")
		}
		return nil, GenomeCompareResult{Result: response.Result}, nil
	}
}

// GenomeExportInput represents the MCP tool input for exporting a genome.
type GenomeExportInput struct {
	Genome GenomeRefInput `json:"genome" jsonschema:"genome to export"`
	Format string         `json:"format" jsonschema:"export format (json, yaml, summary, system_prompt)"`
	Locale string         `json:"locale,omitempty" jsonschema:"locale for summaries and error messages (en-US or es-ES)"`
}

// GenomeExportResult represents the MCP tool output for an export.
type GenomeExportResult struct {
	Format  string `json:"format" jsonschema:"format that was rendered"`
	Content string `json:"content" jsonschema:"rendered genome"`
}

// GenomeExportTool defines the MCP tool schema for exporting a genome.
func GenomeExportTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "genome_export",
		Description: "Renders a genome as JSON, YAML, a narrative summary, or a system prompt for a language model.",
	}
}

// GenomeExportHandler executes a genome export request.
func GenomeExportHandler(client genomeservice.GenomeServiceClient) mcp.ToolHandlerFor[GenomeExportInput, GenomeExportResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GenomeExportInput) (*mcp.CallToolResult, GenomeExportResult, error) {
		runCtx, cancel := context.WithTimeout(ctx, timeouts.GenomeCall)
		defer cancel()

		response, err := client.Export(outgoingContext(runCtx, input.Locale), &genomeservice.ExportRequest{
			Genome: input.Genome.toRef(),
			Format: strings.TrimSpace(input.Format),
			Locale: input.Locale,
		})
		if err != nil {
			return nil, GenomeExportResult{}, callError("genome export", err)
		}
		if response == nil {
			return nil, GenomeExportResult{}, fmt.Errorf("genome export response is missing")
		}
		result := GenomeExportResult{Format: response.Format, Content: response.Content}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: response.Content}},
		}, result, nil
	}
}

// GenomeDiscloseInput represents the MCP tool input for a disclosure view.
type GenomeDiscloseInput struct {
	Genome GenomeRefInput `json:"genome" jsonschema:"genome to disclose"`
	Tier   string         `json:"tier" jsonschema:"visibility tier (symbol, tooltip, full)"`
	Locale string         `json:"locale,omitempty" jsonschema:"locale for error messages (en-US or es-ES)"`
}

// GenomeDiscloseResult represents the MCP tool output for a disclosure view.
type GenomeDiscloseResult struct {
	View disclosure.View `json:"view" jsonschema:"genome fields visible at the tier"`
}

// GenomeDiscloseTool defines the MCP tool schema for disclosure views.
func GenomeDiscloseTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "genome_disclose",
		Description: "Returns the part of a genome visible at a tier: symbol, tooltip or full.",
	}
}

// GenomeDiscloseHandler executes a genome disclose request.
func GenomeDiscloseHandler(client genomeservice.GenomeServiceClient) mcp.ToolHandlerFor[GenomeDiscloseInput, GenomeDiscloseResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GenomeDiscloseInput) (*mcp.CallToolResult, GenomeDiscloseResult, error) {
		runCtx, cancel := context.WithTimeout(ctx, timeouts.GenomeCall)
		defer cancel()

		response, err := client.Disclose(outgoingContext(runCtx, input.Locale), &genomeservice.DiscloseRequest{
			Genome: input.Genome.toRef(),
			Tier:   strings.TrimSpace(input.Tier),
		})
		if err != nil {
			return nil, GenomeDiscloseResult{}, callError("genome disclose", err)
		}
		if response == nil {
			return nil, GenomeDiscloseResult{}, fmt.Errorf("genome disclose response is missing")
		}
		return nil, GenomeDiscloseResult{View: response.View}, nil
	}
}

// GenomeListInput represents the MCP tool input for listing stored genomes.
type GenomeListInput struct {
	PageSize  int    `json:"page_size,omitempty" jsonschema:"maximum genomes to return (default 10, max 50)"`
	PageToken string `json:"page_token,omitempty" jsonschema:"token from a previous page"`
}

// GenomeListEntry is one stored genome.
type GenomeListEntry struct {
	GenomeID    string `json:"genome_id" jsonschema:"genome identifier"`
	Seed        int64  `json:"seed" jsonschema:"seed the genome was generated from"`
	Primary     string `json:"primary" jsonschema:"primary archetype"`
	DisplayName string `json:"display_name" jsonschema:"character display name"`
	CreatedAt   string `json:"created_at" jsonschema:"RFC3339 timestamp when the genome was stored"`
}

// GenomeListResult represents the MCP tool output for a genome listing.
type GenomeListResult struct {
	Genomes       []GenomeListEntry `json:"genomes" jsonschema:"stored genomes in id order"`
	NextPageToken string            `json:"next_page_token,omitempty" jsonschema:"token for the next page, empty on the last page"`
}

// GenomeListTool defines the MCP tool schema for listing stored genomes.
func GenomeListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "genome_list",
		Description: "Lists stored genomes one page at a time.",
	}
}

// GenomeListHandler executes a genome list request.
func GenomeListHandler(client genomeservice.GenomeServiceClient) mcp.ToolHandlerFor[GenomeListInput, GenomeListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GenomeListInput) (*mcp.CallToolResult, GenomeListResult, error) {
		runCtx, cancel := context.WithTimeout(ctx, timeouts.GenomeCall)
		defer cancel()

		response, err := client.ListGenomes(runCtx, &genomeservice.ListGenomesRequest{
			PageSize:  int32(input.PageSize),
			PageToken: strings.TrimSpace(input.PageToken),
		})
		if err != nil {
			return nil, GenomeListResult{}, callError("genome list", err)
		}
		if response == nil {
			return nil, GenomeListResult{}, fmt.Errorf("genome list response is missing")
		}

		result := GenomeListResult{
			Genomes:       make([]GenomeListEntry, 0, len(response.Genomes)),
			NextPageToken: response.NextPageToken,
		}
		for _, g := range response.Genomes {
			result.Genomes = append(result.Genomes, GenomeListEntry{
				GenomeID:    g.GenomeID,
				Seed:        g.Seed,
				Primary:     g.Primary,
				DisplayName: g.DisplayName,
				CreatedAt:   formatTimestamp(g.CreatedAt),
			})
		}
		return nil, result, nil
	}
}

// outgoingContext forwards the caller's locale so service errors come back
// translated.
func outgoingContext(ctx context.Context, locale string) context.Context {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, genomeservice.LocaleMetadataKey, locale)
}

// callError prefers the localized message attached to a service error.
func callError(op string, err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("%s failed: %w", op, err)
	}
	_, message, _ := apperrors.FromGRPCStatus(err)
	return fmt.Errorf("%s failed (%s): %s", op, st.Code(), message)
}
