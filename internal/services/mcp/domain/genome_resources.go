package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/louisbranch/oripheon/internal/platform/timeouts"
	genomeservice "github.com/louisbranch/oripheon/internal/services/genome/api/grpc/genome"
)

const genomeURIScheme = "genome://"

// GenomeResourceTemplate defines the MCP resource template for stored genomes.
func GenomeResourceTemplate() *mcp.ResourceTemplate {
	return &mcp.ResourceTemplate{
		Name:        "genome",
		Title:       "Genome",
		Description: "Stored character genome as JSON. URI format: genome://{genome_id}",
		MIMEType:    "application/json",
		URITemplate: "genome://{genome_id}",
	}
}

// GenomeResourceHandler reads a stored genome.
func GenomeResourceHandler(client genomeservice.GenomeServiceClient) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if client == nil {
			return nil, fmt.Errorf("genome client is not configured")
		}
		if req == nil || req.Params == nil || req.Params.URI == "" {
			return nil, fmt.Errorf("genome ID is required; use URI format genome://{genome_id}")
		}
		uri := req.Params.URI

		genomeID, err := parseGenomeIDFromURI(uri)
		if err != nil {
			return nil, fmt.Errorf("parse genome ID from URI: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, timeouts.GenomeCall)
		defer cancel()

		response, err := client.GetGenome(runCtx, &genomeservice.GetGenomeRequest{GenomeID: genomeID})
		if err != nil {
			if isNotFound(err) {
				return nil, mcp.ResourceNotFoundError(uri)
			}
			return nil, callError("genome get", err)
		}
		if response == nil {
			return nil, fmt.Errorf("genome get response is missing")
		}

		data, err := json.MarshalIndent(GenomeResult{Seed: response.Seed, Genome: response.Genome}, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal genome: %w", err)
		}

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}

// parseGenomeIDFromURI extracts the id from genome://{genome_id}.
func parseGenomeIDFromURI(uri string) (string, error) {
	rest, ok := strings.CutPrefix(uri, genomeURIScheme)
	if !ok {
		return "", fmt.Errorf("URI must start with %q", genomeURIScheme)
	}
	rest = strings.TrimSpace(rest)
	if rest == "" || strings.Contains(rest, "/") {
		return "", fmt.Errorf("URI must be genome://{genome_id}")
	}
	if rest == "{genome_id}" {
		return "", fmt.Errorf("genome ID placeholder must be replaced")
	}
	return rest, nil
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
