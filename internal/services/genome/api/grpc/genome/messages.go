package genome

import (
	"time"

	"github.com/louisbranch/oripheon/internal/services/genome/domain/compat"
	"github.com/louisbranch/oripheon/internal/services/genome/domain/disclosure"
	domain "github.com/louisbranch/oripheon/internal/services/genome/domain/genome"
)

// GenomeRef names a genome either by a stored id or by the seed and
// overrides that reproduce it.
type GenomeRef struct {
	GenomeID  string              `json:"genome_id,omitempty"`
	Seed      *int64              `json:"seed,omitempty"`
	Overrides *domain.OverrideSet `json:"overrides,omitempty"`
}

type GenerateRequest struct {
	Seed      *int64              `json:"seed,omitempty"`
	Overrides *domain.OverrideSet `json:"overrides,omitempty"`
	Persist   bool                `json:"persist,omitempty"`
}

type RerollRequest struct {
	Seed      int64              `json:"seed"`
	Overrides domain.OverrideSet `json:"overrides"`
	Persist   bool               `json:"persist,omitempty"`
}

type GenomeResponse struct {
	Genome domain.CharacterGenome `json:"genome"`
	Seed   int64                  `json:"seed"`
}

type CompareRequest struct {
	Source  GenomeRef `json:"source"`
	Target  GenomeRef `json:"target"`
	Context string    `json:"context,omitempty"`
}

type CompareResponse struct {
	Result compat.Result `json:"result"`
}

type ExportRequest struct {
	Genome GenomeRef `json:"genome"`
	Format string    `json:"format"`
	Locale string    `json:"locale,omitempty"`
}

type ExportResponse struct {
	Format  string `json:"format"`
	Content string `json:"content"`
}

type DiscloseRequest struct {
	Genome GenomeRef `json:"genome"`
	Tier   string    `json:"tier"`
}

type DiscloseResponse struct {
	View disclosure.View `json:"view"`
}

type GetGenomeRequest struct {
	GenomeID string `json:"genome_id"`
}

type ListGenomesRequest struct {
	PageSize  int32  `json:"page_size,omitempty"`
	PageToken string `json:"page_token,omitempty"`
}

// GenomeSummary is one listed genome without its payload.
type GenomeSummary struct {
	GenomeID    string    `json:"genome_id"`
	Seed        int64     `json:"seed"`
	Primary     string    `json:"primary"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

type ListGenomesResponse struct {
	Genomes       []GenomeSummary `json:"genomes"`
	NextPageToken string          `json:"next_page_token,omitempty"`
}
