// Package storage defines persistence contracts for assembled genomes.
//
// Genomes are stored as opaque JSON payloads keyed by genome id. The id is a
// pure function of seed and overrides, so writing the same genome twice is a
// duplicate rather than an update.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/louisbranch/oripheon/internal/services/genome/domain/genome"
)

var (
	// ErrNotFound indicates a requested genome is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a genome with the same id is already stored.
	ErrAlreadyExists = errors.New("record already exists")
)

// GenomeRecord is one stored genome with the columns used for listing.
type GenomeRecord struct {
	GenomeID    string    `json:"genome_id"`
	Seed        int64     `json:"seed"`
	Primary     string    `json:"primary"`
	DisplayName string    `json:"display_name"`
	Payload     []byte    `json:"payload"`
	CreatedAt   time.Time `json:"created_at"`
}

// GenomePage is one page of stored genomes ordered by id.
type GenomePage struct {
	Genomes       []GenomeRecord
	NextPageToken string
}

// GenomeStore persists assembled genomes.
type GenomeStore interface {
	PutGenome(ctx context.Context, record GenomeRecord) error
	GetGenome(ctx context.Context, genomeID string) (GenomeRecord, error)
	ListGenomes(ctx context.Context, pageSize int, pageToken string) (GenomePage, error)
	Close() error
}

// NewRecord encodes g for storage.
func NewRecord(g genome.CharacterGenome, createdAt time.Time) (GenomeRecord, error) {
	payload, err := json.Marshal(g)
	if err != nil {
		return GenomeRecord{}, fmt.Errorf("encode genome %s: %w", g.ID, err)
	}
	return GenomeRecord{
		GenomeID:    g.ID,
		Seed:        g.Seed,
		Primary:     string(g.Archetype.Primary),
		DisplayName: g.Name.DisplayName,
		Payload:     payload,
		CreatedAt:   createdAt.UTC(),
	}, nil
}

// Genome decodes the stored payload.
func (r GenomeRecord) Genome() (genome.CharacterGenome, error) {
	var g genome.CharacterGenome
	if err := json.Unmarshal(r.Payload, &g); err != nil {
		return genome.CharacterGenome{}, fmt.Errorf("decode genome %s: %w", r.GenomeID, err)
	}
	return g, nil
}

// Validate checks the fields every store requires.
func (r GenomeRecord) Validate() error {
	if r.GenomeID == "" {
		return fmt.Errorf("genome id is required")
	}
	if len(r.Payload) == 0 {
		return fmt.Errorf("genome payload is required")
	}
	return nil
}
