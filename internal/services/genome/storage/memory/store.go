// Package memory provides an in-process genome store.
package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/louisbranch/oripheon/internal/services/genome/storage"
)

// Store keeps genome records in a map guarded by a mutex.
type Store struct {
	mu      sync.RWMutex
	records map[string]storage.GenomeRecord
	ids     []string
	closed  bool
}

// New returns an empty store.
func New() *Store {
	return &Store{records: make(map[string]storage.GenomeRecord)}
}

// PutGenome inserts one genome record.
func (s *Store) PutGenome(ctx context.Context, record storage.GenomeRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := record.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("storage is closed")
	}
	if _, ok := s.records[record.GenomeID]; ok {
		return storage.ErrAlreadyExists
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	record.Payload = slices.Clone(record.Payload)
	s.records[record.GenomeID] = record
	i, _ := slices.BinarySearch(s.ids, record.GenomeID)
	s.ids = slices.Insert(s.ids, i, record.GenomeID)
	return nil
}

// GetGenome returns one genome record by id.
func (s *Store) GetGenome(ctx context.Context, genomeID string) (storage.GenomeRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.GenomeRecord{}, err
	}
	genomeID = strings.TrimSpace(genomeID)
	if genomeID == "" {
		return storage.GenomeRecord{}, fmt.Errorf("genome id is required")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[genomeID]
	if !ok {
		return storage.GenomeRecord{}, storage.ErrNotFound
	}
	record.Payload = slices.Clone(record.Payload)
	return record, nil
}

// ListGenomes returns one page of genome records ordered by id.
func (s *Store) ListGenomes(ctx context.Context, pageSize int, pageToken string) (storage.GenomePage, error) {
	if err := ctx.Err(); err != nil {
		return storage.GenomePage{}, err
	}
	if pageSize <= 0 {
		return storage.GenomePage{}, fmt.Errorf("page size must be greater than zero")
	}
	pageToken = strings.TrimSpace(pageToken)

	s.mu.RLock()
	defer s.mu.RUnlock()
	start, found := slices.BinarySearch(s.ids, pageToken)
	if found {
		start++
	}
	page := storage.GenomePage{Genomes: make([]storage.GenomeRecord, 0, pageSize)}
	for _, id := range s.ids[start:] {
		if len(page.Genomes) == pageSize {
			page.NextPageToken = page.Genomes[pageSize-1].GenomeID
			break
		}
		record := s.records[id]
		record.Payload = slices.Clone(record.Payload)
		page.Genomes = append(page.Genomes, record)
	}
	return page, nil
}

// Close marks the store closed. Reads keep working.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

var _ storage.GenomeStore = (*Store)(nil)
