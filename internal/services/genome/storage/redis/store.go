// Package redis provides a Redis-backed genome store.
//
// Each genome is one string key holding the JSON record. A sorted set with
// equal scores indexes ids so listing can page lexicographically.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/louisbranch/oripheon/internal/services/genome/storage"
)

// DefaultPrefix namespaces every key the store writes.
const DefaultPrefix = "oripheon:"

// Store persists genomes in Redis.
type Store struct {
	client *redis.Client
	prefix string
}

// Open parses url, connects and pings the server.
func Open(ctx context.Context, url string) (*Store, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("redis url is required")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return New(client, DefaultPrefix), nil
}

// New wraps an existing client. An empty prefix uses DefaultPrefix.
func New(client *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{client: client, prefix: prefix}
}

func (s *Store) genomeKey(id string) string {
	return s.prefix + "genome:" + id
}

func (s *Store) indexKey() string {
	return s.prefix + "genomes"
}

// PutGenome inserts one genome record.
func (s *Store) PutGenome(ctx context.Context, record storage.GenomeRecord) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("storage is not configured")
	}
	if err := record.Validate(); err != nil {
		return err
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode genome record: %w", err)
	}
	// The index entry is written in the same transaction whether or not the
	// record key already existed, so a stored record is always listable.
	var created *redis.BoolCmd
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		created = pipe.SetNX(ctx, s.genomeKey(record.GenomeID), data, 0)
		pipe.ZAdd(ctx, s.indexKey(), redis.Z{Member: record.GenomeID})
		return nil
	})
	if err != nil {
		return fmt.Errorf("put genome: %w", err)
	}
	if !created.Val() {
		return storage.ErrAlreadyExists
	}
	return nil
}

// GetGenome returns one genome record by id.
func (s *Store) GetGenome(ctx context.Context, genomeID string) (storage.GenomeRecord, error) {
	if s == nil || s.client == nil {
		return storage.GenomeRecord{}, fmt.Errorf("storage is not configured")
	}
	genomeID = strings.TrimSpace(genomeID)
	if genomeID == "" {
		return storage.GenomeRecord{}, fmt.Errorf("genome id is required")
	}
	data, err := s.client.Get(ctx, s.genomeKey(genomeID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return storage.GenomeRecord{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.GenomeRecord{}, fmt.Errorf("get genome: %w", err)
	}
	return decodeRecord(data)
}

// ListGenomes returns one page of genome records ordered by id.
func (s *Store) ListGenomes(ctx context.Context, pageSize int, pageToken string) (storage.GenomePage, error) {
	if s == nil || s.client == nil {
		return storage.GenomePage{}, fmt.Errorf("storage is not configured")
	}
	if pageSize <= 0 {
		return storage.GenomePage{}, fmt.Errorf("page size must be greater than zero")
	}
	minimum := "-"
	if token := strings.TrimSpace(pageToken); token != "" {
		minimum = "(" + token
	}
	ids, err := s.client.ZRangeByLex(ctx, s.indexKey(), &redis.ZRangeBy{
		Min:   minimum,
		Max:   "+",
		Count: int64(pageSize + 1),
	}).Result()
	if err != nil {
		return storage.GenomePage{}, fmt.Errorf("list genomes: %w", err)
	}

	page := storage.GenomePage{Genomes: make([]storage.GenomeRecord, 0, pageSize)}
	if len(ids) > pageSize {
		ids = ids[:pageSize]
		page.NextPageToken = ids[pageSize-1]
	}
	if len(ids) == 0 {
		return page, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.genomeKey(id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return storage.GenomePage{}, fmt.Errorf("list genomes: %w", err)
	}
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			return storage.GenomePage{}, fmt.Errorf("list genomes: missing record for %s", ids[i])
		}
		record, err := decodeRecord([]byte(raw))
		if err != nil {
			return storage.GenomePage{}, err
		}
		page.Genomes = append(page.Genomes, record)
	}
	return page, nil
}

// Ping reports whether the server is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the client.
func (s *Store) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

func decodeRecord(data []byte) (storage.GenomeRecord, error) {
	var record storage.GenomeRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return storage.GenomeRecord{}, fmt.Errorf("decode genome record: %w", err)
	}
	return record, nil
}

var _ storage.GenomeStore = (*Store)(nil)
