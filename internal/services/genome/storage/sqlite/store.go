// Package sqlite provides a SQLite-backed genome store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/louisbranch/oripheon/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/oripheon/internal/services/genome/storage"
	"github.com/louisbranch/oripheon/internal/services/genome/storage/sqlite/migrations"
)

const genomeColumns = `genome_id, seed, primary_archetype, display_name, payload, created_at`

// Store persists genomes in one SQLite table. Timestamps are stored as unix
// milliseconds.
type Store struct {
	db *sql.DB
}

// Open opens (creating when needed) the database at path in WAL mode and
// applies the embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	db, err := sql.Open("sqlite", filepath.Clean(path)+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := prepare(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func prepare(ctx context.Context, db *sql.DB) error {
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(ctx, db, migrations.FS, ""); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// ready fails when ctx is done or the store was never opened.
func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	return s.db.PingContext(ctx)
}

// Close closes the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// PutGenome inserts record. A second insert of the same id returns
// storage.ErrAlreadyExists.
func (s *Store) PutGenome(ctx context.Context, record storage.GenomeRecord) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if err := record.Validate(); err != nil {
		return err
	}
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO genomes (`+genomeColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		record.GenomeID, record.Seed, record.Primary, record.DisplayName, record.Payload,
		createdAt.UTC().UnixMilli(),
	)
	switch {
	case err == nil:
		return nil
	case isDuplicateGenome(err):
		return storage.ErrAlreadyExists
	default:
		return fmt.Errorf("put genome %s: %w", record.GenomeID, err)
	}
}

// GetGenome loads one record.
func (s *Store) GetGenome(ctx context.Context, genomeID string) (storage.GenomeRecord, error) {
	if err := s.ready(ctx); err != nil {
		return storage.GenomeRecord{}, err
	}
	genomeID = strings.TrimSpace(genomeID)
	if genomeID == "" {
		return storage.GenomeRecord{}, fmt.Errorf("genome id is required")
	}

	record, err := scanGenome(s.db.QueryRowContext(ctx,
		`SELECT `+genomeColumns+` FROM genomes WHERE genome_id = ?`, genomeID))
	if errors.Is(err, sql.ErrNoRows) {
		return storage.GenomeRecord{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.GenomeRecord{}, fmt.Errorf("get genome %s: %w", genomeID, err)
	}
	return record, nil
}

// ListGenomes pages through records in id order. The page token is the last
// id of the previous page.
func (s *Store) ListGenomes(ctx context.Context, pageSize int, pageToken string) (storage.GenomePage, error) {
	if err := s.ready(ctx); err != nil {
		return storage.GenomePage{}, err
	}
	if pageSize <= 0 {
		return storage.GenomePage{}, fmt.Errorf("page size must be greater than zero")
	}

	// One extra row tells whether another page follows.
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+genomeColumns+` FROM genomes WHERE genome_id > ? ORDER BY genome_id LIMIT ?`,
		strings.TrimSpace(pageToken), pageSize+1)
	if err != nil {
		return storage.GenomePage{}, fmt.Errorf("list genomes: %w", err)
	}
	defer rows.Close()

	var page storage.GenomePage
	for rows.Next() {
		record, err := scanGenome(rows)
		if err != nil {
			return storage.GenomePage{}, fmt.Errorf("list genomes: %w", err)
		}
		page.Genomes = append(page.Genomes, record)
	}
	if err := rows.Err(); err != nil {
		return storage.GenomePage{}, fmt.Errorf("list genomes: %w", err)
	}
	if len(page.Genomes) > pageSize {
		page.Genomes = page.Genomes[:pageSize]
		page.NextPageToken = page.Genomes[pageSize-1].GenomeID
	}
	return page, nil
}

func scanGenome(row interface{ Scan(...any) error }) (storage.GenomeRecord, error) {
	var (
		record    storage.GenomeRecord
		createdAt int64
	)
	err := row.Scan(&record.GenomeID, &record.Seed, &record.Primary, &record.DisplayName, &record.Payload, &createdAt)
	if err != nil {
		return storage.GenomeRecord{}, err
	}
	record.CreatedAt = time.UnixMilli(createdAt).UTC()
	return record, nil
}

func isDuplicateGenome(err error) bool {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
		return true
	}
	return false
}

var _ storage.GenomeStore = (*Store)(nil)
