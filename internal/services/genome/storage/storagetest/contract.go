// Package storagetest holds behavior every genome store must share.
package storagetest

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/louisbranch/oripheon/internal/services/genome/domain/genome"
	"github.com/louisbranch/oripheon/internal/services/genome/storage"
)

// Record builds a stored record for the genome generated from seed.
func Record(t testing.TB, seed int64) storage.GenomeRecord {
	t.Helper()
	g, err := genome.GenerateWithSeed(seed)
	if err != nil {
		t.Fatalf("generate seed %d: %v", seed, err)
	}
	record, err := storage.NewRecord(g, time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("encode seed %d: %v", seed, err)
	}
	return record
}

// RunGenomeStore exercises a store returned by open. Each subtest opens a
// fresh store.
func RunGenomeStore(t *testing.T, open func(t *testing.T) storage.GenomeStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("put then get round trips", func(t *testing.T) {
		store := open(t)
		want := Record(t, 7)
		if err := store.PutGenome(ctx, want); err != nil {
			t.Fatalf("put genome: %v", err)
		}
		got, err := store.GetGenome(ctx, want.GenomeID)
		if err != nil {
			t.Fatalf("get genome: %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("record mismatch (-want +got):\n%s", diff)
		}
		decoded, err := got.Genome()
		if err != nil {
			t.Fatalf("decode genome: %v", err)
		}
		if decoded.ID != want.GenomeID || decoded.Seed != 7 {
			t.Fatalf("decoded id/seed = %s/%d", decoded.ID, decoded.Seed)
		}
	})

	t.Run("duplicate put reports already exists", func(t *testing.T) {
		store := open(t)
		record := Record(t, 8)
		if err := store.PutGenome(ctx, record); err != nil {
			t.Fatalf("put genome: %v", err)
		}
		err := store.PutGenome(ctx, record)
		if !errors.Is(err, storage.ErrAlreadyExists) {
			t.Fatalf("duplicate put error = %v, want %v", err, storage.ErrAlreadyExists)
		}
	})

	t.Run("duplicate put leaves genome listed once", func(t *testing.T) {
		store := open(t)
		record := Record(t, 9)
		if err := store.PutGenome(ctx, record); err != nil {
			t.Fatalf("put genome: %v", err)
		}
		if err := store.PutGenome(ctx, record); !errors.Is(err, storage.ErrAlreadyExists) {
			t.Fatalf("duplicate put error = %v, want %v", err, storage.ErrAlreadyExists)
		}
		page, err := store.ListGenomes(ctx, 10, "")
		if err != nil {
			t.Fatalf("list genomes: %v", err)
		}
		var got []string
		for _, listed := range page.Genomes {
			got = append(got, listed.GenomeID)
		}
		if diff := cmp.Diff([]string{record.GenomeID}, got); diff != "" {
			t.Fatalf("listed ids mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("missing genome reports not found", func(t *testing.T) {
		store := open(t)
		_, err := store.GetGenome(ctx, "missing")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("get error = %v, want %v", err, storage.ErrNotFound)
		}
	})

	t.Run("invalid input is rejected", func(t *testing.T) {
		store := open(t)
		if err := store.PutGenome(ctx, storage.GenomeRecord{}); err == nil {
			t.Fatal("expected error for empty record")
		}
		if _, err := store.GetGenome(ctx, " "); err == nil {
			t.Fatal("expected error for blank id")
		}
		if _, err := store.ListGenomes(ctx, 0, ""); err == nil {
			t.Fatal("expected error for zero page size")
		}
	})

	t.Run("list pages in id order", func(t *testing.T) {
		store := open(t)
		var ids []string
		for seed := int64(20); seed < 25; seed++ {
			record := Record(t, seed)
			if err := store.PutGenome(ctx, record); err != nil {
				t.Fatalf("put seed %d: %v", seed, err)
			}
			ids = append(ids, record.GenomeID)
		}
		slices.Sort(ids)

		var got []string
		token := ""
		for pages := 0; ; pages++ {
			if pages > len(ids) {
				t.Fatal("pagination did not terminate")
			}
			page, err := store.ListGenomes(ctx, 2, token)
			if err != nil {
				t.Fatalf("list genomes: %v", err)
			}
			if len(page.Genomes) > 2 {
				t.Fatalf("page size = %d, want at most 2", len(page.Genomes))
			}
			for _, record := range page.Genomes {
				got = append(got, record.GenomeID)
			}
			if page.NextPageToken == "" {
				break
			}
			token = page.NextPageToken
		}
		if diff := cmp.Diff(ids, got); diff != "" {
			t.Fatalf("listed ids mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("exact final page has no token", func(t *testing.T) {
		store := open(t)
		for seed := int64(30); seed < 32; seed++ {
			if err := store.PutGenome(ctx, Record(t, seed)); err != nil {
				t.Fatalf("put seed %d: %v", seed, err)
			}
		}
		page, err := store.ListGenomes(ctx, 2, "")
		if err != nil {
			t.Fatalf("list genomes: %v", err)
		}
		if len(page.Genomes) != 2 || page.NextPageToken != "" {
			t.Fatalf("page = %d genomes, token %q; want 2 and no token", len(page.Genomes), page.NextPageToken)
		}
	})
}
