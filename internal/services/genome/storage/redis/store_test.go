package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/louisbranch/oripheon/internal/services/genome/storage"
	"github.com/louisbranch/oripheon/internal/services/genome/storage/storagetest"
)

// startRedis runs a throwaway Redis container for the calling test. It
// skips when no container runtime is reachable.
func startRedis(t *testing.T) *redis.Options {
	t.Helper()
	if testing.Short() {
		t.Skip("redis container skipped in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		t.Fatalf("start redis container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Errorf("terminate redis container: %v", err)
		}
	})
	url, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("redis connection string: %v", err)
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		t.Fatalf("parse redis url: %v", err)
	}
	return opts
}

func TestOpenRequiresURL(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), " "); err == nil {
		t.Fatal("expected empty url error")
	}
	if _, err := Open(context.Background(), "not-a-url"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestKeysUsePrefix(t *testing.T) {
	t.Parallel()

	store := New(nil, "")
	if got := store.genomeKey("abc"); got != "oripheon:genome:abc" {
		t.Fatalf("genome key = %q", got)
	}
	if got := New(nil, "t:").indexKey(); got != "t:genomes" {
		t.Fatalf("index key = %q", got)
	}
}

func TestStoreContract(t *testing.T) {
	opts := startRedis(t)
	var n atomic.Int64
	open := func(t *testing.T) (*Store, *redis.Client) {
		client := redis.NewClient(opts)
		t.Cleanup(func() { _ = client.Close() })
		return New(client, fmt.Sprintf("oripheon-test:%d:", n.Add(1))), client
	}

	storagetest.RunGenomeStore(t, func(t *testing.T) storage.GenomeStore {
		store, _ := open(t)
		return store
	})

	t.Run("unindexed record is indexed by a retried put", func(t *testing.T) {
		ctx := context.Background()
		store, client := open(t)
		record := storagetest.Record(t, 11)
		data, err := json.Marshal(record)
		if err != nil {
			t.Fatalf("encode record: %v", err)
		}
		if err := client.Set(ctx, store.genomeKey(record.GenomeID), data, 0).Err(); err != nil {
			t.Fatalf("seed record key: %v", err)
		}
		if err := store.PutGenome(ctx, record); !errors.Is(err, storage.ErrAlreadyExists) {
			t.Fatalf("put error = %v, want %v", err, storage.ErrAlreadyExists)
		}
		page, err := store.ListGenomes(ctx, 5, "")
		if err != nil {
			t.Fatalf("list genomes: %v", err)
		}
		if len(page.Genomes) != 1 || page.Genomes[0].GenomeID != record.GenomeID {
			t.Fatalf("listed = %+v, want only %s", page.Genomes, record.GenomeID)
		}
	})
}
