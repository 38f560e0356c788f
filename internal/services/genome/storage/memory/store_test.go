package memory

import (
	"context"
	"testing"

	"github.com/louisbranch/oripheon/internal/services/genome/storage"
	"github.com/louisbranch/oripheon/internal/services/genome/storage/storagetest"
)

func TestStoreContract(t *testing.T) {
	storagetest.RunGenomeStore(t, func(t *testing.T) storage.GenomeStore {
		return New()
	})
}

func TestStoreCopiesPayload(t *testing.T) {
	t.Parallel()

	store := New()
	record := storagetest.Record(t, 3)
	if err := store.PutGenome(context.Background(), record); err != nil {
		t.Fatalf("put genome: %v", err)
	}
	record.Payload[0] = 'X'

	got, err := store.GetGenome(context.Background(), record.GenomeID)
	if err != nil {
		t.Fatalf("get genome: %v", err)
	}
	if got.Payload[0] != '{' {
		t.Fatalf("payload[0] = %q, want '{'", got.Payload[0])
	}
}

func TestClosedStoreRejectsWrites(t *testing.T) {
	t.Parallel()

	store := New()
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := store.PutGenome(context.Background(), storagetest.Record(t, 4)); err == nil {
		t.Fatal("expected error writing to a closed store")
	}
}
