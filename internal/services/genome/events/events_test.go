package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func sampleEvent() Event {
	return Event{
		Type:       TypeGenerated,
		GenomeID:   "g-1",
		Seed:       42,
		Primary:    "lover",
		OccurredAt: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestNewSelectsPublisher(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind string
		want any
	}{
		{kind: "", want: Nop{}},
		{kind: "none", want: Nop{}},
		{kind: "LOG", want: &Log{}},
	}
	for _, tc := range tests {
		got, err := New(Config{Kind: tc.kind}, zap.NewNop())
		if err != nil {
			t.Fatalf("New(%q): %v", tc.kind, err)
		}
		switch tc.want.(type) {
		case Nop:
			if _, ok := got.(Nop); !ok {
				t.Fatalf("New(%q) = %T, want Nop", tc.kind, got)
			}
		case *Log:
			if _, ok := got.(*Log); !ok {
				t.Fatalf("New(%q) = %T, want *Log", tc.kind, got)
			}
		}
	}

	if _, err := New(Config{Kind: "carrier-pigeon"}, nil); err == nil {
		t.Fatal("expected unknown publisher error")
	}
	if _, err := New(Config{Kind: KindKafka}, nil); err == nil {
		t.Fatal("expected missing brokers error")
	}
}

func TestLogPublisherWritesFields(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	pub := NewLog(zap.New(core))
	if err := pub.Publish(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("publish: %v", err)
	}
	entries := logs.FilterMessage("genome event").All()
	if len(entries) != 1 {
		t.Fatalf("log entries = %d, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["genome_id"] != "g-1" || fields["type"] != string(TypeGenerated) {
		t.Fatalf("fields = %v", fields)
	}
}

func TestLogPublisherWritesComparedPair(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	event := sampleEvent()
	event.Type = TypeCompared
	event.TargetID = "g-2"
	event.Label = "MENTOR"
	if err := NewLog(zap.New(core)).Publish(context.Background(), event); err != nil {
		t.Fatalf("publish: %v", err)
	}
	fields := logs.All()[0].ContextMap()
	if fields["target_id"] != "g-2" || fields["label"] != "MENTOR" {
		t.Fatalf("fields = %v", fields)
	}

	data, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["target_id"] != "g-2" || decoded["label"] != "MENTOR" {
		t.Fatalf("payload = %s", data)
	}
}

func TestRecorderCopiesEvents(t *testing.T) {
	t.Parallel()

	var r Recorder
	_ = r.Publish(context.Background(), sampleEvent())
	got := r.Events()
	got[0].GenomeID = "changed"
	if r.Events()[0].GenomeID != "g-1" {
		t.Fatal("recorder exposed its backing slice")
	}
}

type fakeProducer struct {
	records []*kgo.Record
	err     error
	closed  bool
}

func (f *fakeProducer) ProduceSync(_ context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	f.records = append(f.records, rs...)
	results := make(kgo.ProduceResults, 0, len(rs))
	for _, r := range rs {
		results = append(results, kgo.ProduceResult{Record: r, Err: f.err})
	}
	return results
}

func (f *fakeProducer) Close() { f.closed = true }

func TestKafkaPublishesKeyedRecord(t *testing.T) {
	t.Parallel()

	fake := &fakeProducer{}
	k := &Kafka{client: fake, topic: "genomes"}
	if err := k.Publish(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(fake.records) != 1 {
		t.Fatalf("records = %d, want 1", len(fake.records))
	}
	record := fake.records[0]
	if record.Topic != "genomes" || string(record.Key) != "g-1" {
		t.Fatalf("record topic/key = %s/%s", record.Topic, record.Key)
	}
	var decoded Event
	if err := json.Unmarshal(record.Value, &decoded); err != nil {
		t.Fatalf("decode value: %v", err)
	}
	if diff := cmp.Diff(sampleEvent(), decoded); diff != "" {
		t.Fatalf("event mismatch (-want +got):\n%s", diff)
	}

	if err := k.Close(); err != nil || !fake.closed {
		t.Fatalf("close = %v, closed = %v", err, fake.closed)
	}
}

func TestKafkaReportsProduceError(t *testing.T) {
	t.Parallel()

	boom := errors.New("broker down")
	k := &Kafka{client: &fakeProducer{err: boom}, topic: "genomes"}
	if err := k.Publish(context.Background(), sampleEvent()); !errors.Is(err, boom) {
		t.Fatalf("publish error = %v, want %v", err, boom)
	}
}

func TestNewKafkaValidates(t *testing.T) {
	t.Parallel()

	if _, err := NewKafka(nil, "t"); err == nil {
		t.Fatal("expected brokers error")
	}
	if _, err := NewKafka([]string{"localhost:9092"}, ""); err == nil {
		t.Fatal("expected topic error")
	}
}
