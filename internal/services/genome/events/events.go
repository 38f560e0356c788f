// Package events publishes genome lifecycle notifications.
//
// Events are informational. Generation never depends on a publish
// succeeding, so callers log publish failures and move on.
package events

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Type names an event.
type Type string

const (
	TypeGenerated Type = "genome.generated"
	TypeRerolled  Type = "genome.rerolled"
	TypeCompared  Type = "genome.compared"
)

// Event is one published notification. TargetID and Label are set on
// TypeCompared only.
type Event struct {
	Type       Type      `json:"type"`
	GenomeID   string    `json:"genome_id"`
	Seed       int64     `json:"seed"`
	Primary    string    `json:"primary,omitempty"`
	TargetID   string    `json:"target_id,omitempty"`
	Label      string    `json:"label,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher delivers events.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Kinds of publisher.
const (
	KindNone  = "none"
	KindLog   = "log"
	KindKafka = "kafka"
)

// Config selects and configures a publisher.
type Config struct {
	Kind    string   `env:"GENOME_EVENTS" envDefault:"log"`
	Brokers []string `env:"GENOME_KAFKA_BROKERS" envSeparator:","`
	Topic   string   `env:"GENOME_KAFKA_TOPIC" envDefault:"oripheon.genomes"`
}

// New builds the publisher named by cfg.Kind.
func New(cfg Config, logger *zap.Logger) (Publisher, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Kind)) {
	case "", KindNone:
		return Nop{}, nil
	case KindLog:
		return NewLog(logger), nil
	case KindKafka:
		return NewKafka(cfg.Brokers, cfg.Topic)
	default:
		return nil, fmt.Errorf("unknown event publisher %q", cfg.Kind)
	}
}

// Nop discards events.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }

// Log writes events to a zap logger.
type Log struct {
	logger *zap.Logger
}

// NewLog returns a publisher writing to logger, or the global logger when nil.
func NewLog(logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.L()
	}
	return &Log{logger: logger}
}

func (l *Log) Publish(_ context.Context, event Event) error {
	fields := []zap.Field{
		zap.String("type", string(event.Type)),
		zap.String("genome_id", event.GenomeID),
		zap.Int64("seed", event.Seed),
		zap.String("primary", event.Primary),
		zap.Time("occurred_at", event.OccurredAt),
	}
	if event.TargetID != "" {
		fields = append(fields, zap.String("target_id", event.TargetID), zap.String("label", event.Label))
	}
	l.logger.Info("genome event", fields...)
	return nil
}

func (l *Log) Close() error { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *Recorder) Close() error { return nil }

// Events returns a copy of everything published so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}
