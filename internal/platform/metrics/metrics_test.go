package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCountersTrackLabels(t *testing.T) {
	t.Parallel()

	m := New()
	m.Generated("hero")
	m.Generated("hero")
	m.Generated("sage")
	m.Failed("GENOME_INVALID_OVERRIDE")
	m.Compared("MENTOR")
	m.Exported("json")
	m.Disclosed("public")

	if got := testutil.ToFloat64(m.GenomesGenerated.WithLabelValues("hero")); got != 2 {
		t.Fatalf("hero count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.GenerateFailures.WithLabelValues("GENOME_INVALID_OVERRIDE")); got != 1 {
		t.Fatalf("failure count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Comparisons.WithLabelValues("MENTOR")); got != 1 {
		t.Fatalf("comparison count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Exports.WithLabelValues("json")); got != 1 {
		t.Fatalf("export count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Disclosures.WithLabelValues("public")); got != 1 {
		t.Fatalf("disclosure count = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(m.Exports); got != 1 {
		t.Fatalf("export series = %d, want 1", got)
	}
}

func TestObserveRPCRecordsSample(t *testing.T) {
	t.Parallel()

	m := New()
	m.ObserveRPC("Generate", time.Now().Add(-3*time.Millisecond))
	if got := testutil.CollectAndCount(m.RPCDuration); got != 1 {
		t.Fatalf("histogram series = %d, want 1", got)
	}
}

func TestNilMetricsIgnoreCalls(t *testing.T) {
	t.Parallel()

	var m *Metrics
	m.Generated("hero")
	m.Failed("UNKNOWN")
	m.Compared("ALLY")
	m.Exported("yaml")
	m.Disclosed("intimate")
	m.ObserveRPC("Compare", time.Now())
}
