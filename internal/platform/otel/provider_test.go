package otel

import (
	"context"
	"testing"
)

func TestConfigActive(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{name: "no endpoint", cfg: Config{}, want: false},
		{name: "endpoint", cfg: Config{Endpoint: "http://collector:4318"}, want: true},
		{name: "disabled", cfg: Config{Endpoint: "http://collector:4318", Enabled: "FALSE"}, want: false},
		{name: "blank endpoint", cfg: Config{Endpoint: "  ", Enabled: "true"}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Active(); got != tt.want {
				t.Fatalf("Active() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadConfigChecksSampleRatio(t *testing.T) {
	t.Setenv("ORIPHEON_OTEL_SAMPLE_RATIO", "1.5")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected out of range ratio error")
	}

	t.Setenv("ORIPHEON_OTEL_SAMPLE_RATIO", "often")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected parse error")
	}

	t.Setenv("ORIPHEON_OTEL_SAMPLE_RATIO", "0.25")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.SampleRatio != 0.25 {
		t.Fatalf("sample ratio = %v, want 0.25", cfg.SampleRatio)
	}
}

func TestSetupInactiveReturnsNoop(t *testing.T) {
	t.Setenv("ORIPHEON_OTEL_ENDPOINT", "")

	shutdown, err := Setup(context.Background(), "genome")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestSetupErrorStillReturnsShutdown(t *testing.T) {
	t.Setenv("ORIPHEON_OTEL_ENDPOINT", "http://192.0.2.1:4318")
	t.Setenv("ORIPHEON_OTEL_SAMPLE_RATIO", "-1")

	shutdown, err := Setup(context.Background(), "genome")
	if err == nil {
		t.Fatal("expected config error")
	}
	if shutdown == nil || shutdown(context.Background()) != nil {
		t.Fatal("expected usable noop shutdown")
	}
}

func TestNewProviderBuildsWithoutCollector(t *testing.T) {
	// 192.0.2.0/24 is reserved for documentation, nothing answers there.
	tp, err := newProvider(context.Background(), "genome", Config{Endpoint: "http://192.0.2.1:4318", SampleRatio: 1})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	if tp.Tracer("test") == nil {
		t.Fatal("expected tracer")
	}
	if err := tp.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown with no spans: %v", err)
	}
}

func TestTracerWithoutProvider(t *testing.T) {
	_, span := Tracer("test").Start(context.Background(), "span")
	span.End()
}
