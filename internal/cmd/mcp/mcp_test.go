package mcp

import (
	"context"
	"flag"
	"io"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.GenomeAddr != "localhost:8095" {
		t.Fatalf("genome addr = %q, want localhost:8095", cfg.GenomeAddr)
	}
	if cfg.HTTPAddr != "localhost:8097" {
		t.Fatalf("http addr = %q, want localhost:8097", cfg.HTTPAddr)
	}
	if cfg.Transport != "stdio" {
		t.Fatalf("transport = %q, want stdio", cfg.Transport)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("ORIPHEON_GENOME_ADDR", "genome:9000")
	t.Setenv("ORIPHEON_MCP_TRANSPORT", " HTTP")

	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-http-addr", "0.0.0.0:9100"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.GenomeAddr != "genome:9000" {
		t.Fatalf("genome addr = %q, want genome:9000", cfg.GenomeAddr)
	}
	if cfg.Transport != "http" {
		t.Fatalf("transport = %q, want http", cfg.Transport)
	}
	if cfg.HTTPAddr != "0.0.0.0:9100" {
		t.Fatalf("http addr = %q, want 0.0.0.0:9100", cfg.HTTPAddr)
	}
}

func TestParseConfigRejectsUnknownFlag(t *testing.T) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if _, err := ParseConfig(fs, []string{"-bogus"}); err == nil {
		t.Fatal("expected unknown flag error")
	}
}

func TestParseConfigRejectsUnknownTransport(t *testing.T) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	if _, err := ParseConfig(fs, []string{"-transport", "websocket"}); err == nil {
		t.Fatal("expected unsupported transport error")
	}
}

func TestRunRejectsUnknownTransport(t *testing.T) {
	err := Run(context.Background(), Config{GenomeAddr: "127.0.0.1:1", Transport: "smoke-signal"}, nil)
	if err == nil {
		t.Fatal("expected unsupported transport error")
	}
}
