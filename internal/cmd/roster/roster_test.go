package roster

import (
	"context"
	"flag"
	"io"
	"testing"
	"time"

	"github.com/louisbranch/realmkeep/internal/platform/logging"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("roster", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != ":8095" {
		t.Fatalf("http addr = %q, want %q", cfg.HTTPAddr, ":8095")
	}
	if cfg.GRPCPort != 8096 {
		t.Fatalf("grpc port = %d, want %d", cfg.GRPCPort, 8096)
	}
	if cfg.DBPath != "data/roster.db" {
		t.Fatalf("db path = %q, want %q", cfg.DBPath, "data/roster.db")
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Fatalf("cache ttl = %s, want 30s", cfg.CacheTTL)
	}
	if cfg.Logging.Format != logging.FormatConsole {
		t.Fatalf("log format = %q, want console", cfg.Logging.Format)
	}
}

func TestParseConfigEnvAndFlags(t *testing.T) {
	t.Setenv("REALMKEEP_ROSTER_DB_PATH", "/tmp/env.db")
	t.Setenv("REALMKEEP_ROSTER_CACHE_TTL", "0s")
	t.Setenv("REALMKEEP_LOG_FORMAT", "json")

	cfg, err := ParseConfig(newFlagSet(), []string{"-http-addr", "127.0.0.1:9000", "-healthcheck"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "127.0.0.1:9000" {
		t.Fatalf("http addr = %q, want flag value", cfg.HTTPAddr)
	}
	if cfg.DBPath != "/tmp/env.db" {
		t.Fatalf("db path = %q, want env value", cfg.DBPath)
	}
	if cfg.CacheTTL != 0 {
		t.Fatalf("cache ttl = %s, want 0", cfg.CacheTTL)
	}
	if cfg.Logging.Format != logging.FormatJSON {
		t.Fatalf("log format = %q, want json", cfg.Logging.Format)
	}
	if !cfg.HealthCheck {
		t.Fatal("healthcheck = false, want true")
	}
}

func TestParseConfigRejectsBadValues(t *testing.T) {
	if _, err := ParseConfig(newFlagSet(), []string{"-grpc-port", "70000"}); err == nil {
		t.Fatal("expected error for out of range port")
	}
	if _, err := ParseConfig(newFlagSet(), []string{"-cache-ttl", "-1s"}); err == nil {
		t.Fatal("expected error for negative ttl")
	}
}

func TestRunRejectsBadLogLevel(t *testing.T) {
	cfg := Config{Logging: logging.Config{Level: "loud"}}
	if err := Run(context.Background(), cfg); err == nil {
		t.Fatal("expected error for invalid log level")
	}
}
