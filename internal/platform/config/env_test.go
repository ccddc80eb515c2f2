package config

import (
	"strings"
	"testing"
	"time"
)

type envTestConfig struct {
	Port int           `env:"TEST_PORT" envDefault:"123"`
	TTL  time.Duration `env:"TEST_TTL" envDefault:"30s"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("port = %d, want 123", cfg.Port)
	}
	if cfg.TTL != 30*time.Second {
		t.Fatalf("ttl = %v, want 30s", cfg.TTL)
	}
}

func TestParseEnvReadsPrefixedVariables(t *testing.T) {
	t.Setenv("REALMKEEP_TEST_PORT", "9001")
	t.Setenv("TEST_PORT", "1")

	var cfg envTestConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 9001 {
		t.Fatalf("port = %d, want 9001", cfg.Port)
	}
}

func TestParseEnvWithPrefix(t *testing.T) {
	t.Setenv("OTHER_TEST_PORT", "77")

	var cfg envTestConfig
	if err := ParseEnvWithPrefix(&cfg, "OTHER_"); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 77 {
		t.Fatalf("port = %d, want 77", cfg.Port)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("REALMKEEP_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
