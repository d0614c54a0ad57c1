package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Address != ":8080" {
		t.Errorf("server.address = %q", cfg.Server.Address)
	}
	if cfg.Generation.Provider != ProviderNone {
		t.Errorf("generation.provider = %q", cfg.Generation.Provider)
	}
	if cfg.Generation.Timeout != 45*time.Second {
		t.Errorf("generation.timeout = %s", cfg.Generation.Timeout)
	}
	if cfg.Planner.RepetitionCap != 2 || cfg.Planner.MacroPolicy != "exact" {
		t.Errorf("planner defaults = %+v", cfg.Planner)
	}
	if cfg.Cache.TTL != 24*time.Hour {
		t.Errorf("cache.ttl = %s", cfg.Cache.TTL)
	}
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  address: ":9090"
generation:
  provider: groq
  timeout: 10s
planner:
  repetition_cap: 3
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GENERATION_API_KEY", "secret-key")
	t.Setenv("JWT_EXPIRATION", "2h")

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Address != ":9090" {
		t.Errorf("server.address = %q", cfg.Server.Address)
	}
	if cfg.Generation.Provider != ProviderGroq || cfg.Generation.Timeout != 10*time.Second {
		t.Errorf("generation = %+v", cfg.Generation)
	}
	if cfg.Generation.APIKey != "secret-key" {
		t.Errorf("api key from env not applied")
	}
	if cfg.JWT.Expiration != 2*time.Hour {
		t.Errorf("jwt.expiration = %s", cfg.JWT.Expiration)
	}
	if cfg.Planner.RepetitionCap != 3 {
		t.Errorf("planner.repetition_cap = %d", cfg.Planner.RepetitionCap)
	}
}

func TestLoadConfigRejectsUnknownProvider(t *testing.T) {
	t.Setenv("GENERATION_PROVIDER", "openai")
	_, err := LoadConfig(t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "unknown generation provider") {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func TestValidateMacroPolicy(t *testing.T) {
	cfg := Config{Planner: PlannerConfig{MacroPolicy: "loose"}}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown macro policy")
	}
	cfg.Planner = PlannerConfig{MacroPolicy: "tolerance", MacroTolerance: 0.1}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
