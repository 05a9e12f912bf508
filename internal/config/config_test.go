package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	cfg := Config{
		HTTP:    HTTPConfig{Port: 8090},
		Backend: BackendConfig{Host: "localhost"},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingBackendHost(t *testing.T) {
	cfg := validConfig()
	cfg.Backend.Host = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing backend host")
	}
}

func TestValidate_InvalidScheme(t *testing.T) {
	cfg := validConfig()
	cfg.Backend.Scheme = "grpc"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid scheme")
	}

	expected := `backend.scheme must be "http" or "https", got "grpc"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_InvalidJPEGQuality(t *testing.T) {
	cfg := validConfig()
	cfg.Image.JPEGQuality = 101

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for jpeg quality out of range")
	}
}

func TestValidate_DefaultLimitAboveMax(t *testing.T) {
	cfg := validConfig()
	cfg.Search.DefaultLimit = 200
	cfg.Search.MaxLimit = 50

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for default_limit > max_limit")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{
		HTTP:    HTTPConfig{Port: 8090},
		Backend: BackendConfig{Host: "localhost"},
	}
	cfg.ApplyDefaults()

	if cfg.Backend.Port != 8080 {
		t.Errorf("expected backend port 8080, got %d", cfg.Backend.Port)
	}
	if cfg.Backend.Collection != "FoodsMultiModal" {
		t.Errorf("expected default collection, got %q", cfg.Backend.Collection)
	}
	if cfg.Image.TargetWidth != 400 || cfg.Image.TargetHeight != 400 {
		t.Errorf("expected 400x400 canonical size, got %dx%d", cfg.Image.TargetWidth, cfg.Image.TargetHeight)
	}
	if cfg.Image.JPEGQuality != 85 {
		t.Errorf("expected jpeg quality 85, got %d", cfg.Image.JPEGQuality)
	}
	if cfg.Image.OversizePx != 5000 {
		t.Errorf("expected oversize threshold 5000, got %d", cfg.Image.OversizePx)
	}
	if cfg.Search.DefaultLimit != 10 || cfg.Search.TopResults != 3 || cfg.Search.RowSize != 3 {
		t.Errorf("unexpected search defaults: %+v", cfg.Search)
	}
}

func TestCacheEnabled(t *testing.T) {
	cfg := validConfig()
	if cfg.Cache.Enabled() {
		t.Error("cache should be disabled without addrs")
	}

	cfg.Cache.Addrs = []string{"localhost:6379"}
	if !cfg.Cache.Enabled() {
		t.Error("cache should be enabled with addrs")
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("FOODSEARCH_TEST_KEY", "secret")

	out := string(expandEnvVars([]byte("key: ${FOODSEARCH_TEST_KEY}\nother: ${MISSING_VAR:-fallback}")))
	if !strings.Contains(out, "key: secret") {
		t.Errorf("expected env substitution, got %q", out)
	}
	if !strings.Contains(out, "other: fallback") {
		t.Errorf("expected default substitution, got %q", out)
	}
}
