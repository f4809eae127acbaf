package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	def := DefaultConfig()
	if *cfg != *def {
		t.Errorf("cfg = %+v, want defaults %+v", cfg, def)
	}
}

func TestLoadFromOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[storage]\npath = \"/tmp/custom.db\"\n\n[api]\nkey = \"secret\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Path != "/tmp/custom.db" {
		t.Errorf("storage path = %q", cfg.Storage.Path)
	}
	if cfg.API.Key != "secret" {
		t.Errorf("api key = %q", cfg.API.Key)
	}
	// Unset fields keep their defaults.
	if cfg.API.BaseURL != DefaultConfig().API.BaseURL {
		t.Errorf("base url = %q", cfg.API.BaseURL)
	}
	if cfg.Serve.Addr != ":8080" {
		t.Errorf("serve addr = %q", cfg.Serve.Addr)
	}
}

func TestLoadFromBadToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not toml ["), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected a parse error")
	}
}
