package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := DefaultConfig()
	if cfg.ListenAddr != def.ListenAddr {
		t.Fatalf("listen addr = %q", cfg.ListenAddr)
	}
	if cfg.CacheTTL != 30*time.Minute {
		t.Fatalf("cache ttl = %v", cfg.CacheTTL)
	}
	if cfg.TaxRate != 0.11 {
		t.Fatalf("tax rate = %v", cfg.TaxRate)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  listen_addr: ":9090"
  max_upload_bytes: 1048576
cache:
  ttl: 5m
analysis:
  max_rows: 500
debug: true
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != ":9090" {
		t.Fatalf("listen addr = %q", cfg.ListenAddr)
	}
	if cfg.MaxUploadBytes != 1048576 {
		t.Fatalf("max upload = %d", cfg.MaxUploadBytes)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Fatalf("cache ttl = %v", cfg.CacheTTL)
	}
	if cfg.MaxRowsAnalyze != 500 {
		t.Fatalf("max rows = %d", cfg.MaxRowsAnalyze)
	}
	if !cfg.Debug {
		t.Fatal("debug not set")
	}
	// Untouched keys keep their defaults.
	if cfg.TaxRate != 0.11 {
		t.Fatalf("tax rate = %v", cfg.TaxRate)
	}
}
