package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenNoConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvHome, filepath.Join(dir, "runmunch-home"))

	cfg, err := Load("", "", "", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutputFormat != "text" {
		t.Fatalf("expected default output format 'text', got %q", cfg.OutputFormat)
	}
	if cfg.LogPath == "" {
		t.Fatal("expected a default log path")
	}
}

func TestLoadCLIFlagsOverrideConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvHome, dir)

	if err := os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte("output_format: json\nflag_mode: long\n"), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load("", "", "", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutputFormat != "json" {
		t.Fatalf("expected config file's json format, got %q", cfg.OutputFormat)
	}
	if cfg.FlagMode != "long" {
		t.Fatalf("expected config file's long flag mode, got %q", cfg.FlagMode)
	}

	cfg2, err := Load("", "text", "", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg2.OutputFormat != "text" {
		t.Fatalf("expected CLI flag to override config file, got %q", cfg2.OutputFormat)
	}
}
