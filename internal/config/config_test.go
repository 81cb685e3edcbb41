package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("FUNKIT_DB", "")
	t.Setenv("FUNKIT_LINK_COLOR", "")
	t.Setenv("FUNKIT_LINK_UNDERLINE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DBPath != DefaultDBPath {
		t.Errorf("db path = %q", cfg.DBPath)
	}
	if cfg.LinkColor != DefaultLinkColor {
		t.Errorf("link color = %q", cfg.LinkColor)
	}
	if !cfg.LinkUnderline {
		t.Error("underline should default on")
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if err := os.MkdirAll(filepath.Join(dir, "funkit"), 0755); err != nil {
		t.Fatal(err)
	}
	file := []byte("db_path = \"/tmp/from-file.db\"\nlink_color = \"#ff0000\"\nlink_underline = false\n")
	if err := os.WriteFile(filepath.Join(dir, "funkit", "config.toml"), file, 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("FUNKIT_DB", "")
	t.Setenv("FUNKIT_LINK_COLOR", "")
	t.Setenv("FUNKIT_LINK_UNDERLINE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DBPath != "/tmp/from-file.db" || cfg.LinkColor != "#ff0000" || cfg.LinkUnderline {
		t.Errorf("file values not applied: %+v", cfg)
	}

	// Env wins over file.
	t.Setenv("FUNKIT_DB", "/tmp/from-env.db")
	t.Setenv("FUNKIT_LINK_UNDERLINE", "1")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DBPath != "/tmp/from-env.db" {
		t.Errorf("env db path not applied: %q", cfg.DBPath)
	}
	if !cfg.LinkUnderline {
		t.Error("env underline not applied")
	}
	if cfg.LinkColor != "#ff0000" {
		t.Errorf("file link color lost: %q", cfg.LinkColor)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if err := os.MkdirAll(filepath.Join(dir, "funkit"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "funkit", "config.toml"), []byte("db_path = ["), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("expected error for malformed config")
	}
}
