// ABOUTME: Tests for configuration load, save, and overrides.
// ABOUTME: Covers env precedence, path expansion, and missing-secret errors.
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("NOTION_SECRET", "")
	t.Setenv("POLAR_ACCESS_TOKEN", "")
}

func TestLoadMissingFile(t *testing.T) {
	isolateConfig(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.PolarAccessToken != "" || cfg.NotionSecret != "" {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestSaveAndLoad(t *testing.T) {
	isolateConfig(t)

	cfg := &Config{
		PolarAccessToken:  "token",
		PolarUserID:       "12345",
		NotionSecret:      "secret",
		NotionRunningDBID: "dbid",
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.PolarAccessToken != "token" || loaded.PolarUserID != "12345" {
		t.Errorf("loaded = %+v", loaded)
	}
	if loaded.NotionRunningDBID != "dbid" {
		t.Errorf("NotionRunningDBID = %s", loaded.NotionRunningDBID)
	}

	info, err := os.Stat(GetConfigPath())
	if err != nil {
		t.Fatalf("stat config: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("config mode = %o, want 0600 (holds secrets)", info.Mode().Perm())
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	isolateConfig(t)

	cfg := &Config{PolarAccessToken: "file-token", NotionSecret: "file-secret"}
	if cfg.GetPolarAccessToken() != "file-token" {
		t.Errorf("expected file token without env override")
	}

	t.Setenv("POLAR_ACCESS_TOKEN", "env-token")
	t.Setenv("NOTION_SECRET", "env-secret")
	if cfg.GetPolarAccessToken() != "env-token" {
		t.Errorf("env token should win, got %s", cfg.GetPolarAccessToken())
	}
	if cfg.GetNotionSecret() != "env-secret" {
		t.Errorf("env secret should win, got %s", cfg.GetNotionSecret())
	}
}

func TestNotionClientRequiresSecret(t *testing.T) {
	isolateConfig(t)

	cfg := &Config{}
	if _, err := cfg.NotionClient(); err == nil {
		t.Fatal("expected error without a configured secret")
	}

	cfg.NotionSecret = "secret"
	if _, err := cfg.NotionClient(); err != nil {
		t.Fatalf("NotionClient failed: %v", err)
	}
}

func TestGetDataDir(t *testing.T) {
	isolateConfig(t)
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

	cfg := &Config{}
	if got := cfg.GetDataDir(); got != filepath.Join("/tmp/xdg-data", "polarsync") {
		t.Errorf("default data dir = %s", got)
	}

	cfg.DataDir = "~/custom"
	home, _ := os.UserHomeDir()
	if got := cfg.GetDataDir(); got != filepath.Join(home, "custom") {
		t.Errorf("expanded data dir = %s", got)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()
	tests := []struct{ in, want string }{
		{"", ""},
		{"~", home},
		{"~/data", filepath.Join(home, "data")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
