// ABOUTME: Tool configuration: credentials, database IDs, and data paths.
// ABOUTME: JSON file under XDG config, with environment variable overrides.

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/polarsync/internal/notion"
	"github.com/harperreed/polarsync/internal/polar"
	"github.com/harperreed/polarsync/internal/storage"
)

// Config stores sync tool configuration. Secrets may be set here or via
// the POLAR_ACCESS_TOKEN and NOTION_SECRET environment variables, which
// take precedence over the file.
type Config struct {
	// PolarAccessToken is the AccessLink OAuth access token for the user.
	PolarAccessToken string `json:"polar_access_token,omitempty"`

	// PolarUserID is the AccessLink user-id the token belongs to.
	PolarUserID string `json:"polar_user_id,omitempty"`

	// NotionSecret is the internal integration secret.
	NotionSecret string `json:"notion_secret,omitempty"`

	// NotionRunningDBID is the weekly coaching database.
	NotionRunningDBID string `json:"notion_running_db_id,omitempty"`

	// NotionSleepDBID is the sleep tracker database.
	NotionSleepDBID string `json:"notion_sleep_db_id,omitempty"`

	// DataDir is the root directory for the local database.
	// Supports ~ expansion. Defaults to ~/.local/share/polarsync.
	DataDir string `json:"data_dir,omitempty"`
}

// GetPolarAccessToken returns the access token, preferring the environment.
func (c *Config) GetPolarAccessToken() string {
	if v := os.Getenv("POLAR_ACCESS_TOKEN"); v != "" {
		return v
	}
	return c.PolarAccessToken
}

// GetNotionSecret returns the integration secret, preferring the environment.
func (c *Config) GetNotionSecret() string {
	if v := os.Getenv("NOTION_SECRET"); v != "" {
		return v
	}
	return c.NotionSecret
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStore opens the local database under the configured data directory.
func (c *Config) OpenStore() (*storage.DB, error) {
	return storage.Open(filepath.Join(c.GetDataDir(), "polar.db"))
}

// PolarClient builds an AccessLink client from the configured token.
func (c *Config) PolarClient() *polar.Client {
	return polar.NewClient(polar.StaticToken(c.GetPolarAccessToken()))
}

// NotionClient builds a Notion client. Fails when no secret is configured.
func (c *Config) NotionClient() (*notion.Client, error) {
	return notion.NewClient(c.GetNotionSecret())
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "polarsync", "config.json")
}

// Load reads config from disk. A missing file yields an empty config so
// environment-only setups work.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
