// Package config handles the configuration directory, settings file and paths.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"checklist/internal/store"
)

const (
	// AppName is the application directory name.
	AppName = "checklist"

	// SettingsFile is the optional YAML settings filename.
	SettingsFile = "config.yaml"

	// TasksBaseName is the preferences file name without extension.
	TasksBaseName = "tasks"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// EnvFormat overrides the settings file format.
	EnvFormat = "CHECKLIST_FORMAT"
)

// Settings holds values read from config.yaml.
type Settings struct {
	// Format is the preferences file encoding: json, yaml or toml.
	Format string `yaml:"format"`

	// RemoteList is the Google Tasks list used by push and pull
	// when --list is not given. Empty means the default list.
	RemoteList string `yaml:"remote_list"`
}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Settings are the values from config.yaml, with environment overrides applied.
	Settings Settings
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/checklist or $HOME/.config/checklist.
// Settings are read from config.yaml when present.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir}
	if err := cfg.loadSettings(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

func (c *Config) loadSettings() error {
	data, err := os.ReadFile(c.SettingsPath())
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return fmt.Errorf("read %s: %w", SettingsFile, err)
	default:
		if err := yaml.Unmarshal(data, &c.Settings); err != nil {
			return fmt.Errorf("invalid %s: %w", SettingsFile, err)
		}
	}

	if f := os.Getenv(EnvFormat); f != "" {
		c.Settings.Format = f
	}
	if _, err := store.ParseFormat(c.Settings.Format); err != nil {
		return fmt.Errorf("invalid %s: %w", SettingsFile, err)
	}
	return nil
}

// Format returns the preferences file encoding.
func (c *Config) Format() store.Format {
	f, err := store.ParseFormat(c.Settings.Format)
	if err != nil {
		return store.FormatJSON
	}
	return f
}

// SettingsPath returns the path to config.yaml.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// TasksPath returns the path to the preferences file holding the task list.
func (c *Config) TasksPath() string {
	return filepath.Join(c.Dir, TasksBaseName+"."+c.Format().Ext())
}

// OtherTasksPaths returns existing task files written in a format other than
// the configured one. They are left behind when the format setting changes.
func (c *Config) OtherTasksPaths() []string {
	var paths []string
	for _, f := range store.Formats {
		if f == c.Format() {
			continue
		}
		path := filepath.Join(c.Dir, TasksBaseName+"."+f.Ext())
		if _, err := os.Stat(path); err == nil {
			paths = append(paths, path)
		}
	}
	return paths
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
