// Package config loads pickview's config.toml.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	dark "github.com/thiagokokada/dark-mode-go"
)

// FileName is the TOML config file name inside Dir().
const FileName = "config.toml"

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "PICKVIEW_CONFIG"

// Config represents user-facing configuration in TOML format.
type Config struct {
	UI      UISettings      `toml:"ui"`
	Preview PreviewSettings `toml:"preview"`
	Logs    LogSettings     `toml:"logs"`
}

// UISettings controls look and captions.
type UISettings struct {
	// Theme sets the color scheme: "dark" (default), "light", or "system"
	Theme string `toml:"theme"`

	OptionsTitle string `toml:"options_title"`
	PreviewTitle string `toml:"preview_title"`
}

// PreviewSettings controls how preview text is produced.
type PreviewSettings struct {
	// Command is a shell command template; "{}" is replaced by the quoted label.
	// Empty means labels are previewed as file paths.
	Command string `toml:"command"`

	// MaxBytes caps how much of a file or command output is shown.
	MaxBytes int `toml:"max_bytes"`

	// Watch refreshes the preview when the focused file changes on disk.
	Watch bool `toml:"watch"`
}

// LogSettings mirrors logging.Config for the [logs] section.
type LogSettings struct {
	Level         string `toml:"level"`
	Format        string `toml:"format"`
	MaxMB         int    `toml:"max_mb"`
	Backups       int    `toml:"backups"`
	RetentionDays int    `toml:"retention_days"`
	Compress      bool   `toml:"compress"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		UI: UISettings{
			Theme:        "dark",
			OptionsTitle: "Options",
			PreviewTitle: "Preview",
		},
		Preview: PreviewSettings{
			MaxBytes: 64 * 1024,
		},
		Logs: LogSettings{
			Level:         "debug",
			Format:        "json",
			MaxMB:         10,
			Backups:       3,
			RetentionDays: 7,
		},
	}
}

// Dir returns ~/.pickview.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".pickview"), nil
}

// Path returns the config file path, honoring $PICKVIEW_CONFIG.
func Path() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads the config at path. A missing file yields Default().
// On a parse error the defaults are returned together with the error so the
// caller can report it and carry on.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return Default(), fmt.Errorf("%s parse error: %w", filepath.Base(path), err)
	}
	cfg.normalize()
	return cfg, nil
}

// normalize fills zero values left behind by a partial file.
func (c *Config) normalize() {
	def := Default()
	switch c.UI.Theme {
	case "dark", "light", "system":
	default:
		c.UI.Theme = def.UI.Theme
	}
	if c.UI.OptionsTitle == "" {
		c.UI.OptionsTitle = def.UI.OptionsTitle
	}
	if c.UI.PreviewTitle == "" {
		c.UI.PreviewTitle = def.UI.PreviewTitle
	}
	if c.Preview.MaxBytes <= 0 {
		c.Preview.MaxBytes = def.Preview.MaxBytes
	}
}

// Save writes cfg to path: temp file, fsync, rename.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("# pickview configuration\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	tmpPath := path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to finalize config: %w", err)
	}
	return nil
}

// isDarkMode is swapped in tests.
var isDarkMode = dark.IsDarkMode

// ResolveTheme turns "system" into "dark" or "light" using the OS setting.
// Detection failures fall back to "dark".
func ResolveTheme(theme string) string {
	switch theme {
	case "light":
		return "light"
	case "system":
		isDark, err := isDarkMode()
		if err != nil || isDark {
			return "dark"
		}
		return "light"
	default:
		return "dark"
	}
}
