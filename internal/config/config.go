package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "notedeck"

// Defaults applied when a value is missing or invalid.
const (
	DefaultListen    = "127.0.0.1:37840"
	DefaultServerURL = "http://localhost:37840"
	DefaultLogLevel  = "info"
	DefaultTimeout   = 10 * time.Second
	DefaultNotifyTTL = 4 * time.Second
)

type Config struct {
	Server ServerConfig `koanf:"server"`
	Client ClientConfig `koanf:"client"`
	Log    LogConfig    `koanf:"log"`

	// Desktop notifications for completed note changes (clone, move, ...)
	Notify NotifyConfig `koanf:"notify"`
}

// ServerConfig configures `notedeck serve`.
type ServerConfig struct {
	Listen string `koanf:"listen"`  // e.g., "127.0.0.1:37840"
	DBPath string `koanf:"db_path"` // empty means $XDG_DATA_HOME/notedeck/notes.db
	APIKey string `koanf:"api_key"` // protects /api when set
}

// ClientConfig configures the terminal client.
type ClientConfig struct {
	URL            string `koanf:"url"`
	APIKey         string `koanf:"api_key"`
	TimeoutSeconds int    `koanf:"timeout_seconds"`
}

// LogConfig holds logging settings shared by both sub-commands.
type LogConfig struct {
	Level string `koanf:"level"` // debug, info, warn, error
	File  string `koanf:"file"`  // tui only; empty means $XDG_STATE_HOME/notedeck/notedeck.log
}

// NotifyConfig holds desktop notification settings.
type NotifyConfig struct {
	Enabled        bool `koanf:"enabled"`
	TimeoutSeconds int  `koanf:"timeout_seconds"` // default: 4
}

// Timeout returns how long a notification stays up.
func (c NotifyConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Load reads ~/.config/notedeck/config.toml then ./config.toml (last wins).
func Load() (*Config, error) {
	return LoadFiles(getConfigPaths()...)
}

// LoadFiles loads the given files in order, skipping missing ones.
func LoadFiles(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Listen == "" {
		c.Server.Listen = DefaultListen
	}
	if c.Server.DBPath != "" {
		c.Server.DBPath = expandPath(c.Server.DBPath)
	}

	c.Client.URL = strings.TrimSuffix(c.Client.URL, "/")
	if c.Client.URL == "" {
		c.Client.URL = DefaultServerURL
	}
	if c.Client.TimeoutSeconds <= 0 {
		c.Client.TimeoutSeconds = int(DefaultTimeout / time.Second)
	}

	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Notify.TimeoutSeconds <= 0 {
		c.Notify.TimeoutSeconds = int(DefaultNotifyTTL / time.Second)
	}

	if c.Log.File != "" {
		c.Log.File = expandPath(c.Log.File)
	}
}

// Timeout returns the client request timeout.
func (c ClientConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DatabasePath returns the configured db path or the xdg default, creating
// parent directories for the latter.
func (c ServerConfig) DatabasePath() (string, error) {
	if c.DBPath != "" {
		return c.DBPath, nil
	}
	return xdg.DataFile(filepath.Join(appName, "notes.db"))
}

// LogFilePath returns the configured log file or the xdg state default.
func (c LogConfig) LogFilePath() (string, error) {
	if c.File != "" {
		return c.File, nil
	}
	return xdg.StateFile(filepath.Join(appName, appName+".log"))
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/notedeck/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName, "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
