// Package config loads growlog settings from defaults, an optional YAML file, a
// .env file and GROWLOG_ environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/julianstephens/growlog/internal/constants"
	"github.com/julianstephens/growlog/internal/docstore"
	"github.com/julianstephens/growlog/internal/keyring"
)

const (
	EnvPrefix         = "GROWLOG_"
	DefaultConfigFile = "~/.config/growlog/config.yaml"
)

// lookupConnectionString is swapped in tests.
var lookupConnectionString = keyring.GetConnectionString

type Config struct {
	// Store is a SQLite file path or a PostgreSQL connection string.
	Store     string      `koanf:"store"`
	User      string      `koanf:"user"`
	Debug     bool        `koanf:"debug"`
	Locale    string      `koanf:"locale"`
	Messages  string      `koanf:"messages"` // message bundle override file
	PhotosDir string      `koanf:"photos_dir"`
	API       APIConfig   `koanf:"api"`
	Watch     WatchConfig `koanf:"watch"`
}

type APIConfig struct {
	Addr string `koanf:"addr"`
}

type WatchConfig struct {
	DebounceMs int `koanf:"debounce_ms"`
}

// Load reads configuration. A missing config file or .env file is not an error.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	k := koanf.New(".")

	if err := k.Load(NewDefaultProvider(), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		configPath = ExpandPath(configPath)
		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Store = ExpandPath(cfg.Store)
	cfg.PhotosDir = ExpandPath(cfg.PhotosDir)
	cfg.Messages = ExpandPath(cfg.Messages)
	return &cfg, nil
}

// envKey maps GROWLOG_API__ADDR to api.addr; a double underscore nests.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.User) == "" {
		return fmt.Errorf("user is required")
	}
	if strings.Contains(c.User, "/") {
		return fmt.Errorf("user %q cannot contain '/'", c.User)
	}
	if c.Watch.DebounceMs < 0 {
		return fmt.Errorf("watch.debounce_ms cannot be negative")
	}
	if c.API.Addr == "" {
		return fmt.Errorf("api.addr is required")
	}
	return nil
}

// StoreLocation resolves where the journal lives: the configured store, else a
// connection string saved in the OS keyring, else the default SQLite path.
// PostgreSQL connection strings carrying a password are rejected.
func (c *Config) StoreLocation() (string, error) {
	loc := c.Store
	if loc == "" {
		if connStr, err := lookupConnectionString(); err == nil && connStr != "" {
			loc = connStr
		} else {
			loc = ExpandPath(constants.DefaultConfigPath)
		}
	}

	if docstore.IsPostgresConnString(loc) {
		if _, err := docstore.ValidateConnString(loc); err != nil {
			return "", err
		}
	}
	return loc, nil
}

// OpenStore builds the document store for the resolved location. It does not
// connect; call Init or Load.
func (c *Config) OpenStore() (docstore.Store, error) {
	loc, err := c.StoreLocation()
	if err != nil {
		return nil, err
	}
	if docstore.IsPostgresConnString(loc) {
		return docstore.NewPostgresStore(loc), nil
	}
	s := docstore.NewSQLiteStore(loc)
	s.SetDebounce(c.WatchDebounce())
	return s, nil
}

// ConfigDir is where logs, caches and local photos live. For PostgreSQL stores it
// is the directory of the default SQLite path.
func (c *Config) ConfigDir() string {
	loc, err := c.StoreLocation()
	if err != nil || docstore.IsPostgresConnString(loc) {
		return filepath.Dir(ExpandPath(constants.DefaultConfigPath))
	}
	return filepath.Dir(loc)
}

func (c *Config) PhotosPath() string {
	if c.PhotosDir != "" {
		return c.PhotosDir
	}
	return filepath.Join(c.ConfigDir(), "photos")
}

func (c *Config) WatchDebounce() time.Duration {
	if c.Watch.DebounceMs <= 0 {
		return constants.DefaultWatchDebounce
	}
	return time.Duration(c.Watch.DebounceMs) * time.Millisecond
}

// ExpandPath replaces a leading "~/" with the home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
