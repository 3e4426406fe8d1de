package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/growlog/internal/constants"
	"github.com/julianstephens/growlog/internal/docstore"
	"github.com/julianstephens/growlog/internal/keyring"
)

func withKeyring(t *testing.T, connStr string) {
	t.Helper()
	old := lookupConnectionString
	t.Cleanup(func() { lookupConnectionString = old })
	lookupConnectionString = func() (string, error) {
		if connStr == "" {
			return "", keyring.ErrNotFound
		}
		return connStr, nil
	}
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.User != "local" || cfg.Locale != "en" || cfg.API.Addr != constants.DefaultAPIAddr {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.WatchDebounce() != constants.DefaultWatchDebounce {
		t.Errorf("WatchDebounce() = %v", cfg.WatchDebounce())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadLayers(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	path := filepath.Join(dir, "config.yaml")
	yamlData := "user: alice\nlocale: es\nwatch:\n  debounce_ms: 50\napi:\n  addr: 127.0.0.1:9000\n"
	if err := os.WriteFile(path, []byte(yamlData), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("GROWLOG_DEBUG=true\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GROWLOG_USER", "bob")
	t.Setenv("GROWLOG_API__ADDR", "0.0.0.0:8080")
	t.Setenv("GROWLOG_DEBUG", "")
	os.Unsetenv("GROWLOG_DEBUG")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.User != "bob" {
		t.Errorf("env should override file, got user %q", cfg.User)
	}
	if cfg.Locale != "es" {
		t.Errorf("file should override defaults, got locale %q", cfg.Locale)
	}
	if cfg.API.Addr != "0.0.0.0:8080" {
		t.Errorf("nested env key not applied, got %q", cfg.API.Addr)
	}
	if !cfg.Debug {
		t.Error("expected .env to set debug")
	}
	if cfg.WatchDebounce() != 50*time.Millisecond {
		t.Errorf("WatchDebounce() = %v", cfg.WatchDebounce())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"empty user", Config{User: " ", API: APIConfig{Addr: "x"}}},
		{"slash in user", Config{User: "a/b", API: APIConfig{Addr: "x"}}},
		{"negative debounce", Config{User: "a", API: APIConfig{Addr: "x"}, Watch: WatchConfig{DebounceMs: -1}}},
		{"no api addr", Config{User: "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestStoreLocation(t *testing.T) {
	t.Run("configured sqlite path", func(t *testing.T) {
		withKeyring(t, "postgres://grower@db/growlog")
		cfg := Config{Store: "/data/growlog.db"}
		loc, err := cfg.StoreLocation()
		if err != nil || loc != "/data/growlog.db" {
			t.Errorf("StoreLocation() = %q, %v", loc, err)
		}
	})

	t.Run("keyring fallback", func(t *testing.T) {
		withKeyring(t, "postgres://grower@db/growlog")
		cfg := Config{}
		loc, err := cfg.StoreLocation()
		if err != nil || loc != "postgres://grower@db/growlog" {
			t.Errorf("StoreLocation() = %q, %v", loc, err)
		}
		store, err := cfg.OpenStore()
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := store.(*docstore.PostgresStore); !ok {
			t.Errorf("expected PostgresStore, got %T", store)
		}
	})

	t.Run("default path", func(t *testing.T) {
		withKeyring(t, "")
		cfg := Config{}
		loc, err := cfg.StoreLocation()
		if err != nil {
			t.Fatal(err)
		}
		if loc != ExpandPath(constants.DefaultConfigPath) {
			t.Errorf("StoreLocation() = %q", loc)
		}
		if cfg.PhotosPath() != filepath.Join(filepath.Dir(loc), "photos") {
			t.Errorf("PhotosPath() = %q", cfg.PhotosPath())
		}
	})

	t.Run("embedded password rejected", func(t *testing.T) {
		withKeyring(t, "")
		cfg := Config{Store: "postgres://grower:secret@db/growlog"}
		if _, err := cfg.StoreLocation(); !errors.Is(err, docstore.ErrEmbeddedCredentials) {
			t.Errorf("expected ErrEmbeddedCredentials, got %v", err)
		}
		if _, err := cfg.OpenStore(); err == nil {
			t.Error("expected OpenStore to fail")
		}
	})
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"GROWLOG_USER":               "user",
		"GROWLOG_PHOTOS_DIR":         "photos_dir",
		"GROWLOG_WATCH__DEBOUNCE_MS": "watch.debounce_ms",
	}
	for in, want := range tests {
		if got := envKey(in); got != want {
			t.Errorf("envKey(%q) = %q, want %q", in, got, want)
		}
	}
}

// chdir changes the working directory for the duration of the test
// (stand-in for testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restoring working directory failed: %v", err)
		}
	})
}
