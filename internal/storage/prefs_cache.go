package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/julianstephens/growlog/internal/constants"
	"github.com/julianstephens/growlog/internal/logger"
	"github.com/julianstephens/growlog/internal/models"
)

// prefsCache mirrors each user's preferences into a JSON file keyed by uid. A
// missing or unreadable file is a cache miss, never an error.
type prefsCache struct {
	mu   sync.Mutex
	path string
}

func newPrefsCache(dir string) *prefsCache {
	if dir == "" {
		return &prefsCache{}
	}
	return &prefsCache{path: filepath.Join(dir, constants.PrefsCacheFileName)}
}

func (c *prefsCache) read() map[string]models.Preferences {
	entries := make(map[string]models.Preferences)
	data, err := os.ReadFile(c.path)
	if err != nil {
		return entries
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		logger.Warn("Discarding unreadable preferences cache", "path", c.path, "error", err)
		return make(map[string]models.Preferences)
	}
	return entries
}

func (c *prefsCache) write(entries map[string]models.Preferences) {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0700); err != nil {
		logger.Warn("Failed to create cache directory", "error", err)
		return
	}
	if err := os.WriteFile(c.path, data, 0600); err != nil {
		logger.Warn("Failed to write preferences cache", "path", c.path, "error", err)
	}
}

func (c *prefsCache) get(uid string) (models.Preferences, bool) {
	if c.path == "" {
		return models.Preferences{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	prefs, ok := c.read()[uid]
	return prefs, ok
}

func (c *prefsCache) put(uid string, prefs models.Preferences) {
	if c.path == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	entries := c.read()
	entries[uid] = prefs
	c.write(entries)
}

func (c *prefsCache) invalidate(uid string) {
	if c.path == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	entries := c.read()
	if _, ok := entries[uid]; !ok {
		return
	}
	delete(entries, uid)
	c.write(entries)
	logger.Debug("Preferences cache invalidated", "uid", uid)
}
