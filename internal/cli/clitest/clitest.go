// Package clitest builds command contexts for tests.
package clitest

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/julianstephens/growlog/internal/cli"
	"github.com/julianstephens/growlog/internal/config"
	"github.com/julianstephens/growlog/internal/constants"
	"github.com/julianstephens/growlog/internal/docstore"
)

// New returns a Context over a fresh SQLite journal in a temp dir, with
// output captured in the returned buffer.
func New(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		Store:     filepath.Join(dir, "growlog.db"),
		User:      "local",
		PhotosDir: filepath.Join(dir, "photos"),
		API:       config.APIConfig{Addr: constants.DefaultAPIAddr},
	}
	store := docstore.NewSQLiteStore(cfg.Store)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := cli.NewContext(cfg, store, nil)
	var out bytes.Buffer
	ctx.Out = &out
	return ctx, &out
}
