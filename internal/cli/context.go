package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/growlog/internal/account"
	"github.com/julianstephens/growlog/internal/backup"
	"github.com/julianstephens/growlog/internal/batchlog"
	"github.com/julianstephens/growlog/internal/config"
	"github.com/julianstephens/growlog/internal/docstore"
	"github.com/julianstephens/growlog/internal/logger"
	"github.com/julianstephens/growlog/internal/messages"
	"github.com/julianstephens/growlog/internal/photos"
	"github.com/julianstephens/growlog/internal/reminders"
	"github.com/julianstephens/growlog/internal/storage"
)

type Context struct {
	Config    *config.Config
	Store     docstore.Store
	Repo      storage.Repository
	Reminders *reminders.Service
	Writer    *batchlog.Writer
	Archiver  *account.Archiver
	Photos    photos.ObjectStore
	Bundle    *messages.Bundle
	Out       io.Writer
}

// NewContext wires the services every command shares around store.
func NewContext(cfg *config.Config, store docstore.Store, bundle *messages.Bundle) *Context {
	if bundle == nil {
		bundle = messages.MustDefault()
	}
	repo := storage.NewDocRepository(store, cfg.ConfigDir())
	objects := photos.NewLocalStore(cfg.PhotosPath())
	return &Context{
		Config:    cfg,
		Store:     store,
		Repo:      repo,
		Reminders: reminders.NewService(repo),
		Writer:    batchlog.NewWriter(repo),
		Archiver:  account.NewArchiver(repo, objects, cfg.PhotosPath()),
		Photos:    objects,
		Bundle:    bundle,
		Out:       os.Stdout,
	}
}

// UID is the user every command acts on.
func (c *Context) UID() string {
	return c.Config.User
}

func (c *Context) Ctx() context.Context {
	return context.Background()
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Print(args ...interface{}) {
	fmt.Fprint(c.Out, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Out, args...)
}

// Msg prints a message from the bundle followed by a newline.
func (c *Context) Msg(key string, args ...interface{}) {
	fmt.Fprintln(c.Out, c.Bundle.Get(key, args...))
}

// SQLitePath returns the database file when the store is SQLite.
func (c *Context) SQLitePath() (string, bool) {
	if _, ok := c.Store.(*docstore.SQLiteStore); !ok {
		return "", false
	}
	return c.Store.GetConfigPath(), true
}

// PerformAutomaticBackup snapshots a SQLite journal before destructive commands.
// Failures are logged and never interrupt the command.
func (c *Context) PerformAutomaticBackup() {
	path, ok := c.SQLitePath()
	if !ok {
		return
	}
	if _, err := backup.NewManager(path).CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}
