package docstore

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	_ "modernc.org/sqlite"

	"github.com/julianstephens/growlog/internal/constants"
	"github.com/julianstephens/growlog/internal/logger"
	"github.com/julianstephens/growlog/internal/migration"
	"github.com/julianstephens/growlog/migrations"
)

// SQLiteStore keeps documents in a single SQLite file.
type SQLiteStore struct {
	sqlDocs
	path     string
	debounce time.Duration
	hub      *hub

	watchOnce sync.Once
	watchErr  error
	watcher   *fsnotify.Watcher
}

func NewSQLiteStore(path string) *SQLiteStore {
	s := &SQLiteStore{
		path:     path,
		debounce: constants.DefaultWatchDebounce,
		hub:      newHub(),
	}
	s.sqlDocs = sqlDocs{now: time.Now, onCommit: s.hub.notify}
	return s
}

// SetDebounce changes how long file events are coalesced before subscribers are
// signalled.
func (s *SQLiteStore) SetDebounce(d time.Duration) {
	s.debounce = d
}

func (s *SQLiteStore) open() error {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// One writer at a time; SQLite serialises anyway and this avoids SQLITE_BUSY
	// between pooled connections.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return fmt.Errorf("failed to configure database: %w", err)
	}
	s.db = db
	return nil
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if s.db == nil {
		if err := s.open(); err != nil {
			return err
		}
	}

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'growlog init' first")
	}

	if err := s.open(); err != nil {
		return err
	}

	return s.validateSchemaVersion()
}

func (s *SQLiteStore) Close() error {
	if s.watcher != nil {
		s.watcher.Close()
		s.watcher = nil
	}
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *SQLiteStore) runner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS, migration.DialectSQLite), nil
}

func (s *SQLiteStore) runMigrations() error {
	runner, err := s.runner()
	if err != nil {
		return err
	}
	_, err = runner.ApplyMigrations(func(msg string) {
		logger.Info(msg)
	})
	return err
}

// Migrate applies pending migrations to an already-loaded database.
func (s *SQLiteStore) Migrate(logFn func(string)) (int, error) {
	if s.db == nil {
		if err := s.open(); err != nil {
			return 0, err
		}
	}
	runner, err := s.runner()
	if err != nil {
		return 0, err
	}
	return runner.ApplyMigrations(logFn)
}

func (s *SQLiteStore) validateSchemaVersion() error {
	runner, err := s.runner()
	if err != nil {
		return err
	}
	return runner.ValidateVersion()
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

// GetDB returns the underlying database connection, or nil before Init/Load.
func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}

func (s *SQLiteStore) Get(ctx context.Context, path Path) (Document, error) {
	return s.get(ctx, path)
}

func (s *SQLiteStore) Set(ctx context.Context, path Path, v interface{}) error {
	return s.set(ctx, path, v)
}

func (s *SQLiteStore) Delete(ctx context.Context, path Path) error {
	return s.delete(ctx, path)
}

func (s *SQLiteStore) List(ctx context.Context, collection Path) ([]Document, error) {
	return s.list(ctx, collection)
}

func (s *SQLiteStore) ListTree(ctx context.Context, prefix Path) ([]Document, error) {
	return s.listTree(ctx, prefix)
}

func (s *SQLiteStore) Batch(ctx context.Context, fn func(*Batch) error) error {
	return s.batch(ctx, fn)
}

// Changes subscribes to writes. Writes from this process are signalled directly;
// writes from other processes are picked up by watching the database files.
func (s *SQLiteStore) Changes(ctx context.Context) (<-chan struct{}, error) {
	s.watchOnce.Do(func() {
		s.watchErr = s.startFileWatch()
	})
	if s.watchErr != nil {
		return nil, s.watchErr
	}
	return s.hub.subscribe(ctx), nil
}

func (s *SQLiteStore) startFileWatch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	// Watch the directory: SQLite replaces -wal and -journal files, which drops
	// watches placed on the files themselves.
	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	s.watcher = watcher
	base := filepath.Base(s.path)
	go func() {
		var timer *time.Timer
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !strings.HasPrefix(filepath.Base(ev.Name), base) {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				if timer == nil {
					timer = time.AfterFunc(s.debounce, s.hub.notify)
				} else {
					timer.Reset(s.debounce)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Database watcher error", "error", err)
			}
		}
	}()
	return nil
}
