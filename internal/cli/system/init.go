package system

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/growlog/internal/cli"
	"github.com/julianstephens/growlog/internal/constants"
	"github.com/julianstephens/growlog/internal/docstore"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing SQLite journal before initialization."`
	Source string `help:"SQLite path or PostgreSQL connection string to copy documents from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized growlog storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Copying documents from: %s\n", c.Source)
		n, err := c.copyFrom(ctx, c.Source)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Printf("Copied %d document(s)\n", n)
	}
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	dbPath, ok := ctx.SQLitePath()
	if !ok {
		return fmt.Errorf("--force only supports SQLite journals")
	}
	if c.Source != "" {
		absDB, err := filepath.Abs(dbPath)
		if err == nil {
			dbPath = absDB
		}
		if absSource, err := filepath.Abs(c.Source); err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		ctx.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

// copyFrom copies every user and archive document from source in one batch.
func (c *InitCmd) copyFrom(ctx *cli.Context, source string) (int, error) {
	var src docstore.Store
	if docstore.IsPostgresConnString(source) {
		if _, err := docstore.ValidateConnString(source); err != nil {
			return 0, err
		}
		src = docstore.NewPostgresStore(source)
	} else {
		src = docstore.NewSQLiteStore(source)
	}
	if err := src.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source database: %w", err)
	}
	defer src.Close()

	bg := context.Background()
	var docs []docstore.Document
	for _, root := range []docstore.Path{constants.UsersCollection, constants.ArchivedUsersCollection} {
		found, err := src.ListTree(bg, root)
		if err != nil {
			return 0, fmt.Errorf("failed to read %s from source: %w", root, err)
		}
		docs = append(docs, found...)
	}

	err := ctx.Store.Batch(bg, func(b *docstore.Batch) error {
		for _, doc := range docs {
			if err := b.SetRaw(doc.Path, doc.Data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}
