package docstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/julianstephens/growlog/internal/logger"
)

// sqlDocs holds the query logic shared by the SQLite and PostgreSQL backends. The
// backends differ only in how they open the database and in bind-parameter syntax.
type sqlDocs struct {
	db     *sql.DB
	dollar bool
	now    func() time.Time
	// onCommit runs after every successful write so in-process subscribers see it
	// without waiting for the backend's change feed.
	onCommit func()
}

// bind rewrites "?" placeholders to "$n" for PostgreSQL.
func (s *sqlDocs) bind(query string) string {
	if !s.dollar {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *sqlDocs) ready() error {
	if s.db == nil {
		return fmt.Errorf("store not loaded")
	}
	return nil
}

func (s *sqlDocs) get(ctx context.Context, path Path) (Document, error) {
	if err := s.ready(); err != nil {
		return Document{}, err
	}
	var data, updatedAt string
	err := s.db.QueryRowContext(ctx, s.bind(`SELECT data, updated_at FROM documents WHERE path = ?`), string(path)).
		Scan(&data, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	if err != nil {
		return Document{}, fmt.Errorf("failed to get %s: %w", path, err)
	}
	return newDocument(path, data, updatedAt)
}

func (s *sqlDocs) set(ctx context.Context, path Path, v interface{}) error {
	return s.batch(ctx, func(b *Batch) error {
		return b.Set(path, v)
	})
}

func (s *sqlDocs) delete(ctx context.Context, path Path) error {
	if err := s.ready(); err != nil {
		return err
	}
	if _, err := s.get(ctx, path); err != nil {
		return err
	}
	return s.batch(ctx, func(b *Batch) error {
		b.Delete(path)
		return nil
	})
}

func (s *sqlDocs) list(ctx context.Context, collection Path) ([]Document, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		s.bind(`SELECT path, data, updated_at FROM documents WHERE parent = ? ORDER BY path`),
		string(collection))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}
	return scanDocuments(rows)
}

func (s *sqlDocs) listTree(ctx context.Context, prefix Path) ([]Document, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	// substr keeps '_' and '%' in ids from acting as LIKE wildcards. Its length
	// argument counts characters, not bytes.
	under := string(prefix) + "/"
	rows, err := s.db.QueryContext(ctx,
		s.bind(`SELECT path, data, updated_at FROM documents
		        WHERE path = ? OR substr(path, 1, ?) = ?
		        ORDER BY path`),
		string(prefix), utf8.RuneCountInString(under), under)
	if err != nil {
		return nil, fmt.Errorf("failed to list tree %s: %w", prefix, err)
	}
	return scanDocuments(rows)
}

func (s *sqlDocs) batch(ctx context.Context, fn func(*Batch) error) error {
	if err := s.ready(); err != nil {
		return err
	}

	b := &Batch{}
	if err := fn(b); err != nil {
		return err
	}
	if b.Len() == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin batch: %w", err)
	}
	defer tx.Rollback()

	upsert := s.bind(`INSERT INTO documents (path, parent, data, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (path) DO UPDATE SET parent = excluded.parent, data = excluded.data, updated_at = excluded.updated_at`)
	del := s.bind(`DELETE FROM documents WHERE path = ?`)
	stamp := s.now().UTC().Format(time.RFC3339Nano)

	for _, o := range b.ops {
		switch o.kind {
		case opSet:
			if _, err := tx.ExecContext(ctx, upsert, string(o.path), string(o.path.Parent()), string(o.data), stamp); err != nil {
				return fmt.Errorf("failed to write %s: %w", o.path, err)
			}
		case opDelete:
			if _, err := tx.ExecContext(ctx, del, string(o.path)); err != nil {
				return fmt.Errorf("failed to delete %s: %w", o.path, err)
			}
		}
	}

	if _, err := tx.ExecContext(ctx, `UPDATE change_log SET seq = seq + 1 WHERE id = 1`); err != nil {
		return fmt.Errorf("failed to bump change log: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}

	logger.Debug("Batch committed", "writes", b.Len())
	if s.onCommit != nil {
		s.onCommit()
	}
	return nil
}

func (s *sqlDocs) changeSeq(ctx context.Context) (int64, error) {
	var seq int64
	err := s.db.QueryRowContext(ctx, `SELECT seq FROM change_log WHERE id = 1`).Scan(&seq)
	return seq, err
}

func scanDocuments(rows *sql.Rows) ([]Document, error) {
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var path, data, updatedAt string
		if err := rows.Scan(&path, &data, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		doc, err := newDocument(Path(path), data, updatedAt)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating documents: %w", err)
	}
	return docs, nil
}

func newDocument(path Path, data, updatedAt string) (Document, error) {
	ts, err := time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return Document{}, fmt.Errorf("failed to parse updated_at for %s: %w", path, err)
	}
	return Document{Path: path, Data: []byte(data), UpdatedAt: ts}, nil
}
