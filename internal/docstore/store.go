// Package docstore is a hierarchical JSON document store with atomic multi-document
// batches, backed by SQLite or PostgreSQL.
package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	gerrors "github.com/julianstephens/growlog/internal/errors"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = fmt.Errorf("document %w", gerrors.ErrNotFound)

// Document is a stored JSON value and its location.
type Document struct {
	Path      Path
	Data      json.RawMessage
	UpdatedAt time.Time
}

// Decode unmarshals the document body into v.
func (d Document) Decode(v interface{}) error {
	if err := json.Unmarshal(d.Data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", d.Path, err)
	}
	return nil
}

// Store is the document database. List and ListTree are unfiltered scans; callers
// sort and filter.
type Store interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	Get(ctx context.Context, path Path) (Document, error)
	Set(ctx context.Context, path Path, v interface{}) error
	Delete(ctx context.Context, path Path) error
	// List returns the documents directly inside collection.
	List(ctx context.Context, collection Path) ([]Document, error)
	// ListTree returns the document at prefix (if any) and every descendant.
	ListTree(ctx context.Context, prefix Path) ([]Document, error)
	// Batch runs fn to collect writes and commits them atomically. If fn returns an
	// error nothing is written.
	Batch(ctx context.Context, fn func(*Batch) error) error
	// Changes delivers a signal after the store is modified by this or another
	// process. The channel closes when ctx is done.
	Changes(ctx context.Context) (<-chan struct{}, error)

	GetConfigPath() string
}

type opKind int

const (
	opSet opKind = iota
	opDelete
)

type op struct {
	kind opKind
	path Path
	data []byte
}

// Batch collects writes for a single atomic commit.
type Batch struct {
	ops []op
}

// Set queues a write of v at path.
func (b *Batch) Set(path Path, v interface{}) error {
	if !path.IsDocument() {
		return fmt.Errorf("cannot write to collection path %s", path)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	b.ops = append(b.ops, op{kind: opSet, path: path, data: data})
	return nil
}

// SetRaw queues a write of already-encoded JSON at path.
func (b *Batch) SetRaw(path Path, data json.RawMessage) error {
	if !path.IsDocument() {
		return fmt.Errorf("cannot write to collection path %s", path)
	}
	b.ops = append(b.ops, op{kind: opSet, path: path, data: append([]byte(nil), data...)})
	return nil
}

// Delete queues removal of the document at path.
func (b *Batch) Delete(path Path) {
	b.ops = append(b.ops, op{kind: opDelete, path: path})
}

// Len returns the number of queued writes.
func (b *Batch) Len() int {
	return len(b.ops)
}
