// Package account archives and removes a user's journal.
package account

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	gerrors "github.com/julianstephens/growlog/internal/errors"
	"github.com/julianstephens/growlog/internal/docstore"
	"github.com/julianstephens/growlog/internal/logger"
	"github.com/julianstephens/growlog/internal/photos"
	"github.com/julianstephens/growlog/internal/storage"
)

// Marker is written at archived_users/{uid}.
type Marker struct {
	UID        string    `json:"uid"`
	ArchivedAt time.Time `json:"archived_at"`
	Documents  int       `json:"documents"`
}

// Options controls what DeleteAccount does besides archiving documents.
type Options struct {
	// PurgePhotos deletes every photo referenced by the archived documents once the
	// archive has been committed.
	PurgePhotos bool
}

// Result reports what an account deletion touched.
type Result struct {
	Archived     int `json:"archived"`
	PhotosPurged int `json:"photos_purged"`
}

// Archiver moves users/{uid} to archived_users/{uid}.
type Archiver struct {
	repo      storage.Repository
	photos    photos.ObjectStore
	photoRoot string
	now       func() time.Time
}

// NewArchiver returns an Archiver. objects may be nil when photos are never purged.
func NewArchiver(repo storage.Repository, objects photos.ObjectStore, photoRoot string) *Archiver {
	return &Archiver{repo: repo, photos: objects, photoRoot: photoRoot, now: time.Now}
}

// SetClock replaces the time source.
func (a *Archiver) SetClock(now func() time.Time) {
	a.now = now
}

// DeleteAccount copies every document under users/{uid} to the same relative path
// under archived_users/{uid} and deletes the originals, all in one batch.
func (a *Archiver) DeleteAccount(ctx context.Context, uid string, opts Options) (Result, error) {
	if uid == "" {
		return Result{}, fmt.Errorf("user id cannot be empty")
	}

	docs, err := a.repo.ListUserTree(ctx, uid)
	if err != nil {
		return Result{}, fmt.Errorf("failed to list account documents: %w", err)
	}
	if len(docs) == 0 {
		return Result{}, fmt.Errorf("account %s: %w", uid, gerrors.ErrNotFound)
	}

	from, to := storage.UserPath(uid), storage.ArchivedUserPath(uid)
	marker := Marker{UID: uid, ArchivedAt: a.now().UTC(), Documents: len(docs)}

	err = a.repo.Batch(ctx, uid, func(b *docstore.Batch) error {
		for _, doc := range docs {
			if doc.Path == from {
				// the user document itself is replaced by the marker
				b.Delete(doc.Path)
				continue
			}
			dst, err := doc.Path.Rebase(from, to)
			if err != nil {
				return err
			}
			if err := b.SetRaw(dst, doc.Data); err != nil {
				return err
			}
			b.Delete(doc.Path)
		}
		return b.Set(to, marker)
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to archive account: %w", err)
	}

	res := Result{Archived: len(docs)}
	logger.Info("Account archived", "uid", uid, "documents", len(docs))

	if opts.PurgePhotos {
		res.PhotosPurged = a.purgePhotos(ctx, docs)
	}
	return res, nil
}

// purgePhotos deletes referenced photos. Failures are logged; the archive has
// already been committed.
func (a *Archiver) purgePhotos(ctx context.Context, docs []docstore.Document) int {
	if a.photos == nil {
		logger.Warn("Photo purge requested without an object store")
		return 0
	}
	purged := 0
	for _, u := range PhotoURLs(docs) {
		path, err := photos.StoragePath(a.photoRoot, u)
		if err != nil {
			logger.Warn("Skipping unresolvable photo URL", "url", u, "error", err)
			continue
		}
		if err := a.photos.Delete(ctx, path); err != nil {
			if !errors.Is(err, gerrors.ErrNotFound) {
				logger.Warn("Failed to delete photo", "path", path, "error", err)
			}
			continue
		}
		purged++
	}
	logger.Info("Account photos purged", "count", purged)
	return purged
}

// PhotoURLs returns the distinct photo_url values found in docs, in first-seen order.
func PhotoURLs(docs []docstore.Document) []string {
	seen := make(map[string]bool)
	var urls []string
	for _, doc := range docs {
		var v struct {
			PhotoURL string `json:"photo_url"`
		}
		if err := json.Unmarshal(doc.Data, &v); err != nil || v.PhotoURL == "" {
			continue
		}
		if !seen[v.PhotoURL] {
			seen[v.PhotoURL] = true
			urls = append(urls, v.PhotoURL)
		}
	}
	return urls
}
