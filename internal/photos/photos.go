// Package photos stores plant, log and session photos and resolves their download
// URLs back to storage paths.
package photos

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	gerrors "github.com/julianstephens/growlog/internal/errors"
	"github.com/julianstephens/growlog/internal/logger"
)

// ObjectStore holds photo bytes under slash-separated storage paths.
type ObjectStore interface {
	// Put stores r at path and returns its download URL.
	Put(ctx context.Context, path string, r io.Reader) (string, error)
	Delete(ctx context.Context, path string) error
}

// LocalStore keeps photos as files under a root directory.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

func (s *LocalStore) file(path string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(strings.TrimPrefix(path, "/")))
	if clean == "." || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("invalid storage path %q", path)
	}
	return filepath.Join(s.root, clean), nil
}

func (s *LocalStore) Put(ctx context.Context, path string, r io.Reader) (string, error) {
	name, err := s.file(path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(name), 0700); err != nil {
		return "", fmt.Errorf("failed to create photo directory: %w", err)
	}
	f, err := os.Create(name)
	if err != nil {
		return "", fmt.Errorf("failed to create photo: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write photo: %w", err)
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(name)}).String(), nil
}

func (s *LocalStore) Delete(ctx context.Context, path string) error {
	name, err := s.file(path)
	if err != nil {
		return err
	}
	if err := os.Remove(name); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("photo %s: %w", path, gerrors.ErrNotFound)
		}
		return fmt.Errorf("failed to delete photo: %w", err)
	}
	logger.Debug("Photo deleted", "path", path)
	return nil
}

// StoragePath turns a download URL into the storage path it was issued for. It
// understands file:// URLs below root and hosted URLs of the form
// https://host/.../o/<escaped path>?alt=media.
func StoragePath(root, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid photo URL: %w", err)
	}

	switch u.Scheme {
	case "file":
		rel, err := filepath.Rel(root, filepath.FromSlash(u.Path))
		if err != nil || strings.HasPrefix(rel, "..") {
			return "", fmt.Errorf("photo URL %s is outside %s", rawURL, root)
		}
		return filepath.ToSlash(rel), nil
	case "http", "https":
		escaped := u.EscapedPath()
		i := strings.LastIndex(escaped, "/o/")
		if i < 0 {
			return "", fmt.Errorf("photo URL %s has no object path", rawURL)
		}
		p, err := url.PathUnescape(escaped[i+len("/o/"):])
		if err != nil {
			return "", fmt.Errorf("invalid object path in %s: %w", rawURL, err)
		}
		if p == "" {
			return "", fmt.Errorf("photo URL %s has no object path", rawURL)
		}
		return p, nil
	default:
		return "", fmt.Errorf("unsupported photo URL scheme %q", u.Scheme)
	}
}
