package photos

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	gerrors "github.com/julianstephens/growlog/internal/errors"
)

func TestLocalStorePutDelete(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStore(root)
	ctx := context.Background()

	url, err := store.Put(ctx, "users/u1/plants/p1/cover.jpg", strings.NewReader("jpeg"))
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if !strings.HasPrefix(url, "file://") {
		t.Errorf("expected file URL, got %s", url)
	}
	data, err := os.ReadFile(filepath.Join(root, "users", "u1", "plants", "p1", "cover.jpg"))
	if err != nil || string(data) != "jpeg" {
		t.Fatalf("photo not stored: %v", err)
	}

	path, err := StoragePath(root, url)
	if err != nil {
		t.Fatalf("StoragePath failed: %v", err)
	}
	if path != "users/u1/plants/p1/cover.jpg" {
		t.Errorf("StoragePath() = %q", path)
	}

	if err := store.Delete(ctx, path); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete(ctx, path); !errors.Is(err, gerrors.ErrNotFound) {
		t.Errorf("expected not found on second delete, got %v", err)
	}
}

func TestLocalStoreRejectsEscape(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	if _, err := store.Put(context.Background(), "../outside.jpg", strings.NewReader("x")); err == nil {
		t.Error("expected path outside root to be rejected")
	}
}

func TestStoragePathHosted(t *testing.T) {
	tests := []struct {
		url     string
		want    string
		wantErr bool
	}{
		{"https://storage.example.com/v0/b/bucket/o/users%2Fu1%2Fplants%2Fp1.jpg?alt=media&token=abc", "users/u1/plants/p1.jpg", false},
		{"https://storage.example.com/v0/b/bucket/o/photo%20one.png", "photo one.png", false},
		{"https://storage.example.com/v0/b/bucket/", "", true},
		{"ftp://host/o/x", "", true},
	}
	for _, tt := range tests {
		got, err := StoragePath("/unused", tt.url)
		if (err != nil) != tt.wantErr {
			t.Errorf("StoragePath(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("StoragePath(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestStoragePathOutsideRoot(t *testing.T) {
	if _, err := StoragePath("/data/photos", "file:///etc/passwd"); err == nil {
		t.Error("expected error for file URL outside root")
	}
}
