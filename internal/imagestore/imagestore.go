package imagestore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store persists uploaded product images and serves back a public reference.
// Implementations may target local disk or a cloud blob store.
type Store interface {
	// Save writes the image and returns its public URL.
	Save(ctx context.Context, originalName string, r io.Reader) (string, error)
	// Remove deletes the image behind a URL previously returned by Save.
	Remove(ctx context.Context, url string) error
}

// Local stores images on disk under a directory that is also mounted as a
// static route, so the returned URLs resolve against the backend itself.
type Local struct {
	dir     string
	baseURL string
}

// NewLocal creates the upload directory if needed.
func NewLocal(dir, baseURL string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &Local{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (l *Local) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	name := uuid.NewString() + strings.ToLower(filepath.Ext(originalName))

	f, err := os.Create(filepath.Join(l.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	return l.baseURL + "/uploads/" + name, nil
}

func (l *Local) Remove(ctx context.Context, url string) error {
	name := path.Base(url)
	if name == "." || name == "/" || name == "" {
		return fmt.Errorf("invalid image url %q", url)
	}
	if err := os.Remove(filepath.Join(l.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove image file: %w", err)
	}
	return nil
}
