package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ImageStore persists an uploaded image and returns its public URL.
type ImageStore interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
}

// DiskImageStore writes images under a local public directory. A CDN-backed
// store can replace it behind the same interface.
type DiskImageStore struct {
	root    string
	baseURL string
}

func NewDiskImageStore(root, baseURL string) (*DiskImageStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskImageStore{root: root, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

var allowedImageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

func (s *DiskImageStore) Save(_ context.Context, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if !allowedImageExts[ext] {
		return "", fmt.Errorf("unsupported image type: %q", ext)
	}

	// Stored name is never derived from client input beyond the extension.
	name := uuid.NewString() + ext
	target := filepath.Join(s.root, name)

	f, err := os.Create(target)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(target)
		return "", err
	}
	return s.baseURL + "/" + name, nil
}
