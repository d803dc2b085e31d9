// Package imagestore persists uploaded menu images under a static-served
// directory with collision-free names.
package imagestore

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxFileSize caps uploads at 5MB.
const MaxFileSize = 5 << 20

// URLPrefix is the public path uploads are served from.
const URLPrefix = "/uploads"

var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".svg":  true,
}

var allowedContentTypes = map[string]bool{
	"image/jpeg":    true,
	"image/jpg":     true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

type Store struct {
	dir string
}

// New creates the uploads directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory files are written to.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes the uploaded file to disk and returns its public URL path.
// Files over MaxFileSize or outside the image allow-list are rejected.
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	if fh.Size > MaxFileSize {
		return "", fmt.Errorf("image exceeds the %dMB size limit", MaxFileSize/(1<<20))
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("only image files (JPEG, PNG, GIF, WebP, SVG) are allowed")
	}
	if ct := fh.Header.Get("Content-Type"); ct != "" && !allowedContentTypes[ct] {
		return "", fmt.Errorf("unsupported image content type %q", ct)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	name := fmt.Sprintf("menu-item-%d-%s%s", time.Now().UnixNano(), uuid.NewString()[:8], ext)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	return URLPrefix + "/" + name, nil
}

// Remove deletes the file behind a URL returned by Save. Unknown paths are
// ignored.
func (s *Store) Remove(urlPath string) error {
	name := path.Base(urlPath)
	if name == "." || name == "/" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
