package media

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Kind names the resource an upload belongs to; it is part of the stored
// filename.
const (
	KindLogo       = "logo"
	KindBarcode    = "barcode"
	KindCategory   = "category"
	KindIngredient = "ingredient"
	KindProduct    = "product"
)

// Store writes uploaded blobs under a media root and addresses them by a
// deterministic filename, so re-uploading replaces the previous file.
type Store struct {
	root    string
	baseURL string
}

// NewStore creates a media store rooted at dir. Files are served back under
// baseURL + "/media/".
func NewStore(dir, baseURL string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media dir: %w", err)
	}
	return &Store{
		root:    dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Root returns the directory files are written to
func (s *Store) Root() string {
	return s.root
}

// Save writes the blob as {slug}_{kind}_{id}{ext} and returns its absolute
// URL. The write completes before any caller mutates a database row, so a
// failed upload never leaves a row pointing at a missing file.
func (s *Store) Save(slug, kind string, id string, originalName string, src io.Reader) (string, error) {
	name := s.Filename(slug, kind, id, originalName)
	dest := filepath.Join(s.root, name)

	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("failed to create media file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, src); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("failed to write media file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("failed to flush media file: %w", err)
	}

	return s.URL(name), nil
}

// Filename builds the deterministic name for an upload
func (s *Store) Filename(slug, kind, id, originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%s_%s_%s%s", slug, kind, id, ext)
}

// URL returns the absolute URL a stored file is served from
func (s *Store) URL(name string) string {
	return s.baseURL + "/media/" + name
}

var defaultStore *Store

// Initialize sets up the package-level media store
func Initialize(dir, baseURL string) error {
	store, err := NewStore(dir, baseURL)
	if err != nil {
		return err
	}
	defaultStore = store
	return nil
}

// Default returns the package-level media store
func Default() *Store {
	return defaultStore
}
