// Package storage provides the local artifact store for uploaded fixed-PDF
// templates and generated letters.
package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Store writes artifacts beneath a single root directory. File names are
// derived from a sanitized label plus a content hash, so the same document is
// never stored twice under different names.
type Store struct {
	root string
}

// New creates the store, ensuring the root directory exists.
func New(root string) (*Store, error) {
	if root == "" {
		return nil, fmt.Errorf("storage root is empty")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &Store{root: root}, nil
}

// Root returns the store's root directory.
func (s *Store) Root() string {
	return s.root
}

var unsafeNameChars = regexp.MustCompile(`[^a-z0-9-]+`)

// sanitizeName reduces a label to a safe file-name fragment.
func sanitizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = unsafeNameChars.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-")
	if name == "" {
		name = "letter"
	}
	return name
}

// SavePDF stores PDF bytes under a content-addressed name and returns the
// stored path.
func (s *Store) SavePDF(name string, data []byte) (string, error) {
	sum := sha256.Sum256(data)
	fileName := fmt.Sprintf("%s-%s.pdf", sanitizeName(name), hex.EncodeToString(sum[:8]))
	path := filepath.Join(s.root, fileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write artifact: %w", err)
	}
	return path, nil
}

// SaveUpload stores an uploaded fixed-PDF template and returns its path.
func (s *Store) SaveUpload(name string, data []byte) (string, error) {
	return s.SavePDF("template-"+name, data)
}

// Remove deletes a stored artifact. Paths outside the store root are refused,
// which keeps a corrupted template row from deleting arbitrary files.
func (s *Store) Remove(path string) error {
	if path == "" {
		return nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve artifact path: %w", err)
	}
	rootAbs, err := filepath.Abs(s.root)
	if err != nil {
		return fmt.Errorf("failed to resolve storage root: %w", err)
	}
	if !strings.HasPrefix(abs, rootAbs+string(filepath.Separator)) {
		return fmt.Errorf("refusing to remove file outside storage root: %s", path)
	}
	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove artifact: %w", err)
	}
	return nil
}
