package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store persists uploaded blobs (resumes, profile pictures) and hands back
// opaque references. Callers own the replace ordering: persist the new
// reference durably first, delete the old blob after.
type Store interface {
	// Save writes the blob and returns its reference
	Save(kind, originalName string, r io.Reader) (string, error)

	// Delete removes a previously stored blob; deleting an unknown reference
	// is not an error
	Delete(ref string) error
}

// LocalStore keeps blobs on the local filesystem under a base directory.
type LocalStore struct {
	baseDir string
}

// NewLocalStore creates the base directory if needed.
func NewLocalStore(baseDir string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{baseDir: baseDir}, nil
}

// Save writes the blob under a random name, keeping the original extension.
func (s *LocalStore) Save(kind, originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := fmt.Sprintf("%s-%s%s", kind, uuid.NewString(), ext)
	path := filepath.Join(s.baseDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create blob file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write blob: %w", err)
	}

	return path, nil
}

// Delete removes the blob behind a reference.
func (s *LocalStore) Delete(ref string) error {
	if ref == "" {
		return nil
	}
	if err := os.Remove(ref); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	return nil
}
