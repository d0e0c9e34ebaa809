// Package storage implements the evidence FileStore on the local filesystem.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	portssvc "github.com/gastosapp/gastos_backend/internal/core/ports/services"
)

type localFileStore struct {
	baseDir string
}

// NewLocalFileStore creates a FileStore rooted at baseDir, creating the
// directory if needed.
func NewLocalFileStore(baseDir string) (portssvc.FileStore, error) {
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return &localFileStore{baseDir: abs}, nil
}

// resolve maps a key to an absolute path, refusing escapes from the base dir.
func (s *localFileStore) resolve(key string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(key))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.baseDir, cleaned), nil
}

// Save writes the blob to a temporary file first and renames it into place,
// so a failed upload leaves nothing behind.
func (s *localFileStore) Save(ctx context.Context, key string, contentType string, r io.Reader) (string, error) {
	target, err := s.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("failed to create document dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to write document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to close document file: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to finalize document file: %w", err)
	}

	return filepath.ToSlash(key), nil
}

func (s *localFileStore) Open(ctx context.Context, storagePath string) (io.ReadCloser, error) {
	target, err := s.resolve(storagePath)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(target)
	if err != nil {
		return nil, fmt.Errorf("failed to open document %s: %w", storagePath, err)
	}
	return f, nil
}

func (s *localFileStore) Delete(ctx context.Context, storagePath string) error {
	target, err := s.resolve(storagePath)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete document %s: %w", storagePath, err)
	}
	return nil
}
