// Package storage persists uploaded files on the local filesystem.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type LocalStore struct {
	baseDir string
}

func NewLocalStore(baseDir string) *LocalStore {
	return &LocalStore{
		baseDir: baseDir,
	}
}

// Save writes the uploaded file under baseDir/subDir with a random name,
// keeping only the original extension. It returns the relative path to
// store alongside the owning record.
func (s *LocalStore) Save(file *multipart.FileHeader, subDir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := uuid.NewString() + ext

	dir := filepath.Join(s.baseDir, subDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("os.MkdirAll -> %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("file.Open -> %w", err)
	}
	defer src.Close()

	if err := writeFile(filepath.Join(dir, name), src); err != nil {
		return "", err
	}

	return path.Join(subDir, name), nil
}

// writeFile copies src to dest. A half-written file is removed so a failed
// upload never leaves anything behind.
func writeFile(dest string, src io.Reader) error {
	dst, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("os.Create -> %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dest)

		return fmt.Errorf("io.Copy -> %w", err)
	}

	return nil
}

// Abs resolves a path previously returned by Save to a filesystem path.
func (s *LocalStore) Abs(relPath string) string {
	if relPath == "" {
		return ""
	}

	return filepath.Join(s.baseDir, filepath.FromSlash(relPath))
}

// Open resolves a path previously returned by Save.
func (s *LocalStore) Open(relPath string) (*os.File, error) {
	f, err := os.Open(filepath.Join(s.baseDir, filepath.FromSlash(relPath)))
	if err != nil {
		return nil, fmt.Errorf("os.Open -> %w", err)
	}

	return f, nil
}
