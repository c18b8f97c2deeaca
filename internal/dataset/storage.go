package dataset

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ArtifactStore writes report artifacts under one output directory
type ArtifactStore struct {
	baseDir string
}

// NewArtifactStore creates a store rooted at baseDir; the directory is created on first write
func NewArtifactStore(baseDir string) *ArtifactStore {
	return &ArtifactStore{baseDir: baseDir}
}

// BaseDir returns the output directory
func (s *ArtifactStore) BaseDir() string {
	return s.baseDir
}

// Path returns where an artifact with the given name is stored
func (s *ArtifactStore) Path(name string) string {
	return filepath.Join(s.baseDir, name)
}

// Prepare creates the parent directories of an artifact and returns its path
func (s *ArtifactStore) Prepare(name string) (string, error) {
	path := s.Path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	return path, nil
}

// Store writes an artifact, replacing any existing file. The content is
// written to a temporary file first so readers never see a partial artifact.
func (s *ArtifactStore) Store(name string, content io.Reader) (string, error) {
	path, err := s.Prepare(name)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, content); err != nil {
		tmp.Close()
		os.Remove(tmpPath) // Clean up on failure
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to move %s into place: %w", name, err)
	}
	return path, nil
}

// StoreBytes writes an in-memory artifact
func (s *ArtifactStore) StoreBytes(name string, content []byte) (string, error) {
	return s.Store(name, bytes.NewReader(content))
}

// Exists checks if an artifact exists
func (s *ArtifactStore) Exists(name string) (bool, error) {
	_, err := os.Stat(s.Path(name))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check file existence: %w", err)
	}
	return true, nil
}
