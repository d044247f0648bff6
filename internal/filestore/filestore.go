// Package filestore is the file-storage facade for banner images: save on
// upload, delete-by-path during the orphan sweep. Backed by afero so tests
// can run against an in-memory filesystem.
package filestore

import (
	"fmt"
	"io"
	"log/slog"
	"path"

	"github.com/spf13/afero"
)

type Store struct {
	fs     afero.Fs
	logger *slog.Logger
}

// New creates a store rooted at dir on the OS filesystem. Paths handed back
// from Save and accepted by Delete are relative to that root.
func New(dir string, logger *slog.Logger) *Store {
	return &Store{
		fs:     afero.NewBasePathFs(afero.NewOsFs(), dir),
		logger: logger,
	}
}

// NewWithFs creates a store over an arbitrary filesystem.
func NewWithFs(fs afero.Fs, logger *slog.Logger) *Store {
	return &Store{
		fs:     fs,
		logger: logger,
	}
}

// Save writes the reader's content under name and returns the stored path.
func (s *Store) Save(name string, r io.Reader) (string, error) {
	dir := path.Dir(name)
	if dir != "." && dir != "/" {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	f, err := s.fs.Create(name)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", name, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write file %s: %w", name, err)
	}

	s.logger.Debug("File stored", slog.String("path", name))

	return name, nil
}

// Delete removes the file at the given stored path.
func (s *Store) Delete(p string) error {
	if err := s.fs.Remove(p); err != nil {
		return fmt.Errorf("failed to delete file %s: %w", p, err)
	}

	s.logger.Debug("File deleted", slog.String("path", p))

	return nil
}

// Exists reports whether a stored path is present.
func (s *Store) Exists(p string) (bool, error) {
	return afero.Exists(s.fs, p)
}
