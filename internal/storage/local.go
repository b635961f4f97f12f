package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"logdash/internal/models"
)

// LocalSource reads logs from a directory on disk.
type LocalSource struct {
	dir string
}

// NewLocalSource creates a source rooted at dir.
func NewLocalSource(dir string) *LocalSource {
	return &LocalSource{dir: dir}
}

// Dir returns the directory logs are read from.
func (s *LocalSource) Dir() string {
	return s.dir
}

// Fetch reads and decodes the named log file.
func (s *LocalSource) Fetch(_ context.Context, name string) (string, error) {
	if !validName(name) {
		return "", ErrNotFound
	}
	path := filepath.Join(s.dir, name)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("stat log %s: %w", name, err)
	}
	if info.IsDir() {
		return "", ErrNotFound
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read log %s: %w", name, err)
	}
	return DecodeText(data), nil
}

// List returns the *.log files in the directory, newest first.
func (s *LocalSource) List(_ context.Context) ([]models.LogFile, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read log directory: %w", err)
	}

	files := make([]models.LogFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isLogName(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("stat log %s: %w", entry.Name(), err)
		}
		files = append(files, models.LogFile{
			Name:       entry.Name(),
			ModifiedAt: info.ModTime().UTC(),
			Size:       info.Size(),
		})
	}
	sortNewestFirst(files)
	return files, nil
}
