// Package storage provides the text sources logs are read from and the
// on-disk run history.
package storage

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"strings"

	"logdash/internal/models"
)

// ErrNotFound is returned when a log has no backing text in a source.
var ErrNotFound = errors.New("log not found")

// LogSuffix selects which files or blobs are listed as logs.
const LogSuffix = ".log"

// TextSource fetches the full text of logs by identifier.
type TextSource interface {
	// Fetch returns the decoded text of the named log or ErrNotFound.
	Fetch(ctx context.Context, name string) (string, error)
	// List returns available logs, most recently modified first.
	List(ctx context.Context) ([]models.LogFile, error)
}

// validName rejects identifiers that would escape a flat log namespace.
func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	return filepath.Base(name) == name
}

func isLogName(name string) bool {
	return strings.HasSuffix(name, LogSuffix)
}

func sortNewestFirst(files []models.LogFile) {
	sort.SliceStable(files, func(i, j int) bool {
		if files[i].ModifiedAt.Equal(files[j].ModifiedAt) {
			return files[i].Name < files[j].Name
		}
		return files[i].ModifiedAt.After(files[j].ModifiedAt)
	})
}
