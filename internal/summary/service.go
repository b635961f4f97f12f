// Package summary resolves log identifiers to parsed run summaries.
package summary

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"logdash/internal/models"
	"logdash/internal/parser"
	"logdash/internal/storage"
)

// Service parses logs fetched from a text source. It holds no state between calls.
type Service struct {
	source storage.TextSource
}

// NewService creates a service reading from source.
func NewService(source storage.TextSource) *Service {
	return &Service{source: source}
}

// Summary fetches and parses the named log. storage.ErrNotFound means no data.
func (s *Service) Summary(ctx context.Context, name string) (models.RunSummary, error) {
	text, err := s.source.Fetch(ctx, name)
	if err != nil {
		return models.RunSummary{}, err
	}
	return parser.Parse(text), nil
}

// List returns the logs available from the source, newest first.
func (s *Service) List(ctx context.Context) ([]models.LogFile, error) {
	return s.source.List(ctx)
}

// Names returns the identifiers of the available logs, newest first.
func (s *Service) Names(ctx context.Context) ([]string, error) {
	files, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name)
	}
	return names, nil
}

// Fingerprint identifies the run text a summary was built from.
func Fingerprint(summary models.RunSummary) string {
	sum := sha256.Sum256([]byte(summary.Logs))
	return hex.EncodeToString(sum[:])
}

// Record converts a summary into a history record.
func Record(log string, summary models.RunSummary) models.RunRecord {
	return models.RunRecord{
		Log:         log,
		Fingerprint: Fingerprint(summary),
		TotalTests:  summary.TotalTests,
		Passed:      summary.Passed,
		Failed:      summary.Failed,
		Partial:     summary.Partial,
		SuccessRate: summary.SuccessRate,
		Duration:    summary.Duration,
		Placeholder: summary.IsPlaceholder,
	}
}
