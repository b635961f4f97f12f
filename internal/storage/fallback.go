package storage

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"logdash/internal/models"
)

// FallbackSource consults a primary source and falls back to a secondary one
// whenever the primary fails or has no such log.
type FallbackSource struct {
	primary  TextSource
	fallback TextSource
	log      logrus.FieldLogger
}

// NewFallbackSource combines primary and fallback.
func NewFallbackSource(primary, fallback TextSource, log logrus.FieldLogger) *FallbackSource {
	return &FallbackSource{primary: primary, fallback: fallback, log: log}
}

// Fetch returns the primary text, or the fallback text when the primary fails.
func (s *FallbackSource) Fetch(ctx context.Context, name string) (string, error) {
	text, err := s.primary.Fetch(ctx, name)
	if err == nil {
		return text, nil
	}
	entry := s.log.WithField("log", name)
	if errors.Is(err, ErrNotFound) {
		entry.Debug("log missing from remote store, trying local")
	} else {
		entry.WithError(err).Warn("remote fetch failed, trying local")
	}
	return s.fallback.Fetch(ctx, name)
}

// List returns the primary listing, or the fallback listing when it fails.
func (s *FallbackSource) List(ctx context.Context) ([]models.LogFile, error) {
	files, err := s.primary.List(ctx)
	if err == nil {
		return files, nil
	}
	s.log.WithError(err).Warn("remote listing failed, using local logs")
	return s.fallback.List(ctx)
}
