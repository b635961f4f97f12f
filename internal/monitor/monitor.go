package monitor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"logdash/internal/models"
	"logdash/internal/storage"
	"logdash/internal/summary"
)

const defaultParallelism = 4

// Summarizer lists logs and parses them into run summaries.
type Summarizer interface {
	List(ctx context.Context) ([]models.LogFile, error)
	Summary(ctx context.Context, name string) (models.RunSummary, error)
}

// History stores run records.
type History interface {
	Latest(log string) (models.RunRecord, bool)
	Append(record models.RunRecord) error
}

// Monitor periodically parses every available log and records runs that changed.
type Monitor struct {
	interval    time.Duration
	parallelism int
	summaries   Summarizer
	history     History
	log         logrus.FieldLogger
	now         func() time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

// New creates a monitor scanning every interval with at most parallelism
// concurrent parses.
func New(interval time.Duration, parallelism int, summaries Summarizer, history History, log logrus.FieldLogger) *Monitor {
	if interval < time.Second {
		interval = time.Minute
	}
	if parallelism <= 0 {
		parallelism = defaultParallelism
	}

	return &Monitor{
		interval:    interval,
		parallelism: parallelism,
		summaries:   summaries,
		history:     history,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}
}

// Start launches the scan loop in a goroutine.
func (m *Monitor) Start() {
	go m.run()
}

// Stop requests graceful loop termination and waits until it is done.
func (m *Monitor) Stop() {
	select {
	case <-m.doneCh:
		return
	default:
	}
	close(m.stopCh)
	<-m.doneCh
}

// RunOnce parses every log and appends a record for each run whose text changed
// since its last record. It returns the appended records.
func (m *Monitor) RunOnce(ctx context.Context) ([]models.RunRecord, error) {
	files, err := m.summaries.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}

	results := make([]*models.RunRecord, len(files))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(m.parallelism)
	for i, file := range files {
		i, name := i, file.Name
		group.Go(func() error {
			parsed, err := m.summaries.Summary(groupCtx, name)
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					return nil
				}
				if ctxErr := groupCtx.Err(); ctxErr != nil {
					return ctxErr
				}
				m.log.WithError(err).WithField("log", name).Warn("parse log failed")
				return nil
			}
			record := summary.Record(name, parsed)
			results[i] = &record
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	now := m.now()
	var appended []models.RunRecord
	for _, record := range results {
		if record == nil {
			continue
		}
		if last, ok := m.history.Latest(record.Log); ok && last.Fingerprint == record.Fingerprint {
			continue
		}
		record.RecordedAt = now
		if err := m.history.Append(*record); err != nil {
			return appended, fmt.Errorf("record run for %s: %w", record.Log, err)
		}
		appended = append(appended, *record)
	}
	if len(appended) > 0 {
		m.log.WithFields(logrus.Fields{
			"logs":     len(files),
			"recorded": len(appended),
		}).Info("recorded new runs")
	}
	return appended, nil
}

func (m *Monitor) run() {
	defer close(m.doneCh)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-m.stopCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	if _, err := m.RunOnce(ctx); err != nil {
		m.log.WithError(err).Warn("initial scan failed")
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := m.RunOnce(ctx); err != nil {
				m.log.WithError(err).Warn("scan failed")
			}
		case <-m.stopCh:
			return
		}
	}
}
