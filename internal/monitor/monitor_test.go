package monitor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"logdash/internal/models"
	"logdash/internal/storage"
	"logdash/internal/summary"
)

func newTestMonitor(t *testing.T) (*Monitor, string, *storage.HistoryStore) {
	t.Helper()
	logDir := t.TempDir()
	history, err := storage.NewHistoryStore(filepath.Join(t.TempDir(), "history.json"), 0)
	require.NoError(t, err)

	log, _ := logtest.NewNullLogger()
	svc := summary.NewService(storage.NewLocalSource(logDir))
	mon := New(time.Minute, 2, svc, history, log)
	mon.now = func() time.Time { return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC) }
	return mon, logDir, history
}

func TestRunOnceRecordsChangedRuns(t *testing.T) {
	mon, logDir, history := newTestMonitor(t)
	require.NoError(t, os.WriteFile(filepath.Join(logDir, "a.log"), []byte("TEST PASSED: A\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(logDir, "b.log"), []byte("TEST FAILED: B\n"), 0o644))

	appended, err := mon.RunOnce(context.Background())
	require.NoError(t, err)
	require.Len(t, appended, 2)
	require.Len(t, history.History(), 2)

	appended, err = mon.RunOnce(context.Background())
	require.NoError(t, err)
	require.Empty(t, appended)

	require.NoError(t, os.WriteFile(filepath.Join(logDir, "a.log"), []byte("TEST PASSED: A\nTEST FAILED: C\n"), 0o644))
	appended, err = mon.RunOnce(context.Background())
	require.NoError(t, err)
	require.Len(t, appended, 1)
	require.Equal(t, "a.log", appended[0].Log)
	require.Equal(t, 50, appended[0].SuccessRate)
	require.Equal(t, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), appended[0].RecordedAt)
	require.Len(t, history.History(), 3)
}

type failingSummarizer struct{}

func (failingSummarizer) List(context.Context) ([]models.LogFile, error) {
	return nil, errors.New("backend down")
}

func (failingSummarizer) Summary(context.Context, string) (models.RunSummary, error) {
	return models.RunSummary{}, nil
}

func TestRunOnceListFailure(t *testing.T) {
	_, _, history := newTestMonitor(t)
	log, _ := logtest.NewNullLogger()
	mon := New(time.Minute, 1, failingSummarizer{}, history, log)

	_, err := mon.RunOnce(context.Background())
	require.Error(t, err)
}

func TestStartStop(t *testing.T) {
	mon, logDir, history := newTestMonitor(t)
	require.NoError(t, os.WriteFile(filepath.Join(logDir, "a.log"), []byte("TEST PASSED: A\n"), 0o644))

	mon.Start()
	require.Eventually(t, func() bool {
		_, ok := history.Latest("a.log")
		return ok
	}, 5*time.Second, 10*time.Millisecond)
	mon.Stop()
	mon.Stop()
}
