package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"logdash/internal/models"
)

func TestScanTimelineInlineDuration(t *testing.T) {
	events := ScanTimeline([]string{
		"2024-01-01 10:00:00,123 [INFO] [TEST PASSED] LoginTest completed successfully in 3.50s",
	})

	require.Equal(t, []models.TimelineEvent{
		{Step: "LoginTest", Status: models.StatusPassed, Time: "3.50s", Timestamp: "10:00:00"},
	}, events)
}

func TestScanTimelineStartEndPair(t *testing.T) {
	events := ScanTimeline([]string{
		"2024-01-01 10:00:00,500 [INFO] [TEST START] LoginTest",
		"2024-01-01 10:00:03,000 [INFO] Step 1: Open the app...",
		"2024-01-01 10:00:07,999 [INFO] [TEST FAILED] LoginTest",
	})

	require.Equal(t, []models.TimelineEvent{
		{Step: "LoginTest", Status: models.StatusFailed, Time: "7.0s", Timestamp: "10:00:07"},
	}, events)
}

func TestScanTimelineEndWithoutStart(t *testing.T) {
	events := ScanTimeline([]string{
		"2024-01-01 10:00:07,000 [INFO] [TEST PASSED] OrphanTest",
	})

	require.Len(t, events, 1)
	require.Equal(t, "N/A", events[0].Time)
	require.Equal(t, models.StatusPassed, events[0].Status)
}

func TestScanTimelineInlineGuard(t *testing.T) {
	events := ScanTimeline([]string{
		"2024-01-01 10:00:00,000 [INFO] [TEST START] LoginTest",
		"2024-01-01 10:00:05,000 [INFO] [TEST PASSED] LoginTest completed successfully in soon",
	})

	require.Empty(t, events)
}

func TestScanTimelineMalformedTimestamps(t *testing.T) {
	events := ScanTimeline([]string{
		"2024-13-01 10:00:00,000 [INFO] [TEST START] BadStart",
		"2024-01-01 10:00:05,000 [INFO] [TEST PASSED] BadStart",
		"2024-01-01 10:00:00,000 [INFO] [TEST START] BadEnd",
		"2024-01-01 25:00:05,000 [INFO] [TEST FAILED] BadEnd",
	})

	require.Len(t, events, 2)
	require.Equal(t, "N/A", events[0].Time)
	require.Equal(t, "N/A", events[1].Time)
	require.Equal(t, "25:00:05", events[1].Timestamp)
}

func TestScanTimelineRestartUsesLatestStart(t *testing.T) {
	events := ScanTimeline([]string{
		"2024-01-01 10:00:00,000 [INFO] [TEST START] Retry",
		"2024-01-01 10:00:10,000 [INFO] [TEST START] Retry",
		"2024-01-01 10:00:12,000 [INFO] [TEST PASSED] Retry",
	})

	require.Len(t, events, 1)
	require.Equal(t, "2.0s", events[0].Time)
}

func TestScanTimelineIgnoresOtherLevels(t *testing.T) {
	events := ScanTimeline([]string{
		"2024-01-01 10:00:00,000 [ERROR] [TEST FAILED] LoginTest",
		"[TEST PASSED] LoginTest",
	})

	require.Empty(t, events)
}

func TestScanTimelineKeepsLogOrder(t *testing.T) {
	events := ScanTimeline([]string{
		"2024-01-01 10:00:09,000 [INFO] [TEST PASSED] Later completed successfully in 1s",
		"2024-01-01 10:00:01,000 [INFO] [TEST PASSED] Earlier completed successfully in 2s",
	})

	require.Equal(t, "Later", events[0].Step)
	require.Equal(t, "1.00s", events[0].Time)
	require.Equal(t, "Earlier", events[1].Step)
}
