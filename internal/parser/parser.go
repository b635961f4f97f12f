// Package parser extracts run summaries from free-text automation-test logs.
package parser

import "logdash/internal/models"

// DefaultTotalTests is reported when no status line was recognized.
const DefaultTotalTests = 4

// Parse summarizes the most recent test-suite run found in text. It never fails;
// unrecognized input yields the illustrative default checkpoints and timeline
// with IsPlaceholder set.
func Parse(text string) models.RunSummary {
	run := IsolateLastRun(text)
	checkpoints := ScanCheckpoints(run.Lines)
	timeline := ScanTimeline(run.Lines)

	total := checkpoints.Total()
	if total == 0 {
		if len(checkpoints.Checkpoints) > 0 {
			total = len(checkpoints.Checkpoints)
		} else {
			total = DefaultTotalTests
		}
	}

	summary := models.RunSummary{
		TotalTests:  total,
		Passed:      checkpoints.Passed,
		Failed:      checkpoints.Failed,
		Partial:     checkpoints.Partial,
		Duration:    ComputeSpan(run.Lines),
		SuccessRate: successRate(checkpoints.Passed, total),
		Checkpoints: checkpoints.Checkpoints,
		Timeline:    timeline,
		Logs:        run.Text,
	}
	if len(summary.Checkpoints) == 0 {
		summary.Checkpoints = DefaultCheckpoints()
		summary.IsPlaceholder = true
	}
	if len(summary.Timeline) == 0 {
		summary.Timeline = DefaultTimeline()
		summary.IsPlaceholder = true
	}
	return summary
}

// successRate truncates the float percentage, so 3 of 4 is 75 and 29 of 100 is 28.
func successRate(passed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(float64(passed) / float64(total) * 100)
}

// DefaultCheckpoints returns a fresh copy of the placeholder checkpoint set.
func DefaultCheckpoints() []models.Checkpoint {
	return []models.Checkpoint{
		{Name: "List Creation", Status: models.StatusPassed, Time: "2s"},
		{Name: "List Rename", Status: models.StatusPassed, Time: "3s"},
		{Name: "Add Tasks", Status: models.StatusPassed, Time: "6s"},
		{Name: "Duplicate List", Status: models.StatusPartial, Time: "5s"},
	}
}

// DefaultTimeline returns a fresh copy of the placeholder timeline.
func DefaultTimeline() []models.TimelineEvent {
	return []models.TimelineEvent{
		{Step: "Connect to App", Status: models.StatusPassed, Time: "1.4s", Timestamp: "14:35:52"},
		{Step: "Create New List", Status: models.StatusPassed, Time: "1.1s", Timestamp: "14:35:53"},
		{Step: "Rename List", Status: models.StatusPassed, Time: "2.9s", Timestamp: "14:35:56"},
		{Step: "Add First Task", Status: models.StatusPassed, Time: "2.7s", Timestamp: "14:35:59"},
	}
}
