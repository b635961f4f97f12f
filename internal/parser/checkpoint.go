package parser

import (
	"regexp"
	"strings"

	"logdash/internal/models"
)

// checkpointTime is reported for every checkpoint; checkpoint lines carry no duration.
const checkpointTime = "0s"

var (
	checkpointNamePattern = regexp.MustCompile(`TEST CHECKPOINT: (.+?) -`)
	statusNamePattern     = regexp.MustCompile(`TEST (?:PASSED|FAILED): (.+?)$`)
)

// CheckpointResult carries the checkpoints found in a run and the status counters.
// Counters include status lines whose name could not be extracted.
type CheckpointResult struct {
	Checkpoints []models.Checkpoint
	Passed      int
	Failed      int
	Partial     int
}

// Total is the number of classified status lines.
func (r CheckpointResult) Total() int {
	return r.Passed + r.Failed + r.Partial
}

// ScanCheckpoints classifies every checkpoint or test status line in order.
func ScanCheckpoints(lines []string) CheckpointResult {
	var result CheckpointResult
	for _, line := range lines {
		if !isCheckpointCandidate(line) {
			continue
		}
		status, ok := classifyCheckpoint(line)
		if !ok {
			continue
		}
		switch status {
		case models.StatusPassed:
			result.Passed++
		case models.StatusFailed:
			result.Failed++
		case models.StatusPartial:
			result.Partial++
		}

		name, ok := checkpointName(line)
		if !ok {
			continue
		}
		result.Checkpoints = append(result.Checkpoints, models.Checkpoint{
			Name:   name,
			Status: status,
			Time:   checkpointTime,
		})
	}
	return result
}

func isCheckpointCandidate(line string) bool {
	return strings.Contains(line, "TEST CHECKPOINT") ||
		strings.Contains(line, "TEST PASSED") ||
		strings.Contains(line, "TEST FAILED")
}

func classifyCheckpoint(line string) (string, bool) {
	partial := strings.Contains(line, "PARTIALLY") || strings.Contains(line, "PARTIAL")
	switch {
	case strings.Contains(line, "PASSED") && !partial:
		return models.StatusPassed, true
	case strings.Contains(line, "FAILED"):
		return models.StatusFailed, true
	case partial:
		return models.StatusPartial, true
	default:
		return "", false
	}
}

func checkpointName(line string) (string, bool) {
	if m := checkpointNamePattern.FindStringSubmatch(line); m != nil {
		return m[1], true
	}
	if m := statusNamePattern.FindStringSubmatch(line); m != nil {
		return m[1], true
	}
	return "", false
}
