package models

import "time"

// Status values shared by checkpoints and timeline events.
const (
	StatusPassed  = "passed"
	StatusFailed  = "failed"
	StatusPartial = "partial"
)

// LogFile identifies a log available from a text source.
type LogFile struct {
	Name       string    `json:"name"`
	ModifiedAt time.Time `json:"modified_at"`
	Size       int64     `json:"size"`
}

// Checkpoint is a coarse, named test milestone reported on a single log line.
type Checkpoint struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Time   string `json:"time"`
}

// RunSummary is the normalized record extracted from the last run in a log.
// IsPlaceholder reports that the checkpoint or timeline sequence was filled
// with the illustrative default set because nothing was recognized.
type RunSummary struct {
	TotalTests    int             `json:"totalTests"`
	Passed        int             `json:"passed"`
	Failed        int             `json:"failed"`
	Partial       int             `json:"partial"`
	Duration      string          `json:"duration"`
	SuccessRate   int             `json:"successRate"`
	Checkpoints   []Checkpoint    `json:"checkpoints"`
	Timeline      []TimelineEvent `json:"timeline"`
	Logs          string          `json:"logs"`
	IsPlaceholder bool            `json:"isPlaceholder"`
}
