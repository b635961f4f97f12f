package models

import "time"

// RunRecord is a compact snapshot of a parsed run kept in the history store.
type RunRecord struct {
	Log         string    `json:"log"`
	RecordedAt  time.Time `json:"recorded_at"`
	Fingerprint string    `json:"fingerprint"`
	TotalTests  int       `json:"total_tests"`
	Passed      int       `json:"passed"`
	Failed      int       `json:"failed"`
	Partial     int       `json:"partial"`
	SuccessRate int       `json:"success_rate"`
	Duration    string    `json:"duration"`
	Placeholder bool      `json:"placeholder,omitempty"`
}
