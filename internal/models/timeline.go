package models

// TimelineEvent is a finished test or step observed in the log.
// Time is a formatted duration in seconds or "N/A"; Timestamp is HH:MM:SS.
type TimelineEvent struct {
	Step      string `json:"step"`
	Status    string `json:"status"`
	Time      string `json:"time"`
	Timestamp string `json:"timestamp"`
}
