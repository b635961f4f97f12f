package metrics

import (
	"math"
	"sort"
	"time"

	"logdash/internal/models"
)

// LogStats summarises the recorded runs of a single log.
type LogStats struct {
	Log                string  `json:"log"`
	Runs               int     `json:"runs"`
	AverageSuccessRate float64 `json:"average_success_rate"`
	LastSuccessRate    int     `json:"last_success_rate"`
	LastTotalTests     int     `json:"last_total_tests"`
	Passed             int     `json:"passed"`
	Failed             int     `json:"failed"`
	Partial            int     `json:"partial"`
	LastUpdated        string  `json:"last_updated,omitempty"`
}

// ComputeLogStats aggregates run statistics per log from history records.
func ComputeLogStats(records []models.RunRecord) []LogStats {
	type acc struct {
		runs      int
		rateSum   int
		passed    int
		failed    int
		partial   int
		last      models.RunRecord
		lastTime  time.Time
		hasRecord bool
	}
	state := make(map[string]*acc)
	for _, record := range records {
		target := state[record.Log]
		if target == nil {
			target = &acc{}
			state[record.Log] = target
		}
		target.runs++
		target.rateSum += record.SuccessRate
		target.passed += record.Passed
		target.failed += record.Failed
		target.partial += record.Partial
		if !target.hasRecord || !record.RecordedAt.Before(target.lastTime) {
			target.last = record
			target.lastTime = record.RecordedAt
			target.hasRecord = true
		}
	}
	if len(state) == 0 {
		return nil
	}

	keys := make([]string, 0, len(state))
	for k := range state {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	results := make([]LogStats, 0, len(keys))
	for _, log := range keys {
		data := state[log]
		result := LogStats{
			Log:                log,
			Runs:               data.runs,
			AverageSuccessRate: round2(float64(data.rateSum) / float64(data.runs)),
			LastSuccessRate:    data.last.SuccessRate,
			LastTotalTests:     data.last.TotalTests,
			Passed:             data.passed,
			Failed:             data.failed,
			Partial:            data.partial,
		}
		if !data.lastTime.IsZero() {
			result.LastUpdated = data.lastTime.UTC().Format(time.RFC3339)
		}
		results = append(results, result)
	}
	return results
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
