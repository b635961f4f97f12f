package parser

import (
	"fmt"
	"regexp"
	"time"
)

var leadingTimestampPattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})`)

// ComputeSpan returns the elapsed whole seconds between the first and last
// timestamped lines as "<n>s". It is "0s" when no line starts with a timestamp
// and "N/A" when either boundary cannot be parsed.
func ComputeSpan(lines []string) string {
	var first, last string
	for _, line := range lines {
		m := leadingTimestampPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if first == "" {
			first = m[1]
		}
		last = m[1]
	}
	if first == "" {
		return "0s"
	}

	start, err := time.Parse(TimestampLayout, first)
	if err != nil {
		return unknownDuration
	}
	end, err := time.Parse(TimestampLayout, last)
	if err != nil {
		return unknownDuration
	}
	return fmt.Sprintf("%ds", int(end.Sub(start).Seconds()))
}
