package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"logdash/internal/models"
)

const (
	// TimestampLayout is the wall-clock layout used by every supported log style.
	// Values are parsed without a zone, so durations assume no day rollover.
	TimestampLayout = "2006-01-02 15:04:05"

	unknownDuration = "N/A"
	inlineDuration  = "completed successfully in"
)

var (
	testStartPattern    = regexp.MustCompile(`(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}),\d+ \[INFO\] \[TEST START\] (.+?)$`)
	testEndTimedPattern = regexp.MustCompile(`(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}),\d+ \[INFO\] \[TEST (PASSED|FAILED)\] (.+?) completed successfully in ([\d.]+)s`)
	testEndPattern      = regexp.MustCompile(`(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}),\d+ \[INFO\] \[TEST (PASSED|FAILED)\] (.+?)$`)
)

type timelineKind int

const (
	kindTestStart timelineKind = iota + 1
	kindTestEndTimed
	kindTestEnd
)

// timelineMatch is the typed result of a single line matcher.
type timelineMatch struct {
	kind     timelineKind
	stamp    string
	name     string
	status   string
	duration string
}

type timelineMatcher func(line string) (timelineMatch, bool)

// timelineMatchers are tried in order; the first hit wins for a line.
var timelineMatchers = []timelineMatcher{
	matchTestStart,
	matchTestEndTimed,
	matchTestEnd,
}

// ScanTimeline extracts finished tests in the order they appear. Start markers
// are remembered so that end markers without an inline duration can be timed.
func ScanTimeline(lines []string) []models.TimelineEvent {
	var events []models.TimelineEvent
	starts := make(map[string]time.Time)

	for _, line := range lines {
		m, ok := matchTimelineLine(line)
		if !ok {
			continue
		}
		switch m.kind {
		case kindTestStart:
			if ts, err := time.Parse(TimestampLayout, m.stamp); err == nil {
				starts[m.name] = ts
			}
		case kindTestEndTimed:
			events = append(events, models.TimelineEvent{
				Step:      m.name,
				Status:    m.status,
				Time:      formatInlineDuration(m.duration),
				Timestamp: clockTime(m.stamp),
			})
		case kindTestEnd:
			events = append(events, models.TimelineEvent{
				Step:      m.name,
				Status:    m.status,
				Time:      elapsedSince(starts, m.name, m.stamp),
				Timestamp: clockTime(m.stamp),
			})
		}
	}
	return events
}

func matchTimelineLine(line string) (timelineMatch, bool) {
	for _, match := range timelineMatchers {
		if m, ok := match(line); ok {
			return m, true
		}
	}
	return timelineMatch{}, false
}

func matchTestStart(line string) (timelineMatch, bool) {
	m := testStartPattern.FindStringSubmatch(line)
	if m == nil {
		return timelineMatch{}, false
	}
	return timelineMatch{kind: kindTestStart, stamp: m[1], name: m[2]}, true
}

func matchTestEndTimed(line string) (timelineMatch, bool) {
	m := testEndTimedPattern.FindStringSubmatch(line)
	if m == nil {
		return timelineMatch{}, false
	}
	return timelineMatch{
		kind:     kindTestEndTimed,
		stamp:    m[1],
		status:   endStatus(m[2]),
		name:     m[3],
		duration: m[4],
	}, true
}

func matchTestEnd(line string) (timelineMatch, bool) {
	// Lines carrying an inline duration belong to matchTestEndTimed only.
	if strings.Contains(line, inlineDuration) {
		return timelineMatch{}, false
	}
	m := testEndPattern.FindStringSubmatch(line)
	if m == nil {
		return timelineMatch{}, false
	}
	return timelineMatch{
		kind:   kindTestEnd,
		stamp:  m[1],
		status: endStatus(m[2]),
		name:   m[3],
	}, true
}

func endStatus(keyword string) string {
	if keyword == "PASSED" {
		return models.StatusPassed
	}
	return models.StatusFailed
}

func formatInlineDuration(raw string) string {
	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return unknownDuration
	}
	return fmt.Sprintf("%.2fs", seconds)
}

func elapsedSince(starts map[string]time.Time, name, stamp string) string {
	start, ok := starts[name]
	if !ok {
		return unknownDuration
	}
	end, err := time.Parse(TimestampLayout, stamp)
	if err != nil {
		return unknownDuration
	}
	return fmt.Sprintf("%.1fs", end.Sub(start).Seconds())
}

// clockTime returns the HH:MM:SS part of a "YYYY-MM-DD HH:MM:SS" stamp.
func clockTime(stamp string) string {
	_, clock, found := strings.Cut(stamp, " ")
	if !found {
		return stamp
	}
	return clock
}
