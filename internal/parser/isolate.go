package parser

import "strings"

// Run holds the lines of the most recently started test suite.
type Run struct {
	Lines []string
	Text  string
}

// IsolateLastRun returns the lines from the last suite-start marker to the end of
// the text. Without a marker the whole text is kept.
func IsolateLastRun(text string) Run {
	lines := strings.Split(text, "\n")
	last := -1
	for i, line := range lines {
		if isSuiteStart(line) {
			last = i
		}
	}
	if last >= 0 {
		lines = lines[last:]
	}
	return Run{
		Lines: lines,
		Text:  strings.Join(lines, "\n"),
	}
}

func isSuiteStart(line string) bool {
	upper := strings.ToUpper(line)
	return strings.Contains(upper, "STARTING") &&
		strings.Contains(upper, "TEST") &&
		strings.Contains(upper, "SUITE")
}
