package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeSpan(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{
			name:  "no timestamps",
			lines: []string{"starting", "done"},
			want:  "0s",
		},
		{
			name: "first and last",
			lines: []string{
				"header",
				"2024-01-01 10:00:00,900 [INFO] begin",
				"  2024-01-01 10:30:00,000 indented lines do not count",
				"2024-01-01 10:01:05,100 [INFO] end",
				"trailer",
			},
			want: "65s",
		},
		{
			name:  "single timestamp",
			lines: []string{"2024-01-01 10:00:00 only"},
			want:  "0s",
		},
		{
			name: "malformed boundary",
			lines: []string{
				"2024-01-01 10:00:00 begin",
				"2024-01-01 99:00:00 end",
			},
			want: "N/A",
		},
		{
			name: "day rollover is not adjusted",
			lines: []string{
				"2024-01-01 23:59:50 begin",
				"2024-01-01 00:00:10 end",
			},
			want: "-86380s",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ComputeSpan(tt.lines))
		})
	}
}
