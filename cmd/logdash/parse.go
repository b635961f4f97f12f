package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"logdash/internal/models"
	"logdash/internal/parser"
	"logdash/internal/storage"
)

func newParseCmd(_ *app) *cobra.Command {
	var withoutLogs bool

	cmd := &cobra.Command{
		Use:   "parse <file>...",
		Short: "Print run summaries for log files as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summaries := make(map[string]models.RunSummary, len(args))
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				summary := parser.Parse(storage.DecodeText(data))
				if withoutLogs {
					summary.Logs = ""
				}
				summaries[filepath.Base(path)] = summary
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			if len(args) == 1 {
				return enc.Encode(summaries[filepath.Base(args[0])])
			}
			return enc.Encode(summaries)
		},
	}

	cmd.Flags().BoolVar(&withoutLogs, "no-logs", false, "omit the raw run text from the output")
	return cmd
}
