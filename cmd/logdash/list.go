package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"logdash/internal/summary"
)

func newListCmd(state *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available logs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := summary.NewService(newSource(state.cfg, state.log))
			names, err := svc.Names(cmd.Context())
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
