// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docforge/internal/runlog"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent generation runs",
	Long: `Runs prints recent generation runs from the local run log: when each run
started, its mode, how many jobs were planned and completed, and its final
status.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := runlog.Open(runLogDir)
		if err != nil {
			return err
		}
		defer store.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		runs, err := store.Recent(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(os.Stderr, "no recorded runs")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSTARTED\tMODE\tJOBS\tSTATUS")
		for _, r := range runs {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d/%d\t%s\n",
				r.ID, r.StartedAt.Local().Format("2006-01-02 15:04:05"),
				r.Mode, r.Completed, r.Planned, r.Status)
		}
		return w.Flush()
	},
}

func init() {
	runsCmd.Flags().Int("limit", 10, "maximum number of runs to list")

	rootCmd.AddCommand(runsCmd)
}
