// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docforge/internal/plan"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Preview the compiled job list without generating anything",
	Long: `Plan compiles the content plan into the ordered job list and prints it:
one line per page with its identity and generation mode. No network calls
are made and nothing is written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, run, err := loadPlanAndRunConfig(cmd)
		if err != nil {
			return err
		}

		jobs := plan.Compile(cfg, run)
		for _, job := range jobs {
			fmt.Fprintf(os.Stdout, "%-9s %s\n", string(job.Mode), job.Identity)
		}
		fmt.Fprintf(os.Stderr, "%d jobs\n", len(jobs))
		return nil
	},
}

func init() {
	planCmd.Flags().String("output", "docs", "root directory of the generated site tree")
	planCmd.Flags().Bool("restricted", false, "compile only the restricted inclusion set")

	rootCmd.AddCommand(planCmd)
}
