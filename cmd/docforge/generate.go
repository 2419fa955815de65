// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docforge/internal/config"
	"github.com/pdiddy/docforge/internal/pipeline"
	"github.com/pdiddy/docforge/internal/produce"
	"github.com/pdiddy/docforge/internal/runlog"
	"github.com/pdiddy/docforge/pkg/types"
)

// runLogDir holds the run log database.
const runLogDir = ".docforge"

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the documentation site from the content plan",
	Long: `Generate runs the full pipeline: load the content plan, fetch and
validate the OpenAPI reference, compile the ordered job list, and write one
Markdown page per topic. Jobs run strictly in plan order; the first failure
aborts the run and pages written by earlier jobs stay on disk.

In restricted mode (--restricted or DOCFORGE_RESTRICTED=true) only the
plan's inclusion set is generated, for fast validation runs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, run, err := loadPlanAndRunConfig(cmd)
		if err != nil {
			return err
		}

		gen, err := produce.NewBackend(cfg.Global.Provider, run.APIKey)
		if err != nil {
			return err
		}

		opts := pipeline.Options{Generator: gen}
		noLog, _ := cmd.Flags().GetBool("no-log")
		if !noLog {
			store, err := runlog.Open(runLogDir)
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: run log disabled: %v\n", err)
			} else {
				defer store.Close()
				opts.Log = store
			}
		}

		summary, err := pipeline.Run(cmd.Context(), cfg, run, opts, os.Stderr)
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "Done: %d pages (%d generated, %d templated)\n",
			summary.Planned, summary.Generated, summary.Templated)
		return nil
	},
}

// loadPlanAndRunConfig loads the content plan and assembles the explicit
// per-run settings shared by the generate and plan commands.
func loadPlanAndRunConfig(cmd *cobra.Command) (*types.Configuration, types.RunConfig, error) {
	planPath, _ := cmd.Flags().GetString("plan")
	cfg, err := config.Load(planPath)
	if err != nil {
		return nil, types.RunConfig{}, err
	}

	restricted, _ := cmd.Flags().GetBool("restricted")
	if !restricted {
		restricted = viper.GetBool("restricted")
	}
	output, _ := cmd.Flags().GetString("output")

	run := types.RunConfig{
		Restricted:       restricted,
		RestrictedTopics: cfg.RestrictedTopics,
		APIKey:           resolveAPIKey(cfg.Global.Provider),
		OutputRoot:       output,
	}
	return cfg, run, nil
}

func init() {
	generateCmd.Flags().String("output", "docs", "root directory of the generated site tree")
	generateCmd.Flags().Bool("restricted", false, "generate only the restricted inclusion set")
	generateCmd.Flags().Bool("no-log", false, "skip recording the run in the run log")

	rootCmd.AddCommand(generateCmd)
}
