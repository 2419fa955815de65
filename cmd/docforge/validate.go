// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docforge/internal/apispec"
	"github.com/pdiddy/docforge/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the content plan and its OpenAPI reference",
	Long: `Validate loads the content plan, then fetches and structurally validates
the OpenAPI document it references, printing the document's title, version,
and endpoint count. Nothing is generated or written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		planPath, _ := cmd.Flags().GetString("plan")
		cfg, err := config.Load(planPath)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "content plan %s: OK\n", planPath)

		if cfg.Global.APISpecRef == "" {
			fmt.Fprintln(os.Stderr, "no api_spec_ref configured; skipping OpenAPI validation")
			return nil
		}

		idx, err := apispec.Fetch(cmd.Context(), cfg.Global.APISpecRef, nil)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "OpenAPI %s %s: OK (%d endpoints)\n", idx.Title, idx.Version, idx.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
