// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the docforge CLI, the documentation
// site generator: it compiles a declarative content plan into Markdown
// pages, delegating prose to a text-generation API and endpoint facts to an
// OpenAPI document.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docforge/internal/config"
	"github.com/pdiddy/docforge/internal/secrets"
	"github.com/pdiddy/docforge/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretKeyFiles maps a provider to its .secrets/ file name.
var secretKeyFiles = map[types.Provider]string{
	types.ProviderAnthropic: "anthropic-api-key",
	types.ProviderOpenAI:    "openai-api-key",
}

// resolveAPIKey picks the generation credential: the DOCFORGE_API_KEY
// environment variable wins, then the provider's .secrets/ file.
func resolveAPIKey(provider types.Provider) string {
	if v := viper.GetString("api_key"); v != "" {
		return v
	}
	return loadedSecrets[secretKeyFiles[provider]]
}

// rootCmd is the base command for the docforge CLI.
var rootCmd = &cobra.Command{
	Use:   "docforge",
	Short: "Generate a Markdown documentation site from a declarative content plan",
	Long: `docforge reads a YAML content plan describing documentation topics and
sections, fetches and validates the project's OpenAPI document, and writes
one Markdown page per topic. Pages marked ai-generated are written by a
text-generation API from a prompt composed of the plan's context and the
relevant endpoint summaries; the rest get deterministic outline templates.

Each stage is a subcommand: plan previews the compiled job list, validate
checks the content plan and OpenAPI reference, generate runs the pipeline,
and runs lists recent generation runs.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "settings file (default: ./docforge-settings.yaml or ~/.config/docforge/config.yaml)")
	rootCmd.PersistentFlags().String("plan", config.DefaultPath, "path to the content plan")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("docforge-settings")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "docforge"))
		}
	}

	viper.SetEnvPrefix("DOCFORGE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using settings file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
