// Package cmd wires the deploy and theme-lookup operations into a cobra
// CLI. Configuration resolution happens here: .env file, then SLATE_*
// environment variables, then Theme Kit config.yml defaults for anything
// still unset.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kilgore5/slate/config"
)

var (
	envName    string
	dotenvPath string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "slate",
	Short: "Sync local theme files to a Shopify storefront",
	Long: `Slate deploys local theme files to a Shopify storefront through the
Theme Kit binary and resolves theme metadata through the Admin API.

Credentials and store settings come from SLATE_* environment variables,
optionally seeded from a .env file and a Theme Kit config.yml.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&envName, "env", "e", "",
		"Theme Kit environment name (overrides SLATE_ENV)")
	rootCmd.PersistentFlags().StringVar(&dotenvPath, "dotenv", "",
		"path to a .env file (default \".env\")")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"path to a Theme Kit config.yml supplying defaults")
}

// Execute runs the root command. Errors are printed here, styled, so the
// entrypoint only has to set the exit status.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
	}
	return err
}

// loadConfig assembles the effective configuration for a command run.
func loadConfig() (*config.Config, error) {
	if err := config.LoadDotenv(dotenvPath); err != nil {
		return nil, err
	}
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	if envName != "" {
		cfg.Environment = envName
	}
	if configPath != "" {
		defaults, err := config.FromThemeKitFile(configPath, cfg.Environment)
		if err != nil {
			return nil, err
		}
		cfg.FillFrom(defaults)
	}
	return cfg, nil
}
