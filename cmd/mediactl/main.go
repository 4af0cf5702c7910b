package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "mediactl",
		Short: "Media API CLI - manage website media from the command line",
		Long: `mediactl talks directly to the media storage backend and catalog configured
through the same environment variables as the media API server.

Examples:
  # Upload two images into a category and feature them
  mediactl upload --category hero-images --featured banner.png logo.webp

  # Browse the catalog
  mediactl list --category general --limit 20
  mediactl featured

  # Remove an asset and its stored object
  mediactl delete med_01HZX3...

  # Apply catalog migrations
  mediactl migrate`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&opts.json, "json", false, "Print results as JSON")
	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "Load environment variables from this file first")

	rootCmd.AddCommand(newUploadCmd(opts))
	rootCmd.AddCommand(newListCmd(opts))
	rootCmd.AddCommand(newFeaturedCmd(opts))
	rootCmd.AddCommand(newDeleteCmd(opts))
	rootCmd.AddCommand(newCategoriesCmd(opts))
	rootCmd.AddCommand(newMigrateCmd(opts))
	return rootCmd
}
