package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

type contextKey string

// Context key for configuration
const ConfigKey contextKey = "config"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "techprofile",
	Short: "Source-tree technology profiler",
	Long: `Techprofile reads a project's source files and builds a technology
profile: languages, frameworks, databases, an architecture classification,
a complexity score and a per-aspect breakdown.

Results can be rendered as text, JSON or YAML, exported to a local directory
or an S3-compatible bucket, indexed for retrieval, and queried through an
optional language model.`,
	Version:           Version,
	SilenceUsage:      true,
	PersistentPreRunE: loadAppConfig,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output format (text, json, yaml)")
	rootCmd.PersistentFlags().String("config", "", "config file (default ./.techprofile.yaml, then $HOME/.techprofile.yaml)")
}
