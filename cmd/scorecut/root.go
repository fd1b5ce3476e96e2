package main

import (
	"github.com/spf13/cobra"

	"scorecut/internal/api"
	"scorecut/version"
)

var (
	cfgFile      string
	outputFormat string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "scorecut",
	Short: "Split multi-instrument sheet-music PDFs into individual parts",
	Long: `Scorecut analyzes a multi-instrument sheet-music PDF, identifies which
pages belong to which instrument part, and decides whether the decomposition
is trustworthy enough to cut automatically.

The pipeline includes:
  - Instrument header canonicalization with chair and transposition
  - Per-page labeling with confidence and noise smoothing
  - Contiguous segmentation into cutting instructions
  - A multi-gate validation engine gating auto-commit`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.scorecut/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "enable debug logging",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(splitCmd)
	rootCmd.AddCommand(initConfigCmd)
	rootCmd.AddCommand(promptsCmd)
}
