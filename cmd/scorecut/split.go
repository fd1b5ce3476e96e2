package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scorecut/internal/api"
	"scorecut/internal/session"
	"scorecut/internal/splitter"
	"scorecut/internal/svcctx"
)

var (
	splitOutDir string
	splitForce  bool
)

var splitCmd = &cobra.Command{
	Use:   "split <pdf>",
	Short: "Analyze a PDF and cut it into per-part files",
	Long: `Split analyzes the PDF and, when the quality gate allows auto-commit,
cuts it into one file per instrument part. A gated document is left uncut
unless --force is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, sess, err := buildSession(cmd.Context())
		if err != nil {
			return err
		}

		outcome, err := sess.Run(ctx, args[0])
		if err != nil {
			return err
		}

		if outcome.State == session.StatePendingReview && !splitForce {
			if err := api.Output(outcome); err != nil {
				return err
			}
			return fmt.Errorf("document requires review; re-run with --force to cut anyway")
		}

		outDir := splitOutDir
		if outDir == "" {
			outDir = svcctx.ConfigManagerFrom(ctx).Get().Splitter.OutputDir
		}

		last := outcome.Passes[len(outcome.Passes)-1]
		results, err := splitter.Split(ctx, args[0], outDir, last.Segmentation.CuttingInstructions)
		if err != nil {
			return err
		}
		return api.Output(results)
	},
}

func init() {
	splitCmd.Flags().StringVar(&splitOutDir, "out", "", "output directory for part files")
	splitCmd.Flags().BoolVar(&splitForce, "force", false, "cut even when the quality gate fails")
}
