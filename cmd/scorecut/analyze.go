package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"scorecut/internal/api"
	"scorecut/internal/config"
	"scorecut/internal/extract"
	"scorecut/internal/session"
	"scorecut/internal/svcctx"
	"scorecut/internal/vision"
)

var analyzeNoVision bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze <pdf>",
	Short: "Analyze a PDF into instrument parts and gate the result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, sess, err := buildSession(cmd.Context())
		if err != nil {
			return err
		}

		outcome, err := sess.Run(ctx, args[0])
		if err != nil {
			return err
		}
		return api.Output(outcome)
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(
		&analyzeNoVision, "no-vision", false, "skip the corrective vision pass even when configured",
	)
}

// buildSession wires the services context and a configured session.
func buildSession(ctx context.Context) (context.Context, *session.Session, error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cm, err := config.NewManager(cfgFile)
	if err != nil {
		return ctx, nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg := cm.Get()

	ctx = svcctx.WithServices(ctx, &svcctx.Services{
		Logger:        logger,
		ConfigManager: cm,
	})

	var corrective extract.Extractor
	if cfg.Vision.Enabled && !analyzeNoVision {
		corrective = vision.New(vision.Config{
			APIKey:     config.ResolveEnvVars(cfg.Vision.APIKey),
			Model:      cfg.Vision.Model,
			BaseURL:    cfg.Vision.BaseURL,
			RateLimit:  cfg.Vision.RateLimit,
			MaxRetries: cfg.Vision.MaxRetries,
		})
	}

	sess := session.New(extract.NewTextLayerExtractor(), corrective, session.Config{
		MaxPagesPerPart:     cfg.Analysis.MaxPagesPerPart,
		ConfidenceThreshold: cfg.Analysis.ConfidenceThreshold,
	})
	return ctx, sess, nil
}
