package main

import (
	"github.com/spf13/cobra"

	"scorecut/internal/api"
	"scorecut/internal/prompts"
	"scorecut/internal/prompts/pageread"
)

var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "List the embedded LLM prompts this build ships with",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := prompts.NewRegistry()
		pageread.RegisterPrompts(registry)
		return api.Output(registry.List())
	},
}
