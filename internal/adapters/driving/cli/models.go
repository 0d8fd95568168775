package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lexqa/internal/core/ports/driven"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List models available from the LLM provider",
	Long: `Lists the models served by the configured LLM provider. When the
provider cannot list models, the configured model chain is shown instead.`,
	RunE: runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func runModels(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if lister, ok := llmService.(driven.ModelLister); ok {
		models, err := lister.ListModels(cmd.Context())
		if err == nil && len(models) > 0 {
			cmd.Printf("Models from %s:\n", settings.LLM.Provider.Description())
			for _, m := range models {
				cmd.Printf("  %s\n", m)
			}
			return nil
		}
		if err != nil {
			cmd.Printf("Could not list models: %v\n", err)
		}
	}

	cmd.Println("Configured models:")
	for i, m := range settings.LLM.ModelChain() {
		marker := " "
		if i == 0 {
			marker = "*"
		}
		cmd.Printf("%s %s\n", marker, m)
	}
	return nil
}
