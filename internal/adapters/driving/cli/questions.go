package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/lexqa/internal/core/domain"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List suggested questions",
	Run: func(cmd *cobra.Command, _ []string) {
		for i, q := range domain.SuggestedQuestions() {
			cmd.Printf("%2d. %s\n", i+1, q)
		}
	},
}

func init() {
	rootCmd.AddCommand(questionsCmd)
}
