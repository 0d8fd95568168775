// Package cli provides the cobra command tree for lexqa.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lexqa/internal/core/ports/driven"
	"github.com/custodia-labs/lexqa/internal/core/ports/driving"
	"github.com/custodia-labs/lexqa/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services injected by main. Commands check for nil before use.
var (
	ingestService     driving.IngestService
	queryService      driving.QueryService
	validationService driving.ValidationService
	settingsService   driving.SettingsService
	llmService        driven.LLMService
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "lexqa",
	Short: "Ask questions about legal documents",
	Long: `lexqa ingests contracts and other legal documents, caches them by
content fingerprint, and answers questions using only the document text.

Supported formats: PDF, DOCX, TXT and common image formats (via tesseract).`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")
}

// Services holds the driving ports and the completion service the commands use.
type Services struct {
	Ingest     driving.IngestService
	Query      driving.QueryService
	Validation driving.ValidationService
	Settings   driving.SettingsService
	LLM        driven.LLMService
}

// SetServices injects the services used by the commands.
func SetServices(s Services) {
	ingestService = s.Ingest
	queryService = s.Query
	validationService = s.Validation
	settingsService = s.Settings
	llmService = s.LLM
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
