package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lexqa/internal/core/domain"
)

var askCmd = &cobra.Command{
	Use:   "ask FILE QUESTION...",
	Short: "Ask a question about a document",
	Long: `Ingests the document and answers the question using only its text.

The cache lives only as long as the process, so FILE is always read from
disk. Fingerprints are accepted by the tools of 'lexqa mcp serve'.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	fp, err := resolveDocument(cmd, args[0])
	if err != nil {
		return err
	}

	question := strings.Join(args[1:], " ")
	answer, err := queryService.Ask(cmd.Context(), fp, question)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	cmd.Println(answer)
	return nil
}

// resolveDocument ingests the file at path and returns its fingerprint.
func resolveDocument(cmd *cobra.Command, path string) (domain.Fingerprint, error) {
	if ingestService == nil {
		return "", errors.New("ingest service not configured")
	}

	reqs, err := readRequests([]string{path})
	if err != nil {
		return "", err
	}

	result, err := ingestService.Ingest(cmd.Context(), reqs[0])
	if err != nil {
		return "", fmt.Errorf("ingest failed: %w", err)
	}
	return result.Fingerprint, nil
}
