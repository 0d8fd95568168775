package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lexqa/internal/connectors/filesystem"
	"github.com/custodia-labs/lexqa/internal/core/domain"
	"github.com/custodia-labs/lexqa/internal/core/ports/driving"
)

var ingestJSON bool

var ingestCmd = &cobra.Command{
	Use:   "ingest FILE...",
	Short: "Ingest documents into the cache",
	Long: `Extracts, chunks and caches documents and prints a summary with the
document fingerprint.

The cache is held in memory and is gone when the command exits. Use
'lexqa ask FILE' or 'lexqa chat FILE' to query a file directly, or keep
documents cached across requests with 'lexqa mcp serve'.

Several files are combined into one document. A file that is confidently
not a legal document rejects the whole batch.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVar(&ingestJSON, "json", false, "output result as JSON")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	reqs, err := readRequests(args)
	if err != nil {
		return err
	}

	if len(reqs) == 1 {
		result, err := ingestService.Ingest(cmd.Context(), reqs[0])
		if err != nil {
			return fmt.Errorf("ingest failed: %w", err)
		}
		if ingestJSON {
			return printJSON(cmd, result)
		}
		printIngestResult(cmd, reqs[0].Name, result)
		return nil
	}

	batch, err := ingestService.IngestMany(cmd.Context(), reqs)
	if err != nil {
		var notLegal *domain.NotLegalDocumentError
		if errors.As(err, &notLegal) {
			cmd.Printf("%s: %s\n", notLegal.FileName, notLegal.Classification.Explanation)
		}
		return fmt.Errorf("ingest failed: %w", err)
	}
	if ingestJSON {
		return printJSON(cmd, batch)
	}

	printIngestResult(cmd, fmt.Sprintf("%d documents", len(batch.Documents)), &batch.IngestResult)
	for _, name := range batch.Documents {
		cmd.Printf("  + %s\n", name)
	}
	for _, name := range batch.Skipped {
		cmd.Printf("  - %s (no readable text)\n", name)
	}
	return nil
}

func printIngestResult(cmd *cobra.Command, name string, result *driving.IngestResult) {
	if result.AlreadyCached {
		cmd.Printf("%s already cached\n", name)
	} else {
		cmd.Printf("Ingested %s\n", name)
	}
	cmd.Printf("  Fingerprint: %s\n", result.Fingerprint)
	cmd.Printf("  Chunks:      %d\n", result.ChunkCount)
	if result.TextLength > 0 {
		cmd.Printf("  Characters:  %d\n", result.TextLength)
	}
	if result.Truncated {
		cmd.Println("  Note: document exceeded the chunk limit; the tail was not indexed.")
	}
	if result.Refined {
		cmd.Println("  Chunks were simplified for answering.")
	}
}

// readRequests reads each path into an ingest request.
func readRequests(paths []string) ([]driving.IngestRequest, error) {
	reqs := make([]driving.IngestRequest, 0, len(paths))
	for _, p := range paths {
		req, err := filesystem.ReadRequest(p)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
