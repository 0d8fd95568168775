package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lexqa/internal/adapters/driving/mcp"
	"github.com/custodia-labs/lexqa/internal/connectors/filesystem"
	"github.com/custodia-labs/lexqa/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can ingest
legal documents and ask questions about them.

By default, the server communicates over stdio using JSON-RPC.
Use --port to serve streamable HTTP instead.

Use --watch to ingest every supported file created or rewritten in a
directory while the server runs.

Examples:
  # Stdio mode (default)
  lexqa mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  lexqa mcp serve --port 8080

  # Ingest files dropped into ~/contracts
  lexqa mcp serve --watch ~/contracts

Client configuration:
  {
    "mcpServers": {
      "lexqa": {
        "command": "/path/to/lexqa",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().StringP("watch", "w", "", "directory to ingest files from")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	watchDir, err := cmd.Flags().GetString("watch")
	if err != nil {
		return fmt.Errorf("getting watch flag: %w", err)
	}

	ports := &mcp.Ports{
		Ingest:     ingestService,
		Query:      queryService,
		Validation: validationService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if watchDir != "" {
		if err := startWatcher(ctx, watchDir); err != nil {
			return err
		}
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		cmd.PrintErrf("MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}

// startWatcher ingests files appearing in dir until ctx is cancelled.
// Outcomes are logged; stdout belongs to the stdio transport.
func startWatcher(ctx context.Context, dir string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	watcher := filesystem.New(filesystem.ResolvePath(dir), ingestService)
	events, err := watcher.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	go func() {
		defer watcher.Close() //nolint:errcheck
		for ev := range events {
			if ev.Err != nil {
				logger.Warn("ingest %s: %v", ev.Path, ev.Err)
				continue
			}
			logger.Info("ingested %s as %s (%d chunks)",
				ev.Path, ev.Result.Fingerprint, ev.Result.ChunkCount)
		}
	}()

	logger.Info("watching %s", watcher.Root())
	return nil
}
