package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/lexqa/internal/adapters/driving/tui"
)

// isTerminal reports whether stdout is a terminal. Replaced in tests.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

var chatCmd = &cobra.Command{
	Use:   "chat FILE",
	Short: "Ask questions about a document interactively",
	Long: `Ingests the document and opens an interactive terminal UI for asking
repeated questions about it.

Controls:
  Enter   - Ask the typed question
  Tab     - Pick a suggested question
  Ctrl+L  - Check whether the document is a legal document
  ↑/↓     - Scroll the transcript
  F1      - Toggle help
  Ctrl+C  - Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	if queryService == nil {
		return errors.New("query service not configured")
	}
	if !isTerminal() {
		return errors.New("chat requires a terminal; use 'lexqa ask' instead")
	}

	fp, err := resolveDocument(cmd, args[0])
	if err != nil {
		return err
	}

	ports := tui.NewPorts(queryService, fp, filepath.Base(args[0]))
	ports.Validation = validationService

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
