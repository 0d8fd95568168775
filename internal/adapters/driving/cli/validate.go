package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var validateJSON bool

var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Check whether a document is a legal document",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "output classification as JSON")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if validationService == nil {
		return errors.New("validation service not configured")
	}

	fp, err := resolveDocument(cmd, args[0])
	if err != nil {
		return err
	}

	c, err := validationService.Validate(cmd.Context(), fp)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if validateJSON {
		return printJSON(cmd, c)
	}

	verdict := "uncertain"
	switch {
	case c.Accepted():
		verdict = "legal document"
	case c.Rejected():
		verdict = "not a legal document"
	}

	cmd.Printf("Verdict:     %s\n", verdict)
	cmd.Printf("Type:        %s\n", c.DocumentType)
	cmd.Printf("Confidence:  %.0f%%\n", c.ConfidencePercent())
	if c.Explanation != "" {
		cmd.Printf("Explanation: %s\n", c.Explanation)
	}
	if len(c.Indicators) > 0 {
		cmd.Printf("Indicators:  %s\n", strings.Join(c.Indicators, ", "))
	}
	return nil
}
