package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	import_parser "github.com/pstuifzand/rayday/internal/import"
)

var importFormat string

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Add the events of an agenda file",
	Long: `Add the events of an agenda file.

Markdown agendas (.md) have a "# YYYY-MM-DD" heading per day and a
"- HH:MM-HH:MM description" bullet per event, as written by export. Other
files list a date on an unindented line and the day's events indented below
it. Nothing is added when any line is invalid.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVar(&importFormat, "format", "auto", "File format: auto, markdown or indented")
}

func runImport(cmd *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	format := import_parser.ImportFormat(importFormat)
	if format == import_parser.FormatAuto {
		format = import_parser.DetectFormat(args[0])
	}

	events, err := import_parser.ImportFile(string(content), format, now().Location())
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	for i := range events {
		if err := s.store.Add(&events[i]); err != nil {
			return fmt.Errorf("failed to add %s: %w", events[i], err)
		}
	}
	if len(events) > 0 {
		notify("")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d %s from %s\n", len(events), plural(len(events), "event", "events"), args[0])
	return nil
}
