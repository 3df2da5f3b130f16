package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pstuifzand/rayday/internal/export"
	"github.com/pstuifzand/rayday/internal/model"
)

var (
	exportFrom string
	exportDays int
)

var exportCmd = &cobra.Command{
	Use:   "export [FILE]",
	Short: "Export events as a markdown agenda",
	Long: `Export events as a markdown agenda with a heading per day. Without FILE the
agenda is written to standard output. Without --from every event is exported.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "First day to export, YYYY-MM-DD")
	exportCmd.Flags().IntVarP(&exportDays, "days", "n", 7, "Number of days to export with --from")
}

func runExport(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	var events []model.Event
	if exportFrom == "" {
		events, err = s.store.All()
	} else {
		day, perr := parseDate(exportFrom)
		if perr != nil {
			return perr
		}
		events, err = s.store.Between(day, day.AddDate(0, 0, max(1, exportDays)))
	}
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return export.WriteMarkdown(cmd.OutOrStdout(), events)
	}
	if err := export.ExportToMarkdown(events, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d %s to %s\n", len(events), plural(len(events), "event", "events"), args[0])
	return nil
}
