package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/pstuifzand/rayday/internal/output"
	"github.com/pstuifzand/rayday/internal/search"
)

var (
	findFormat string
	findFields string
)

var findCmd = &cobra.Command{
	Use:   "find QUERY...",
	Short: "Search all events",
	Long: `Search all events with the same query language as / in the calendar.

  standup            description contains "standup"
  ~stndp             fuzzy match on the description
  d:2023-07-18       on a day; d:>=2023-07-01 for ranges
  t:<12:00           starting before noon
  len:>=1h           lasting an hour or more
  a b | c  -d        and, or, not, with ( ) for grouping`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)
	findCmd.Flags().StringVar(&findFormat, "format", "table", "Output format: table, fields, json, jsonl or yaml")
	findCmd.Flags().StringVar(&findFields, "fields", "", "Comma-separated fields to show")
}

func runFind(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormatFlag(findFormat)
	if err != nil {
		return err
	}
	fields, err := output.ParseFieldsFlag(findFields)
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	all, err := s.store.All()
	if err != nil {
		return err
	}

	matches, err := search.EventsIn(strings.Join(args, " "), all, now().Location())
	if err != nil {
		return err
	}

	rows := make([]output.Row, len(matches))
	for i, e := range matches {
		rows[i] = output.Row{Event: e}
	}
	return output.Write(cmd.OutOrStdout(), rows, format, fields)
}
