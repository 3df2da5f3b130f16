package cli

import (
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/pstuifzand/rayday/internal/model"
	"github.com/pstuifzand/rayday/internal/output"
)

var (
	listAll    bool
	listDays   int
	listFormat string
	listFields string
)

var listCmd = &cobra.Command{
	Use:     "list [DATE]",
	Aliases: []string{"ls"},
	Short:   "List the events of a day",
	Long: `List the events of a day, or of several days with --days.

Overlapping events get a lane each; the lane, lanes and overlaps fields show
how the calendar lays them out.`,
	Example: `  rayday list
  rayday list 2023-07-18 --fields id,time,lane,lanes,description
  rayday list --all --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "List every event")
	listCmd.Flags().IntVarP(&listDays, "days", "n", 1, "Number of days to list")
	listCmd.Flags().StringVar(&listFormat, "format", "table", "Output format: table, fields, json, jsonl or yaml")
	listCmd.Flags().StringVar(&listFields, "fields", "", "Comma-separated fields: id,date,time,start,end,duration,description,lane,lanes,overlaps")
}

func runList(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormatFlag(listFormat)
	if err != nil {
		return err
	}
	fields, err := output.ParseFieldsFlag(listFields)
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	var events []model.Event
	if listAll {
		events, err = s.store.All()
	} else {
		var day time.Time
		if len(args) > 0 {
			day, err = parseDate(args[0])
		} else {
			day, err = parseDate("")
		}
		if err != nil {
			return err
		}
		events, err = s.store.Between(day, day.AddDate(0, 0, max(1, listDays)))
	}
	if err != nil {
		return err
	}

	return output.Write(cmd.OutOrStdout(), dayRows(events), format, fields)
}

// dayRows lays out every day of the sorted events separately and returns
// the rows in display order
func dayRows(events []model.Event) []output.Row {
	var rows []output.Row
	for len(events) > 0 {
		n := 1
		for n < len(events) && model.SameDay(events[n].Start, events[0].Start) {
			n++
		}
		rows = append(rows, layoutRows(events[:n])...)
		events = events[n:]
	}
	return rows
}

func layoutRows(events []model.Event) []output.Row {
	index, _ := model.IndexEvents(events)
	rows := make([]output.Row, 0, index.Len())
	for p := range index.All() {
		rows = append(rows, output.Row{
			Event:       p.Label,
			Lane:        p.Lane,
			Lanes:       index.OverlapDegree(),
			HasOverlaps: p.HasOverlaps,
		})
	}
	slices.SortStableFunc(rows, func(a, b output.Row) int { return model.Compare(a.Event, b.Event) })
	return rows
}
