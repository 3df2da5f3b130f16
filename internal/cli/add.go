package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pstuifzand/rayday/internal/model"
	"github.com/pstuifzand/rayday/internal/storage"
)

var (
	addDate  string
	addStart string
	addEnd   string
)

var addCmd = &cobra.Command{
	Use:   "add DESCRIPTION...",
	Short: "Add an event",
	Long: `Add an event to a day and report the events it overlaps.

A running calendar is told to reload.`,
	Example: `  rayday add --start 09:00 --end 09:15 Standup
  rayday add --date 2023-07-18 --start 22:00 --end 24:00 Night shift`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addDate, "date", "d", "", "Day of the event, YYYY-MM-DD (default today)")
	addCmd.Flags().StringVarP(&addStart, "start", "s", "", "Start time, HH:MM")
	addCmd.Flags().StringVarP(&addEnd, "end", "e", "", "End time, HH:MM (24:00 for midnight)")
	addCmd.MarkFlagRequired("start")
	addCmd.MarkFlagRequired("end")
}

func runAdd(cmd *cobra.Command, args []string) error {
	day, err := parseDate(addDate)
	if err != nil {
		return err
	}

	e, err := model.ParseEvent(day.Format(model.DateFormat), addStart, addEnd, strings.Join(args, " "), day.Location())
	if err != nil {
		return err
	}
	iv, err := e.Interval()
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	existing, err := storage.EventsOn(s.store, day)
	if err != nil {
		return err
	}
	index, _ := model.IndexEvents(existing)
	overlaps := index.Overlapping(iv)

	if err := s.store.Add(&e); err != nil {
		return fmt.Errorf("failed to add event: %w", err)
	}
	notify(day.Format(model.DateFormat))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Added %d: %s %s\n", e.ID, e.Start.Format(model.DateFormat), e)
	if len(overlaps) > 0 {
		warn := color.New(color.FgYellow)
		warn.Fprintf(out, "Overlaps %d %s:\n", len(overlaps), plural(len(overlaps), "event", "events"))
		for _, o := range overlaps {
			warn.Fprintf(out, "  %d: %s\n", o.Label.ID, o.Label)
		}
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
