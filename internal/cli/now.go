package cli

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pstuifzand/rayday/internal/interval"
	"github.com/pstuifzand/rayday/internal/model"
	"github.com/pstuifzand/rayday/internal/storage"
)

var nowCmd = &cobra.Command{
	Use:   "now",
	Short: "Show the events happening now and the next one",
	Args:  cobra.NoArgs,
	RunE:  runNow,
}

func init() {
	rootCmd.AddCommand(nowCmd)
}

func runNow(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	t := now()
	events, err := storage.EventsOn(s.store, t)
	if err != nil {
		return err
	}
	index, _ := model.IndexEvents(events)

	out := cmd.OutOrStdout()
	current := index.At(t)
	if len(current) == 0 {
		fmt.Fprintln(out, "Nothing right now")
	}
	active := color.New(color.FgGreen, color.Bold)
	for _, entry := range current {
		active.Fprintf(out, "Now:  %s", entry.Label)
		fmt.Fprintf(out, " (%s)\n", humanize.RelTime(t, entry.End, "left", "ago"))
	}

	next, ok := nextEvent(index, t)
	if !ok {
		return nil
	}
	color.New(color.FgCyan).Fprintf(out, "Next: %s", next)
	fmt.Fprintf(out, " (%s)\n", humanize.RelTime(t, next.Start, "from now", "ago"))
	return nil
}

// nextEvent returns the first event of the day starting after t
func nextEvent(index *interval.Index[model.Event], t time.Time) (model.Event, bool) {
	for p := range index.All() {
		if p.Start.After(t) {
			return p.Label, true
		}
	}
	return model.Event{}, false
}
