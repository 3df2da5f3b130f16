package cli

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/pstuifzand/rayday/internal/diff"
	"github.com/pstuifzand/rayday/internal/storage"
)

var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List the backups of the events file",
	Long: `List the backups of the events file, newest first.

A JSON store copies the file into the backups directory before every change
and keeps as many copies as the "backups" config setting allows.`,
	Args: cobra.NoArgs,
	RunE: runBackups,
}

var backupsDiffCmd = &cobra.Command{
	Use:   "diff NAME",
	Short: "Show what restoring a backup would change",
	Args:  cobra.ExactArgs(1),
	RunE:  runBackupsDiff,
}

var restoreCmd = &cobra.Command{
	Use:   "restore NAME",
	Short: "Replace the events with a backup",
	Long:  "Replace the events with a backup. The current events are backed up first.",
	Args:  cobra.ExactArgs(1),
	RunE:  runRestore,
}

func init() {
	rootCmd.AddCommand(backupsCmd)
	rootCmd.AddCommand(restoreCmd)
	backupsCmd.AddCommand(backupsDiffCmd)
}

var errNoBackups = errors.New("backups are only kept for the json storage with backups > 0")

func openBackups() (*session, error) {
	s, err := openSession()
	if err != nil {
		return nil, err
	}
	if s.backups == nil {
		s.Close()
		return nil, errNoBackups
	}
	return s, nil
}

func runBackups(cmd *cobra.Command, args []string) error {
	s, err := openBackups()
	if err != nil {
		return err
	}
	defer s.Close()

	backups, err := s.backups.List()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(backups) == 0 {
		fmt.Fprintf(out, "No backups in %s\n", s.backups.Dir())
		return nil
	}
	slices.Reverse(backups)

	current, err := s.store.All()
	if err != nil {
		return err
	}

	t := now()
	tbl := table.NewWriter()
	tbl.SetOutputMirror(out)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.DrawBorder = false
	tbl.AppendHeader(table.Row{"Name", "Created", "Events", "Restoring changes"})

	for _, b := range backups {
		created := humanize.RelTime(b.Timestamp, t, "ago", "from now")
		events, err := b.Events()
		if err != nil {
			tbl.AppendRow(table.Row{b.Name(), created, "-", "unreadable"})
			continue
		}
		result := diff.ComputeDiff(current, events)
		changes := "none"
		if !result.IsEmpty() {
			changes = fmt.Sprintf("+%d ~%d -%d", len(result.NewEvents), len(result.ModifiedEvents), len(result.DeletedEvents))
		}
		tbl.AppendRow(table.Row{b.Name(), created, len(events), changes})
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d backups", len(backups))})
	tbl.Render()
	return nil
}

func runBackupsDiff(cmd *cobra.Command, args []string) error {
	s, err := openBackups()
	if err != nil {
		return err
	}
	defer s.Close()

	b, err := s.backups.Find(args[0])
	if err != nil {
		return err
	}
	backupEvents, err := b.Events()
	if err != nil {
		return err
	}
	current, err := s.store.All()
	if err != nil {
		return err
	}

	writeDiff(cmd.OutOrStdout(), diff.BuildDiffLines(diff.ComputeDiff(current, backupEvents)))
	return nil
}

// writeDiff prints diff lines colored by kind
func writeDiff(w io.Writer, lines []diff.DiffLine) {
	for _, line := range lines {
		text := diff.FormatLine(line)
		switch line.Type {
		case diff.DiffTypeNewSection, diff.DiffTypeDeletedSection, diff.DiffTypeModifiedSection:
			color.New(color.Bold).Fprintln(w, text)
		case diff.DiffTypeNewEvent:
			color.New(color.FgGreen).Fprintln(w, text)
		case diff.DiffTypeDeletedEvent:
			color.New(color.FgRed).Fprintln(w, text)
		case diff.DiffTypeModifiedEvent, diff.DiffTypeEventDetail:
			color.New(color.FgYellow).Fprintln(w, text)
		default:
			fmt.Fprintln(w, strings.TrimRight(text, " "))
		}
	}
}

func runRestore(cmd *cobra.Command, args []string) error {
	s, err := openBackups()
	if err != nil {
		return err
	}
	defer s.Close()

	b, err := s.backups.Find(args[0])
	if err != nil {
		return err
	}

	js, ok := s.store.(*storage.JSONStore)
	if !ok {
		return errNoBackups
	}
	if err := js.Restore(b); err != nil {
		return err
	}
	notify("")

	fmt.Fprintf(cmd.OutOrStdout(), "Restored %s\n", b.Name())
	return nil
}
