package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pstuifzand/rayday/internal/model"
)

var rmCmd = &cobra.Command{
	Use:     "rm ID...",
	Aliases: []string{"delete"},
	Short:   "Remove events by ID",
	Long:    "Remove events by the IDs shown by list and find",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runRm,
}

func init() {
	rootCmd.AddCommand(rmCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid event ID %q", arg)
		}
		ids = append(ids, id)
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	for _, id := range ids {
		e, err := s.store.Get(id)
		if err != nil {
			return err
		}
		if err := s.store.Remove(id); err != nil {
			return fmt.Errorf("failed to remove event %d: %w", id, err)
		}
		notify(e.Start.Format(model.DateFormat))
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d: %s %s\n", id, e.Start.Format(model.DateFormat), e)
	}
	return nil
}
