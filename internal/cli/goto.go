package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pstuifzand/rayday/internal/model"
	"github.com/pstuifzand/rayday/internal/socket"
)

var gotoCmd = &cobra.Command{
	Use:   "goto [DATE]",
	Short: "Show a date in the running calendar",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runGoto,
}

func init() {
	rootCmd.AddCommand(gotoCmd)
}

func runGoto(cmd *cobra.Command, args []string) error {
	var date string
	if len(args) > 0 {
		date = args[0]
	}
	day, err := parseDate(date)
	if err != nil {
		return err
	}

	err = socket.Notify(socket.Message{Command: socket.CommandGoto, Date: day.Format(model.DateFormat)})
	if errors.Is(err, socket.ErrNoInstance) {
		return fmt.Errorf("the calendar is not running")
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Showing %s\n", day.Format(model.DateFormat))
	return nil
}
