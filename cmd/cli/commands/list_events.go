package commands

import (
	"os"

	"github.com/spf13/cobra"
)

// ListEventsCmd creates the listEvents command
func ListEventsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listEvents",
		Short: "List the configured events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderEvents(os.Stdout, app.Cfg.Events)
			return nil
		},
	}
}
