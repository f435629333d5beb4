package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jakechorley/guild-scheduler/pkg/core/services"
)

// HistoryCmd creates the history command
func HistoryCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded scheduling runs, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			event, _ := cmd.Flags().GetString("event")
			limit, _ := cmd.Flags().GetInt("limit")

			runs, err := services.ListRunHistory(app.Ctx, app.Store, app.Logger, services.HistoryOptions{
				Event: event,
				Limit: limit,
			})
			if err != nil {
				return err
			}

			renderHistory(os.Stdout, runs)
			return nil
		},
	}

	cmd.Flags().String("event", "", "Only show runs for this event")
	cmd.Flags().Int("limit", 10, "Number of most recent runs to show, 0 for all")

	return cmd
}
