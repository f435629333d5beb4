package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jakechorley/guild-scheduler/pkg/core/services"
)

// DuplicatesCmd creates the duplicates command
func DuplicatesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "duplicates <event>",
		Short: "List players who opted in to the event more than once",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := app.ResponseSource()
			if err != nil {
				return err
			}

			duplicates, err := services.ReportDuplicates(app.Ctx, source, app.Cfg, app.Logger, args[0])
			if err != nil {
				return err
			}

			renderDuplicates(os.Stdout, args[0], duplicates)
			return nil
		},
	}
}
