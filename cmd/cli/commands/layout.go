package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jakechorley/guild-scheduler/pkg/core/services"
)

// LayoutCmd creates the layout command
func LayoutCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout [event...]",
		Short: "Publish this month's layout tab with direct message copy for every slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			tab, err := services.BuildLayout(app.SheetsClient, app.Cfg, app.Logger, services.LayoutOptions{
				Events: args,
				DryRun: dryRun,
			})
			if err != nil {
				return err
			}

			if dryRun {
				fmt.Printf("\nDry run, tab %q not published (%d rows)\n\n", tab.Title, len(tab.Values))
				return nil
			}
			success(os.Stdout, "Layout published to tab %q", tab.Title)
			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Build the layout without publishing it")

	return cmd
}
