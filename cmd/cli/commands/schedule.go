package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jakechorley/guild-scheduler/pkg/core/services"
)

// ScheduleCmd creates the schedule command
func ScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule <event>",
		Short: "Assign the event's signups to half-hour slots and publish the schedule tab",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			recompute, _ := cmd.Flags().GetBool("recompute-scarcity")
			email, _ := cmd.Flags().GetBool("email")

			source, err := app.ResponseSource()
			if err != nil {
				return err
			}

			result, err := services.ScheduleEvent(
				app.Ctx,
				source,
				app.SheetsClient,
				app.Store,
				app.Cfg,
				app.Logger,
				services.ScheduleOptions{
					Event:             args[0],
					DryRun:            dryRun,
					RecomputeScarcity: recompute,
				},
			)
			if err != nil {
				return err
			}

			out := os.Stdout
			if result.Published {
				success(out, "Schedule published to tab %q", result.TabTitle)
			} else {
				fmt.Fprintf(out, "\nDry run, tab %q not published\n\n", result.TabTitle)
			}
			renderSchedule(out, result)

			if email {
				if err := services.SendRunSummary(app.GmailClient, app.Cfg, app.Logger, result); err != nil {
					return err
				}
				success(out, "Summary emailed to %s", app.Cfg.CoordinatorEmail)
			}

			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Build the schedule without publishing or recording it")
	cmd.Flags().Bool("recompute-scarcity", false, "Recompute slot scarcity after every assignment")
	cmd.Flags().Bool("email", false, "Email the run summary to the coordinator")

	return cmd
}
