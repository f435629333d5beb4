package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jakechorley/guild-scheduler/pkg/core/services"
)

// ImportResponsesCmd creates the importResponses command
func ImportResponsesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "importResponses",
		Short: "Copy the responses tab into the postgres signup archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Archive == nil {
				return fmt.Errorf("importResponses needs databaseURL or DATABASE_URL to be set")
			}

			result, err := services.ImportResponses(app.Ctx, app.SheetsClient, app.Archive, app.Cfg, app.Logger)
			if err != nil {
				return err
			}

			success(os.Stdout, "Imported %d responses", result.Rows)
			fmt.Printf("Import ID: %s\n\n", result.ImportID)
			return nil
		},
	}
}
