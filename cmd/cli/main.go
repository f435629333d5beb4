package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/guild-scheduler/cmd/cli/commands"
	"github.com/jakechorley/guild-scheduler/internal/config"
	"github.com/jakechorley/guild-scheduler/pkg/clients/formsclient"
	"github.com/jakechorley/guild-scheduler/pkg/clients/gmailclient"
	"github.com/jakechorley/guild-scheduler/pkg/clients/sheetsclient"
	"github.com/jakechorley/guild-scheduler/pkg/db"
	"github.com/jakechorley/guild-scheduler/pkg/postgres"
	"github.com/jakechorley/guild-scheduler/pkg/utils/logging"
)

var (
	env     string
	verbose bool
	app     = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Guild Scheduler CLI - Assign event signups to half-hour slots",
		Long:  `A CLI tool for turning guild event signups into slot schedules, duplicate reports and monthly message layouts.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Archive != nil {
				app.Archive.Close()
			}
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to the console")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.ScheduleCmd(app))
	rootCmd.AddCommand(commands.DuplicatesCmd(app))
	rootCmd.AddCommand(commands.LayoutCmd(app))
	rootCmd.AddCommand(commands.ListEventsCmd(app))
	rootCmd.AddCommand(commands.HistoryCmd(app))
	rootCmd.AddCommand(commands.ImportResponsesCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, clients and the run summary store
func initApp() error {
	var err error
	app.Ctx = context.Background()

	// .env is optional, it only fills in DATABASE_URL and friends for local runs
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	app.Logger, _, err = logging.InitLoggerWithOptions(env, logging.Options{Verbose: verbose})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger := app.Logger

	logger.Info("Starting application", zap.String("environment", env))

	logger.Info("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Debug("Configuration loaded successfully", zap.Int("events", len(app.Cfg.Events)))

	logger.Info("Loading OAuth client configuration")
	oauthCfg, err := config.LoadOAuthClientWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load OAuth client config: %w", err)
	}

	logger.Info("Initializing sheets client")
	app.SheetsClient, err = sheetsclient.NewClient(app.Ctx, oauthCfg, env, logger)
	if err != nil {
		return fmt.Errorf("failed to create sheets client: %w", err)
	}

	// Forms and gmail reuse the token from the sheets client
	logger.Info("Initializing forms client")
	app.FormsClient, err = formsclient.NewClient(app.Ctx, oauthCfg, app.SheetsClient.Token())
	if err != nil {
		return fmt.Errorf("failed to create forms client: %w", err)
	}

	logger.Info("Initializing gmail client")
	app.GmailClient, err = gmailclient.NewClient(app.Ctx, oauthCfg, app.SheetsClient.Token(), app.Cfg.GmailUserID, app.Cfg.GmailSender)
	if err != nil {
		return fmt.Errorf("failed to create gmail client: %w", err)
	}

	if app.Cfg.DatabaseURL != "" {
		logger.Info("Connecting to postgres")
		app.Archive, err = postgres.Open(app.Ctx, app.Cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
	}

	if app.Cfg.SummaryStoreOrDefault() == config.StorePostgres {
		app.Store = app.Archive
	} else {
		logger.Info("Connecting to database sheet", zap.String("spreadsheet_id", app.Cfg.DatabaseSheetID))
		store, err := db.Open(app.SheetsClient, app.Cfg.DatabaseSheetID)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		app.Store = store
	}
	logger.Info("Run summary store ready", zap.String("store", app.Cfg.SummaryStoreOrDefault()))

	return nil
}
