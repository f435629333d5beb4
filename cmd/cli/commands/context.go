package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/jakechorley/guild-scheduler/internal/config"
	"github.com/jakechorley/guild-scheduler/pkg/clients/formsclient"
	"github.com/jakechorley/guild-scheduler/pkg/clients/gmailclient"
	"github.com/jakechorley/guild-scheduler/pkg/clients/sheetsclient"
	"github.com/jakechorley/guild-scheduler/pkg/core/services"
	"github.com/jakechorley/guild-scheduler/pkg/db"
	"github.com/jakechorley/guild-scheduler/pkg/postgres"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg          *config.Config
	SheetsClient *sheetsclient.Client
	FormsClient  *formsclient.Client
	GmailClient  *gmailclient.Client

	// Store records run summaries, either the database sheet or postgres
	Store db.RunSummaryStore

	// Archive is nil unless a database URL is configured
	Archive *postgres.DB

	Logger *zap.Logger
	Ctx    context.Context
}

// ResponseSource returns the configured source of signup responses
func (app *AppContext) ResponseSource() (services.ResponseSource, error) {
	var sheets services.SheetResponseReader
	if app.SheetsClient != nil {
		sheets = app.SheetsClient
	}
	var forms services.FormResponseReader
	if app.FormsClient != nil {
		forms = app.FormsClient
	}
	var archive services.ArchivedResponseReader
	if app.Archive != nil {
		archive = app.Archive
	}
	return services.NewResponseSource(app.Cfg, sheets, forms, archive)
}
