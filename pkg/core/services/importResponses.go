package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/guild-scheduler/internal/config"
)

// ResponseArchiver stores a copy of the responses table
type ResponseArchiver interface {
	InsertResponses(ctx context.Context, table [][]string) (string, error)
}

// ImportResult describes an archived copy of the responses
type ImportResult struct {
	ImportID string
	Rows     int
}

// ImportResponses copies the responses tab into the signup archive so later
// runs can read it with source: postgres
func ImportResponses(
	ctx context.Context,
	reader SheetResponseReader,
	archive ResponseArchiver,
	cfg *config.Config,
	logger *zap.Logger,
) (*ImportResult, error) {
	logger.Debug("Starting importResponses", zap.String("tab", cfg.ResponsesTab))

	table, err := reader.GetResponseTable(cfg.ResponsesSheetID, cfg.ResponsesTab)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch responses: %w", err)
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("responses tab %s is empty", cfg.ResponsesTab)
	}

	importID, err := archive.InsertResponses(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("failed to archive responses: %w", err)
	}

	logger.Info("Responses imported",
		zap.String("import_id", importID),
		zap.Int("responses", len(table)-1))

	return &ImportResult{ImportID: importID, Rows: len(table) - 1}, nil
}
