package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/guild-scheduler/internal/config"
	"github.com/jakechorley/guild-scheduler/pkg/core/pool"
)

// DuplicateSignup is a name that signed up for an event more than once
type DuplicateSignup struct {
	Name string

	// Rows are the one-based rows of the schedule tab holding the name
	Rows []int
}

// ReportDuplicates lists the players who opted in to an event on more than one response
func ReportDuplicates(
	ctx context.Context,
	source ResponseSource,
	cfg *config.Config,
	logger *zap.Logger,
	eventName string,
) ([]DuplicateSignup, error) {
	logger.Debug("Starting reportDuplicates", zap.String("event", eventName))

	event, err := lookupEvent(cfg, eventName)
	if err != nil {
		return nil, err
	}

	table, err := source.ResponseTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch responses: %w", err)
	}

	projection, err := ProjectResponses(table, event)
	if err != nil {
		return nil, fmt.Errorf("failed to read responses for %s: %w", event.Name, err)
	}

	names := pool.FindDuplicates(projection.Rows)
	rowsByName := make(map[string][]int, len(names))
	for _, idx := range pool.DuplicateRows(projection.Rows) {
		name := projection.Rows[idx].Name
		rowsByName[name] = append(rowsByName[name], scheduleFirstRow+idx+1)
	}

	duplicates := make([]DuplicateSignup, len(names))
	for i, name := range names {
		duplicates[i] = DuplicateSignup{Name: name, Rows: rowsByName[name]}
	}

	logger.Debug("ReportDuplicates completed", zap.Int("duplicates", len(duplicates)))
	return duplicates, nil
}
