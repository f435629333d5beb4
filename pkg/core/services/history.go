package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/guild-scheduler/pkg/db"
)

// RunRecord groups the strategy summaries of one scheduling run
type RunRecord struct {
	RunID      string
	RunAt      time.Time
	Event      string
	Duplicates int
	Strategies []db.RunSummary
}

// HistoryOptions filters the run history
type HistoryOptions struct {
	// Event limits the history to one event; empty means every event
	Event string

	// Limit keeps only the most recent runs; 0 means all
	Limit int
}

// ListRunHistory returns past runs, oldest first
func ListRunHistory(ctx context.Context, store db.RunSummaryStore, logger *zap.Logger, opts HistoryOptions) ([]RunRecord, error) {
	logger.Debug("Starting listRunHistory", zap.String("event", opts.Event), zap.Int("limit", opts.Limit))

	summaries, err := store.GetRunSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch run summaries: %w", err)
	}
	db.SortRunSummaries(summaries)

	var runs []RunRecord
	byID := make(map[string]int)
	for _, summary := range summaries {
		if opts.Event != "" && summary.Event != opts.Event {
			continue
		}

		idx, ok := byID[summary.RunID]
		if !ok {
			idx = len(runs)
			byID[summary.RunID] = idx
			runs = append(runs, RunRecord{
				RunID:      summary.RunID,
				RunAt:      summary.RunAt,
				Event:      summary.Event,
				Duplicates: summary.Duplicates,
			})
		}
		runs[idx].Strategies = append(runs[idx].Strategies, summary)
	}

	if opts.Limit > 0 && len(runs) > opts.Limit {
		runs = runs[len(runs)-opts.Limit:]
	}

	logger.Debug("ListRunHistory completed", zap.Int("runs", len(runs)))
	return runs, nil
}
