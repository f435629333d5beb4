package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/guild-scheduler/internal/config"
	"github.com/jakechorley/guild-scheduler/pkg/clients/sheetsclient"
	"github.com/jakechorley/guild-scheduler/pkg/core/allocator"
	"github.com/jakechorley/guild-scheduler/pkg/core/availability"
	"github.com/jakechorley/guild-scheduler/pkg/core/model"
	"github.com/jakechorley/guild-scheduler/pkg/core/pool"
	"github.com/jakechorley/guild-scheduler/pkg/db"
)

// TabPublisher writes a built tab to a spreadsheet
type TabPublisher interface {
	PublishTab(spreadsheetID string, tab *sheetsclient.Tab) error
}

// ScheduleOptions controls a scheduling run
type ScheduleOptions struct {
	Event string

	// DryRun builds the schedule without publishing it or recording the run
	DryRun bool

	// RecomputeScarcity forces scarcity recomputation on, on top of the config setting
	RecomputeScarcity bool

	Now time.Time
}

// ScheduleResult is the outcome of scheduling one event
type ScheduleResult struct {
	RunID      string
	Event      *config.Event
	Occurrence time.Time
	TabTitle   string

	Projection *Projection
	Pool       []model.Candidate
	Duplicates []string
	Outcomes   []*allocator.Outcome
	Summaries  []db.RunSummary

	Tab       *sheetsclient.Tab
	Published bool
}

// ScheduleEvent runs every strategy over the event's signups, publishes the
// schedule tab and records a summary per strategy
func ScheduleEvent(
	ctx context.Context,
	source ResponseSource,
	publisher TabPublisher,
	store db.RunSummaryStore,
	cfg *config.Config,
	logger *zap.Logger,
	opts ScheduleOptions,
) (*ScheduleResult, error) {
	logger.Debug("Starting scheduleEvent",
		zap.String("event", opts.Event),
		zap.Bool("dry_run", opts.DryRun))

	event, err := lookupEvent(cfg, opts.Event)
	if err != nil {
		return nil, err
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	occurrence, err := NextOccurrence(event, now)
	if err != nil {
		return nil, err
	}

	table, err := source.ResponseTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch responses: %w", err)
	}
	logger.Debug("Fetched responses", zap.Int("rows", len(table)))

	projection, err := ProjectResponses(table, event)
	if err != nil {
		return nil, fmt.Errorf("failed to read responses for %s: %w", event.Name, err)
	}
	logger.Debug("Projected responses",
		zap.Int("responses", projection.Responses),
		zap.Int("opted_in", len(projection.Rows)))

	candidates := pool.Build(projection.Rows)
	duplicates := pool.FindDuplicates(projection.Rows)
	if len(duplicates) > 0 {
		logger.Warn("Duplicate signups found", zap.Strings("names", duplicates))
	}

	strategies := allocator.WithRecomputeScarcity(
		allocator.DefaultStrategies(event.ContributionLabel, cfg.SpeedupCap),
		cfg.RecomputeScarcity || opts.RecomputeScarcity,
	)
	outcomes := allocator.RunAll(candidates, availability.Universe(), strategies)

	for _, outcome := range outcomes {
		if len(outcome.ValidationErrors) > 0 {
			for _, verr := range outcome.ValidationErrors {
				logger.Error("Schedule validation failed",
					zap.String("strategy", outcome.Strategy.Key),
					zap.String("check", verr.Check),
					zap.String("slot", verr.SlotLabel),
					zap.String("description", verr.Description))
			}
			return nil, fmt.Errorf("%w: strategy %s: %s", ErrInvalidSchedule,
				outcome.Strategy.Key, outcome.ValidationErrors[0].Description)
		}
		logger.Debug("Strategy complete",
			zap.String("strategy", outcome.Strategy.Key),
			zap.Int("assigned", outcome.Assigned()),
			zap.Int("considered", outcome.Considered),
			zap.Int("unfilled", outcome.Unfilled()))
	}

	title := ScheduleTabTitle(event, occurrence)
	runID := uuid.NewString()
	result := &ScheduleResult{
		RunID:      runID,
		Event:      event,
		Occurrence: occurrence,
		TabTitle:   title,
		Projection: projection,
		Pool:       candidates,
		Duplicates: duplicates,
		Outcomes:   outcomes,
		Summaries:  Summarise(runID, now, event.Name, outcomes, len(duplicates)),
		Tab: BuildScheduleTab(ScheduleTabInput{
			Title:         title,
			Event:         event,
			Projection:    projection,
			Outcomes:      outcomes,
			DuplicateRows: pool.DuplicateRows(projection.Rows),
		}),
	}

	if opts.DryRun {
		logger.Info("Dry run, schedule not published", zap.String("tab", title))
		return result, nil
	}

	if err := publisher.PublishTab(cfg.ScheduleSheetID, result.Tab); err != nil {
		return nil, fmt.Errorf("failed to publish schedule: %w", err)
	}
	result.Published = true
	logger.Info("Schedule published", zap.String("tab", title))

	if store != nil {
		if err := store.InsertRunSummaries(result.Summaries); err != nil {
			return nil, fmt.Errorf("failed to record run summary: %w", err)
		}
		logger.Debug("Run summary recorded", zap.String("run_id", runID))
	}

	return result, nil
}
