package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/guild-scheduler/internal/config"
	"github.com/jakechorley/guild-scheduler/pkg/core/allocator"
	"github.com/jakechorley/guild-scheduler/pkg/db"
)

// Mailer sends plain text email
type Mailer interface {
	SendEmail(to, subject, body string) error
}

// Summarise records one row per strategy outcome of a run
func Summarise(runID string, runAt time.Time, event string, outcomes []*allocator.Outcome, duplicates int) []db.RunSummary {
	summaries := make([]db.RunSummary, len(outcomes))
	for i, outcome := range outcomes {
		summaries[i] = db.RunSummary{
			ID:         uuid.NewString(),
			RunID:      runID,
			RunAt:      runAt.UTC(),
			Event:      event,
			Strategy:   outcome.Strategy.Key,
			PoolSize:   outcome.PoolSize,
			Considered: outcome.Considered,
			Assigned:   outcome.Assigned(),
			Unfilled:   outcome.Unfilled(),
			Duplicates: duplicates,
			Recompute:  outcome.Strategy.RecomputeScarcity,
		}
	}
	return summaries
}

// FormatRunSummary renders a schedule result as plain text, one line per strategy
func FormatRunSummary(result *ScheduleResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", result.TabTitle)
	fmt.Fprintf(&b, "%d opted in, %d unique players\n", len(result.Projection.Rows), len(result.Pool))
	if len(result.Duplicates) > 0 {
		fmt.Fprintf(&b, "Duplicates: %s\n", strings.Join(result.Duplicates, ", "))
	}

	for _, outcome := range result.Outcomes {
		fmt.Fprintf(&b, "\n%s\n", outcome.Strategy.Title)
		if outcome.Considered != outcome.PoolSize {
			fmt.Fprintf(&b, "  %d of %d assigned (%d in pool)\n",
				outcome.Assigned(), outcome.Considered, outcome.PoolSize)
		} else {
			fmt.Fprintf(&b, "  %d of %d assigned\n", outcome.Assigned(), outcome.PoolSize)
		}
		fmt.Fprintf(&b, "  %d of %d slots unfilled\n", outcome.Unfilled(), len(outcome.Slots))
	}

	return b.String()
}

// SendRunSummary emails the run summary to the coordinator
func SendRunSummary(mailer Mailer, cfg *config.Config, logger *zap.Logger, result *ScheduleResult) error {
	if cfg.CoordinatorEmail == "" {
		return fmt.Errorf("coordinatorEmail is not configured")
	}

	subject := fmt.Sprintf("%s schedule", result.TabTitle)
	logger.Debug("Sending run summary",
		zap.String("to", cfg.CoordinatorEmail),
		zap.String("subject", subject))

	if err := mailer.SendEmail(cfg.CoordinatorEmail, subject, FormatRunSummary(result)); err != nil {
		return fmt.Errorf("failed to send run summary: %w", err)
	}

	logger.Info("Run summary sent", zap.String("to", cfg.CoordinatorEmail))
	return nil
}
