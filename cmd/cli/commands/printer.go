package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/jakechorley/guild-scheduler/internal/config"
	"github.com/jakechorley/guild-scheduler/pkg/core/allocator"
	"github.com/jakechorley/guild-scheduler/pkg/core/services"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
	bold   = color.New(color.Bold)
)

func success(w io.Writer, format string, a ...any) {
	green.Fprintf(w, "\n✓ "+format+"\n\n", a...)
}

func warning(w io.Writer, format string, a ...any) {
	yellow.Fprintf(w, "⚠️  "+format+"\n", a...)
}

// outcomeColor picks green for a fully filled schedule, yellow when slots are
// left over and red when the final state broke a check
func outcomeColor(outcome *allocator.Outcome) *color.Color {
	switch {
	case len(outcome.ValidationErrors) > 0:
		return red
	case outcome.Unfilled() > 0:
		return yellow
	default:
		return green
	}
}

func renderSchedule(w io.Writer, result *services.ScheduleResult) {
	bold.Fprintf(w, "%s\n", result.TabTitle)
	fmt.Fprintf(w, "Run ID:     %s\n", result.RunID)
	fmt.Fprintf(w, "Occurrence: %s\n", result.Occurrence.Format("2006-01-02 (Monday)"))
	fmt.Fprintf(w, "Signups:    %d opted in of %d responses, %d unique players\n",
		len(result.Projection.Rows), result.Projection.Responses, len(result.Pool))
	if len(result.Duplicates) > 0 {
		warning(w, "Duplicates: %s", strings.Join(result.Duplicates, ", "))
	}

	for _, outcome := range result.Outcomes {
		fmt.Fprintln(w)
		cyan.Fprintf(w, "%s\n", outcome.Strategy.Title)
		c := outcomeColor(outcome)
		if outcome.Considered != outcome.PoolSize {
			c.Fprintf(w, "  %d of %d assigned (%d in pool)\n", outcome.Assigned(), outcome.Considered, outcome.PoolSize)
		} else {
			c.Fprintf(w, "  %d of %d assigned\n", outcome.Assigned(), outcome.PoolSize)
		}
		c.Fprintf(w, "  %d of %d slots unfilled\n", outcome.Unfilled(), len(outcome.Slots))
		for _, verr := range outcome.ValidationErrors {
			red.Fprintf(w, "  ✗ %s %s: %s\n", verr.SlotLabel, verr.Check, verr.Description)
		}
	}
}

func renderDuplicates(w io.Writer, event string, duplicates []services.DuplicateSignup) {
	if len(duplicates) == 0 {
		green.Fprintf(w, "No duplicate signups for %s\n", event)
		return
	}

	yellow.Fprintf(w, "%d duplicate signups for %s:\n", len(duplicates), event)
	for _, dup := range duplicates {
		rows := make([]string, len(dup.Rows))
		for i, row := range dup.Rows {
			rows[i] = fmt.Sprintf("%d", row)
		}
		fmt.Fprintf(w, "  - %s (rows %s)\n", dup.Name, strings.Join(rows, ", "))
	}
}

func renderEvents(w io.Writer, events []config.Event) {
	fmt.Fprintf(w, "\nFound %d events:\n\n", len(events))
	for _, event := range events {
		fmt.Fprintf(w, "- %s: %s %s (%s) - %s\n", event.Name, event.Title, event.Day, event.Role, event.RRule)
	}
}

func renderHistory(w io.Writer, runs []services.RunRecord) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}

	for _, run := range runs {
		bold.Fprintf(w, "%s  %s", run.RunAt.Format("2006-01-02 15:04"), run.Event)
		fmt.Fprintf(w, "  (%s)\n", run.RunID)
		if run.Duplicates > 0 {
			warning(w, "%d duplicates", run.Duplicates)
		}
		for _, summary := range run.Strategies {
			line := fmt.Sprintf("  %-20s %d of %d assigned, %d unfilled",
				summary.Strategy, summary.Assigned, summary.Considered, summary.Unfilled)
			if summary.Recompute {
				line += " (recomputed)"
			}
			fmt.Fprintln(w, line)
		}
		fmt.Fprintln(w)
	}
}
