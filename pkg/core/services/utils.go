package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/jakechorley/guild-scheduler/internal/config"
)

var (
	// ErrUnknownEvent is returned when a command names an event missing from the config
	ErrUnknownEvent = errors.New("unknown event")

	// ErrMissingColumn is returned when the responses table lacks a column an event reads
	ErrMissingColumn = errors.New("missing column in responses")

	// ErrInvalidSchedule is returned when a strategy produced an outcome that breaks the engine's guarantees
	ErrInvalidSchedule = errors.New("invalid schedule")
)

func lookupEvent(cfg *config.Config, name string) (*config.Event, error) {
	event, ok := cfg.Event(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEvent, name)
	}
	return event, nil
}

// NextOccurrence returns the first occurrence of the event on or after the day of now (UTC)
func NextOccurrence(event *config.Event, now time.Time) (time.Time, error) {
	rule, err := rrule.StrToRRule(event.RRule)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse rrule for event %s: %w", event.Name, err)
	}

	now = now.UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	rule.DTStart(dayStart)

	next := rule.After(dayStart, true)
	if next.IsZero() {
		return time.Time{}, fmt.Errorf("event %s has no upcoming occurrence", event.Name)
	}
	return next, nil
}

// ScheduleTabTitle names an event's schedule tab after the month it runs in, e.g. "Troops October 2026"
func ScheduleTabTitle(event *config.Event, occurrence time.Time) string {
	return fmt.Sprintf("%s %s", event.Title, occurrence.Format("January 2006"))
}

// LayoutTabTitle names the monthly layout tab, e.g. "Layout October 2026"
func LayoutTabTitle(month time.Time) string {
	return fmt.Sprintf("Layout %s", month.Format("January 2006"))
}
