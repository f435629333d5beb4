package services

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/guild-scheduler/internal/config"
	"github.com/jakechorley/guild-scheduler/pkg/clients/sheetsclient"
	"github.com/jakechorley/guild-scheduler/pkg/core/availability"
)

// Layout tab geometry: each event gets a block of five columns between grey
// border columns, with the slots starting below the group and column headers
const (
	layoutGroupRow   = 1
	layoutHeaderRow  = 2
	layoutFirstRow   = 3
	layoutBlockWidth = 6
	layoutBorderPx   = 44
)

// RegistrationNote follows the slot time in every direct message
const RegistrationNote = "I will register you so you just need to show up on time. " +
	"I will put you in before reset so check your schedule. " +
	"If you can't show up, just don't do anything. " +
	"If you cancel your schedule, everyone else will be messed up."

// SlotMessage is the direct message telling a player their slot for an event
func SlotMessage(event *config.Event, slot availability.Slot) string {
	return fmt.Sprintf("Your %s time for %s on %s will be UTC %s-%s\n%s",
		event.Role, event.MessageActivity(), event.Day, slot.Padded(), slot.End(), RegistrationNote)
}

// BuildLayoutTab lays out the month's message sheet: per event, the slot
// start times, tick boxes for "scheduled in game" and "sent message", and the
// message to copy to each player
func BuildLayoutTab(events []config.Event, month time.Time) *sheetsclient.Tab {
	universe := availability.Universe()
	lastRow := layoutFirstRow + len(universe)
	width := layoutBlockWidth*len(events) + 1

	values := make([][]interface{}, lastRow+1)
	for i := range values {
		values[i] = make([]interface{}, width)
		for j := range values[i] {
			values[i][j] = ""
		}
	}

	tab := &sheetsclient.Tab{
		Title:        LayoutTabTitle(month),
		Values:       values,
		BoldRows:     []int{layoutGroupRow, layoutHeaderRow},
		FrozenRows:   layoutFirstRow,
		ColumnWidths: map[int]int64{},
	}

	for i := range events {
		event := &events[i]
		start := layoutBlockWidth*i + 1

		values[layoutGroupRow][start] = strings.ToUpper(event.Title + " " + event.Day)
		group := sheetsclient.Range{Row: layoutGroupRow, Col: start, Cols: layoutBlockWidth - 1}
		tab.Merges = append(tab.Merges, group)
		tab.Highlights = append(tab.Highlights, sheetsclient.Highlight{Range: group, Color: sheetsclient.ColorPeach})

		values[layoutHeaderRow][start] = StartTimeHeader
		values[layoutHeaderRow][start+2] = "Scheduled in game?"
		values[layoutHeaderRow][start+3] = "Sent private message?"
		values[layoutHeaderRow][start+4] = "Message Copy"

		for s, slot := range universe {
			row := layoutFirstRow + s
			values[row][start] = slot.Padded()
			values[row][start+4] = SlotMessage(event, slot)
		}

		tab.Checkboxes = append(tab.Checkboxes, sheetsclient.Range{
			Row: layoutFirstRow, Col: start + 2, Rows: len(universe), Cols: 2,
		})
	}

	for col := 0; col < width; col += layoutBlockWidth {
		tab.Highlights = append(tab.Highlights, sheetsclient.Highlight{
			Range: sheetsclient.Range{Row: 0, Col: col, Rows: lastRow + 1},
			Color: sheetsclient.ColorBorder,
		})
		tab.ColumnWidths[col] = layoutBorderPx
	}
	for _, row := range []int{0, lastRow} {
		tab.Highlights = append(tab.Highlights, sheetsclient.Highlight{
			Range: sheetsclient.Range{Row: row, Col: 0, Cols: width},
			Color: sheetsclient.ColorBorder,
		})
	}

	return tab
}

// LayoutOptions controls which events the layout covers
type LayoutOptions struct {
	// Events limits the layout to the named events; empty means all configured events
	Events []string
	DryRun bool
	Now    time.Time
}

// BuildLayout builds the month's layout tab and publishes it to the schedule spreadsheet
func BuildLayout(publisher TabPublisher, cfg *config.Config, logger *zap.Logger, opts LayoutOptions) (*sheetsclient.Tab, error) {
	logger.Debug("Starting buildLayout", zap.Strings("events", opts.Events))

	events := cfg.Events
	if len(opts.Events) > 0 {
		events = make([]config.Event, 0, len(opts.Events))
		for _, name := range opts.Events {
			event, err := lookupEvent(cfg, name)
			if err != nil {
				return nil, err
			}
			events = append(events, *event)
		}
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	tab := BuildLayoutTab(events, now)
	if opts.DryRun {
		logger.Info("Dry run, layout not published", zap.String("tab", tab.Title))
		return tab, nil
	}

	if err := publisher.PublishTab(cfg.ScheduleSheetID, tab); err != nil {
		return nil, fmt.Errorf("failed to publish layout: %w", err)
	}

	logger.Info("Layout published", zap.String("tab", tab.Title), zap.Int("events", len(events)))
	return tab, nil
}
