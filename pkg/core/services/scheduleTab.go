package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jakechorley/guild-scheduler/internal/config"
	"github.com/jakechorley/guild-scheduler/pkg/clients/sheetsclient"
	"github.com/jakechorley/guild-scheduler/pkg/core/allocator"
	"github.com/jakechorley/guild-scheduler/pkg/core/availability"
	"github.com/jakechorley/guild-scheduler/pkg/core/model"
)

// Schedule tab layout: a title row, one legend row per strategy, the header
// row, then one row per candidate alongside one row per slot
const (
	scheduleHeaderRow = 5
	scheduleFirstRow  = 6
)

const (
	CleanedAvailabilityHeader = "Cleaned availability"
	StartTimeHeader           = "Start Time (UTC)"
	DuplicateLegend           = "DUPLICATE players are highlighted in grey"
)

type highlightStyle struct {
	color string
	name  string
}

var reasonStyles = map[allocator.Reason]highlightStyle{
	allocator.ReasonScarcityRank:        {sheetsclient.ColorRed, "red"},
	allocator.ReasonLimitedAvailability: {sheetsclient.ColorYellow, "yellow"},
	allocator.ReasonNoSlotMatch:         {sheetsclient.ColorGreen, "green"},
	allocator.ReasonSpeedupCapExcluded:  {sheetsclient.ColorPurple, "purple"},
}

func styleFor(reason allocator.Reason) highlightStyle {
	if style, ok := reasonStyles[reason]; ok {
		return style
	}
	return highlightStyle{sheetsclient.ColorRed, "red"}
}

// ScheduleTabInput is everything the schedule tab shows for one event
type ScheduleTabInput struct {
	Title         string
	Event         *config.Event
	Projection    *Projection
	Outcomes      []*allocator.Outcome
	DuplicateRows []int
}

// BuildScheduleTab lays out an event's candidates and the result of every strategy.
//
// Unfilled slots and the names of unassigned candidates are highlighted in the
// strategy's colour. Rows of duplicated names are greyed out last so the
// duplicate marker wins over any strategy highlight.
func BuildScheduleTab(in ScheduleTabInput) *sheetsclient.Tab {
	universe := availability.Universe()
	candidateCols := len(in.Projection.Headers)
	cleanedCol := candidateCols
	timeCol := candidateCols + 1
	firstStrategyCol := candidateCols + 2
	width := firstStrategyCol + len(in.Outcomes)

	dataRows := max(len(in.Projection.Rows), len(universe))
	values := make([][]interface{}, scheduleFirstRow+dataRows)
	for i := range values {
		values[i] = make([]interface{}, width)
		for j := range values[i] {
			values[i][j] = ""
		}
	}

	tab := &sheetsclient.Tab{
		Title:      in.Title,
		Values:     values,
		BoldRows:   []int{0, scheduleHeaderRow},
		FrozenRows: scheduleFirstRow,
	}

	values[0][0] = in.Title
	values[0][2] = in.Event.Day
	values[0][3] = in.Event.Role
	values[0][5] = DuplicateLegend
	tab.Highlights = append(tab.Highlights, sheetsclient.Highlight{
		Range: sheetsclient.Cell(0, 5),
		Color: sheetsclient.ColorGrey,
	})

	for i, outcome := range in.Outcomes {
		style := styleFor(outcome.Strategy.UnassignedReason)
		legendRow := 1 + i
		if legendRow < scheduleHeaderRow {
			values[legendRow][0] = legendText(outcome.Strategy, style)
			tab.Highlights = append(tab.Highlights, sheetsclient.Highlight{
				Range: sheetsclient.Cell(legendRow, 0),
				Color: style.color,
			})
		}
		tab.Highlights = append(tab.Highlights, sheetsclient.Highlight{
			Range: sheetsclient.Cell(scheduleHeaderRow, firstStrategyCol+i),
			Color: style.color,
		})
	}

	header := values[scheduleHeaderRow]
	for i, title := range in.Projection.Headers {
		header[i] = title
	}
	header[cleanedCol] = CleanedAvailabilityHeader
	header[timeCol] = StartTimeHeader
	for i, outcome := range in.Outcomes {
		header[firstStrategyCol+i] = outcome.Strategy.Title
	}

	for i, row := range in.Projection.Rows {
		copy(values[scheduleFirstRow+i], candidateCells(row))
		values[scheduleFirstRow+i][cleanedCol] = availability.Clean(row.Availability)
	}

	for i, slot := range universe {
		values[scheduleFirstRow+i][timeCol] = slot.Padded()
	}

	for i, outcome := range in.Outcomes {
		col := firstStrategyCol + i
		style := styleFor(outcome.Strategy.UnassignedReason)

		for _, result := range outcome.Slots {
			row := scheduleFirstRow + result.Position
			if result.Filled {
				values[row][col] = result.Candidate
				continue
			}
			tab.Highlights = append(tab.Highlights, sheetsclient.Highlight{
				Range: sheetsclient.Cell(row, col),
				Color: style.color,
			})
		}

		for _, unassigned := range outcome.Unassigned {
			tab.Highlights = append(tab.Highlights, sheetsclient.Highlight{
				Range: sheetsclient.Cell(scheduleFirstRow+unassigned.Row, 0),
				Color: style.color,
			})
		}
	}

	for _, row := range in.DuplicateRows {
		tab.Highlights = append(tab.Highlights, sheetsclient.Highlight{
			Range: sheetsclient.Range{Row: scheduleFirstRow + row, Col: 0, Cols: candidateCols},
			Color: sheetsclient.ColorGrey,
		})
	}

	return tab
}

func legendText(strategy allocator.Strategy, style highlightStyle) string {
	basis := strings.TrimPrefix(strategy.Title, "Schedule based on ")
	return fmt.Sprintf("UNSCHEDULED players based on %s are highlighted in %s", strings.ToUpper(basis), style.name)
}

// candidateCells are the display cells of one row, in Projection.Headers order
func candidateCells(row model.RawRow) []interface{} {
	cells := make([]interface{}, 0, len(row.Details)+4)
	cells = append(cells, row.Name)
	for _, detail := range row.Details {
		cells = append(cells, detail)
	}
	return append(cells,
		formatMetric(row.Metrics[model.MetricContribution]),
		formatMetric(row.Metrics[model.MetricSpeedup]),
		row.Availability,
	)
}

func formatMetric(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
