package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jakechorley/guild-scheduler/internal/config"
	"github.com/jakechorley/guild-scheduler/pkg/core/model"
)

// OptInAnswer is the exact answer that puts a respondent into an event's pool
const OptInAnswer = "Yes"

// TotalSpeedupsHeader heads the summed speedup column on the schedule tab
const TotalSpeedupsHeader = "Total speedups"

// ResponseSource supplies the signup responses table, header row first
type ResponseSource interface {
	ResponseTable(ctx context.Context) ([][]string, error)
}

// ResponseSourceFunc adapts a function to ResponseSource
type ResponseSourceFunc func(ctx context.Context) ([][]string, error)

func (f ResponseSourceFunc) ResponseTable(ctx context.Context) ([][]string, error) {
	return f(ctx)
}

// SheetResponseReader reads the responses tab linked to the signup form
type SheetResponseReader interface {
	GetResponseTable(spreadsheetID, tab string) ([][]string, error)
}

// FormResponseReader reads responses straight from the signup form
type FormResponseReader interface {
	GetResponseTable(formID string) ([][]string, error)
}

// ArchivedResponseReader reads the most recently imported responses
type ArchivedResponseReader interface {
	GetResponseTable(ctx context.Context) ([][]string, error)
}

// SheetResponses reads responses from the configured responses tab
func SheetResponses(reader SheetResponseReader, cfg *config.Config) ResponseSource {
	return ResponseSourceFunc(func(ctx context.Context) ([][]string, error) {
		return reader.GetResponseTable(cfg.ResponsesSheetID, cfg.ResponsesTab)
	})
}

// NewResponseSource picks the response source named by the config. Readers for
// sources that aren't configured may be nil.
func NewResponseSource(cfg *config.Config, sheets SheetResponseReader, forms FormResponseReader, archive ArchivedResponseReader) (ResponseSource, error) {
	switch source := cfg.InputSource(); source {
	case config.SourceSheet:
		if sheets == nil {
			return nil, fmt.Errorf("no sheets client for source %s", source)
		}
		return SheetResponses(sheets, cfg), nil
	case config.SourceForm:
		if forms == nil {
			return nil, fmt.Errorf("no forms client for source %s", source)
		}
		return ResponseSourceFunc(func(ctx context.Context) ([][]string, error) {
			return forms.GetResponseTable(cfg.FormID)
		}), nil
	case config.SourcePostgres:
		if archive == nil {
			return nil, fmt.Errorf("no database for source %s", source)
		}
		return ResponseSourceFunc(archive.GetResponseTable), nil
	default:
		return nil, fmt.Errorf("unsupported response source: %s", source)
	}
}

// Projection is an event's view of the responses: opted-in rows, sorted, with
// the metrics the strategies rank by
type Projection struct {
	// Headers title the candidate columns of the schedule tab: name, details,
	// contribution, total speedups and raw availability
	Headers []string

	Rows []model.RawRow

	// Responses is the number of response rows before the opt-in filter
	Responses int
}

type columnIndex map[string]int

func (c columnIndex) cell(row []string, column string) string {
	idx, ok := c[column]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// ProjectResponses turns the responses table into the event's candidate rows.
// Rows whose opt-in answer is exactly "Yes" are kept and sorted by the event's
// sort column, highest first, with unreadable numbers counted as 0. A table
// missing any column the event reads is rejected with ErrMissingColumn.
func ProjectResponses(table [][]string, event *config.Event) (*Projection, error) {
	if len(table) == 0 {
		return nil, fmt.Errorf("%w: responses table has no header row", ErrMissingColumn)
	}

	columns := make(columnIndex)
	for i, title := range table[0] {
		title = strings.TrimSpace(title)
		if _, seen := columns[title]; !seen {
			columns[title] = i
		}
	}

	var missing []string
	for _, column := range requiredColumns(event) {
		if _, ok := columns[column]; !ok {
			missing = append(missing, column)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	var optedIn [][]string
	for _, row := range table[1:] {
		if columns.cell(row, event.OptInColumn) == OptInAnswer {
			optedIn = append(optedIn, row)
		}
	}

	sort.SliceStable(optedIn, func(i, j int) bool {
		return model.ParseMetric(columns.cell(optedIn[i], event.SortColumn)) >
			model.ParseMetric(columns.cell(optedIn[j], event.SortColumn))
	})

	rows := make([]model.RawRow, len(optedIn))
	for i, row := range optedIn {
		details := make([]string, len(event.DetailColumns))
		for d, detail := range event.DetailColumns {
			details[d] = detailCell(columns, row, detail)
		}

		rows[i] = model.RawRow{
			Index:        i,
			Name:         strings.TrimSpace(columns.cell(row, event.NameColumn)),
			Availability: columns.cell(row, event.AvailabilityColumn),
			Metrics: map[model.Metric]float64{
				model.MetricContribution: sumColumns(columns, row, event.ContributionColumns),
				model.MetricSpeedup:      sumColumns(columns, row, event.SpeedupColumns),
			},
			Details: details,
		}
	}

	return &Projection{
		Headers:   projectionHeaders(event),
		Rows:      rows,
		Responses: len(table) - 1,
	}, nil
}

func requiredColumns(event *config.Event) []string {
	columns := []string{event.NameColumn, event.OptInColumn, event.SortColumn, event.AvailabilityColumn}
	columns = append(columns, event.ContributionColumns...)
	columns = append(columns, event.SpeedupColumns...)
	for _, detail := range event.DetailColumns {
		if len(detail.Parts) == 0 {
			columns = append(columns, detail.Header)
			continue
		}
		for _, part := range detail.Parts {
			columns = append(columns, part.Column)
		}
	}
	return columns
}

func projectionHeaders(event *config.Event) []string {
	headers := []string{event.NameColumn}
	for _, detail := range event.DetailColumns {
		headers = append(headers, detail.Header)
	}
	return append(headers, contributionHeader(event), TotalSpeedupsHeader, event.AvailabilityColumn)
}

func contributionHeader(event *config.Event) string {
	if len(event.ContributionColumns) == 1 {
		return event.ContributionColumns[0]
	}
	label := event.ContributionLabel
	if label == "" {
		label = "contribution"
	}
	return "Total " + label
}

// detailCell copies a detail column, or joins the non-empty parts of a
// composite one: "12 Infantry, 10 Lancer"
func detailCell(columns columnIndex, row []string, detail config.DetailColumn) string {
	if len(detail.Parts) == 0 {
		return columns.cell(row, detail.Header)
	}

	var parts []string
	for _, part := range detail.Parts {
		value := strings.TrimSpace(columns.cell(row, part.Column))
		if value == "" {
			continue
		}
		if part.Suffix != "" {
			value = value + " " + part.Suffix
		}
		parts = append(parts, value)
	}
	return strings.Join(parts, ", ")
}

func sumColumns(columns columnIndex, row []string, names []string) float64 {
	total := 0.0
	for _, name := range names {
		total += model.ParseMetric(columns.cell(row, name))
	}
	return total
}
