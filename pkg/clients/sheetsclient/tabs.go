package sheetsclient

import (
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/api/sheets/v4"
)

// Highlight colours used on the schedule and layout tabs
const (
	ColorRed    = "#FFAAA5"
	ColorYellow = "#FFFFBA"
	ColorGreen  = "#BAFFC9"
	ColorPurple = "#E7AFED"
	ColorGrey   = "#808080"
	ColorPeach  = "#FFDFBA"
	ColorBorder = "#BCBCBC"
)

const (
	minRows    = 100
	minColumns = 26
)

// Range is a block of cells, zero based. Rows and Cols of 0 mean a single row or column.
type Range struct {
	Row, Col   int
	Rows, Cols int
}

// Cell returns the range of a single cell
func Cell(row, col int) Range {
	return Range{Row: row, Col: col}
}

// Highlight sets the background of a range
type Highlight struct {
	Range
	Color string
}

// Tab is a fully built sheet tab ready to publish
type Tab struct {
	Title  string
	Values [][]interface{}

	Highlights []Highlight
	BoldRows   []int
	Merges     []Range
	FrozenRows int64

	// Checkboxes turns every cell of each range into a tick box
	Checkboxes []Range

	// ColumnWidths maps a zero based column to its pixel width
	ColumnWidths map[int]int64
}

// Width returns the number of columns in the widest row
func (t *Tab) Width() int {
	width := 0
	for _, row := range t.Values {
		width = max(width, len(row))
	}
	return width
}

// PublishTab writes the tab to the spreadsheet. An existing tab with the same
// title is cleared first, including its highlights and merges, so nothing from
// a previous run is left behind.
func (c *Client) PublishTab(spreadsheetID string, tab *Tab) error {
	existing, err := c.findSheet(spreadsheetID, tab.Title)
	if err != nil {
		return err
	}

	var sheetID int64
	if existing != nil {
		sheetID = existing.Properties.SheetId
		if _, err := c.service.Spreadsheets.Values.Clear(spreadsheetID, quoteTitle(tab.Title), &sheets.ClearValuesRequest{}).Context(c.ctx).Do(); err != nil {
			return fmt.Errorf("failed to clear tab %s: %w", tab.Title, err)
		}
	} else {
		sheetID, err = c.CreateSheet(spreadsheetID, tab.Title)
		if err != nil {
			return fmt.Errorf("failed to create tab: %w", err)
		}
	}

	if _, err := c.batchUpdate(spreadsheetID, prepareRequests(sheetID, tab, existing != nil)); err != nil {
		return fmt.Errorf("failed to prepare tab %s: %w", tab.Title, err)
	}

	_, err = c.service.Spreadsheets.Values.Update(
		spreadsheetID,
		quoteTitle(tab.Title)+"!A1",
		&sheets.ValueRange{Values: tab.Values},
	).ValueInputOption("RAW").Context(c.ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to write data to tab %s: %w", tab.Title, err)
	}

	requests, err := formatRequests(sheetID, tab)
	if err != nil {
		return err
	}
	if len(requests) > 0 {
		if _, err := c.batchUpdate(spreadsheetID, requests); err != nil {
			return fmt.Errorf("failed to format tab %s: %w", tab.Title, err)
		}
	}

	return nil
}

// prepareRequests sizes the grid and, for a reused tab, wipes old formatting
func prepareRequests(sheetID int64, tab *Tab, reset bool) []*sheets.Request {
	var requests []*sheets.Request

	if reset {
		whole := &sheets.GridRange{SheetId: sheetID}
		requests = append(requests,
			&sheets.Request{UnmergeCells: &sheets.UnmergeCellsRequest{Range: whole}},
			&sheets.Request{RepeatCell: &sheets.RepeatCellRequest{
				Range:  whole,
				Cell:   &sheets.CellData{},
				Fields: "userEnteredFormat",
			}},
			&sheets.Request{SetDataValidation: &sheets.SetDataValidationRequest{Range: whole}},
		)
	}

	requests = append(requests, &sheets.Request{
		UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
			Properties: &sheets.SheetProperties{
				SheetId: sheetID,
				GridProperties: &sheets.GridProperties{
					RowCount:        int64(max(len(tab.Values), minRows)),
					ColumnCount:     int64(max(tab.Width(), minColumns)),
					FrozenRowCount:  tab.FrozenRows,
					ForceSendFields: []string{"FrozenRowCount"},
				},
			},
			Fields: "gridProperties.rowCount,gridProperties.columnCount,gridProperties.frozenRowCount",
		},
	})

	return requests
}

// formatRequests builds the merge, highlight, bold and width requests for a tab
func formatRequests(sheetID int64, tab *Tab) ([]*sheets.Request, error) {
	var requests []*sheets.Request

	for _, merge := range tab.Merges {
		requests = append(requests, &sheets.Request{
			MergeCells: &sheets.MergeCellsRequest{
				Range:     gridRange(sheetID, merge),
				MergeType: "MERGE_ALL",
			},
		})
	}

	for _, highlight := range tab.Highlights {
		color, err := ParseHexColor(highlight.Color)
		if err != nil {
			return nil, err
		}
		requests = append(requests, &sheets.Request{
			RepeatCell: &sheets.RepeatCellRequest{
				Range:  gridRange(sheetID, highlight.Range),
				Cell:   &sheets.CellData{UserEnteredFormat: &sheets.CellFormat{BackgroundColor: color}},
				Fields: "userEnteredFormat.backgroundColor",
			},
		})
	}

	for _, box := range tab.Checkboxes {
		requests = append(requests, &sheets.Request{
			SetDataValidation: &sheets.SetDataValidationRequest{
				Range: gridRange(sheetID, box),
				Rule: &sheets.DataValidationRule{
					Condition: &sheets.BooleanCondition{Type: "BOOLEAN"},
					Strict:    true,
				},
			},
		})
	}

	for _, row := range tab.BoldRows {
		requests = append(requests, &sheets.Request{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:       sheetID,
					StartRowIndex: int64(row),
					EndRowIndex:   int64(row + 1),
				},
				Cell: &sheets.CellData{UserEnteredFormat: &sheets.CellFormat{
					TextFormat:          &sheets.TextFormat{Bold: true},
					WrapStrategy:        "WRAP",
					VerticalAlignment:   "MIDDLE",
					HorizontalAlignment: "CENTER",
				}},
				Fields: "userEnteredFormat(textFormat,wrapStrategy,verticalAlignment,horizontalAlignment)",
			},
		})
	}

	for col, width := range tab.ColumnWidths {
		requests = append(requests, &sheets.Request{
			UpdateDimensionProperties: &sheets.UpdateDimensionPropertiesRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "COLUMNS",
					StartIndex: int64(col),
					EndIndex:   int64(col + 1),
				},
				Properties: &sheets.DimensionProperties{PixelSize: width},
				Fields:     "pixelSize",
			},
		})
	}

	return requests, nil
}

func gridRange(sheetID int64, r Range) *sheets.GridRange {
	rows, cols := max(r.Rows, 1), max(r.Cols, 1)
	return &sheets.GridRange{
		SheetId:          sheetID,
		StartRowIndex:    int64(r.Row),
		EndRowIndex:      int64(r.Row + rows),
		StartColumnIndex: int64(r.Col),
		EndColumnIndex:   int64(r.Col + cols),
		ForceSendFields:  []string{"StartRowIndex", "StartColumnIndex"},
	}
}

// ParseHexColor converts "#RRGGBB" to a sheets colour
func ParseHexColor(hex string) (*sheets.Color, error) {
	value := strings.TrimPrefix(hex, "#")
	if len(value) != 6 {
		return nil, fmt.Errorf("invalid colour %q", hex)
	}

	rgb, err := strconv.ParseUint(value, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid colour %q: %w", hex, err)
	}

	return &sheets.Color{
		Red:             float64((rgb>>16)&0xFF) / 255,
		Green:           float64((rgb>>8)&0xFF) / 255,
		Blue:            float64(rgb&0xFF) / 255,
		ForceSendFields: []string{"Red", "Green", "Blue"},
	}, nil
}

// quoteTitle quotes a tab title for A1 notation
func quoteTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}
