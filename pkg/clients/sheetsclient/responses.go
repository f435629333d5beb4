package sheetsclient

import (
	"fmt"
	"strconv"
	"strings"
)

// GetResponseTable reads the form responses tab as a table of strings.
// The first row is the header row written by the linked form.
// Values are read unformatted so numeric answers keep their full precision.
func (c *Client) GetResponseTable(spreadsheetID, tab string) ([][]string, error) {
	resp, err := c.service.Spreadsheets.Values.Get(spreadsheetID, tab).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("FORMATTED_STRING").
		Context(c.ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get responses from %s: %w", tab, err)
	}

	if len(resp.Values) == 0 {
		return nil, fmt.Errorf("responses tab %s is empty", tab)
	}

	return ToStringTable(resp.Values), nil
}

// ToStringTable converts API cell values into strings
func ToStringTable(values [][]interface{}) [][]string {
	table := make([][]string, len(values))
	for i, row := range values {
		table[i] = make([]string, len(row))
		for j, cell := range row {
			table[i][j] = CellString(cell)
		}
	}
	return table
}

// CellString renders a single cell value. Whole numbers have no decimal point.
func CellString(cell interface{}) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
