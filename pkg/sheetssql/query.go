package sheetssql

import (
	"fmt"
	"reflect"
	"strconv"
	"time"
)

var timeType = reflect.TypeOf(time.Time{})

// GetTableAs reads every record of a table into structs of type T.
// The header and type rows are skipped; columns are matched by ssql_header.
func GetTableAs[T any](db *DB, tableName string) ([]T, error) {
	values, err := db.client.GetValues(db.spreadsheetID, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to get table %s: %w", tableName, err)
	}

	if len(values) < 3 {
		return []T{}, nil
	}

	var model T
	t := reflect.TypeOf(model)

	columnIndexes := make(map[string]int)
	for i, header := range values[0] {
		if name, ok := header.(string); ok {
			columnIndexes[name] = i
		}
	}

	fieldMap := make(map[string]reflect.StructField)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if name := field.Tag.Get("ssql_header"); name != "" {
			fieldMap[name] = field
		}
	}

	dataRows := values[2:]
	results := make([]T, 0, len(dataRows))
	for rowIdx, row := range dataRows {
		result := reflect.New(t).Elem()

		for columnName, colIdx := range columnIndexes {
			field, ok := fieldMap[columnName]
			if !ok || colIdx >= len(row) || row[colIdx] == nil {
				continue
			}

			if err := setFieldValue(result.FieldByName(field.Name), row[colIdx]); err != nil {
				// +3: one-based rows after the header and type rows
				return nil, fmt.Errorf("row %d, column %s: %w", rowIdx+3, columnName, err)
			}
		}

		results = append(results, result.Interface().(T))
	}

	return results, nil
}

// cellText returns the textual form of a cell as the sheets API may return
// either formatted strings or raw numbers and booleans
func cellText(cell interface{}) string {
	switch v := cell.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// setFieldValue converts a cell to the field's Go type and sets it
func setFieldValue(field reflect.Value, cell interface{}) error {
	if !field.CanSet() {
		return fmt.Errorf("field cannot be set")
	}

	text := cellText(cell)

	if field.Type() == timeType {
		if text == "" {
			field.Set(reflect.ValueOf(time.Time{}))
			return nil
		}
		parsed, err := time.Parse(time.RFC3339, text)
		if err != nil {
			return fmt.Errorf("failed to parse timestamp: %w", err)
		}
		field.Set(reflect.ValueOf(parsed))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(text)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if text == "" {
			field.SetInt(0)
			return nil
		}
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return fmt.Errorf("failed to parse int: %w", err)
		}
		field.SetInt(v)

	case reflect.Float32, reflect.Float64:
		if text == "" {
			field.SetFloat(0)
			return nil
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return fmt.Errorf("failed to parse float: %w", err)
		}
		field.SetFloat(v)

	case reflect.Bool:
		if text == "" {
			field.SetBool(false)
			return nil
		}
		v, err := strconv.ParseBool(text)
		if err != nil {
			return fmt.Errorf("failed to parse bool: %w", err)
		}
		field.SetBool(v)

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

// rowFromModel lays out the tagged fields of a struct as a sheet row.
// Timestamps are written as RFC 3339 text so they read back unchanged.
func rowFromModel(t reflect.Type, v reflect.Value) []interface{} {
	row := make([]interface{}, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Tag.Get("ssql_header") == "" {
			continue
		}

		value := v.Field(i).Interface()
		if ts, ok := value.(time.Time); ok {
			value = ts.UTC().Format(time.RFC3339)
		}
		row = append(row, value)
	}
	return row
}

// InsertModel appends a struct as a row to its table
func InsertModel[T any](db *DB, model T) error {
	return InsertModels(db, []T{model})
}

// InsertModels appends structs as rows to their table
func InsertModels[T any](db *DB, models []T) error {
	if len(models) == 0 {
		return nil
	}

	t := reflect.TypeOf(models[0])
	rows := make([][]interface{}, 0, len(models))
	for _, model := range models {
		rows = append(rows, rowFromModel(t, reflect.ValueOf(model)))
	}

	return db.InsertRows(toSnakeCase(t.Name()), rows)
}
