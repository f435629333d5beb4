package db

import (
	"context"
	"fmt"
	"sort"

	"github.com/jakechorley/guild-scheduler/pkg/sheetssql"
)

const runSummaryTable = "run_summary"

// Schema returns the tables kept in the database spreadsheet
func Schema() (*sheetssql.Schema, error) {
	return sheetssql.SchemaFromModels(RunSummary{})
}

// DB provides database operations using SheetsSQL
type DB struct {
	ssql *sheetssql.DB
}

// NewDB creates a new database instance
func NewDB(ssql *sheetssql.DB) *DB {
	return &DB{
		ssql: ssql,
	}
}

// Open creates the run summary tables if needed and returns the database
func Open(client sheetssql.SheetsClient, spreadsheetID string) (*DB, error) {
	schema, err := Schema()
	if err != nil {
		return nil, fmt.Errorf("failed to build schema: %w", err)
	}

	ssql, err := sheetssql.NewDB(client, spreadsheetID, schema)
	if err != nil {
		return nil, fmt.Errorf("failed to open database sheet: %w", err)
	}

	return NewDB(ssql), nil
}

// GetRunSummaries returns every recorded run summary, oldest run first
func (db *DB) GetRunSummaries(ctx context.Context) ([]RunSummary, error) {
	summaries, err := sheetssql.GetTableAs[RunSummary](db.ssql, runSummaryTable)
	if err != nil {
		return nil, fmt.Errorf("failed to get run summaries: %w", err)
	}

	SortRunSummaries(summaries)
	return summaries, nil
}

// InsertRunSummaries appends run summaries to the log
func (db *DB) InsertRunSummaries(summaries []RunSummary) error {
	if err := sheetssql.InsertModels(db.ssql, summaries); err != nil {
		return fmt.Errorf("failed to insert run summaries: %w", err)
	}
	return nil
}

// SortRunSummaries orders summaries by run time. Rows of one run keep their strategy order.
func SortRunSummaries(summaries []RunSummary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].RunAt.Before(summaries[j].RunAt)
	})
}
