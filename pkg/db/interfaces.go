package db

import "context"

// RunSummaryStore records the outcome of every scheduling run
type RunSummaryStore interface {
	GetRunSummaries(ctx context.Context) ([]RunSummary, error)
	InsertRunSummaries(summaries []RunSummary) error
}

// SignupArchive keeps copies of the responses tab so runs can be repeated
// against the signups as they were when imported
type SignupArchive interface {
	InsertResponses(ctx context.Context, table [][]string) (string, error)
	GetResponseTable(ctx context.Context) ([][]string, error)
}

// Database defines the interface for all database operations.
// Both the SheetsSQL-backed db.DB and postgres.DB implement this interface.
type Database interface {
	RunSummaryStore
}
