package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/guild-scheduler/pkg/db"
)

// GetRunSummaries returns every recorded run summary, oldest run first
func (d *DB) GetRunSummaries(ctx context.Context) ([]db.RunSummary, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, run_id, run_at, event, strategy, pool_size, considered, assigned, unfilled, duplicates, recompute
		FROM run_summary
		ORDER BY run_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query run summaries: %w", err)
	}
	defer rows.Close()

	var summaries []db.RunSummary
	for rows.Next() {
		var s db.RunSummary
		if err := rows.Scan(
			&s.ID, &s.RunID, &s.RunAt, &s.Event, &s.Strategy,
			&s.PoolSize, &s.Considered, &s.Assigned, &s.Unfilled, &s.Duplicates, &s.Recompute,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run summary: %w", err)
		}
		s.RunAt = s.RunAt.UTC()
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run summaries: %w", err)
	}

	// ORDER BY run_at leaves rows of one run in no fixed order
	db.SortRunSummaries(summaries)
	return summaries, nil
}

// InsertRunSummaries inserts run summaries in a single batch
func (d *DB) InsertRunSummaries(summaries []db.RunSummary) error {
	if len(summaries) == 0 {
		return nil
	}

	ctx := context.Background()
	batch := &pgx.Batch{}
	for _, s := range summaries {
		batch.Queue(`
			INSERT INTO run_summary (id, run_id, run_at, event, strategy, pool_size, considered, assigned, unfilled, duplicates, recompute)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, s.ID, s.RunID, s.RunAt.UTC(), s.Event, s.Strategy,
			s.PoolSize, s.Considered, s.Assigned, s.Unfilled, s.Duplicates, s.Recompute)
	}

	results := d.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range summaries {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert run summary: %w", err)
		}
	}

	return nil
}
