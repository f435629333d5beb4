package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/guild-scheduler/pkg/db"
)

// InsertResponses archives a responses table, header row first, and returns the import ID
func (d *DB) InsertResponses(ctx context.Context, table [][]string) (string, error) {
	if len(table) == 0 {
		return "", fmt.Errorf("responses table is empty")
	}

	importID := uuid.NewString()
	rows := ArchiveRows(importID, time.Now().UTC(), table)

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, r := range rows {
		cells, err := json.Marshal(r.Cells)
		if err != nil {
			return "", fmt.Errorf("failed to encode row %d: %w", r.Position, err)
		}
		batch.Queue(`
			INSERT INTO signup_response (id, import_id, imported_at, position, cells)
			VALUES ($1, $2, $3, $4, $5)
		`, r.ID, r.ImportID, r.ImportedAt, r.Position, cells)
	}

	results := tx.SendBatch(ctx, batch)
	for range rows {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return "", fmt.Errorf("failed to insert signup response: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return "", fmt.Errorf("failed to close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("failed to commit import: %w", err)
	}

	return importID, nil
}

// GetResponseTable returns the most recent import, header row first
func (d *DB) GetResponseTable(ctx context.Context) ([][]string, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT position, cells
		FROM signup_response
		WHERE import_id = (
			SELECT import_id FROM signup_response ORDER BY imported_at DESC LIMIT 1
		)
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query signup responses: %w", err)
	}
	defer rows.Close()

	var table [][]string
	for rows.Next() {
		var position int
		var raw []byte
		if err := rows.Scan(&position, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan signup response: %w", err)
		}

		var cells []string
		if err := json.Unmarshal(raw, &cells); err != nil {
			return nil, fmt.Errorf("failed to decode row %d: %w", position, err)
		}
		table = append(table, cells)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating signup responses: %w", err)
	}

	if len(table) == 0 {
		return nil, fmt.Errorf("no imported responses found")
	}

	return table, nil
}

// ArchiveRows turns a responses table into archive records of one import
func ArchiveRows(importID string, importedAt time.Time, table [][]string) []db.SignupResponse {
	rows := make([]db.SignupResponse, len(table))
	for i, cells := range table {
		rows[i] = db.SignupResponse{
			ID:         uuid.NewString(),
			ImportID:   importID,
			ImportedAt: importedAt,
			Position:   i,
			Cells:      cells,
		}
	}
	return rows
}
