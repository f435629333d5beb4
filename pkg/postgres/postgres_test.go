package postgres

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFiles(t *testing.T) {
	files, err := migrationFiles()
	require.NoError(t, err)

	assert.Equal(t, []string{"001_run_summary.sql", "002_signup_response.sql"}, files)
}

func TestPendingMigrations(t *testing.T) {
	files := []string{"001_run_summary.sql", "002_signup_response.sql"}

	assert.Equal(t, files, pendingMigrations(files, map[string]bool{}))
	assert.Equal(t, []string{"002_signup_response.sql"},
		pendingMigrations(files, map[string]bool{"001_run_summary.sql": true}))
	assert.Empty(t, pendingMigrations(files, map[string]bool{
		"001_run_summary.sql":     true,
		"002_signup_response.sql": true,
	}))
}

func TestArchiveRows(t *testing.T) {
	importedAt := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	table := [][]string{
		{"Timestamp", "In-game name"},
		{"2026-10-01", "Alice"},
		{"2026-10-02", "Bob"},
	}

	rows := ArchiveRows("import-1", importedAt, table)

	require.Len(t, rows, 3)
	for i, r := range rows {
		assert.Equal(t, i, r.Position)
		assert.Equal(t, "import-1", r.ImportID)
		assert.Equal(t, importedAt, r.ImportedAt)
		assert.Equal(t, table[i], r.Cells)
		_, err := uuid.Parse(r.ID)
		assert.NoError(t, err)
	}
	assert.NotEqual(t, rows[0].ID, rows[1].ID)
}
