package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockArchiver struct {
	tables [][][]string
	err    error
}

func (m *mockArchiver) InsertResponses(ctx context.Context, table [][]string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.tables = append(m.tables, table)
	return "import-1", nil
}

func TestImportResponses(t *testing.T) {
	reader := &mockSheetReader{table: responsesTable()}
	archive := &mockArchiver{}

	result, err := ImportResponses(context.Background(), reader, archive, testConfig(), zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, &ImportResult{ImportID: "import-1", Rows: 5}, result)
	assert.Equal(t, "Form Responses 5", reader.tab)
	require.Len(t, archive.tables, 1)
	assert.Equal(t, responsesTable(), archive.tables[0])
}

func TestImportResponses_Errors(t *testing.T) {
	_, err := ImportResponses(context.Background(), &mockSheetReader{}, &mockArchiver{}, testConfig(), zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is empty")

	archiveErr := errors.New("connection refused")
	_, err = ImportResponses(context.Background(), &mockSheetReader{table: responsesTable()}, &mockArchiver{err: archiveErr}, testConfig(), zap.NewNop())
	assert.True(t, errors.Is(err, archiveErr))
}
