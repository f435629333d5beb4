package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/guild-scheduler/pkg/db"
)

func historyStore() *mockStore {
	day := func(d int) time.Time { return time.Date(2026, 10, d, 12, 0, 0, 0, time.UTC) }
	return &mockStore{summaries: []db.RunSummary{
		{ID: "5", RunID: "r3", RunAt: day(15), Event: "troops", Strategy: "contribution"},
		{ID: "1", RunID: "r1", RunAt: day(5), Event: "construction", Strategy: "contribution", Duplicates: 2},
		{ID: "2", RunID: "r1", RunAt: day(5), Event: "construction", Strategy: "speedup"},
		{ID: "3", RunID: "r2", RunAt: day(8), Event: "troops", Strategy: "contribution"},
		{ID: "4", RunID: "r2", RunAt: day(8), Event: "troops", Strategy: "speedup"},
	}}
}

func runIDs(runs []RunRecord) []string {
	ids := make([]string, len(runs))
	for i, run := range runs {
		ids[i] = run.RunID
	}
	return ids
}

func TestListRunHistory(t *testing.T) {
	runs, err := ListRunHistory(context.Background(), historyStore(), zap.NewNop(), HistoryOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"r1", "r2", "r3"}, runIDs(runs))
	assert.Equal(t, "construction", runs[0].Event)
	assert.Equal(t, 2, runs[0].Duplicates)
	require.Len(t, runs[1].Strategies, 2)
	assert.Equal(t, "speedup", runs[1].Strategies[1].Strategy)
}

func TestListRunHistory_Filters(t *testing.T) {
	runs, err := ListRunHistory(context.Background(), historyStore(), zap.NewNop(), HistoryOptions{Event: "troops"})
	require.NoError(t, err)
	assert.Equal(t, []string{"r2", "r3"}, runIDs(runs))

	runs, err = ListRunHistory(context.Background(), historyStore(), zap.NewNop(), HistoryOptions{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"r3"}, runIDs(runs))
}

func TestListRunHistory_StoreError(t *testing.T) {
	storeErr := errors.New("no such table")
	_, err := ListRunHistory(context.Background(), &mockStore{getErr: storeErr}, zap.NewNop(), HistoryOptions{})
	assert.True(t, errors.Is(err, storeErr))
}
