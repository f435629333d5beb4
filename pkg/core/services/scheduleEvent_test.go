package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/guild-scheduler/pkg/core/allocator"
)

func TestScheduleEvent_PublishesAndRecords(t *testing.T) {
	source := &mockSource{table: responsesTable()}
	publisher := &mockPublisher{}
	store := &mockStore{}

	result, err := ScheduleEvent(context.Background(), source, publisher, store, testConfig(), zap.NewNop(),
		ScheduleOptions{Event: "troops", Now: testNow})
	require.NoError(t, err)

	assert.True(t, result.Published)
	assert.Equal(t, "Troops October 2026", result.TabTitle)
	assert.Equal(t, "schedule-sheet", publisher.spreadsheetID)
	require.Len(t, publisher.tabs, 1)
	assert.Same(t, result.Tab, publisher.tabs[0])

	assert.Len(t, result.Pool, 3)
	assert.Equal(t, []string{"Alice"}, result.Duplicates)
	require.Len(t, result.Outcomes, 4)

	require.Len(t, store.inserted, 4)
	keys := make([]string, len(store.inserted))
	for i, summary := range store.inserted {
		keys[i] = summary.Strategy
		assert.Equal(t, result.RunID, summary.RunID)
		assert.Equal(t, "troops", summary.Event)
		assert.Equal(t, testNow, summary.RunAt)
		assert.Equal(t, 3, summary.PoolSize)
		assert.Equal(t, 3, summary.Considered)
		assert.Equal(t, 2, summary.Assigned)
		assert.Equal(t, 46, summary.Unfilled)
		assert.Equal(t, 1, summary.Duplicates)
		assert.False(t, summary.Recompute)
	}
	assert.Equal(t, []string{
		allocator.StrategyContribution,
		allocator.StrategyLimitedAvailability,
		allocator.StrategyFirstFit,
		allocator.StrategySpeedup,
	}, keys)
}

func TestScheduleEvent_DryRun(t *testing.T) {
	publisher := &mockPublisher{}
	store := &mockStore{}

	result, err := ScheduleEvent(context.Background(), &mockSource{table: responsesTable()}, publisher, store,
		testConfig(), zap.NewNop(), ScheduleOptions{Event: "troops", DryRun: true, Now: testNow})
	require.NoError(t, err)

	assert.False(t, result.Published)
	assert.NotNil(t, result.Tab)
	assert.Len(t, result.Summaries, 4)
	assert.Empty(t, publisher.tabs)
	assert.Empty(t, store.inserted)
}

func TestScheduleEvent_NoStore(t *testing.T) {
	publisher := &mockPublisher{}

	result, err := ScheduleEvent(context.Background(), &mockSource{table: responsesTable()}, publisher, nil,
		testConfig(), zap.NewNop(), ScheduleOptions{Event: "troops", Now: testNow})
	require.NoError(t, err)
	assert.True(t, result.Published)
}

func TestScheduleEvent_RecomputeScarcity(t *testing.T) {
	store := &mockStore{}

	_, err := ScheduleEvent(context.Background(), &mockSource{table: responsesTable()}, &mockPublisher{}, store,
		testConfig(), zap.NewNop(), ScheduleOptions{Event: "troops", RecomputeScarcity: true, Now: testNow})
	require.NoError(t, err)

	for _, summary := range store.inserted {
		assert.True(t, summary.Recompute)
	}

	cfg := testConfig()
	cfg.RecomputeScarcity = true
	result, err := ScheduleEvent(context.Background(), &mockSource{table: responsesTable()}, &mockPublisher{}, nil,
		cfg, zap.NewNop(), ScheduleOptions{Event: "troops", DryRun: true, Now: testNow})
	require.NoError(t, err)
	assert.True(t, result.Outcomes[0].Strategy.RecomputeScarcity)
}

func TestScheduleEvent_TabNamedForNextOccurrence(t *testing.T) {
	result, err := ScheduleEvent(context.Background(), &mockSource{table: responsesTable()}, &mockPublisher{}, nil,
		testConfig(), zap.NewNop(), ScheduleOptions{Event: "construction", DryRun: true, Now: testNow.AddDate(0, 0, 15)})
	require.NoError(t, err)

	assert.Equal(t, "Construction November 2026", result.TabTitle)
}

func TestScheduleEvent_SpeedupCapFromConfig(t *testing.T) {
	cfg := testConfig()
	cfg.SpeedupCap = 2

	result, err := ScheduleEvent(context.Background(), &mockSource{table: responsesTable()}, &mockPublisher{}, nil,
		cfg, zap.NewNop(), ScheduleOptions{Event: "troops", DryRun: true, Now: testNow})
	require.NoError(t, err)

	speedup := result.Outcomes[3]
	assert.Equal(t, 2, speedup.Considered)
	require.Len(t, speedup.Excluded, 1)
	// Alice and Dave tie on speedups, input order keeps Alice
	assert.Equal(t, "Dave", speedup.Excluded[0].Name)
}

func TestScheduleEvent_Errors(t *testing.T) {
	sourceErr := errors.New("sheet unavailable")
	publishErr := errors.New("quota exceeded")
	storeErr := errors.New("append failed")

	tests := []struct {
		name      string
		event     string
		source    *mockSource
		publisher *mockPublisher
		store     *mockStore
		wantIs    error
		wantMsg   string
	}{
		{
			name:      "unknown event",
			event:     "research",
			source:    &mockSource{table: responsesTable()},
			publisher: &mockPublisher{},
			store:     &mockStore{},
			wantIs:    ErrUnknownEvent,
		},
		{
			name:      "source error",
			event:     "troops",
			source:    &mockSource{err: sourceErr},
			publisher: &mockPublisher{},
			store:     &mockStore{},
			wantIs:    sourceErr,
		},
		{
			name:      "missing column",
			event:     "troops",
			source:    &mockSource{table: [][]string{{"Timestamp", "In-game name"}}},
			publisher: &mockPublisher{},
			store:     &mockStore{},
			wantIs:    ErrMissingColumn,
		},
		{
			name:      "publish error",
			event:     "troops",
			source:    &mockSource{table: responsesTable()},
			publisher: &mockPublisher{err: publishErr},
			store:     &mockStore{},
			wantIs:    publishErr,
			wantMsg:   "failed to publish schedule",
		},
		{
			name:      "store error",
			event:     "troops",
			source:    &mockSource{table: responsesTable()},
			publisher: &mockPublisher{},
			store:     &mockStore{insertErr: storeErr},
			wantIs:    storeErr,
			wantMsg:   "failed to record run summary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ScheduleEvent(context.Background(), tt.source, tt.publisher, tt.store, testConfig(), zap.NewNop(),
				ScheduleOptions{Event: tt.event, Now: testNow})
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantIs), "got %v", err)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestScheduleEvent_UnknownEventSkipsFetch(t *testing.T) {
	source := &mockSource{table: responsesTable()}

	_, err := ScheduleEvent(context.Background(), source, &mockPublisher{}, nil, testConfig(), zap.NewNop(),
		ScheduleOptions{Event: "research", Now: testNow})
	require.Error(t, err)
	assert.Equal(t, 0, source.calls)
}
