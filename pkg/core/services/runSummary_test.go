package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func dryRunResult(t *testing.T) *ScheduleResult {
	t.Helper()
	result, err := ScheduleEvent(context.Background(), &mockSource{table: responsesTable()}, &mockPublisher{}, nil,
		testConfig(), zap.NewNop(), ScheduleOptions{Event: "troops", DryRun: true, Now: testNow})
	require.NoError(t, err)
	return result
}

func TestFormatRunSummary(t *testing.T) {
	summary := FormatRunSummary(dryRunResult(t))

	assert.Contains(t, summary, "Troops October 2026\n4 opted in, 3 unique players\nDuplicates: Alice\n")
	assert.Contains(t, summary, "\nSchedule based on troop promotions\n  2 of 3 assigned\n  46 of 48 slots unfilled\n")
	assert.Contains(t, summary, "\nSchedule based on total speedups\n")
}

func TestFormatRunSummary_CappedPool(t *testing.T) {
	result := dryRunResult(t)
	result.Outcomes[3].Considered = 2

	assert.Contains(t, FormatRunSummary(result), "  2 of 2 assigned (3 in pool)\n")
}

func TestSendRunSummary(t *testing.T) {
	mailer := &mockMailer{}
	result := dryRunResult(t)

	require.NoError(t, SendRunSummary(mailer, testConfig(), zap.NewNop(), result))

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "lead@example.com", mailer.sent[0].to)
	assert.Equal(t, "Troops October 2026 schedule", mailer.sent[0].subject)
	assert.Equal(t, FormatRunSummary(result), mailer.sent[0].body)
}

func TestSendRunSummary_Errors(t *testing.T) {
	cfg := testConfig()
	cfg.CoordinatorEmail = ""
	err := SendRunSummary(&mockMailer{}, cfg, zap.NewNop(), dryRunResult(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "coordinatorEmail")

	sendErr := errors.New("rate limited")
	err = SendRunSummary(&mockMailer{err: sendErr}, testConfig(), zap.NewNop(), dryRunResult(t))
	assert.True(t, errors.Is(err, sendErr))
}

func TestSummarise(t *testing.T) {
	result := dryRunResult(t)

	summaries := Summarise("run-1", testNow, "troops", result.Outcomes, 1)

	require.Len(t, summaries, 4)
	assert.NotEqual(t, summaries[0].ID, summaries[1].ID)
	assert.Equal(t, "run-1", summaries[3].RunID)
	assert.Equal(t, "speedup", summaries[3].Strategy)
}
