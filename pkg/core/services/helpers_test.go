package services

import (
	"context"
	"time"

	"github.com/jakechorley/guild-scheduler/internal/config"
	"github.com/jakechorley/guild-scheduler/pkg/clients/sheetsclient"
	"github.com/jakechorley/guild-scheduler/pkg/db"
)

// Thursday
var testNow = time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)

func troopsEvent() config.Event {
	return config.Event{
		Name:                "troops",
		Title:               "Troops",
		Day:                 "Thursday",
		Role:                "Minister of Education",
		Activity:            "Troop Training",
		RRule:               "FREQ=WEEKLY;BYDAY=TH",
		NameColumn:          "In-game name",
		OptInColumn:         "Minister of Education on Thursday?",
		SortColumn:          "Troop promotions",
		AvailabilityColumn:  "Availability",
		ContributionColumns: []string{"Troop promotions"},
		ContributionLabel:   "troop promotions",
		SpeedupColumns:      []string{"Specific speedups", "General speedups"},
		DetailColumns: []config.DetailColumn{
			{Header: "Alliance"},
			{Header: "Troops", Parts: []config.DetailPart{
				{Column: "Infantry level", Suffix: "Infantry"},
				{Column: "Lancer level", Suffix: "Lancer"},
			}},
		},
	}
}

func constructionEvent() config.Event {
	event := troopsEvent()
	event.Name = "construction"
	event.Title = "Construction"
	event.Day = "Monday"
	event.Role = "Vice President"
	event.Activity = ""
	event.RRule = "FREQ=WEEKLY;BYDAY=MO"
	return event
}

func testConfig() *config.Config {
	return &config.Config{
		ResponsesSheetID: "responses-sheet",
		ResponsesTab:     "Form Responses 5",
		ScheduleSheetID:  "schedule-sheet",
		DatabaseSheetID:  "db-sheet",
		GmailUserID:      "me",
		CoordinatorEmail: "lead@example.com",
		Events:           []config.Event{constructionEvent(), troopsEvent()},
	}
}

var responsesHeader = []string{
	"Timestamp", "Alliance", "In-game name", "Minister of Education on Thursday?",
	"Infantry level", "Lancer level", "Troop promotions", "Specific speedups",
	"General speedups", "Availability",
}

// Opted in and sorted by promotions: Alice (200), Alice (120), Carol (40), Dave (0)
func responsesTable() [][]string {
	return [][]string{
		responsesHeader,
		{"2026-10-01", "ABC", "Alice", "Yes", "T10", "T9", "120", "30", "10", "9-11 UTC, 밤"},
		{"2026-10-01", "ABC", "Bob", "No", "T10", "T10", "500", "90", "90", "0-24 UTC"},
		{"2026-10-02", "XYZ", "Carol", "Yes", "", "T8", "40k", "5", "", "14-15 UTC"},
		{"2026-10-03", "ABC", "Dave", "Yes", "T7", "", "", "0", "0", ""},
		{"2026-10-04", "ABC", "Alice", "Yes", "T10", "T10", "200", "0", "0", "0-24 UTC"},
	}
}

type mockSource struct {
	table [][]string
	err   error
	calls int
}

func (m *mockSource) ResponseTable(ctx context.Context) ([][]string, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.table, nil
}

type mockPublisher struct {
	spreadsheetID string
	tabs          []*sheetsclient.Tab
	err           error
}

func (m *mockPublisher) PublishTab(spreadsheetID string, tab *sheetsclient.Tab) error {
	if m.err != nil {
		return m.err
	}
	m.spreadsheetID = spreadsheetID
	m.tabs = append(m.tabs, tab)
	return nil
}

type mockStore struct {
	summaries []db.RunSummary
	inserted  []db.RunSummary
	getErr    error
	insertErr error
}

func (m *mockStore) GetRunSummaries(ctx context.Context) ([]db.RunSummary, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.summaries, nil
}

func (m *mockStore) InsertRunSummaries(summaries []db.RunSummary) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted = append(m.inserted, summaries...)
	return nil
}

type sentEmail struct {
	to, subject, body string
}

type mockMailer struct {
	sent []sentEmail
	err  error
}

func (m *mockMailer) SendEmail(to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentEmail{to, subject, body})
	return nil
}
