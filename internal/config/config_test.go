package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func troopsEvent() Event {
	return Event{
		Name:                "troops",
		Title:               "Troops",
		Day:                 "Thursday",
		Role:                "Minister of Education",
		Activity:            "Troop Training",
		RRule:               "FREQ=WEEKLY;BYDAY=TH",
		NameColumn:          "In-game name",
		OptInColumn:         "Do you want Minister of Education on Thursday?",
		SortColumn:          "How many total soldiers will you promote on Thursday?",
		AvailabilityColumn:  "Availability",
		ContributionColumns: []string{"How many total soldiers will you promote on Thursday?"},
		ContributionLabel:   "troop promotions",
		SpeedupColumns:      []string{"Training speedups (days)", "General speedups (days)"},
		DetailColumns: []DetailColumn{
			{Header: "Alliance"},
			{Header: "Highest troop level", Parts: []DetailPart{
				{Column: "Infantry", Suffix: "Infantry"},
				{Column: "Lancer", Suffix: "Lancer"},
				{Column: "Marksman", Suffix: "Marksman"},
			}},
		},
	}
}

func validConfig() *Config {
	return &Config{
		ResponsesSheetID: "responses123",
		ResponsesTab:     "Form Responses 5",
		ScheduleSheetID:  "schedule456",
		DatabaseSheetID:  "db789",
		GmailUserID:      "me",
		Events:           []Event{troopsEvent()},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := validConfig()
	cfg.GmailSender = "Guild Bot <bot@example.com>"
	cfg.CoordinatorEmail = "lead@example.com"
	cfg.SpeedupCap = 30
	cfg.RecomputeScarcity = true

	assert.NoError(t, Validate(cfg))
}

func TestValidate_MinimalConfig(t *testing.T) {
	assert.NoError(t, Validate(validConfig()))
}

func TestValidate_MissingRequiredField(t *testing.T) {
	cfg := validConfig()
	cfg.ScheduleSheetID = ""

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_NoEvents(t *testing.T) {
	cfg := validConfig()
	cfg.Events = nil

	assert.Error(t, Validate(cfg))
}

func TestValidate_InvalidDay(t *testing.T) {
	cfg := validConfig()
	cfg.Events[0].Day = "Thurs"

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Day")
}

func TestValidate_InvalidRRule(t *testing.T) {
	cfg := validConfig()
	cfg.Events[0].RRule = "INVALID_RRULE_SYNTAX"

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rrule in events[0]")
}

func TestValidate_DuplicateEventName(t *testing.T) {
	cfg := validConfig()
	cfg.Events = append(cfg.Events, troopsEvent())

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate event name in events[1]: troops")
}

func TestValidate_DetailPartWithoutColumn(t *testing.T) {
	cfg := validConfig()
	cfg.Events[0].DetailColumns[1].Parts[0].Column = ""

	assert.Error(t, Validate(cfg))
}

func TestValidate_Sources(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr bool
	}{
		{"unknown source", func(cfg *Config) { cfg.Source = "csv" }, true},
		{"form without id", func(cfg *Config) { cfg.Source = SourceForm }, true},
		{"form with id", func(cfg *Config) { cfg.Source = SourceForm; cfg.FormID = "form1" }, false},
		{"postgres without url", func(cfg *Config) { cfg.Source = SourcePostgres }, true},
		{"postgres with url", func(cfg *Config) {
			cfg.Source = SourcePostgres
			cfg.DatabaseURL = "postgres://localhost/guild"
		}, false},
		{"postgres summary store without url", func(cfg *Config) { cfg.SummaryStore = StorePostgres }, true},
		{"unknown summary store", func(cfg *Config) { cfg.SummaryStore = "redis" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := validConfig()

	assert.Equal(t, SourceSheet, cfg.InputSource())
	assert.Equal(t, StoreSheet, cfg.SummaryStoreOrDefault())
	assert.False(t, cfg.UsesPostgres())

	cfg.SummaryStore = StorePostgres
	assert.True(t, cfg.UsesPostgres())
}

func TestConfig_Event(t *testing.T) {
	cfg := validConfig()

	event, ok := cfg.Event("troops")
	require.True(t, ok)
	assert.Equal(t, "Minister of Education", event.Role)
	assert.Equal(t, "Troop Training", event.MessageActivity())

	_, ok = cfg.Event("research")
	assert.False(t, ok)

	assert.Equal(t, "Research", Event{Title: "Research"}.MessageActivity())
}

const validYAML = `
responsesSheetID: "responses123"
responsesTab: "Form Responses 5"
scheduleSheetID: "schedule456"
databaseSheetID: "db789"
gmailUserID: "me"
coordinatorEmail: "lead@example.com"
speedupCap: 48
events:
  - name: construction
    title: Construction
    day: Monday
    role: Vice President
    rrule: "FREQ=WEEKLY;BYDAY=MO"
    nameColumn: "In-game name"
    optInColumn: "Do you want Vice President on Monday?"
    sortColumn: "How many refined crystals are you going to spend on Monday?"
    availabilityColumn: "Availability"
    contributionColumns:
      - "How many fire crystals are you going to spend on Monday?"
    contributionLabel: "fire crystals"
    speedupColumns:
      - "Construction speedups (days)"
      - "General speedups (days)"
    detailColumns:
      - header: "Alliance"
      - header: "Furnace level"
`

func TestLoadFromPath_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "guild_config.test.yaml")

	err := os.WriteFile(configPath, []byte(validYAML), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, "responses123", cfg.ResponsesSheetID)
	assert.Equal(t, "Form Responses 5", cfg.ResponsesTab)
	assert.Equal(t, "schedule456", cfg.ScheduleSheetID)
	assert.Equal(t, "lead@example.com", cfg.CoordinatorEmail)
	assert.Equal(t, 48, cfg.SpeedupCap)
	assert.False(t, cfg.RecomputeScarcity)

	require.Len(t, cfg.Events, 1)
	event := cfg.Events[0]
	assert.Equal(t, "construction", event.Name)
	assert.Equal(t, "Vice President", event.Role)
	assert.Equal(t, "fire crystals", event.ContributionLabel)
	assert.Len(t, event.SpeedupColumns, 2)
	require.Len(t, event.DetailColumns, 2)
	assert.Equal(t, "Furnace level", event.DetailColumns[1].Header)
	assert.Empty(t, event.DetailColumns[1].Parts)
}

func TestLoadFromPath_DatabaseURLFromEnvironment(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env/guild")

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(validYAML+"source: postgres\n"), 0644))

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)
	assert.Equal(t, "postgres://env/guild", cfg.DatabaseURL)
	assert.Equal(t, SourcePostgres, cfg.InputSource())
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("events: [unclosed"), 0644))

	_, err := LoadFromPath(configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadFromPath_FileNotFound(t *testing.T) {
	_, err := LoadFromPath("/nonexistent/path/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadWithEnv_FindsFileInWorkingDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "guild_config.staging.yaml"), []byte(validYAML), 0644))
	chdir(t, tmpDir)

	cfg, err := LoadWithEnv("staging")
	require.NoError(t, err)
	assert.Equal(t, "responses123", cfg.ResponsesSheetID)
}

func TestLoadWithEnv_NotFound(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	_, err := LoadWithEnv("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "guild_config.missing.yaml not found")
}

func TestParseOAuthClient(t *testing.T) {
	valid := `{"installed":{"client_id":"id","project_id":"guild","auth_uri":"https://accounts.google.com/o/oauth2/auth","token_uri":"https://oauth2.googleapis.com/token","auth_provider_x509_cert_url":"https://www.googleapis.com/oauth2/v1/certs","client_secret":"secret","redirect_uris":["http://localhost"]}}`

	cfg, err := ParseOAuthClient([]byte(valid))
	require.NoError(t, err)
	assert.Equal(t, "id", cfg.Installed.ClientID)

	_, err = ParseOAuthClient([]byte(`{"installed":{"client_id":"id"}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oauth client validation failed")

	_, err = ParseOAuthClient([]byte(`not json`))
	require.Error(t, err)
}

// chdir changes the working directory for the duration of the test
// (equivalent to testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldWd) })
}
