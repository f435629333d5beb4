package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// Input sources for signup responses
const (
	SourceSheet    = "sheet"
	SourceForm     = "form"
	SourcePostgres = "postgres"
)

// Stores for the run summary log
const (
	StoreSheet    = "sheet"
	StorePostgres = "postgres"
)

// DetailPart is one source column of a composite detail cell
type DetailPart struct {
	Column string `yaml:"column" validate:"required"`
	Suffix string `yaml:"suffix,omitempty"`
}

// DetailColumn is a display column carried from the responses to the schedule.
// With no parts the cell is copied from the column titled Header. With parts the
// non-empty "<value> <suffix>" pieces are joined with ", ".
type DetailColumn struct {
	Header string       `yaml:"header" validate:"required"`
	Parts  []DetailPart `yaml:"parts,omitempty" validate:"dive"`
}

// Event is one recurring guild event scheduled from the shared responses tab
type Event struct {
	Name  string `yaml:"name" validate:"required"`
	Title string `yaml:"title" validate:"required"`
	Day   string `yaml:"day" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	Role  string `yaml:"role" validate:"required"`

	// Activity names the event in the direct message copy, defaults to Title
	Activity string `yaml:"activity,omitempty"`

	// RRule gives the event's occurrences, used to date the schedule tab
	RRule string `yaml:"rrule" validate:"required"`

	NameColumn         string `yaml:"nameColumn" validate:"required"`
	OptInColumn        string `yaml:"optInColumn" validate:"required"`
	SortColumn         string `yaml:"sortColumn" validate:"required"`
	AvailabilityColumn string `yaml:"availabilityColumn" validate:"required"`

	ContributionColumns []string `yaml:"contributionColumns" validate:"required,min=1"`
	ContributionLabel   string   `yaml:"contributionLabel,omitempty"`
	SpeedupColumns      []string `yaml:"speedupColumns" validate:"required,min=1"`

	DetailColumns []DetailColumn `yaml:"detailColumns,omitempty" validate:"dive"`
}

// MessageActivity returns the activity name used in direct messages
func (e Event) MessageActivity() string {
	if e.Activity != "" {
		return e.Activity
	}
	return e.Title
}

// Config represents the application configuration
type Config struct {
	ResponsesSheetID string `yaml:"responsesSheetID" validate:"required"`
	ResponsesTab     string `yaml:"responsesTab" validate:"required"`

	Source      string `yaml:"source,omitempty" validate:"omitempty,oneof=sheet form postgres"`
	FormID      string `yaml:"formID,omitempty" validate:"required_if=Source form"`
	DatabaseURL string `yaml:"databaseURL,omitempty"`

	ScheduleSheetID string `yaml:"scheduleSheetID" validate:"required"`
	DatabaseSheetID string `yaml:"databaseSheetID" validate:"required"`
	SummaryStore    string `yaml:"summaryStore,omitempty" validate:"omitempty,oneof=sheet postgres"`

	GmailUserID      string `yaml:"gmailUserID" validate:"required"`
	GmailSender      string `yaml:"gmailSender,omitempty"`
	CoordinatorEmail string `yaml:"coordinatorEmail,omitempty" validate:"omitempty,email"`

	SpeedupCap        int  `yaml:"speedupCap,omitempty" validate:"omitempty,min=1"`
	RecomputeScarcity bool `yaml:"recomputeScarcity,omitempty"`

	Events []Event `yaml:"events" validate:"required,min=1,dive"`
}

// InputSource returns the configured response source, defaulting to the responses sheet
func (c *Config) InputSource() string {
	if c.Source == "" {
		return SourceSheet
	}
	return c.Source
}

// SummaryStoreOrDefault returns the configured run summary store, defaulting to the database sheet
func (c *Config) SummaryStoreOrDefault() string {
	if c.SummaryStore == "" {
		return StoreSheet
	}
	return c.SummaryStore
}

// UsesPostgres reports whether any part of the run needs a database connection
func (c *Config) UsesPostgres() bool {
	return c.InputSource() == SourcePostgres || c.SummaryStoreOrDefault() == StorePostgres
}

// Event returns the event with the given name
func (c *Config) Event(name string) (*Event, bool) {
	for i := range c.Events {
		if c.Events[i].Name == name {
			return &c.Events[i], true
		}
	}
	return nil, false
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads and validates guild_config.<env>.yaml.
// It looks for the config file in the current directory first, then in the user's home directory
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findFile(fmt.Sprintf("guild_config.%s.yaml", env))
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path.
// DATABASE_URL from the environment fills in an empty databaseURL.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct, event names and rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.UsesPostgres() && cfg.DatabaseURL == "" {
		return fmt.Errorf("config validation failed: databaseURL (or DATABASE_URL) is required when postgres is used")
	}

	seen := make(map[string]bool)
	for i, event := range cfg.Events {
		if seen[event.Name] {
			return fmt.Errorf("duplicate event name in events[%d]: %s", i, event.Name)
		}
		seen[event.Name] = true

		if _, err := rrule.StrToRRule(event.RRule); err != nil {
			return fmt.Errorf("invalid rrule in events[%d]: %w", i, err)
		}
	}

	return nil
}

// findFile searches for fileName in the current directory and then the home directory
func findFile(fileName string) (string, error) {
	if _, err := os.Stat(fileName); err == nil {
		return fileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homePath := filepath.Join(homeDir, fileName)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", fileName)
}
