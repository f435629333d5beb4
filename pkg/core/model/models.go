package model

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jakechorley/guild-scheduler/pkg/core/availability"
)

// Metric names a numeric ranking value attached to a signup
type Metric string

const (
	// MetricContribution is the event's resource contribution (fire crystals, crystal shards, troop promotions)
	MetricContribution Metric = "contribution"
	// MetricSpeedup is the total of the specific and general speedups a player will spend
	MetricSpeedup Metric = "speedup"
)

// RawRow is one opted-in signup, already projected from the responses tab
type RawRow struct {
	// Index is the position of the row in the projected (sorted) input, starting at 0
	Index int

	// Name is the player's in-game name; rows with an empty name are skipped
	Name string

	// Availability is the raw free-text availability answer
	Availability string

	// Metrics holds the numeric ranking values for this row
	Metrics map[Metric]float64

	// Details are display cells carried through to the output sheet (alliance, furnace level, comments, ...)
	Details []string
}

// Candidate is a unique player in the pool for a run
type Candidate struct {
	Name string

	// Row is the index of the first RawRow this candidate was built from
	Row int

	Availability availability.Set
	Metrics      map[Metric]float64
}

// Flexibility is the number of slots the candidate can fill
func (c Candidate) Flexibility() int {
	return c.Availability.Len()
}

// Metric returns the value of the named metric, 0 if unset
func (c Candidate) Metric(m Metric) float64 {
	if c.Metrics == nil {
		return 0
	}
	return c.Metrics[m]
}

var leadingFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseMetric reads a numeric cell the way the form sheet is read: the leading
// number of the trimmed text is used ("12", "3.5", "40k" -> 40) and anything
// without one is 0
func ParseMetric(cell string) float64 {
	match := leadingFloat.FindString(strings.TrimSpace(cell))
	if match == "" {
		return 0
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return value
}
