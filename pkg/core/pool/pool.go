// Package pool turns projected signup rows into the run's candidate pool.
package pool

import (
	"maps"

	"github.com/jakechorley/guild-scheduler/pkg/core/availability"
	"github.com/jakechorley/guild-scheduler/pkg/core/model"
)

// Build creates the candidate pool from rows in input order.
//
// The first row for a name wins: later rows with the same name are dropped even
// if they carry more availability. Rows with an empty name are skipped. The
// pool keeps first-seen order; ranking happens in the allocator.
func Build(rows []model.RawRow) []model.Candidate {
	seen := make(map[string]bool)
	candidates := make([]model.Candidate, 0, len(rows))

	for _, row := range rows {
		if row.Name == "" || seen[row.Name] {
			continue
		}
		seen[row.Name] = true

		candidates = append(candidates, model.Candidate{
			Name:         row.Name,
			Row:          row.Index,
			Availability: availability.Parse(row.Availability),
			Metrics:      maps.Clone(row.Metrics),
		})
	}

	return candidates
}

// FindDuplicates returns the names that appear on more than one row, in order
// of first appearance. Empty names are ignored.
func FindDuplicates(rows []model.RawRow) []string {
	counts := make(map[string]int)
	var order []string

	for _, row := range rows {
		if row.Name == "" {
			continue
		}
		if counts[row.Name] == 0 {
			order = append(order, row.Name)
		}
		counts[row.Name]++
	}

	duplicates := []string{}
	for _, name := range order {
		if counts[name] > 1 {
			duplicates = append(duplicates, name)
		}
	}
	return duplicates
}

// DuplicateRows returns the indices of every row whose name is duplicated
func DuplicateRows(rows []model.RawRow) []int {
	duplicates := make(map[string]bool)
	for _, name := range FindDuplicates(rows) {
		duplicates[name] = true
	}

	indices := []int{}
	for _, row := range rows {
		if duplicates[row.Name] {
			indices = append(indices, row.Index)
		}
	}
	return indices
}
