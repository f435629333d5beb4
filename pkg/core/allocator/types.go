package allocator

import (
	"github.com/jakechorley/guild-scheduler/pkg/core/availability"
	"github.com/jakechorley/guild-scheduler/pkg/core/model"
)

// Reason explains why a candidate was left without a slot. Each strategy
// reports its own reason so the output sink can highlight per column.
type Reason string

const (
	ReasonScarcityRank        Reason = "scarcity-rank"
	ReasonLimitedAvailability Reason = "limited-availability"
	ReasonNoSlotMatch         Reason = "no-slot-match"
	ReasonSpeedupCapExcluded  Reason = "speedup-cap-excluded"
)

// Strategy parameterises the assignment engine
type Strategy struct {
	// Key identifies the strategy in config, logs and the run summary
	Key string

	// Title is the column header the strategy's results are published under
	Title string

	// RankByFlexibility orders candidates by ascending availability size before assignment.
	// When false the pool is used in input order.
	RankByFlexibility bool

	// Secondary breaks flexibility ties (higher wins) and is the metric the pool cap ranks by.
	// Empty means no tie-break beyond input order.
	Secondary model.Metric

	// PoolCap keeps only the top PoolCap candidates by Secondary. 0 disables the cap.
	PoolCap int

	// UnassignedReason is attached to every candidate this strategy leaves unassigned
	UnassignedReason Reason

	// RecomputeScarcity re-derives the scarcest open slot after every assignment instead
	// of ordering the slots once up front
	RecomputeScarcity bool
}

// SlotResult is the terminal state of one slot after a strategy run
type SlotResult struct {
	Slot availability.Slot

	// Position is the slot's row in the output, 0 for the first slot of the day
	Position int

	// Filled is true when Candidate holds the assigned name. An unfilled slot has an empty Candidate.
	Filled    bool
	Candidate string

	// Scarcity is the number of eligible candidates counted when the slot was ordered
	Scarcity int

	// Order is the position in which the slot was processed (0 = scarcest)
	Order int
}

// Unassigned is a candidate the strategy could not place
type Unassigned struct {
	Name string

	// Row is the candidate's input row, used by the output sink to highlight the name cell
	Row    int
	Reason Reason
}

// Outcome is the result of one strategy run
type Outcome struct {
	Strategy Strategy

	// Slots holds one result per slot of the universe, in universe order
	Slots []SlotResult

	// Assignment maps each assigned candidate to their slot
	Assignment map[string]availability.Slot

	// Unassigned are considered candidates that were not assigned, in ranked order
	Unassigned []Unassigned

	// Excluded are candidates removed by the pool cap before assignment. They are
	// never assigned and are not highlighted.
	Excluded []Unassigned

	// PoolSize is the size of the full pool given to the engine
	PoolSize int

	// Considered is the number of candidates left after the pool cap
	Considered int

	ValidationErrors []SlotValidationError
}

// Assigned returns the number of assigned candidates
func (o *Outcome) Assigned() int {
	return len(o.Assignment)
}

// Unfilled returns the number of slots with no candidate
func (o *Outcome) Unfilled() int {
	count := 0
	for _, slot := range o.Slots {
		if !slot.Filled {
			count++
		}
	}
	return count
}

// Success indicates every slot was filled and the final state is valid
func (o *Outcome) Success() bool {
	return o.Unfilled() == 0 && len(o.ValidationErrors) == 0
}

// SlotValidationError represents a broken invariant in an outcome
type SlotValidationError struct {
	// SlotIndex is the position of the offending slot, -1 when the error is not about one slot
	SlotIndex   int
	SlotLabel   string
	Check       string
	Description string
}
