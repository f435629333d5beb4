// Package allocator assigns candidates to the half-hour slots of the day.
//
// The engine is a greedy two-phase scarcity heuristic: candidates are ranked
// least flexible first, slots are visited scarcest first, and each slot takes
// the first ranked candidate who is still free and available for it. It does
// not search for a maximum matching, so candidates can be left unassigned
// even when a complete assignment exists.
package allocator

import (
	"slices"
	"sort"

	"github.com/jakechorley/guild-scheduler/pkg/core/availability"
	"github.com/jakechorley/guild-scheduler/pkg/core/model"
)

// Allocator holds the state of one strategy run
type Allocator struct {
	strategy Strategy

	// ranked candidates in assignment priority order
	ranked []model.Candidate

	slots      []SlotResult
	assignment map[string]availability.Slot
}

// Assign runs a single strategy over the pool and slot universe.
//
// The pool is not modified, so the same pool can be given to every strategy.
// Assign always terminates with a (possibly partial) assignment; bad input has
// already been normalised away by the parser and pool builder.
func Assign(pool []model.Candidate, universe []availability.Slot, strategy Strategy) *Outcome {
	considered, excluded := applyPoolCap(pool, strategy)

	a := &Allocator{
		strategy:   strategy,
		ranked:     rankCandidates(considered, strategy),
		slots:      make([]SlotResult, len(universe)),
		assignment: make(map[string]availability.Slot),
	}
	for i, slot := range universe {
		a.slots[i] = SlotResult{Slot: slot, Position: i}
	}

	if strategy.RecomputeScarcity {
		a.assignRecomputingScarcity()
	} else {
		a.assignByInitialScarcity()
	}

	return a.buildOutcome(pool, excluded)
}

// RunAll runs every strategy independently over the same pool, in the order given
func RunAll(pool []model.Candidate, universe []availability.Slot, strategies []Strategy) []*Outcome {
	outcomes := make([]*Outcome, 0, len(strategies))
	for _, strategy := range strategies {
		outcomes = append(outcomes, Assign(pool, universe, strategy))
	}
	return outcomes
}

// applyPoolCap splits the pool into the candidates the strategy considers and
// those dropped by its cap. Both keep input order.
func applyPoolCap(pool []model.Candidate, strategy Strategy) ([]model.Candidate, []model.Candidate) {
	if strategy.PoolCap <= 0 || len(pool) <= strategy.PoolCap {
		return slices.Clone(pool), nil
	}

	byMetric := make([]int, len(pool))
	for i := range pool {
		byMetric[i] = i
	}
	sort.SliceStable(byMetric, func(i, j int) bool {
		return pool[byMetric[i]].Metric(strategy.Secondary) > pool[byMetric[j]].Metric(strategy.Secondary)
	})

	keep := make(map[int]bool, strategy.PoolCap)
	for _, i := range byMetric[:strategy.PoolCap] {
		keep[i] = true
	}

	considered := make([]model.Candidate, 0, strategy.PoolCap)
	excluded := make([]model.Candidate, 0, len(pool)-strategy.PoolCap)
	for i, candidate := range pool {
		if keep[i] {
			considered = append(considered, candidate)
		} else {
			excluded = append(excluded, candidate)
		}
	}
	return considered, excluded
}

// rankCandidates orders candidates by ascending flexibility, breaking ties by
// the secondary metric descending. Remaining ties keep input order.
func rankCandidates(candidates []model.Candidate, strategy Strategy) []model.Candidate {
	ranked := slices.Clone(candidates)
	if !strategy.RankByFlexibility {
		return ranked
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		fi, fj := ranked[i].Flexibility(), ranked[j].Flexibility()
		if fi != fj {
			return fi < fj
		}
		if strategy.Secondary == "" {
			return false
		}
		return ranked[i].Metric(strategy.Secondary) > ranked[j].Metric(strategy.Secondary)
	})
	return ranked
}

// eligibleCount counts free candidates available for the slot
func (a *Allocator) eligibleCount(slot availability.Slot) int {
	count := 0
	for _, candidate := range a.ranked {
		if _, assigned := a.assignment[candidate.Name]; assigned {
			continue
		}
		if candidate.Availability.Contains(slot) {
			count++
		}
	}
	return count
}

// assignByInitialScarcity orders every slot by scarcity once, before any
// assignment, and fills them in that order. Counts are not refreshed as
// candidates are consumed.
func (a *Allocator) assignByInitialScarcity() {
	order := make([]int, len(a.slots))
	for i := range a.slots {
		order[i] = i
		a.slots[i].Scarcity = a.eligibleCount(a.slots[i].Slot)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return a.slots[order[i]].Scarcity < a.slots[order[j]].Scarcity
	})

	for n, idx := range order {
		a.fillSlot(idx, n)
	}
}

// assignRecomputingScarcity picks the scarcest open slot again after every
// assignment. Ties go to the earliest slot.
func (a *Allocator) assignRecomputingScarcity() {
	open := make([]int, len(a.slots))
	for i := range a.slots {
		open[i] = i
	}

	for n := 0; len(open) > 0; n++ {
		best := 0
		bestCount := a.eligibleCount(a.slots[open[0]].Slot)
		for i := 1; i < len(open); i++ {
			if count := a.eligibleCount(a.slots[open[i]].Slot); count < bestCount {
				best, bestCount = i, count
			}
		}

		idx := open[best]
		a.slots[idx].Scarcity = bestCount
		a.fillSlot(idx, n)
		open = slices.Delete(open, best, best+1)
	}
}

// fillSlot assigns the first free ranked candidate available for the slot, or
// leaves it unfilled
func (a *Allocator) fillSlot(idx, order int) {
	result := &a.slots[idx]
	result.Order = order

	for _, candidate := range a.ranked {
		if _, assigned := a.assignment[candidate.Name]; assigned {
			continue
		}
		if !candidate.Availability.Contains(result.Slot) {
			continue
		}

		result.Filled = true
		result.Candidate = candidate.Name
		a.assignment[candidate.Name] = result.Slot
		return
	}
}

// buildOutcome creates the final outcome report
func (a *Allocator) buildOutcome(pool, excluded []model.Candidate) *Outcome {
	// Initialize with empty slices (not nil) for easier consumption
	outcome := &Outcome{
		Strategy:         a.strategy,
		Slots:            a.slots,
		Assignment:       a.assignment,
		Unassigned:       []Unassigned{},
		Excluded:         []Unassigned{},
		PoolSize:         len(pool),
		Considered:       len(a.ranked),
		ValidationErrors: []SlotValidationError{},
	}

	for _, candidate := range a.ranked {
		if _, assigned := a.assignment[candidate.Name]; assigned {
			continue
		}
		outcome.Unassigned = append(outcome.Unassigned, Unassigned{
			Name:   candidate.Name,
			Row:    candidate.Row,
			Reason: a.strategy.UnassignedReason,
		})
	}

	for _, candidate := range excluded {
		outcome.Excluded = append(outcome.Excluded, Unassigned{
			Name:   candidate.Name,
			Row:    candidate.Row,
			Reason: a.strategy.UnassignedReason,
		})
	}

	outcome.ValidationErrors = Validate(outcome, pool)
	return outcome
}
