package allocator

import (
	"fmt"

	"github.com/jakechorley/guild-scheduler/pkg/core/availability"
	"github.com/jakechorley/guild-scheduler/pkg/core/model"
)

// Check names reported in SlotValidationError
const (
	CheckTerminalState = "TerminalState"
	CheckInjective     = "Injective"
	CheckEligibility   = "Eligibility"
	CheckPoolCap       = "PoolCap"
	CheckAccounting    = "Accounting"
)

// Validate checks the invariants every outcome must hold against the pool it was built from.
// Returns a slice of validation errors (empty if all valid).
func Validate(outcome *Outcome, pool []model.Candidate) []SlotValidationError {
	errors := []SlotValidationError{}
	if outcome == nil {
		return errors
	}

	byName := make(map[string]model.Candidate, len(pool))
	for _, candidate := range pool {
		if _, exists := byName[candidate.Name]; !exists {
			byName[candidate.Name] = candidate
		}
	}

	excluded := make(map[string]bool, len(outcome.Excluded))
	for _, e := range outcome.Excluded {
		excluded[e.Name] = true
	}

	slotsByCandidate := make(map[string][]int)
	filled := 0

	for i, result := range outcome.Slots {
		// Each slot is either filled by exactly one candidate or unfilled
		if result.Filled != (result.Candidate != "") {
			errors = append(errors, slotError(i, result.Slot, CheckTerminalState,
				fmt.Sprintf("slot is filled=%t with candidate %q", result.Filled, result.Candidate)))
			continue
		}
		if !result.Filled {
			continue
		}
		filled++
		slotsByCandidate[result.Candidate] = append(slotsByCandidate[result.Candidate], i)

		candidate, ok := byName[result.Candidate]
		if !ok {
			errors = append(errors, slotError(i, result.Slot, CheckEligibility,
				fmt.Sprintf("candidate %s is not in the pool", result.Candidate)))
			continue
		}
		if !candidate.Availability.Contains(result.Slot) {
			errors = append(errors, slotError(i, result.Slot, CheckEligibility,
				fmt.Sprintf("candidate %s is not available for %s", result.Candidate, result.Slot.Label())))
		}
		if excluded[result.Candidate] {
			errors = append(errors, slotError(i, result.Slot, CheckPoolCap,
				fmt.Sprintf("candidate %s was excluded by the pool cap but assigned", result.Candidate)))
		}
	}

	// No candidate holds more than one slot
	for name, indices := range slotsByCandidate {
		if len(indices) > 1 {
			errors = append(errors, SlotValidationError{
				SlotIndex:   indices[1],
				SlotLabel:   outcome.Slots[indices[1]].Slot.Label(),
				Check:       CheckInjective,
				Description: fmt.Sprintf("candidate %s is assigned to %d slots", name, len(indices)),
			})
		}
	}

	if len(outcome.Assignment) != len(slotsByCandidate) {
		errors = append(errors, globalError(CheckAccounting,
			fmt.Sprintf("assignment holds %d candidates but slots hold %d", len(outcome.Assignment), len(slotsByCandidate))))
	}

	if bound := min(outcome.Considered, len(outcome.Slots)); filled > bound {
		errors = append(errors, globalError(CheckAccounting,
			fmt.Sprintf("%d slots filled but at most %d can be", filled, bound)))
	}

	if assigned := len(slotsByCandidate); assigned+len(outcome.Unassigned) != outcome.Considered {
		errors = append(errors, globalError(CheckAccounting,
			fmt.Sprintf("%d assigned and %d unassigned do not add up to %d considered",
				assigned, len(outcome.Unassigned), outcome.Considered)))
	}

	if outcome.Considered+len(outcome.Excluded) != outcome.PoolSize {
		errors = append(errors, globalError(CheckPoolCap,
			fmt.Sprintf("%d considered and %d excluded do not add up to a pool of %d",
				outcome.Considered, len(outcome.Excluded), outcome.PoolSize)))
	}

	return errors
}

func slotError(index int, slot availability.Slot, check, description string) SlotValidationError {
	return SlotValidationError{
		SlotIndex:   index,
		SlotLabel:   slot.Label(),
		Check:       check,
		Description: description,
	}
}

func globalError(check, description string) SlotValidationError {
	return SlotValidationError{
		SlotIndex:   -1,
		Check:       check,
		Description: description,
	}
}
