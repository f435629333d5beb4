// Package availability turns the free-text availability answers from the signup
// form into sets of half-hour slots.
//
// Answers look like "9-11 UTC (18-20 KST), 14-15 UTC". Only clauses starting
// with "<start>-<end> UTC" carry meaning; everything else is discarded.
package availability

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var utcRangePattern = regexp.MustCompile(`^(\d{1,2})-(\d{1,2}) UTC`)

// Set is the set of slots a candidate is available for
type Set map[Slot]struct{}

// NewSet builds a set from the given slots
func NewSet(slots ...Slot) Set {
	set := make(Set, len(slots))
	for _, slot := range slots {
		set.Add(slot)
	}
	return set
}

// Add inserts a slot into the set
func (s Set) Add(slot Slot) {
	s[slot] = struct{}{}
}

// Contains reports whether the slot is in the set
func (s Set) Contains(slot Slot) bool {
	_, ok := s[slot]
	return ok
}

// Len returns the number of slots in the set
func (s Set) Len() int {
	return len(s)
}

// Slots returns the slots in chronological order
func (s Set) Slots() []Slot {
	slots := make([]Slot, 0, len(s))
	for slot := range s {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Index() < slots[j].Index()
	})
	return slots
}

// Labels returns the canonical labels of the slots in chronological order
func (s Set) Labels() []string {
	slots := s.Slots()
	labels := make([]string, len(slots))
	for i, slot := range slots {
		labels[i] = slot.Label()
	}
	return labels
}

// Parse extracts the UTC ranges from a raw availability answer.
//
// The answer is split on commas and each trimmed part is matched against
// "<start>-<end> UTC" at its start. A range covers the hours [start, end),
// each hour contributing its :00 and :30 slots. Parts that don't match are
// ignored, so the worst case is an empty set.
func Parse(raw string) Set {
	set := make(Set)
	if raw == "" {
		return set
	}

	for _, part := range strings.Split(raw, ",") {
		match := utcRangePattern.FindStringSubmatch(strings.TrimSpace(part))
		if match == nil {
			continue
		}

		start, _ := strconv.Atoi(match[1])
		end, _ := strconv.Atoi(match[2])

		// Hours past the end of the day can never match a slot
		for h := start; h < end && h < 24; h++ {
			set.Add(Slot{Hour: h, Minute: 0})
			set.Add(Slot{Hour: h, Minute: 30})
		}
	}

	return set
}

// Clean renders a raw availability answer as the padded slot list shown in the
// cleaned availability column, e.g. "09:00, 09:30, 10:00, 10:30"
func Clean(raw string) string {
	return Padded(Parse(raw))
}

// Padded joins the padded labels of the set in chronological order
func Padded(set Set) string {
	slots := set.Slots()
	labels := make([]string, len(slots))
	for i, slot := range slots {
		labels[i] = slot.Padded()
	}
	return strings.Join(labels, ", ")
}

// ParseLabels reads a cleaned availability string ("09:00, 09:30") back into a set.
// Labels that aren't slot times are skipped.
func ParseLabels(cleaned string) Set {
	set := make(Set)
	if strings.TrimSpace(cleaned) == "" {
		return set
	}
	for _, label := range strings.Split(cleaned, ",") {
		if slot, ok := ParseLabel(label); ok {
			set.Add(slot)
		}
	}
	return set
}

// Render writes the set back out as UTC range clauses ("9-11 UTC, 14-15 UTC")
// that Parse accepts. Only whole hours can be expressed as a range, so an hour
// with just one of its two slots in the set is left out.
func Render(set Set) string {
	var clauses []string
	start := -1

	for h := 0; h <= 24; h++ {
		whole := h < 24 && set.Contains(Slot{Hour: h, Minute: 0}) && set.Contains(Slot{Hour: h, Minute: 30})
		switch {
		case whole && start == -1:
			start = h
		case !whole && start != -1:
			clauses = append(clauses, fmt.Sprintf("%d-%d UTC", start, h))
			start = -1
		}
	}

	return strings.Join(clauses, ", ")
}
