package availability

import (
	"fmt"
	"strconv"
	"strings"
)

// SlotsPerDay is the number of half-hour slots in a day
const SlotsPerDay = 48

// Slot is a half-hour interval of the day identified by its start time
type Slot struct {
	Hour   int
	Minute int // 0 or 30
}

// Label renders the canonical slot label with no leading zero on the hour ("9:00", "0:30")
func (s Slot) Label() string {
	return fmt.Sprintf("%d:%02d", s.Hour, s.Minute)
}

// Padded renders the slot label with a two digit hour ("09:00"), as written in the cleaned availability column
func (s Slot) Padded() string {
	return fmt.Sprintf("%02d:%02d", s.Hour, s.Minute)
}

// End returns the label of the time the slot finishes, padded ("09:30" for 9:00, "00:00" for 23:30)
func (s Slot) End() string {
	minutes := (s.Index() + 1) * 30
	return fmt.Sprintf("%02d:%02d", (minutes/60)%24, minutes%60)
}

// Index returns the chronological position of the slot within the day (0..47)
func (s Slot) Index() int {
	return s.Hour*2 + s.Minute/30
}

// Valid reports whether the slot is one of the 48 slots of the day
func (s Slot) Valid() bool {
	return s.Hour >= 0 && s.Hour < 24 && (s.Minute == 0 || s.Minute == 30)
}

// Universe returns the 48 slots of the day in chronological order
func Universe() []Slot {
	slots := make([]Slot, 0, SlotsPerDay)
	for i := 0; i < SlotsPerDay; i++ {
		slots = append(slots, Slot{Hour: i / 2, Minute: (i % 2) * 30})
	}
	return slots
}

// ParseLabel parses a time label such as "9:30", "09:30" or "00:00" into a Slot.
// The hour and minute are parsed as numbers, so any number of leading zeros on
// the hour normalises to the same slot.
func ParseLabel(label string) (Slot, bool) {
	label = strings.TrimSpace(label)
	hourStr, minuteStr, ok := strings.Cut(label, ":")
	if !ok || hourStr == "" || len(minuteStr) != 2 {
		return Slot{}, false
	}

	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return Slot{}, false
	}
	minute, err := strconv.Atoi(minuteStr)
	if err != nil {
		return Slot{}, false
	}

	slot := Slot{Hour: hour, Minute: minute}
	if !slot.Valid() {
		return Slot{}, false
	}
	return slot, true
}

// NormalizeLabel returns the canonical label for a time string, or "" if it is not a slot time
func NormalizeLabel(label string) string {
	slot, ok := ParseLabel(label)
	if !ok {
		return ""
	}
	return slot.Label()
}
