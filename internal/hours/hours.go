// Package hours implements the per-weekday business-hours policy: operating
// window, break window and last-reception cutoff. The table is configuration
// data (see configs/hours.yaml), not hard-coded branches.
package hours

import (
	"fmt"
	"strings"
	"sync"

	"medigrid/internal/timegrid"
)

// ClosedMarker is the hours value for a regular day off.
const ClosedMarker = "정기휴무"

// Entry describes one weekday. Weekdays are numbered 0-6, Sunday first.
type Entry struct {
	Hours         string `yaml:"hours"`          // "09:00 - 19:00" or ClosedMarker
	BreakTime     string `yaml:"break_time"`     // "13:00 - 14:00", empty for none
	LastReception string `yaml:"last_reception"` // "18:30", empty for none
}

// Closed reports whether the entry marks a regular day off.
func (e Entry) Closed() bool {
	return strings.TrimSpace(e.Hours) == ClosedMarker || strings.TrimSpace(e.Hours) == ""
}

// Table answers slot-level policy questions for the grid. Replace swaps the
// whole table, which is how the config watcher applies hot reloads.
type Table struct {
	mu      sync.RWMutex
	entries map[int]Entry
}

func NewTable(entries map[int]Entry) *Table {
	t := &Table{entries: make(map[int]Entry)}
	t.Replace(entries)
	return t
}

// Default returns the clinic's standing policy: Sunday closed, Mon/Wed/Fri
// until 19:00, Tue/Thu until 20:00, Saturday until 14:00 with no break.
func Default() *Table {
	return NewTable(map[int]Entry{
		0: {Hours: ClosedMarker},
		1: {Hours: "08:30 - 19:00", BreakTime: "13:00 - 14:00", LastReception: "18:30"},
		2: {Hours: "08:30 - 20:00", BreakTime: "13:00 - 14:00", LastReception: "19:30"},
		3: {Hours: "08:30 - 19:00", BreakTime: "13:00 - 14:00", LastReception: "18:30"},
		4: {Hours: "08:30 - 20:00", BreakTime: "13:00 - 14:00", LastReception: "19:30"},
		5: {Hours: "08:30 - 19:00", BreakTime: "13:00 - 14:00", LastReception: "18:30"},
		6: {Hours: "08:30 - 14:00", LastReception: "13:30"},
	})
}

// Replace swaps the table contents.
func (t *Table) Replace(entries map[int]Entry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = make(map[int]Entry, len(entries))
	for wd, e := range entries {
		t.entries[wd] = e
	}
}

// Entry returns the configured entry for a weekday.
func (t *Table) Entry(weekday int) (Entry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.entries[weekday]
	return e, ok
}

// Closed reports whether the weekday is a regular day off. Unconfigured
// weekdays count as closed.
func (t *Table) Closed(weekday int) bool {
	e, ok := t.Entry(weekday)
	return !ok || e.Closed()
}

// OutOfHours reports whether a clock time (minutes from midnight) falls
// outside the weekday's operating window. A closed day is always out.
func (t *Table) OutOfHours(weekday, minutes int) bool {
	e, ok := t.Entry(weekday)
	if !ok || e.Closed() {
		return true
	}
	open, close, err := parseRange(e.Hours)
	if err != nil {
		return true
	}
	return minutes < open || minutes > close
}

// InBreak reports whether a slot's clock time falls inside the weekday's
// break window. Detection is time-based, not tied to slot positions.
func (t *Table) InBreak(weekday int, slot string) bool {
	e, ok := t.Entry(weekday)
	if !ok || e.Closed() || e.BreakTime == "" {
		return false
	}
	start, end, err := parseRange(e.BreakTime)
	if err != nil {
		return false
	}
	mins, err := timegrid.TimeToMinutes(slot)
	if err != nil {
		return false
	}
	return mins >= start && mins < end
}

// PastLastReception reports whether a clock time is past the weekday's
// last-reception cutoff. Days without a cutoff never are.
func (t *Table) PastLastReception(weekday, minutes int) bool {
	e, ok := t.Entry(weekday)
	if !ok || e.Closed() || e.LastReception == "" {
		return false
	}
	cutoff, err := timegrid.TimeToMinutes(e.LastReception)
	if err != nil {
		return false
	}
	return minutes > cutoff
}

// Selectable reports whether a slot may start a new appointment on the
// weekday: inside operating hours and not in the break window.
func (t *Table) Selectable(weekday int, slot string) bool {
	mins, err := timegrid.TimeToMinutes(slot)
	if err != nil {
		return false
	}
	return !t.OutOfHours(weekday, mins) && !t.InBreak(weekday, slot)
}

func parseRange(s string) (int, int, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time range: %s", s)
	}
	start, err := timegrid.TimeToMinutes(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, err
	}
	end, err := timegrid.TimeToMinutes(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}
