// Package selection tracks pointer-driven range selection within one
// (date, staff) column of the scheduling grid.
package selection

import (
	"sync"
	"time"

	"medigrid/internal/hours"
	"medigrid/internal/model"
	"medigrid/internal/timegrid"
)

// State of the drag engine.
type State string

const (
	StateIdle     State = "idle"
	StateDragging State = "dragging"
)

// Axes is the grid configuration supplied by the hosting page: ordered date
// columns, ordered staff columns and the slot sequence.
type Axes struct {
	Dates []string // YYYY-MM-DD, display order
	Staff model.StaffList
	Slots []string
}

// Weekday returns the weekday number (0-6, Sunday first) of a date column,
// or -1 for an unparseable date.
func (a Axes) Weekday(dateIndex int) int {
	if dateIndex < 0 || dateIndex >= len(a.Dates) {
		return -1
	}
	d, err := time.Parse(model.DateFormat, a.Dates[dateIndex])
	if err != nil {
		return -1
	}
	return int(d.Weekday())
}

// Region is the in-progress drag rectangle. Extend keeps EndTimeIndex at or
// after StartTimeIndex, so the region is already normalized while dragging.
type Region struct {
	DateIndex      int
	StaffIndex     int
	StartTimeIndex int
	EndTimeIndex   int
}

// Engine is the drag state machine: idle -> dragging -> idle. State is
// process-local and never persisted.
type Engine struct {
	mu     sync.Mutex
	state  State
	region Region
	axes   Axes
	policy *hours.Table
}

func New(axes Axes, policy *hours.Table) *Engine {
	return &Engine{state: StateIdle, axes: axes, policy: policy}
}

// Begin enters the dragging state anchored at a cell. It is a no-op when the
// cell is out of range or not selectable (closed day, out of hours, break).
// A Begin while already dragging discards the stale drag and starts over,
// which is what happens when a mouse-up was never delivered.
func (e *Engine) Begin(dateIndex, staffIndex, timeIndex int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.inRange(dateIndex, staffIndex, timeIndex) {
		return false
	}
	weekday := e.axes.Weekday(dateIndex)
	if weekday < 0 || !e.policy.Selectable(weekday, e.axes.Slots[timeIndex]) {
		return false
	}

	e.state = StateDragging
	e.region = Region{
		DateIndex:      dateIndex,
		StaffIndex:     staffIndex,
		StartTimeIndex: timeIndex,
		EndTimeIndex:   timeIndex,
	}
	return true
}

// Extend grows the drag region downward. It only applies while dragging, in
// the origin column, and never before the origin row: a drag cannot cross
// columns and cannot shrink below where it started.
func (e *Engine) Extend(dateIndex, staffIndex, timeIndex int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateDragging {
		return false
	}
	if dateIndex != e.region.DateIndex || staffIndex != e.region.StaffIndex {
		return false
	}
	if timeIndex < e.region.StartTimeIndex || timeIndex >= len(e.axes.Slots) {
		return false
	}
	e.region.EndTimeIndex = timeIndex
	return true
}

// Commit materializes the drag into a Selection with resolved date, staff
// and clock times; end time is one slot past the last selected slot. The
// engine returns to idle. Commit on an idle engine reports false.
func (e *Engine) Commit() (model.Selection, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateDragging {
		return model.Selection{}, false
	}
	e.state = StateIdle
	r := e.region

	start, end := r.StartTimeIndex, r.EndTimeIndex
	if end < start {
		start, end = end, start
	}

	endTime, err := timegrid.EndOf(e.axes.Slots[end])
	if err != nil {
		return model.Selection{}, false
	}

	return model.Selection{
		DateIndex:      r.DateIndex,
		StaffIndex:     r.StaffIndex,
		StartTimeIndex: start,
		EndTimeIndex:   end,
		Date:           e.axes.Dates[r.DateIndex],
		StaffID:        e.axes.Staff[r.StaffIndex].ID,
		StartTime:      e.axes.Slots[start],
		EndTime:        endTime,
	}, true
}

// Cancel discards the drag without committing, used when the entry form is
// dismissed.
func (e *Engine) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = StateIdle
	e.region = Region{}
}

// State returns the current engine state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Active returns a snapshot of the in-progress region for rendering.
func (e *Engine) Active() (Region, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateDragging {
		return Region{}, false
	}
	return e.region, true
}

func (e *Engine) inRange(dateIndex, staffIndex, timeIndex int) bool {
	return dateIndex >= 0 && dateIndex < len(e.axes.Dates) &&
		staffIndex >= 0 && staffIndex < len(e.axes.Staff) &&
		timeIndex >= 0 && timeIndex < len(e.axes.Slots)
}
