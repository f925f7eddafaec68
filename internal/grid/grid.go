// Package grid maps appointments and drag regions to grid coordinates.
package grid

import (
	"github.com/rs/zerolog"

	"medigrid/internal/model"
	"medigrid/internal/selection"
	"medigrid/internal/timegrid"
)

// Column returns the 1-based grid column of a (date, staff) pair. Each date
// block carries a leading time-label column, hence the staffCount+1 stride.
// Headers and appointment blocks must both go through this formula; any
// divergence misaligns blocks from their column.
func Column(dateIndex, staffIndex, staffCount int) int {
	return dateIndex*(staffCount+1) + staffIndex + 2
}

// HeaderColumn returns the column of a (date, staff) header cell.
func HeaderColumn(dateIndex, staffIndex, staffCount int) int {
	return Column(dateIndex, staffIndex, staffCount)
}

// Placement locates a block on the grid: 1-based column and start row plus
// the number of rows it spans.
type Placement struct {
	Column int `json:"column"`
	Row    int `json:"row"`
	Span   int `json:"span"`
}

// Renderer places appointments against a fixed slot sequence and staff axis.
type Renderer struct {
	seq        []string
	staffCount int
	logger     *zerolog.Logger
}

func NewRenderer(seq []string, staffCount int, logger *zerolog.Logger) *Renderer {
	return &Renderer{seq: seq, staffCount: staffCount, logger: logger}
}

// Place maps an appointment to grid coordinates. It reports false when the
// appointment's start time is not on the slot sequence (stale data after the
// sequence was regenerated); such appointments are skipped, not rendered.
func (r *Renderer) Place(a model.Appointment, staffIndex int) (Placement, bool) {
	row := timegrid.IndexOf(r.seq, a.StartTime)
	if row < 0 {
		r.logger.Warn().
			Str("appointment_id", a.ID).
			Str("start_time", a.StartTime).
			Msg("start time not on slot sequence, skipping render")
		return Placement{}, false
	}

	span, err := timegrid.SlotsBetween(a.StartTime, a.EndTime)
	if err != nil {
		r.logger.Warn().
			Str("appointment_id", a.ID).
			Err(err).
			Msg("unreadable appointment times, skipping render")
		return Placement{}, false
	}

	return Placement{
		Column: Column(a.DateIndex, staffIndex, r.staffCount),
		Row:    row + 1,
		Span:   span,
	}, true
}

// PlaceRegion maps an in-progress drag region to grid coordinates.
func (r *Renderer) PlaceRegion(reg selection.Region) Placement {
	start, end := reg.StartTimeIndex, reg.EndTimeIndex
	if end < start {
		start, end = end, start
	}
	return Placement{
		Column: Column(reg.DateIndex, reg.StaffIndex, r.staffCount),
		Row:    start + 1,
		Span:   end - start + 1,
	}
}

// Overlaps reports whether two appointments occupy the same (date, staff)
// column with intersecting time ranges. Malformed times count as no overlap.
func Overlaps(a, b model.Appointment) bool {
	if a.Date != b.Date || a.StaffID != b.StaffID {
		return false
	}
	aStart, err := timegrid.TimeToMinutes(a.StartTime)
	if err != nil {
		return false
	}
	aEnd, err := timegrid.TimeToMinutes(a.EndTime)
	if err != nil {
		return false
	}
	bStart, err := timegrid.TimeToMinutes(b.StartTime)
	if err != nil {
		return false
	}
	bEnd, err := timegrid.TimeToMinutes(b.EndTime)
	if err != nil {
		return false
	}
	return aStart < bEnd && bStart < aEnd
}
