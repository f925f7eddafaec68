package api

import (
	"fmt"
	"net/http"
	"time"

	"medigrid/internal/export"
	"medigrid/internal/grid"
	"medigrid/internal/metrics"
	"medigrid/internal/model"
)

// GridHeader is one (date, staff) header cell with its resolved column.
type GridHeader struct {
	Date      string `json:"date"`
	StaffID   string `json:"staff_id"`
	StaffName string `json:"staff_name"`
	Column    int    `json:"column"`
}

// GridBlock pairs a renderable appointment with its grid placement.
type GridBlock struct {
	Appointment model.Appointment `json:"appointment"`
	Placement   grid.Placement    `json:"placement"`
}

// GridResponse is the full render payload for the hosting page.
type GridResponse struct {
	Slots      []string          `json:"slots"`
	Headers    []GridHeader      `json:"headers"`
	Blocks     []GridBlock       `json:"blocks"`
	Selectable map[string][]bool `json:"selectable"` // date -> per-slot mask
}

// handleGrid returns everything the page needs to draw the board: the slot
// sequence, header columns, placed appointment blocks and the per-date
// selectability mask. Appointments whose start time is off the sequence are
// skipped, not errored.
// GET /api/grid
func (s *HTTPServer) handleGrid(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("grid")

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	staffCount := len(s.axes.Staff)
	renderer := grid.NewRenderer(s.axes.Slots, staffCount, s.logger)

	resp := GridResponse{
		Slots:      s.axes.Slots,
		Selectable: make(map[string][]bool, len(s.axes.Dates)),
	}

	for dateIndex, date := range s.axes.Dates {
		weekday := s.axes.Weekday(dateIndex)
		mask := make([]bool, len(s.axes.Slots))
		for i, slot := range s.axes.Slots {
			mask[i] = weekday >= 0 && s.policy.Selectable(weekday, slot)
		}
		resp.Selectable[date] = mask

		for staffIndex, staff := range s.axes.Staff {
			resp.Headers = append(resp.Headers, GridHeader{
				Date:      date,
				StaffID:   staff.ID,
				StaffName: staff.Name,
				Column:    grid.HeaderColumn(dateIndex, staffIndex, staffCount),
			})
		}
	}

	for _, a := range s.scheduler.Appointments() {
		staffIndex := s.axes.Staff.IndexOf(a.StaffID)
		if staffIndex < 0 {
			s.logger.Warn().Str("id", a.ID).Str("staff_id", a.StaffID).Msg("appointment staff not on axis, skipping render")
			continue
		}
		p, ok := renderer.Place(a, staffIndex)
		if !ok {
			continue
		}
		resp.Blocks = append(resp.Blocks, GridBlock{Appointment: a, Placement: p})
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleExport streams the current week as an xlsx workbook.
// GET /api/export
func (s *HTTPServer) handleExport(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("export")

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	filename := fmt.Sprintf("schedule_%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)

	if err := export.WriteWeek(w, s.axes.Dates, s.axes.Staff, s.scheduler.Appointments()); err != nil {
		s.logger.Error().Err(err).Msg("export failed")
	}
}
