package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"medigrid/internal/metrics"
	"medigrid/internal/model"
)

// handleAppointments lists or creates appointments.
// GET /api/appointments?date=YYYY-MM-DD
// POST /api/appointments
func (s *HTTPServer) handleAppointments(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("appointments")

	switch r.Method {
	case http.MethodGet:
		date := r.URL.Query().Get("date")
		all := s.scheduler.Appointments()
		if date == "" {
			writeJSON(w, http.StatusOK, map[string]interface{}{"appointments": all})
			return
		}
		filtered := make([]model.Appointment, 0, len(all))
		for _, a := range all {
			if a.Date == date {
				filtered = append(filtered, a)
			}
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"appointments": filtered})

	case http.MethodPost:
		if !s.allowWrite(w) {
			return
		}
		var a model.Appointment
		if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		persisted, err := s.scheduler.Create(r.Context(), a)
		if err != nil {
			s.logger.Error().Err(err).Msg("create appointment failed")
			writeError(w, schedulerStatus(err), err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, persisted)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleAppointment updates or deletes a single appointment.
// PUT /api/appointments/{id}
// DELETE /api/appointments/{id}
func (s *HTTPServer) handleAppointment(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("appointment")

	id := strings.TrimPrefix(r.URL.Path, "/api/appointments/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "missing appointment id")
		return
	}

	switch r.Method {
	case http.MethodPut:
		if !s.allowWrite(w) {
			return
		}
		var a model.Appointment
		if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		a.ID = id
		if err := s.scheduler.Update(r.Context(), a); err != nil {
			s.logger.Error().Err(err).Str("id", id).Msg("update appointment failed")
			writeError(w, schedulerStatus(err), err.Error())
			return
		}
		writeJSON(w, http.StatusOK, a)

	case http.MethodDelete:
		if !s.allowWrite(w) {
			return
		}
		if err := s.scheduler.Delete(r.Context(), id); err != nil {
			s.logger.Error().Err(err).Str("id", id).Msg("delete appointment failed")
			writeError(w, schedulerStatus(err), err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"deleted": id})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleUndo reverses the most recent mutation.
// POST /api/undo
func (s *HTTPServer) handleUndo(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("undo")

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use POST")
		return
	}
	if !s.allowWrite(w) {
		return
	}

	if err := s.scheduler.Undo(r.Context()); err != nil {
		s.logger.Error().Err(err).Msg("undo failed")
		writeError(w, schedulerStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"undone":    true,
		"remaining": s.scheduler.UndoDepth(),
	})
}
