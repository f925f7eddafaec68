// Package api exposes the scheduling core over HTTP for the hosting UI.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"medigrid/internal/hours"
	"medigrid/internal/schedule"
	"medigrid/internal/selection"
)

// HTTPServer serves the appointment and grid endpoints.
type HTTPServer struct {
	scheduler *schedule.Scheduler
	axes      selection.Axes
	policy    *hours.Table
	writeLim  *rate.Limiter
	logger    *zerolog.Logger
	mux       *http.ServeMux
}

// NewHTTPServer wires the routes. writeRate/writeBurst bound mutating
// requests; reads are not limited.
func NewHTTPServer(scheduler *schedule.Scheduler, axes selection.Axes, policy *hours.Table, writeRate float64, writeBurst int, logger *zerolog.Logger) *HTTPServer {
	s := &HTTPServer{
		scheduler: scheduler,
		axes:      axes,
		policy:    policy,
		writeLim:  rate.NewLimiter(rate.Limit(writeRate), writeBurst),
		logger:    logger,
		mux:       http.NewServeMux(),
	}

	s.mux.HandleFunc("/api/appointments", s.handleAppointments)
	s.mux.HandleFunc("/api/appointments/", s.handleAppointment)
	s.mux.HandleFunc("/api/undo", s.handleUndo)
	s.mux.HandleFunc("/api/grid", s.handleGrid)
	s.mux.HandleFunc("/api/export", s.handleExport)
	s.mux.HandleFunc("/healthz", s.handleHealth)
	return s
}

func (s *HTTPServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// allowWrite applies the write rate limit; handlers call it before any
// mutating work.
func (s *HTTPServer) allowWrite(w http.ResponseWriter) bool {
	if s.writeLim.Allow() {
		return true
	}
	writeError(w, http.StatusTooManyRequests, "write rate limit exceeded")
	return false
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// schedulerStatus converts scheduler errors into HTTP status codes.
func schedulerStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, schedule.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, schedule.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, schedule.ErrOverlap):
		return http.StatusConflict
	case errors.Is(err, schedule.ErrNothingToUndo):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
