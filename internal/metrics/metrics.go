package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	appointmentCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "medigrid",
			Name:      "appointment_created_total",
			Help:      "Count of appointments created by type.",
		},
		[]string{"type"},
	)

	appointmentUpdated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "medigrid",
			Name:      "appointment_updated_total",
			Help:      "Count of appointment updates.",
		},
	)

	appointmentDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "medigrid",
			Name:      "appointment_deleted_total",
			Help:      "Count of appointment deletions.",
		},
	)

	undoApplied = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "medigrid",
			Name:      "undo_applied_total",
			Help:      "Count of undo operations by reversed action.",
		},
		[]string{"action"},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "medigrid",
			Name:      "http_requests_total",
			Help:      "Count of HTTP API requests by endpoint.",
		},
		[]string{"endpoint"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(appointmentCreated, appointmentUpdated, appointmentDeleted, undoApplied, httpRequests)
	})
}

func IncAppointmentCreated(apptType string) {
	appointmentCreated.WithLabelValues(apptType).Inc()
}

func IncAppointmentUpdated() {
	appointmentUpdated.Inc()
}

func IncAppointmentDeleted() {
	appointmentDeleted.Inc()
}

func IncUndoApplied(action string) {
	undoApplied.WithLabelValues(action).Inc()
}

func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}
