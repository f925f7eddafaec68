// Package schedule owns the appointment list behind the grid: a local cache
// mirroring the persistence collaborator, mutation operations and a bounded
// undo stack. The cache mutates only after persistence succeeds.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"medigrid/internal/events"
	"medigrid/internal/grid"
	"medigrid/internal/metrics"
	"medigrid/internal/model"
	"medigrid/internal/timegrid"
)

var (
	ErrValidation    = errors.New("invalid appointment")
	ErrNotFound      = errors.New("appointment not found")
	ErrOverlap       = errors.New("appointment overlaps an existing one")
	ErrNothingToUndo = errors.New("nothing to undo")
)

// Snapshot fallbacks when a staff id is missing from the directory. A lookup
// miss degrades rendering, it does not fail the operation.
const (
	FallbackStaffName = "미지정"
	DefaultStaffColor = "#9e9e9e"
)

// Store is the persistence collaborator. Create returns the persisted record
// including a server-assigned id.
type Store interface {
	Create(ctx context.Context, a model.Appointment) (model.Appointment, error)
	Update(ctx context.Context, a model.Appointment) error
	Delete(ctx context.Context, id string) error
	FetchAll(ctx context.Context) ([]model.Appointment, error)
}

// Directory resolves staff ids to directory entries.
type Directory interface {
	Lookup(id string) (model.Staff, bool)
}

// Config tunes scheduler behavior.
type Config struct {
	// UndoDepth bounds the undo stack; 0 means the default (20).
	UndoDepth int
	// RejectOverlap makes Create and Update fail with ErrOverlap when the
	// record collides with an existing one on the same staff and date.
	// Off by default: overlapping appointments render stacked.
	RejectOverlap bool
}

// Scheduler mirrors the remote store into a local appointment list and
// provides create/update/delete with single-step undo.
type Scheduler struct {
	mu     sync.Mutex
	store  Store
	dir    Directory
	cfg    Config
	cache  []model.Appointment
	undo   *undoStack
	bus    *events.Bus
	logger *zerolog.Logger
}

func New(store Store, dir Directory, cfg Config, bus *events.Bus, logger *zerolog.Logger) *Scheduler {
	return &Scheduler{
		store:  store,
		dir:    dir,
		cfg:    cfg,
		undo:   newUndoStack(cfg.UndoDepth),
		bus:    bus,
		logger: logger,
	}
}

// Load refreshes the local cache from the store. The remote store is the
// source of truth; the cache is what the grid renders.
func (s *Scheduler) Load(ctx context.Context) error {
	all, err := s.store.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("fetch appointments: %w", err)
	}
	s.mu.Lock()
	s.cache = all
	s.mu.Unlock()
	return nil
}

// Appointments returns a copy of the cached list.
func (s *Scheduler) Appointments() []model.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Appointment, len(s.cache))
	copy(out, s.cache)
	return out
}

// Find returns the cached appointment with the given id.
func (s *Scheduler) Find(id string) (model.Appointment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.cache[i], true
	}
	return model.Appointment{}, false
}

// Create validates the candidate, snapshots staff attributes, persists it and
// appends the returned record to the cache. Validation failures never reach
// the store; store failures leave the cache untouched.
func (s *Scheduler) Create(ctx context.Context, a model.Appointment) (model.Appointment, error) {
	if err := validate(a); err != nil {
		return model.Appointment{}, err
	}
	s.snapshotStaff(&a)
	if a.Type == "" {
		a.Type = model.TypeGeneral
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cfg.RejectOverlap {
		for _, existing := range s.cache {
			if grid.Overlaps(a, existing) {
				return model.Appointment{}, fmt.Errorf("%w: %s %s-%s staff %s",
					ErrOverlap, a.Date, a.StartTime, a.EndTime, a.StaffID)
			}
		}
	}

	persisted, err := s.store.Create(ctx, a)
	if err != nil {
		return model.Appointment{}, fmt.Errorf("persist appointment: %w", err)
	}

	s.cache = append(s.cache, persisted)
	s.undo.push(UndoAction{Kind: ActionCreate, NewData: &persisted})
	metrics.IncAppointmentCreated(string(persisted.Type))
	_ = s.bus.PublishJSON(events.AppointmentCreated, persisted)
	s.logger.Info().
		Str("id", persisted.ID).
		Str("date", persisted.Date).
		Str("staff_id", persisted.StaffID).
		Str("time", persisted.StartTime+"-"+persisted.EndTime).
		Msg("appointment created")
	return persisted, nil
}

// Update replaces the cached record matching the id with the full new record
// after the store accepts it. Partial patches are not supported.
func (s *Scheduler) Update(ctx context.Context, a model.Appointment) error {
	if a.ID == "" {
		return fmt.Errorf("%w: missing id", ErrValidation)
	}
	if err := validate(a); err != nil {
		return err
	}
	s.snapshotStaff(&a)

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(a.ID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, a.ID)
	}

	if s.cfg.RejectOverlap {
		for _, existing := range s.cache {
			if existing.ID != a.ID && grid.Overlaps(a, existing) {
				return fmt.Errorf("%w: %s %s-%s staff %s",
					ErrOverlap, a.Date, a.StartTime, a.EndTime, a.StaffID)
			}
		}
	}

	if err := s.store.Update(ctx, a); err != nil {
		return fmt.Errorf("persist update: %w", err)
	}

	old := s.cache[i]
	s.cache[i] = a
	s.undo.push(UndoAction{Kind: ActionUpdate, OldData: &old, NewData: &a})
	metrics.IncAppointmentUpdated()
	_ = s.bus.PublishJSON(events.AppointmentUpdated, a)
	s.logger.Info().Str("id", a.ID).Msg("appointment updated")
	return nil
}

// Delete removes the appointment from the store and the cache.
func (s *Scheduler) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("persist delete: %w", err)
	}

	old := s.cache[i]
	s.cache = append(s.cache[:i], s.cache[i+1:]...)
	s.undo.push(UndoAction{Kind: ActionDelete, OldData: &old})
	metrics.IncAppointmentDeleted()
	_ = s.bus.PublishJSON(events.AppointmentDeleted, old)
	s.logger.Info().Str("id", id).Msg("appointment deleted")
	return nil
}

// Undo reverses the most recent mutation through the same store as the
// forward action. When the inverse call fails the entry is restored to the
// stack so a retry remains possible.
func (s *Scheduler) Undo(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	action, ok := s.undo.pop()
	if !ok {
		return ErrNothingToUndo
	}

	switch action.Kind {
	case ActionCreate:
		if err := s.store.Delete(ctx, action.NewData.ID); err != nil {
			s.undo.push(action)
			return fmt.Errorf("undo create: %w", err)
		}
		if i := s.indexOf(action.NewData.ID); i >= 0 {
			s.cache = append(s.cache[:i], s.cache[i+1:]...)
		}

	case ActionUpdate:
		if err := s.store.Update(ctx, *action.OldData); err != nil {
			s.undo.push(action)
			return fmt.Errorf("undo update: %w", err)
		}
		if i := s.indexOf(action.OldData.ID); i >= 0 {
			s.cache[i] = *action.OldData
		}

	case ActionDelete:
		restored, err := s.store.Create(ctx, *action.OldData)
		if err != nil {
			s.undo.push(action)
			return fmt.Errorf("undo delete: %w", err)
		}
		s.cache = append(s.cache, restored)

	default:
		return fmt.Errorf("unknown undo action %q", action.Kind)
	}

	metrics.IncUndoApplied(string(action.Kind))
	_ = s.bus.PublishJSON(events.AppointmentUndone, map[string]string{"action": string(action.Kind)})
	s.logger.Info().Str("action", string(action.Kind)).Msg("undo applied")
	return nil
}

// UndoDepth reports how many mutations are currently reversible.
func (s *Scheduler) UndoDepth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.undo.len()
}

func (s *Scheduler) indexOf(id string) int {
	for i, a := range s.cache {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func (s *Scheduler) snapshotStaff(a *model.Appointment) {
	staff, ok := s.dir.Lookup(a.StaffID)
	if !ok {
		s.logger.Warn().Str("staff_id", a.StaffID).Msg("staff not in directory, using fallback")
		a.StaffName = FallbackStaffName
		a.StaffColor = DefaultStaffColor
		return
	}
	a.StaffName = staff.Name
	a.StaffColor = staff.Color
}

func validate(a model.Appointment) error {
	if a.StartTime == "" || a.EndTime == "" {
		return fmt.Errorf("%w: start and end time are required", ErrValidation)
	}
	start, err := timegrid.TimeToMinutes(a.StartTime)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	end, err := timegrid.TimeToMinutes(a.EndTime)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if end <= start {
		return fmt.Errorf("%w: end time %s must be after start time %s", ErrValidation, a.EndTime, a.StartTime)
	}
	if a.Date == "" {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}
	return nil
}
