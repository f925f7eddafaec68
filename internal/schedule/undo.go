package schedule

import "medigrid/internal/model"

// ActionKind names a mutating operation for undo purposes.
type ActionKind string

const (
	ActionCreate ActionKind = "create"
	ActionUpdate ActionKind = "update"
	ActionDelete ActionKind = "delete"
)

// UndoAction records one mutation. Undoing re-invokes the inverse persistence
// call: delete for create, restore-old for update, re-create for delete.
type UndoAction struct {
	Kind    ActionKind
	OldData *model.Appointment
	NewData *model.Appointment
}

// undoStack is a bounded LIFO of recent mutations. The oldest entry falls
// off when the bound is exceeded. Session-local only.
type undoStack struct {
	depth   int
	actions []UndoAction
}

const defaultUndoDepth = 20

func newUndoStack(depth int) *undoStack {
	if depth <= 0 {
		depth = defaultUndoDepth
	}
	return &undoStack{depth: depth}
}

func (s *undoStack) push(a UndoAction) {
	s.actions = append(s.actions, a)
	if len(s.actions) > s.depth {
		s.actions = s.actions[len(s.actions)-s.depth:]
	}
}

func (s *undoStack) pop() (UndoAction, bool) {
	if len(s.actions) == 0 {
		return UndoAction{}, false
	}
	a := s.actions[len(s.actions)-1]
	s.actions = s.actions[:len(s.actions)-1]
	return a, true
}

func (s *undoStack) len() int {
	return len(s.actions)
}
