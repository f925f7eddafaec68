package selection

import (
	"testing"

	"medigrid/internal/hours"
	"medigrid/internal/model"
	"medigrid/internal/timegrid"
)

// 2026-08-31 is a Monday, 2026-09-01 a Tuesday, 2026-09-06 a Sunday.
func testAxes(t *testing.T) Axes {
	t.Helper()
	slots, err := timegrid.ExtendSlots([]string{
		"08:30", "09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
		"12:00", "12:30", "13:00", "13:30", "14:00", "14:30", "15:00",
		"15:30", "16:00", "16:30", "17:00", "17:30", "18:00",
	}, 4)
	if err != nil {
		t.Fatalf("extend slots: %v", err)
	}
	return Axes{
		Dates: []string{"2026-08-31", "2026-09-01", "2026-09-06"},
		Staff: model.StaffList{
			{ID: "s1", Name: "김지원", Color: "#4caf50"},
			{ID: "s2", Name: "박서준", Color: "#2196f3"},
		},
		Slots: slots,
	}
}

func TestDragMonotonicity(t *testing.T) {
	e := New(testAxes(t), hours.Default())

	if !e.Begin(0, 0, 5) {
		t.Fatal("begin should succeed on a selectable cell")
	}
	if e.Extend(0, 0, 3) {
		t.Error("extending before the origin row must be ignored")
	}
	if !e.Extend(0, 0, 8) {
		t.Error("extending forward should apply")
	}

	sel, ok := e.Commit()
	if !ok {
		t.Fatal("commit should succeed while dragging")
	}
	if sel.StartTimeIndex != 5 {
		t.Errorf("start index = %d, want 5", sel.StartTimeIndex)
	}
	if sel.EndTimeIndex != 8 {
		t.Errorf("end index = %d, want 8", sel.EndTimeIndex)
	}
	if e.State() != StateIdle {
		t.Error("engine should return to idle after commit")
	}
}

func TestExtendCannotCrossColumns(t *testing.T) {
	e := New(testAxes(t), hours.Default())
	e.Begin(0, 0, 5)

	if e.Extend(1, 0, 7) {
		t.Error("extend across date columns must be ignored")
	}
	if e.Extend(0, 1, 7) {
		t.Error("extend across staff columns must be ignored")
	}

	sel, _ := e.Commit()
	if sel.EndTimeIndex != 5 {
		t.Errorf("region should be unchanged, end index = %d", sel.EndTimeIndex)
	}
}

func TestBeginRejectsUnselectableCells(t *testing.T) {
	e := New(testAxes(t), hours.Default())

	if e.Begin(2, 0, 5) {
		t.Error("begin on a closed day (Sunday) must be a no-op")
	}
	if e.Begin(0, 0, 9) {
		t.Error("begin on a break slot (13:00) must be a no-op")
	}
	if e.Begin(0, 0, 22) {
		t.Error("begin past Monday closing (19:30) must be a no-op")
	}
	if e.Begin(0, 5, 3) {
		t.Error("begin out of staff range must be a no-op")
	}
	if e.State() != StateIdle {
		t.Error("rejected begins must leave the engine idle")
	}
}

func TestCommitResolvesTimes(t *testing.T) {
	e := New(testAxes(t), hours.Default())

	// Tuesday, first staff column, 10:00 through 10:30.
	if !e.Begin(1, 0, 3) {
		t.Fatal("begin failed")
	}
	if !e.Extend(1, 0, 4) {
		t.Fatal("extend failed")
	}

	sel, ok := e.Commit()
	if !ok {
		t.Fatal("commit failed")
	}
	if sel.Date != "2026-09-01" || sel.StaffID != "s1" {
		t.Errorf("resolved axes wrong: %+v", sel)
	}
	if sel.StartTime != "10:00" {
		t.Errorf("start time = %s, want 10:00", sel.StartTime)
	}
	if sel.EndTime != "11:00" {
		t.Errorf("end time = %s, want 11:00 (one slot past the last selected)", sel.EndTime)
	}
}

func TestCancelDiscards(t *testing.T) {
	e := New(testAxes(t), hours.Default())
	e.Begin(0, 0, 5)
	e.Cancel()

	if e.State() != StateIdle {
		t.Error("cancel should return the engine to idle")
	}
	if _, ok := e.Commit(); ok {
		t.Error("commit after cancel must report nothing to commit")
	}
}

func TestBeginWhileDraggingRestarts(t *testing.T) {
	e := New(testAxes(t), hours.Default())
	e.Begin(0, 0, 5)
	e.Extend(0, 0, 8)

	// A second begin (lost mouse-up) anchors a fresh drag.
	if !e.Begin(0, 1, 3) {
		t.Fatal("restart begin failed")
	}
	sel, _ := e.Commit()
	if sel.StaffIndex != 1 || sel.StartTimeIndex != 3 || sel.EndTimeIndex != 3 {
		t.Errorf("stale drag leaked into new region: %+v", sel)
	}
}

func TestActiveSnapshot(t *testing.T) {
	e := New(testAxes(t), hours.Default())
	if _, ok := e.Active(); ok {
		t.Error("idle engine has no active region")
	}
	e.Begin(0, 0, 5)
	r, ok := e.Active()
	if !ok || r.StartTimeIndex != 5 || r.EndTimeIndex != 5 {
		t.Errorf("unexpected active region: %+v ok=%v", r, ok)
	}
}
