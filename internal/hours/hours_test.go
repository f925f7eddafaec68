package hours

import "testing"

func TestOutOfHoursBoundary(t *testing.T) {
	table := Default()

	// Monday closes at 19:00: the closing minute itself is still in hours.
	if table.OutOfHours(1, 19*60) {
		t.Error("19:00 on Monday should be within hours")
	}
	if !table.OutOfHours(1, 19*60+1) {
		t.Error("19:01 on Monday should be out of hours")
	}

	// Tuesday and Thursday run until 20:00.
	for _, wd := range []int{2, 4} {
		if table.OutOfHours(wd, 20*60) {
			t.Errorf("20:00 on weekday %d should be within hours", wd)
		}
		if !table.OutOfHours(wd, 20*60+1) {
			t.Errorf("20:01 on weekday %d should be out of hours", wd)
		}
	}

	// Saturday runs until 14:00.
	if table.OutOfHours(6, 14*60) {
		t.Error("14:00 on Saturday should be within hours")
	}
	if !table.OutOfHours(6, 14*60+1) {
		t.Error("14:01 on Saturday should be out of hours")
	}
}

func TestSundayAlwaysClosed(t *testing.T) {
	table := Default()
	if !table.Closed(0) {
		t.Fatal("Sunday should be closed")
	}
	for mins := 0; mins < 1440; mins += 30 {
		if !table.OutOfHours(0, mins) {
			t.Fatalf("Sunday %d minutes should be out of hours", mins)
		}
	}
}

func TestBeforeOpening(t *testing.T) {
	table := Default()
	if !table.OutOfHours(1, 8*60) {
		t.Error("08:00 on Monday is before opening")
	}
	if table.OutOfHours(1, 8*60+30) {
		t.Error("08:30 on Monday is the opening slot")
	}
}

func TestInBreak(t *testing.T) {
	table := Default()

	tests := []struct {
		weekday int
		slot    string
		want    bool
	}{
		{1, "13:00", true},
		{1, "13:30", true},
		{1, "12:30", false},
		{1, "14:00", false}, // break window end is exclusive
		{5, "13:00", true},
		{6, "13:00", false}, // Saturday has no break
		{0, "13:00", false}, // closed day has no break
	}
	for _, tt := range tests {
		if got := table.InBreak(tt.weekday, tt.slot); got != tt.want {
			t.Errorf("InBreak(%d, %s) = %v, want %v", tt.weekday, tt.slot, got, tt.want)
		}
	}
}

func TestPastLastReception(t *testing.T) {
	table := Default()
	if table.PastLastReception(1, 18*60+30) {
		t.Error("18:30 Monday is the last-reception slot itself")
	}
	if !table.PastLastReception(1, 18*60+31) {
		t.Error("18:31 Monday is past last reception")
	}
	if table.PastLastReception(0, 12*60) {
		t.Error("closed day has no last-reception cutoff")
	}
}

func TestSelectable(t *testing.T) {
	table := Default()

	tests := []struct {
		weekday int
		slot    string
		want    bool
	}{
		{1, "10:00", true},
		{1, "13:00", false}, // break
		{1, "19:30", false}, // out of hours
		{0, "10:00", false}, // closed
		{6, "13:00", true},  // no break on Saturday
	}
	for _, tt := range tests {
		if got := table.Selectable(tt.weekday, tt.slot); got != tt.want {
			t.Errorf("Selectable(%d, %s) = %v, want %v", tt.weekday, tt.slot, got, tt.want)
		}
	}
}

func TestReplace(t *testing.T) {
	table := Default()
	table.Replace(map[int]Entry{
		1: {Hours: "10:00 - 16:00"},
	})

	if table.OutOfHours(1, 9*60+30) == false {
		t.Error("09:30 should be out after replacing the table")
	}
	if !table.Closed(2) {
		t.Error("weekdays dropped by Replace count as closed")
	}
}

func TestUnconfiguredWeekdayClosed(t *testing.T) {
	table := NewTable(nil)
	if !table.Closed(3) {
		t.Error("empty table should report every weekday closed")
	}
}
