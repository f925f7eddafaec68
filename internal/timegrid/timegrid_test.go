package timegrid

import "testing"

func TestTimeMinutesRoundTrip(t *testing.T) {
	for mins := 0; mins < 1440; mins++ {
		s := MinutesToTime(mins)
		back, err := TimeToMinutes(s)
		if err != nil {
			t.Fatalf("TimeToMinutes(%q): %v", s, err)
		}
		if back != mins {
			t.Fatalf("round trip %d -> %q -> %d", mins, s, back)
		}
	}
}

func TestTimeToMinutesInvalid(t *testing.T) {
	for _, in := range []string{"", "10", "10:0x", "ab:30", "24:00", "10:60", "10:30:00"} {
		if _, err := TimeToMinutes(in); err == nil {
			t.Errorf("expected error for %q", in)
		}
	}
}

func TestExtendSlots(t *testing.T) {
	base := []string{"08:30", "09:00", "09:30"}
	got, err := ExtendSlots(base, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"08:30", "09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}
	if len(got) != len(want) {
		t.Fatalf("expected %d slots, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("slot %d: expected %s, got %s", i, want[i], got[i])
		}
	}
	// Base must not be mutated.
	if base[0] != "08:30" || len(base) != 3 {
		t.Error("base sequence was mutated")
	}
}

func TestExtendSlotsHourRollover(t *testing.T) {
	got, err := ExtendSlots([]string{"22:30"}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[1] != "23:00" || got[2] != "23:30" {
		t.Errorf("expected rollover to 23:00/23:30, got %v", got)
	}
}

func TestExtendSlotsStrictlyIncreasing(t *testing.T) {
	got, err := ExtendSlots([]string{"08:30", "09:00"}, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seen := make(map[string]bool)
	prev := -1
	for _, s := range got {
		mins, err := TimeToMinutes(s)
		if err != nil {
			t.Fatalf("malformed slot %q: %v", s, err)
		}
		if mins <= prev {
			t.Fatalf("sequence not strictly increasing at %q", s)
		}
		if seen[s] {
			t.Fatalf("duplicate slot %q", s)
		}
		seen[s] = true
		prev = mins
	}
}

func TestExtendSlotsEmptyBase(t *testing.T) {
	if _, err := ExtendSlots(nil, 3); err != ErrEmptyBase {
		t.Errorf("expected ErrEmptyBase, got %v", err)
	}
}

func TestEndOf(t *testing.T) {
	tests := []struct{ in, want string }{
		{"10:00", "10:30"},
		{"10:30", "11:00"},
		{"23:30", "24:00"},
	}
	for _, tt := range tests {
		got, err := EndOf(tt.in)
		if err != nil {
			t.Fatalf("EndOf(%s): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("EndOf(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestSlotsBetween(t *testing.T) {
	tests := []struct {
		start, end string
		want       int
	}{
		{"10:00", "10:30", 1},
		{"10:00", "11:00", 2},
		{"10:00", "11:10", 3}, // not on grid, rounds up
		{"09:00", "14:00", 10},
		{"14:00", "14:00", 1}, // violation clamps to a single row
		{"14:00", "13:00", 1},
	}
	for _, tt := range tests {
		got, err := SlotsBetween(tt.start, tt.end)
		if err != nil {
			t.Fatalf("SlotsBetween(%s, %s): %v", tt.start, tt.end, err)
		}
		if got != tt.want {
			t.Errorf("SlotsBetween(%s, %s) = %d, want %d", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestIndexOf(t *testing.T) {
	seq := []string{"08:30", "09:00", "09:30"}
	if got := IndexOf(seq, "09:00"); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
	if got := IndexOf(seq, "20:00"); got != -1 {
		t.Errorf("expected -1 for missing slot, got %d", got)
	}
}
