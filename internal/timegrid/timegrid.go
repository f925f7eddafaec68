// Package timegrid provides the canonical slot sequence for a scheduling day
// and conversions between slot index, clock time and duration in slots.
package timegrid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// SlotMinutes is the grid granularity.
const SlotMinutes = 30

var ErrEmptyBase = errors.New("base slot sequence is empty")

// TimeToMinutes converts "HH:MM" to minutes from midnight.
func TimeToMinutes(t string) (int, error) {
	parts := strings.Split(t, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time format: %s", t)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", t, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", t, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("time out of range: %s", t)
	}
	return hour*60 + minute, nil
}

// MinutesToTime converts minutes from midnight back to "HH:MM".
func MinutesToTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// EndOf returns the slot end time, one slot past t. Used as the default
// end for a single-slot appointment.
func EndOf(t string) (string, error) {
	mins, err := TimeToMinutes(t)
	if err != nil {
		return "", err
	}
	return MinutesToTime(mins + SlotMinutes), nil
}

// ExtendSlots appends count further 30-minute increments after the last base
// slot, rolling minutes into hours at 60. The result is a new sequence.
func ExtendSlots(base []string, count int) ([]string, error) {
	if len(base) == 0 {
		return nil, ErrEmptyBase
	}
	last, err := TimeToMinutes(base[len(base)-1])
	if err != nil {
		return nil, fmt.Errorf("parse last base slot: %w", err)
	}

	out := make([]string, 0, len(base)+count)
	out = append(out, base...)
	for i := 1; i <= count; i++ {
		out = append(out, MinutesToTime(last+i*SlotMinutes))
	}
	return out, nil
}

// SlotsBetween returns the number of grid rows an interval spans:
// ceil((end-start)/30). The caller is expected to have validated end > start;
// a non-positive interval is clamped to a single row rather than producing a
// zero or negative span.
func SlotsBetween(start, end string) (int, error) {
	s, err := TimeToMinutes(start)
	if err != nil {
		return 0, err
	}
	e, err := TimeToMinutes(end)
	if err != nil {
		return 0, err
	}
	span := (e - s + SlotMinutes - 1) / SlotMinutes
	if span < 1 {
		span = 1
	}
	return span, nil
}

// IndexOf returns the position of t in seq, or -1 when absent.
func IndexOf(seq []string, t string) int {
	for i, s := range seq {
		if s == t {
			return i
		}
	}
	return -1
}
