package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// Clock values are minutes since midnight. Working hours, exceptions
// and appointment times are all stored as "HH:MM" or "HH:MM:SS"
// strings; everything in this package computes on minutes.

// ParseClock accepts "HH:MM" and "HH:MM:SS" (seconds are discarded).
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}

	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}

	return h*60 + m, nil
}

// FormatClock renders minutes since midnight as "HH:MM:SS", the shape
// the public availability endpoint returns.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d:00", minutes/60, minutes%60)
}

// Interval is a half-open [Start,End) range of minutes within one day.
type Interval struct {
	Start int
	End   int
}

// Overlaps is the standard half-open interval test: touching
// boundaries do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && iv.End > other.Start
}

func (iv Interval) Valid() bool {
	return iv.Start >= 0 && iv.End > iv.Start
}

// ParseInterval builds an Interval from two clock strings.
func ParseInterval(start, end string) (Interval, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: s, End: e}, nil
}
