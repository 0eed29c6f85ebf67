package planner

import (
	"fmt"
	"strconv"
	"strings"
)

// Schedule clock values are zero-padded HH:MM:SS strings measured from the
// start of the service day. Hours may exceed 24 for post-midnight runs, so
// values are normalized to seconds since midnight rather than time.Time.

// ParseClock converts an HH:MM:SS value to seconds since midnight.
func ParseClock(value string) (int, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid clock value: %q", value)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value: %q", value)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid clock value: %q", value)
	}
	seconds, err := strconv.Atoi(parts[2])
	if err != nil || seconds < 0 || seconds > 59 {
		return 0, fmt.Errorf("invalid clock value: %q", value)
	}
	if hours < 0 {
		return 0, fmt.Errorf("invalid clock value: %q", value)
	}

	return hours*3600 + minutes*60 + seconds, nil
}

// FormatClock renders seconds since midnight as zero-padded HH:MM:SS.
func FormatClock(seconds int) string {
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

// clockSeconds parses leniently, reporting whether the value was usable.
func clockSeconds(value string) (int, bool) {
	sec, err := ParseClock(value)
	if err != nil {
		return 0, false
	}
	return sec, true
}

// clockMinutesBetween returns the minute-level difference between two clock
// values, matching how riders read timetables (08:00:30 to 08:20:00 is 20
// minutes, not 19.5).
func clockMinutesBetween(from, to string) int {
	fromSec, okFrom := clockSeconds(from)
	toSec, okTo := clockSeconds(to)
	if !okFrom || !okTo {
		return 0
	}
	return toSec/60 - fromSec/60
}
