package schedule

import "errors"

var (
	// ErrScheduleUnavailable indicates the schedule provider could not be
	// reached or returned an unusable response. Callers decide whether to
	// fall back to cached data; nothing falls back silently.
	ErrScheduleUnavailable = errors.New("schedule provider unavailable")

	// ErrScheduleTimeout indicates the provider fetch exceeded its deadline.
	// Kept distinct from ErrScheduleUnavailable so callers can tell a slow
	// provider from a broken one.
	ErrScheduleTimeout = errors.New("schedule provider timed out")

	// ErrScheduleEmpty indicates no snapshot has been loaded yet.
	ErrScheduleEmpty = errors.New("schedule not loaded")
)
