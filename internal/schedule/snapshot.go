package schedule

import (
	"wayfinder.transitapp.org/internal/models"
)

// Snapshot is a point-in-time copy of the four schedule tables. It is never
// mutated after construction and is safe to share by reference across
// concurrent planning calls.
type Snapshot struct {
	Stops     []models.Stop
	Routes    []models.Route
	Trips     []models.Trip
	StopTimes []models.StopTimeRow
}

// IsEmpty reports whether the snapshot contains no usable schedule data.
func (s *Snapshot) IsEmpty() bool {
	return s == nil || len(s.Trips) == 0 || len(s.StopTimes) == 0
}
