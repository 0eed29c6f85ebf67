package models

// Stop represents a boarding/alighting location in the schedule snapshot.
// Some stops in real-world feeds lack coordinates, so Lat/Lon are pointers.
type Stop struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Lat  *float64 `json:"lat,omitempty"`
	Lon  *float64 `json:"lon,omitempty"`
}

// HasCoordinates reports whether the stop can participate in spatial queries.
func (s Stop) HasCoordinates() bool {
	return s.Lat != nil && s.Lon != nil
}

// Route represents a transit route in the schedule snapshot.
type Route struct {
	ID        string `json:"id"`
	ShortName string `json:"shortName"`
	LongName  string `json:"longName"`
	Color     string `json:"color"` // hex, no leading '#'
}

// DisplayName returns the rider-facing route name, preferring the short name.
func (r Route) DisplayName() string {
	if r.ShortName != "" {
		return r.ShortName
	}
	return r.LongName
}

// Trip represents one scheduled vehicle run along a route.
type Trip struct {
	ID          string `json:"id"`
	RouteID     string `json:"routeId"`
	ServiceID   string `json:"serviceId"`
	DirectionID *int   `json:"directionId,omitempty"`
	Headsign    string `json:"headsign,omitempty"`
}

// StopTimeRow is one flat (trip, stop) scheduled arrival/departure record.
// Rows arrive unordered and must be grouped by trip and sorted by StopSequence
// before use. Times are zero-padded HH:MM:SS strings and may exceed 24:00:00
// for post-midnight runs; an empty string means the value is absent.
type StopTimeRow struct {
	TripID        string `json:"tripId"`
	StopID        string `json:"stopId"`
	StopSequence  int    `json:"stopSequence"`
	ArrivalTime   string `json:"arrivalTime,omitempty"`
	DepartureTime string `json:"departureTime,omitempty"`
}

// EffectiveDeparture returns the time a rider can board at this row,
// preferring the departure time and falling back to the arrival time.
// The second return value is false when neither is present.
func (st StopTimeRow) EffectiveDeparture() (string, bool) {
	if st.DepartureTime != "" {
		return st.DepartureTime, true
	}
	if st.ArrivalTime != "" {
		return st.ArrivalTime, true
	}
	return "", false
}

// EffectiveArrival returns the time a rider alights at this row, preferring
// the arrival time and falling back to the departure time.
func (st StopTimeRow) EffectiveArrival() (string, bool) {
	if st.ArrivalTime != "" {
		return st.ArrivalTime, true
	}
	if st.DepartureTime != "" {
		return st.DepartureTime, true
	}
	return "", false
}
