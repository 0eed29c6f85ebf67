package schedule

import (
	"sort"

	"wayfinder.transitapp.org/internal/models"
)

// Index holds the lookup structures the planner needs, built once per
// snapshot. All maps are read-only after BuildIndex returns.
type Index struct {
	// StopTimesByTrip maps a trip ID to its stop-time rows, sorted
	// ascending by stop sequence.
	StopTimesByTrip map[string][]models.StopTimeRow

	// StopTimesByStop maps a stop ID to every row that serves it.
	StopTimesByStop map[string][]models.StopTimeRow

	// TripIDs lists every indexed trip in lexicographic order, so searches
	// that walk all trips produce deterministic output.
	TripIDs []string

	// TripRoute maps a trip ID to the route it runs on.
	TripRoute map[string]string

	TripByID  map[string]models.Trip
	RouteByID map[string]models.Route
	StopByID  map[string]models.Stop

	// SkippedRows counts stop-time rows dropped because they referenced an
	// unknown trip or stop. Transit feeds are loosely consistent; one bad
	// row must not fail the whole build.
	SkippedRows int
}

// BuildIndex assembles the lookup structures from the snapshot's flat rows.
func BuildIndex(snap *Snapshot) *Index {
	idx := &Index{
		StopTimesByTrip: make(map[string][]models.StopTimeRow),
		StopTimesByStop: make(map[string][]models.StopTimeRow),
		TripRoute:       make(map[string]string, len(snap.Trips)),
		TripByID:        make(map[string]models.Trip, len(snap.Trips)),
		RouteByID:       make(map[string]models.Route, len(snap.Routes)),
		StopByID:        make(map[string]models.Stop, len(snap.Stops)),
	}

	for _, route := range snap.Routes {
		idx.RouteByID[route.ID] = route
	}
	for _, stop := range snap.Stops {
		idx.StopByID[stop.ID] = stop
	}
	for _, trip := range snap.Trips {
		idx.TripByID[trip.ID] = trip
		idx.TripRoute[trip.ID] = trip.RouteID
	}

	for _, row := range snap.StopTimes {
		if _, ok := idx.TripByID[row.TripID]; !ok {
			idx.SkippedRows++
			continue
		}
		if _, ok := idx.StopByID[row.StopID]; !ok {
			idx.SkippedRows++
			continue
		}
		idx.StopTimesByTrip[row.TripID] = append(idx.StopTimesByTrip[row.TripID], row)
		idx.StopTimesByStop[row.StopID] = append(idx.StopTimesByStop[row.StopID], row)
	}

	for tripID := range idx.StopTimesByTrip {
		rows := idx.StopTimesByTrip[tripID]
		sort.Slice(rows, func(i, j int) bool {
			return rows[i].StopSequence < rows[j].StopSequence
		})
		idx.TripIDs = append(idx.TripIDs, tripID)
	}
	sort.Strings(idx.TripIDs)

	return idx
}

// RoutesForStop returns the routes whose trips serve the given stop.
func (idx *Index) RoutesForStop(stopID string) []models.Route {
	seen := make(map[string]bool)
	var routes []models.Route
	for _, row := range idx.StopTimesByStop[stopID] {
		routeID, ok := idx.TripRoute[row.TripID]
		if !ok || seen[routeID] {
			continue
		}
		seen[routeID] = true
		if route, ok := idx.RouteByID[routeID]; ok {
			routes = append(routes, route)
		}
	}
	sort.Slice(routes, func(i, j int) bool { return routes[i].ID < routes[j].ID })
	return routes
}

// StopIndexInTrip returns the position of the stop within the trip's ordered
// stop-time list, or -1 when the trip does not serve the stop.
func (idx *Index) StopIndexInTrip(tripID, stopID string) int {
	for i, row := range idx.StopTimesByTrip[tripID] {
		if row.StopID == stopID {
			return i
		}
	}
	return -1
}
