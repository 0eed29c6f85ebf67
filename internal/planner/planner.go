package planner

import (
	"fmt"
	"time"

	"wayfinder.transitapp.org/internal/models"
	"wayfinder.transitapp.org/internal/schedule"
)

// Departure time sentinels accepted by Options.DepartureTime.
const (
	DepartureNow    = "now"
	DepartureAllDay = "all_day"
)

// Options controls a single planning request.
type Options struct {
	// DepartureTime is "now", "all_day" or a literal "HH:MM" clock value.
	DepartureTime string

	// DepartureDate is the service day the rider asked about. "now" only
	// resolves to the wall clock when this is today.
	DepartureDate time.Time

	// MaxWalkingDistanceMeters bounds the candidate search radius on each
	// side; 0 means unlimited.
	MaxWalkingDistanceMeters float64

	// MaxTransfers is 0 or 1; the engine supports at most one transfer.
	MaxTransfers int
}

// Planner computes door-to-door itineraries over an immutable schedule
// index. It performs no I/O and holds no per-request state, so a single
// Planner is safe for concurrent use.
type Planner struct {
	tunables Tunables
	now      func() time.Time
}

// New creates a Planner with the given tunables.
func New(tunables Tunables) *Planner {
	return &Planner{tunables: tunables, now: time.Now}
}

// Plan computes ranked journeys from origin to destination. Infeasibility is
// reported through PlanResult.NoRouteFound with a message, never an error;
// the only hard failure mode is a missing schedule, reported as the distinct
// "schedule not loaded" message so callers can tell no-data from no-route.
func (p *Planner) Plan(snap *schedule.Snapshot, idx *schedule.Index, origin, destination models.Stop, opts Options) models.PlanResult {
	if snap.IsEmpty() || idx == nil {
		return models.PlanResult{
			Journeys:     []models.Journey{},
			NoRouteFound: true,
			Message:      "schedule not loaded",
		}
	}

	filterSec := p.resolveFilterTime(opts)

	originCandidates, ok := p.resolveCandidates(snap, idx, origin, opts.MaxWalkingDistanceMeters)
	if !ok {
		return models.PlanResult{
			Journeys:     []models.Journey{},
			NoRouteFound: true,
			Message:      fmt.Sprintf("origin stop %q has no usable location", origin.ID),
		}
	}
	destCandidates, ok := p.resolveCandidates(snap, idx, destination, opts.MaxWalkingDistanceMeters)
	if !ok {
		return models.PlanResult{
			Journeys:     []models.Journey{},
			NoRouteFound: true,
			Message:      fmt.Sprintf("destination stop %q has no usable location", destination.ID),
		}
	}

	originPlace := placeForStop(origin)
	destPlace := placeForStop(destination)

	var found []models.Journey
	for _, oc := range originCandidates {
		for _, dc := range destCandidates {
			if oc.Stop.ID == dc.Stop.ID {
				continue
			}
			found = append(found, findDirectJourneys(idx, originPlace, destPlace, oc, dc, filterSec, p.tunables)...)

			// Transfer search dominates the cost, so it only runs while
			// direct results are too thin.
			if opts.MaxTransfers >= 1 && len(found) < p.tunables.DirectResultTarget {
				found = append(found, findTransferJourneys(idx, originPlace, destPlace, oc, dc, filterSec, p.tunables)...)
			}
		}
	}

	ranked := rankJourneys(found, p.tunables)
	if len(ranked) == 0 {
		return models.PlanResult{
			Journeys:     []models.Journey{},
			NoRouteFound: true,
			Message:      "no route found; try a different departure time or increase the walking distance",
		}
	}

	return models.PlanResult{Journeys: ranked}
}

// resolveFilterTime turns the departure-time option into a lower bound in
// seconds since midnight. 0 means no lower bound for the service day.
func (p *Planner) resolveFilterTime(opts Options) int {
	switch opts.DepartureTime {
	case DepartureAllDay, "":
		return 0
	case DepartureNow:
		now := p.now()
		if !sameDay(opts.DepartureDate, now) {
			return 0
		}
		return now.Hour()*3600 + now.Minute()*60 + now.Second()
	default:
		if sec, ok := clockSeconds(opts.DepartureTime + ":00"); ok {
			return sec
		}
		if sec, ok := clockSeconds(opts.DepartureTime); ok {
			return sec
		}
		return 0
	}
}

// resolveCandidates returns the bounded candidate list for one side of the
// search. A stop without coordinates can still be used directly as long as
// the schedule serves it; the false return covers a stop that is neither
// locatable nor present in the stop table.
func (p *Planner) resolveCandidates(snap *schedule.Snapshot, idx *schedule.Index, stop models.Stop, maxRadius float64) ([]CandidateStop, bool) {
	var candidates []CandidateStop
	if stop.HasCoordinates() {
		candidates = FindNearby(*stop.Lat, *stop.Lon, snap.Stops, maxRadius)
	}

	if _, inTable := idx.StopByID[stop.ID]; inTable {
		candidates = ensureSelfCandidate(candidates, stop)
	} else if !stop.HasCoordinates() {
		return nil, false
	}

	if len(candidates) == 0 {
		return nil, false
	}
	if len(candidates) > p.tunables.MaxCandidatesPerSide {
		candidates = candidates[:p.tunables.MaxCandidatesPerSide]
	}
	return candidates, true
}

func sameDay(a, b time.Time) bool {
	if a.IsZero() {
		return true
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
