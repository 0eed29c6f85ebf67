package planner

import (
	"sort"

	"wayfinder.transitapp.org/internal/geo"
	"wayfinder.transitapp.org/internal/models"
)

// CandidateStop is a stop considered as a practical boarding or alighting
// point, with its walking distance from the rider's true origin/destination.
type CandidateStop struct {
	Stop           models.Stop
	DistanceMeters float64
}

// FindNearby ranks all stops with coordinates by walking distance from the
// given point, closest first. maxRadiusMeters of 0 means unlimited. Ties are
// broken by stop ID so results are stable.
func FindNearby(lat, lon float64, stops []models.Stop, maxRadiusMeters float64) []CandidateStop {
	var candidates []CandidateStop
	for _, stop := range stops {
		if !stop.HasCoordinates() {
			continue
		}
		distance := geo.DistanceMeters(lat, lon, *stop.Lat, *stop.Lon)
		if maxRadiusMeters > 0 && distance > maxRadiusMeters {
			continue
		}
		candidates = append(candidates, CandidateStop{Stop: stop, DistanceMeters: distance})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].DistanceMeters != candidates[j].DistanceMeters {
			return candidates[i].DistanceMeters < candidates[j].DistanceMeters
		}
		return candidates[i].Stop.ID < candidates[j].Stop.ID
	})

	return candidates
}

// ensureSelfCandidate guarantees the chosen stop itself appears in the
// candidate list with distance 0, even when a radius or floating-point
// wobble would have excluded it.
func ensureSelfCandidate(candidates []CandidateStop, stop models.Stop) []CandidateStop {
	for i, c := range candidates {
		if c.Stop.ID == stop.ID {
			if i == 0 {
				candidates[0].DistanceMeters = 0
				return candidates
			}
			candidates = append(candidates[:i], candidates[i+1:]...)
			break
		}
	}
	return append([]CandidateStop{{Stop: stop, DistanceMeters: 0}}, candidates...)
}
