package planner

import (
	"wayfinder.transitapp.org/internal/models"
	"wayfinder.transitapp.org/internal/schedule"
)

// findDirectJourneys finds single-trip itineraries between one origin
// candidate and one destination candidate. A trip qualifies when it serves
// both stops with the origin strictly before the destination and departs at
// or after the filter time.
func findDirectJourneys(idx *schedule.Index, originPlace, destPlace models.Place, origin, dest CandidateStop, filterSec int, tun Tunables) []models.Journey {
	var journeys []models.Journey

	for _, tripID := range idx.TripIDs {
		rows := idx.StopTimesByTrip[tripID]

		originIdx, destIdx := -1, -1
		for i, row := range rows {
			if originIdx == -1 && row.StopID == origin.Stop.ID {
				originIdx = i
			}
			if row.StopID == dest.Stop.ID {
				destIdx = i
			}
		}
		if originIdx == -1 || destIdx == -1 || originIdx >= destIdx {
			continue
		}

		departure, ok := rows[originIdx].EffectiveDeparture()
		if !ok {
			continue
		}
		departureSec, ok := clockSeconds(departure)
		if !ok || departureSec < filterSec {
			// Riders must not be shown departures in the past.
			continue
		}
		arrival, ok := rows[destIdx].EffectiveArrival()
		if !ok {
			continue
		}

		trip := idx.TripByID[tripID]
		leg := models.TransitLeg{
			Kind:          models.LegKindTransit,
			Route:         idx.RouteByID[idx.TripRoute[tripID]],
			FromStop:      idx.StopByID[origin.Stop.ID],
			ToStop:        idx.StopByID[dest.Stop.ID],
			TripID:        tripID,
			Headsign:      trip.Headsign,
			DepartureTime: departure,
			ArrivalTime:   arrival,
			StopCount:     destIdx - originIdx,
		}

		journeys = append(journeys, assembleJourney(originPlace, destPlace, origin, dest, []models.TransitLeg{leg}, nil, tun))
	}

	return journeys
}
