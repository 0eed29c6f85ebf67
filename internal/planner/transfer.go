package planner

import (
	"sort"

	"wayfinder.transitapp.org/internal/geo"
	"wayfinder.transitapp.org/internal/models"
	"wayfinder.transitapp.org/internal/schedule"
)

// outboundRide is one way of riding from the origin candidate to some stop.
type outboundRide struct {
	tripID    string
	routeID   string
	boardRow  models.StopTimeRow
	alightRow models.StopTimeRow
	boardIdx  int
	alightIdx int
	departure string
	arrival   string
	arriveSec int
}

// inboundRide is one way of riding from some stop to the destination candidate.
type inboundRide struct {
	tripID    string
	routeID   string
	boardRow  models.StopTimeRow
	alightRow models.StopTimeRow
	boardIdx  int
	alightIdx int
	departure string
	arrival   string
	departSec int
}

// findTransferJourneys finds two-trip itineraries between one origin
// candidate and one destination candidate, either through a shared stop or
// through a short walking hop between two nearby stops. Both strategies are
// bounded by small per-stop caps to keep the search polynomial.
func findTransferJourneys(idx *schedule.Index, originPlace, destPlace models.Place, origin, dest CandidateStop, filterSec int, tun Tunables) []models.Journey {
	fromOrigin := reachableFromOrigin(idx, origin, filterSec, tun)
	toDest := canReachDestination(idx, dest, tun)
	if len(fromOrigin) == 0 || len(toDest) == 0 {
		return nil
	}

	var journeys []models.Journey
	journeys = append(journeys, sharedStopTransfers(idx, originPlace, destPlace, origin, dest, fromOrigin, toDest, tun)...)
	journeys = append(journeys, walkingTransfers(idx, originPlace, destPlace, origin, dest, fromOrigin, toDest, tun)...)
	return journeys
}

// reachableFromOrigin walks forward from the origin's boarding index to the
// end of each qualifying trip, recording how each downstream stop can be
// reached. Entries per stop are capped.
func reachableFromOrigin(idx *schedule.Index, origin CandidateStop, filterSec int, tun Tunables) map[string][]outboundRide {
	reachable := make(map[string][]outboundRide)

	for _, tripID := range idx.TripIDs {
		rows := idx.StopTimesByTrip[tripID]

		boardIdx := -1
		for i, row := range rows {
			if row.StopID == origin.Stop.ID {
				boardIdx = i
				break
			}
		}
		if boardIdx == -1 || boardIdx == len(rows)-1 {
			continue
		}

		departure, ok := rows[boardIdx].EffectiveDeparture()
		if !ok {
			continue
		}
		departureSec, ok := clockSeconds(departure)
		if !ok || departureSec < filterSec {
			continue
		}

		routeID := idx.TripRoute[tripID]
		for j := boardIdx + 1; j < len(rows); j++ {
			stopID := rows[j].StopID
			if len(reachable[stopID]) >= tun.MaxTripsPerReachableStop {
				continue
			}
			arrival, ok := rows[j].EffectiveArrival()
			if !ok {
				continue
			}
			arriveSec, ok := clockSeconds(arrival)
			if !ok {
				continue
			}
			reachable[stopID] = append(reachable[stopID], outboundRide{
				tripID:    tripID,
				routeID:   routeID,
				boardRow:  rows[boardIdx],
				alightRow: rows[j],
				boardIdx:  boardIdx,
				alightIdx: j,
				departure: departure,
				arrival:   arrival,
				arriveSec: arriveSec,
			})
		}
	}

	return reachable
}

// canReachDestination walks backward from the destination's alighting index
// to the start of each qualifying trip, recording which stops can still make
// it to the destination. Entries per stop are capped.
func canReachDestination(idx *schedule.Index, dest CandidateStop, tun Tunables) map[string][]inboundRide {
	reachable := make(map[string][]inboundRide)

	for _, tripID := range idx.TripIDs {
		rows := idx.StopTimesByTrip[tripID]

		alightIdx := -1
		for i, row := range rows {
			if row.StopID == dest.Stop.ID {
				alightIdx = i
			}
		}
		if alightIdx <= 0 {
			continue
		}

		arrival, ok := rows[alightIdx].EffectiveArrival()
		if !ok {
			continue
		}

		routeID := idx.TripRoute[tripID]
		for j := alightIdx - 1; j >= 0; j-- {
			stopID := rows[j].StopID
			if len(reachable[stopID]) >= tun.MaxTripsPerReachableStop {
				continue
			}
			departure, ok := rows[j].EffectiveDeparture()
			if !ok {
				continue
			}
			departSec, ok := clockSeconds(departure)
			if !ok {
				continue
			}
			reachable[stopID] = append(reachable[stopID], inboundRide{
				tripID:    tripID,
				routeID:   routeID,
				boardRow:  rows[j],
				alightRow: rows[alightIdx],
				boardIdx:  j,
				alightIdx: alightIdx,
				departure: departure,
				arrival:   arrival,
				departSec: departSec,
			})
		}
	}

	return reachable
}

// sharedStopTransfers pairs outbound and inbound rides that meet at the same
// stop. Same-route pairs are rejected (those are direct journeys) and the
// connection must leave the minimum transfer buffer.
func sharedStopTransfers(idx *schedule.Index, originPlace, destPlace models.Place, origin, dest CandidateStop, fromOrigin map[string][]outboundRide, toDest map[string][]inboundRide, tun Tunables) []models.Journey {
	bufferSec := tun.MinTransferBufferMinutes * 60

	var journeys []models.Journey
	for _, stopID := range sortedKeys(fromOrigin) {
		inbound, ok := toDest[stopID]
		if !ok {
			continue
		}
		if stopID == origin.Stop.ID || stopID == dest.Stop.ID {
			continue
		}

		combinations := 0
		for _, out := range fromOrigin[stopID] {
			for _, in := range inbound {
				if combinations >= tun.MaxCombinationsPerTransferStop {
					break
				}
				if out.routeID == in.routeID {
					continue
				}
				if out.arriveSec+bufferSec > in.departSec {
					continue
				}

				journeys = append(journeys, assembleJourney(originPlace, destPlace, origin, dest,
					[]models.TransitLeg{
						transitLegFromRide(idx, out.tripID, out.boardRow, out.alightRow, out.departure, out.arrival, out.alightIdx-out.boardIdx),
						transitLegFromRide(idx, in.tripID, in.boardRow, in.alightRow, in.departure, in.arrival, in.alightIdx-in.boardIdx),
					}, nil, tun))
				combinations++
			}
		}
	}

	return journeys
}

// walkingTransfers pairs rides whose transfer points are two distinct stops
// within walking range of each other. The walk duration participates in the
// minimum-buffer check.
func walkingTransfers(idx *schedule.Index, originPlace, destPlace models.Place, origin, dest CandidateStop, fromOrigin map[string][]outboundRide, toDest map[string][]inboundRide, tun Tunables) []models.Journey {
	bufferSec := tun.MinTransferBufferMinutes * 60

	var journeys []models.Journey
	for _, fromStopID := range sortedKeys(fromOrigin) {
		fromStop, ok := idx.StopByID[fromStopID]
		if !ok || !fromStop.HasCoordinates() {
			continue
		}

		for _, toStopID := range sortedKeys(toDest) {
			if toStopID == fromStopID {
				continue
			}
			toStop, ok := idx.StopByID[toStopID]
			if !ok || !toStop.HasCoordinates() {
				continue
			}

			walkMeters := geo.DistanceMeters(*fromStop.Lat, *fromStop.Lon, *toStop.Lat, *toStop.Lon)
			// Anything closer than the same-stop threshold is the same
			// physical stop; the shared-stop strategy owns that case.
			if walkMeters < tun.SameStopThresholdMeters || walkMeters > tun.TransferWalkRadiusMeters {
				continue
			}
			walkMinutes := geo.WalkingMinutes(walkMeters)

			combinations := 0
			for _, out := range fromOrigin[fromStopID] {
				for _, in := range toDest[toStopID] {
					if combinations >= tun.MaxCombinationsPerTransferStop {
						break
					}
					if out.routeID == in.routeID {
						continue
					}
					if out.arriveSec+walkMinutes*60+bufferSec > in.departSec {
						continue
					}

					walk := walkLeg(placeForStop(fromStop), placeForStop(toStop), walkMeters, walkMinutes)
					journeys = append(journeys, assembleJourney(originPlace, destPlace, origin, dest,
						[]models.TransitLeg{
							transitLegFromRide(idx, out.tripID, out.boardRow, out.alightRow, out.departure, out.arrival, out.alightIdx-out.boardIdx),
							transitLegFromRide(idx, in.tripID, in.boardRow, in.alightRow, in.departure, in.arrival, in.alightIdx-in.boardIdx),
						}, &walk, tun))
					combinations++
				}
			}
		}
	}

	return journeys
}

func transitLegFromRide(idx *schedule.Index, tripID string, boardRow, alightRow models.StopTimeRow, departure, arrival string, stopCount int) models.TransitLeg {
	trip := idx.TripByID[tripID]
	return models.TransitLeg{
		Kind:          models.LegKindTransit,
		Route:         idx.RouteByID[idx.TripRoute[tripID]],
		FromStop:      idx.StopByID[boardRow.StopID],
		ToStop:        idx.StopByID[alightRow.StopID],
		TripID:        tripID,
		Headsign:      trip.Headsign,
		DepartureTime: departure,
		ArrivalTime:   arrival,
		StopCount:     stopCount,
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
