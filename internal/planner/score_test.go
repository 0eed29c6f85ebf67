package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wayfinder.transitapp.org/internal/models"
)

func rideOn(routeID, departure, arrival string) models.Journey {
	return models.Journey{
		Legs: []models.Leg{
			models.TransitLeg{Kind: models.LegKindTransit, Route: models.Route{ID: routeID}, TripID: "trip-" + routeID},
		},
		DepartureTime:        departure,
		ArrivalTime:          arrival,
		TotalDurationMinutes: clockMinutesBetween(departure, arrival),
		TotalBusMinutes:      clockMinutesBetween(departure, arrival),
	}
}

func TestScoreTransferPenalty(t *testing.T) {
	tun := DefaultTunables()

	direct := rideOn("r12", "08:00:00", "08:30:00")
	withTransfer := direct
	withTransfer.TransferCount = 1

	assert.Equal(t, scoreJourney(direct, tun)+tun.TransferPenaltyMinutes, scoreJourney(withTransfer, tun))
}

func TestScoreWalkingWeight(t *testing.T) {
	tun := DefaultTunables()

	noWalk := rideOn("r12", "08:00:00", "08:30:00")
	withWalk := noWalk
	withWalk.TotalWalkingMinutes = 4
	withWalk.TotalDurationMinutes += 4

	assert.Equal(t, scoreJourney(noWalk, tun)+4+4*tun.WalkingWeight, scoreJourney(withWalk, tun))
}

func TestRankJourneysDedupesByRouteAndMinute(t *testing.T) {
	tun := DefaultTunables()

	journeys := []models.Journey{
		rideOn("r12", "08:05:00", "08:35:00"),
		rideOn("r12", "08:05:30", "08:35:30"),
		rideOn("r12", "08:06:00", "08:36:00"),
	}
	ranked := rankJourneys(journeys, tun)

	// The two 08:05 departures collapse; 08:06 is a distinct option.
	require.Len(t, ranked, 2)
	assert.Equal(t, "08:05:00", ranked[0].DepartureTime)
	assert.Equal(t, "08:06:00", ranked[1].DepartureTime)
}

func TestRankJourneysKeepsDifferentRoutesInSameMinute(t *testing.T) {
	tun := DefaultTunables()

	ranked := rankJourneys([]models.Journey{
		rideOn("r12", "08:05:00", "08:35:00"),
		rideOn("r34", "08:05:00", "08:35:00"),
	}, tun)
	assert.Len(t, ranked, 2)
}

func TestRankJourneysSortsByScore(t *testing.T) {
	tun := DefaultTunables()

	slow := rideOn("r34", "08:00:00", "09:00:00")
	fast := rideOn("r12", "08:10:00", "08:30:00")
	ranked := rankJourneys([]models.Journey{slow, fast}, tun)

	require.Len(t, ranked, 2)
	assert.Equal(t, "r12", ranked[0].RouteIDSequence()[0])
	assert.Less(t, ranked[0].Score, ranked[1].Score)
}

func TestRankJourneysCapsResults(t *testing.T) {
	tun := DefaultTunables()
	tun.MaxResults = 3

	var journeys []models.Journey
	for _, dep := range []string{"08:01:00", "08:02:00", "08:03:00", "08:04:00", "08:05:00"} {
		journeys = append(journeys, rideOn("r12", dep, "08:30:00"))
	}

	assert.Len(t, rankJourneys(journeys, tun), 3)
}

func TestRankJourneysIsDeterministic(t *testing.T) {
	tun := DefaultTunables()

	build := func() []models.Journey {
		return []models.Journey{
			rideOn("r34", "08:05:00", "08:40:00"),
			rideOn("r12", "08:05:00", "08:40:00"),
			rideOn("r12", "08:06:00", "08:41:00"),
		}
	}

	first := rankJourneys(build(), tun)
	second := rankJourneys(build(), tun)
	assert.Equal(t, first, second)
}
