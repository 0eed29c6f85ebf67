package planner

import (
	"wayfinder.transitapp.org/internal/geo"
	"wayfinder.transitapp.org/internal/models"
)

// walkLeg builds a walk leg, labeled with its compass heading when both ends
// are located.
func walkLeg(from, to models.Place, meters float64, minutes int) models.WalkLeg {
	leg := models.NewWalkLeg(from, to, meters, minutes)
	if (from.Lat != 0 || from.Lon != 0) && (to.Lat != 0 || to.Lon != 0) {
		leg.Direction = geo.CompassDirection(from.Lat, from.Lon, to.Lat, to.Lon)
	}
	return leg
}

func placeForStop(stop models.Stop) models.Place {
	place := models.Place{Name: stop.Name}
	if stop.HasCoordinates() {
		place.Lat = *stop.Lat
		place.Lon = *stop.Lon
	}
	return place
}

// assembleJourney builds a Journey from its transit legs plus the candidate
// walk distances at each end. Walks at or under the suppression distance are
// dropped as noise. Transfer wait time is folded into the bus minutes; a
// walking transfer's minutes count as walking and are excluded from the bus
// total.
func assembleJourney(originPlace, destPlace models.Place, origin, dest CandidateStop, transit []models.TransitLeg, transferWalk *models.WalkLeg, tun Tunables) models.Journey {
	var legs []models.Leg
	walkingMinutes := 0

	if origin.DistanceMeters > tun.WalkSuppressionMeters {
		minutes := geo.WalkingMinutes(origin.DistanceMeters)
		legs = append(legs, walkLeg(originPlace, placeForStop(origin.Stop), origin.DistanceMeters, minutes))
		walkingMinutes += minutes
	}

	legs = append(legs, transit[0])
	if transferWalk != nil {
		legs = append(legs, *transferWalk)
		walkingMinutes += transferWalk.Minutes
	}
	for _, leg := range transit[1:] {
		legs = append(legs, leg)
	}

	if dest.DistanceMeters > tun.WalkSuppressionMeters {
		minutes := geo.WalkingMinutes(dest.DistanceMeters)
		legs = append(legs, walkLeg(placeForStop(dest.Stop), destPlace, dest.DistanceMeters, minutes))
		walkingMinutes += minutes
	}

	departure := transit[0].DepartureTime
	arrival := transit[len(transit)-1].ArrivalTime

	idSeed := departure + "/" + arrival
	for _, leg := range transit {
		idSeed += "/" + leg.TripID + "@" + leg.FromStop.ID + ">" + leg.ToStop.ID
	}

	busMinutes := clockMinutesBetween(departure, arrival)
	if transferWalk != nil {
		busMinutes -= transferWalk.Minutes
	}
	if busMinutes < 0 {
		busMinutes = 0
	}

	return models.Journey{
		ID:                   models.NewJourneyID(idSeed),
		Legs:                 legs,
		DepartureTime:        departure,
		ArrivalTime:          arrival,
		TotalDurationMinutes: walkingMinutes + busMinutes,
		TotalWalkingMinutes:  walkingMinutes,
		TotalBusMinutes:      busMinutes,
		TransferCount:        len(transit) - 1,
	}
}
