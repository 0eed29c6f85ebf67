package geo

import (
	"math"
)

// earthRadiusMeters is the mean Earth radius used for great-circle distances.
const earthRadiusMeters = 6371000.0

// walkingMetersPerMinute is the assumed walking pace (~5 km/h).
const walkingMetersPerMinute = 83.33

// DistanceMeters returns the haversine great-circle distance between two
// coordinates, in meters. It is symmetric and returns 0 for identical points.
// Callers must guard against missing coordinates before calling.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	deltaPhi := (lat2 - lat1) * math.Pi / 180
	deltaLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// WalkingMinutes returns the estimated walking time for the given distance,
// rounded up to whole minutes.
func WalkingMinutes(meters float64) int {
	if meters <= 0 {
		return 0
	}
	return int(math.Ceil(meters / walkingMetersPerMinute))
}

// BearingBetweenPoints calculates the bearing in degrees from point1 to point2
func BearingBetweenPoints(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	y := math.Sin(deltaLon) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(deltaLon)

	theta := math.Atan2(y, x)
	bearing := math.Mod(theta*180/math.Pi+360, 360)

	return bearing
}

// BearingToCompass converts a bearing (0-360°) to 8-point compass direction
func BearingToCompass(bearing float64) string {
	directions := []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}
	index := int((bearing+22.5)/45.0) % 8
	return directions[index]
}

// CompassDirection calculates compass direction from lat1,lon1 to lat2,lon2
func CompassDirection(lat1, lon1, lat2, lon2 float64) string {
	bearing := BearingBetweenPoints(lat1, lon1, lat2, lon2)
	return BearingToCompass(bearing)
}
