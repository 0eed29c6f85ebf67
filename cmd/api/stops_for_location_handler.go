package main

import (
	"net/http"
	"strconv"

	"wayfinder.transitapp.org/internal/models"
	"wayfinder.transitapp.org/internal/planner"
)

const defaultSearchRadiusMeters = 500

type nearbyStop struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Lat            float64        `json:"lat"`
	Lon            float64        `json:"lon"`
	DistanceMeters float64        `json:"distanceMeters"`
	Routes         []models.Route `json:"routes"`
}

func (api *restAPI) stopsForLocationHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	lat, err := strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil || lat < -90 || lat > 90 {
		api.validationErrorResponse(w, "invalid lat parameter")
		return
	}
	lon, err := strconv.ParseFloat(query.Get("lon"), 64)
	if err != nil || lon < -180 || lon > 180 {
		api.validationErrorResponse(w, "invalid lon parameter")
		return
	}

	radius := float64(defaultSearchRadiusMeters)
	if v := query.Get("radius"); v != "" {
		radius, err = strconv.ParseFloat(v, 64)
		if err != nil || radius < 0 {
			api.validationErrorResponse(w, "invalid radius parameter; expected a non-negative number of meters")
			return
		}
	}

	snap, idx, err := api.app.ScheduleManager.Current()
	if err != nil {
		api.sendResponse(w, r, models.NewOKResponse(map[string]any{"stops": []nearbyStop{}}))
		return
	}

	candidates := planner.FindNearby(lat, lon, snap.Stops, radius)

	stops := make([]nearbyStop, 0, len(candidates))
	for _, c := range candidates {
		routes := idx.RoutesForStop(c.Stop.ID)
		if routes == nil {
			routes = []models.Route{}
		}
		stops = append(stops, nearbyStop{
			ID:             c.Stop.ID,
			Name:           c.Stop.Name,
			Lat:            *c.Stop.Lat,
			Lon:            *c.Stop.Lon,
			DistanceMeters: c.DistanceMeters,
			Routes:         routes,
		})
	}

	api.sendResponse(w, r, models.NewOKResponse(map[string]any{"stops": stops}))
}
