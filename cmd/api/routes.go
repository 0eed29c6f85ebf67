package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/klauspost/compress/gzhttp"
)

func (api *restAPI) routes() http.Handler {
	router := httprouter.New()

	router.HandlerFunc(http.MethodGet, "/api/plan", api.validateAPIKey(api.planHandler))
	router.HandlerFunc(http.MethodGet, "/api/stops-for-location", api.validateAPIKey(api.stopsForLocationHandler))
	router.HandlerFunc(http.MethodGet, "/api/current-time", api.validateAPIKey(api.currentTimeHandler))

	router.HandlerFunc(http.MethodGet, "/healthz", api.healthHandler)
	router.HandlerFunc(http.MethodGet, "/metrics", api.metricsHandler)

	return api.logRequests(gzhttp.GzipHandler(api.rateLimit(router)))
}

// metricsHandler refreshes the snapshot gauges before every scrape, so their
// values track the serving state rather than the last write.
func (api *restAPI) metricsHandler(w http.ResponseWriter, r *http.Request) {
	if snap, _, err := api.app.ScheduleManager.Current(); err == nil {
		api.app.Metrics.SnapshotStops.Set(float64(len(snap.Stops)))
		api.app.Metrics.SnapshotTrips.Set(float64(len(snap.Trips)))
	}
	api.app.Metrics.SnapshotAge.Set(snapshotAgeSeconds(api.app.ScheduleManager))
	api.app.Metrics.Handler().ServeHTTP(w, r)
}
