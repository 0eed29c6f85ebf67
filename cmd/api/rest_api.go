package main

import (
	"net/http"
	"time"

	"wayfinder.transitapp.org/internal/app"
	"wayfinder.transitapp.org/internal/logging"
)

// restAPI wires the HTTP handlers to the application dependencies.
type restAPI struct {
	app *app.Application
}

// validateAPIKey rejects requests whose "key" query parameter is not one of
// the configured API keys.
func (api *restAPI) validateAPIKey(finalHandler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if api.app.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	}
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func (api *restAPI) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		logging.LogHTTPRequest(api.app.Logger, r.Method, r.URL.Path, rec.status,
			float64(time.Since(start).Microseconds())/1000)
	})
}
