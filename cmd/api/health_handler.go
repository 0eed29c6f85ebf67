package main

import (
	"encoding/json"
	"net/http"
	"time"

	"wayfinder.transitapp.org/internal/schedule"
)

type healthStatus struct {
	Status             string `json:"status"`
	SnapshotLoaded     bool   `json:"snapshotLoaded"`
	SnapshotAgeSeconds int64  `json:"snapshotAgeSeconds"`
	LastUpdated        string `json:"lastUpdated,omitempty"`
}

// healthHandler reports whether a usable schedule snapshot is being served.
// It requires no API key so orchestrators can probe it.
func (api *restAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	status := healthStatus{Status: "ok"}

	_, _, err := api.app.ScheduleManager.Current()
	if err != nil {
		status.Status = "degraded"
	} else {
		status.SnapshotLoaded = true
		status.SnapshotAgeSeconds = int64(snapshotAgeSeconds(api.app.ScheduleManager))
		status.LastUpdated = api.app.ScheduleManager.LastUpdated().UTC().Format(time.RFC3339)
	}

	code := http.StatusOK
	if !status.SnapshotLoaded {
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(status); err != nil {
		api.app.Logger.Error("failed to encode health response", "error", err)
	}
}

func snapshotAgeSeconds(manager *schedule.Manager) float64 {
	last := manager.LastUpdated()
	if last.IsZero() {
		return 0
	}
	return time.Since(last).Seconds()
}
