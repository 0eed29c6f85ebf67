package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"wayfinder.transitapp.org/internal/app"
	"wayfinder.transitapp.org/internal/config"
	"wayfinder.transitapp.org/internal/logging"
	"wayfinder.transitapp.org/internal/metrics"
	"wayfinder.transitapp.org/internal/models"
	"wayfinder.transitapp.org/internal/planner"
	"wayfinder.transitapp.org/internal/schedule"
)

type stubSource struct {
	snap *schedule.Snapshot
}

func (s *stubSource) FetchSnapshot(ctx context.Context) (*schedule.Snapshot, error) {
	return s.snap, nil
}

func (s *stubSource) Source() string { return "stub" }

func fptr(v float64) *float64 { return &v }

// testSnapshot is a single trip running O -> M -> B, departing O at 08:00 and
// arriving at B at 08:20.
func testSnapshot() *schedule.Snapshot {
	return &schedule.Snapshot{
		Stops: []models.Stop{
			{ID: "O", Name: "Origin St", Lat: fptr(47.580), Lon: fptr(-122.330)},
			{ID: "M", Name: "Midtown Hub", Lat: fptr(47.600), Lon: fptr(-122.330)},
			{ID: "B", Name: "Broad St", Lat: fptr(47.620), Lon: fptr(-122.330)},
		},
		Routes: []models.Route{{ID: "r12", ShortName: "12"}},
		Trips:  []models.Trip{{ID: "t1", RouteID: "r12", ServiceID: "wk", Headsign: "Northbound"}},
		StopTimes: []models.StopTimeRow{
			{TripID: "t1", StopID: "O", StopSequence: 1, DepartureTime: "08:00:00"},
			{TripID: "t1", StopID: "M", StopSequence: 2, ArrivalTime: "08:10:00", DepartureTime: "08:10:30"},
			{TripID: "t1", StopID: "B", StopSequence: 3, ArrivalTime: "08:20:00"},
		},
	}
}

// createTestAPI builds a restAPI over the given snapshot, ready to serve.
func createTestAPI(t *testing.T, snap *schedule.Snapshot) *restAPI {
	t.Helper()

	logger := logging.NewStructuredLogger(io.Discard, slog.LevelError)
	manager, err := schedule.InitManager(&stubSource{snap: snap}, nil, schedule.ManagerConfig{}, logger)
	require.NoError(t, err)
	t.Cleanup(manager.Shutdown)

	return &restAPI{
		app: &app.Application{
			Config: config.Config{
				APIKeys: []string{"TEST"},
				Planner: config.PlannerConfig{MaxWalkingDistanceMeters: 500},
			},
			Logger:          logger,
			ScheduleManager: manager,
			Planner:         planner.New(planner.DefaultTunables()),
			Metrics:         metrics.NewCollector(),
		},
	}
}

// serveAndRetrieveEndpoint makes a request against a fully routed test server
// and returns the raw response plus the decoded envelope.
func serveAndRetrieveEndpoint(t *testing.T, api *restAPI, endpoint string) (*http.Response, models.ResponseModel, []byte) {
	t.Helper()

	server := httptest.NewServer(api.routes())
	defer server.Close()

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer resp.Body.Close() // nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var response models.ResponseModel
	require.NoError(t, json.Unmarshal(body, &response))

	return resp, response, body
}
