package main

import (
	"net/http"
	"strconv"
	"time"

	"wayfinder.transitapp.org/internal/models"
	"wayfinder.transitapp.org/internal/planner"
	"wayfinder.transitapp.org/internal/schedule"
)

// planHandler computes journeys between two stops. Infeasible requests get a
// structured noRouteFound result inside a 200 envelope; only malformed
// parameters are HTTP errors.
func (api *restAPI) planHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	from := query.Get("from")
	if from == "" {
		api.validationErrorResponse(w, "from parameter is required")
		return
	}
	to := query.Get("to")
	if to == "" {
		api.validationErrorResponse(w, "to parameter is required")
		return
	}

	opts := planner.Options{
		DepartureTime:            query.Get("departureTime"),
		MaxWalkingDistanceMeters: api.app.Config.Planner.MaxWalkingDistanceMeters,
		MaxTransfers:             1,
	}
	if opts.DepartureTime == "" {
		opts.DepartureTime = planner.DepartureNow
	}

	if v := query.Get("date"); v != "" {
		date, err := time.Parse("2006-01-02", v)
		if err != nil {
			api.validationErrorResponse(w, "invalid date parameter; expected YYYY-MM-DD")
			return
		}
		opts.DepartureDate = date
	}
	if v := query.Get("maxWalk"); v != "" {
		meters, err := strconv.ParseFloat(v, 64)
		if err != nil || meters < 0 {
			api.validationErrorResponse(w, "invalid maxWalk parameter; expected a non-negative number of meters")
			return
		}
		opts.MaxWalkingDistanceMeters = meters
	}
	if v := query.Get("maxTransfers"); v != "" {
		transfers, err := strconv.Atoi(v)
		if err != nil || transfers < 0 || transfers > 1 {
			api.validationErrorResponse(w, "invalid maxTransfers parameter; expected 0 or 1")
			return
		}
		opts.MaxTransfers = transfers
	}

	start := time.Now()
	var result models.PlanResult

	snap, idx, err := api.app.ScheduleManager.Current()
	if err != nil {
		result = models.PlanResult{
			Journeys:     []models.Journey{},
			NoRouteFound: true,
			Message:      "schedule not loaded",
		}
	} else {
		result = api.app.Planner.Plan(snap, idx, stopForID(idx, from), stopForID(idx, to), opts)
	}

	api.app.Metrics.PlanDuration.Observe(time.Since(start).Seconds())
	api.app.Metrics.JourneysFound.Observe(float64(len(result.Journeys)))
	outcome := "ok"
	if result.NoRouteFound {
		outcome = "no_route"
	}
	api.app.Metrics.PlanRequests.WithLabelValues(outcome).Inc()

	api.sendResponse(w, r, models.NewEntryResponse(result))
}

// stopForID resolves a stop ID against the schedule; unknown IDs flow through
// as bare stops so the planner can report them as unusable.
func stopForID(idx *schedule.Index, id string) models.Stop {
	if stop, ok := idx.StopByID[id]; ok {
		return stop
	}
	return models.Stop{ID: id}
}
