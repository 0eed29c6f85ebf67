package app

import (
	"log/slog"

	"wayfinder.transitapp.org/internal/config"
	"wayfinder.transitapp.org/internal/metrics"
	"wayfinder.transitapp.org/internal/planner"
	"wayfinder.transitapp.org/internal/schedule"
)

// Application holds the dependencies for the HTTP handlers, helpers and
// middleware.
type Application struct {
	Config          config.Config
	Logger          *slog.Logger
	ScheduleManager *schedule.Manager
	Planner         *planner.Planner
	Metrics         *metrics.Collector
}
