package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns the service's Prometheus instruments on a private registry,
// so tests can create collectors freely without default-registry collisions.
type Collector struct {
	reg *prometheus.Registry

	PlanRequests  *prometheus.CounterVec // outcome label: ok|no_route|error
	PlanDuration  prometheus.Histogram
	JourneysFound prometheus.Histogram

	SnapshotAge       prometheus.Gauge
	SnapshotStops     prometheus.Gauge
	SnapshotTrips     prometheus.Gauge
	SnapshotFetches   prometheus.Counter
	SnapshotFetchErrs prometheus.Counter
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		PlanRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wayfinder_plan_requests_total",
			Help: "Total plan requests by outcome.",
		}, []string{"outcome"}),
		PlanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "wayfinder_plan_duration_seconds",
			Help:    "Duration of journey planning computations.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
		}),
		JourneysFound: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "wayfinder_plan_journeys_found",
			Help:    "Number of ranked journeys returned per plan request.",
			Buckets: prometheus.LinearBuckets(0, 1, 11),
		}),
		SnapshotAge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "wayfinder_snapshot_age_seconds",
			Help: "Age of the schedule snapshot currently being served.",
		}),
		SnapshotStops: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "wayfinder_snapshot_stops",
			Help: "Number of stops in the current snapshot.",
		}),
		SnapshotTrips: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "wayfinder_snapshot_trips",
			Help: "Number of trips in the current snapshot.",
		}),
		SnapshotFetches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wayfinder_snapshot_fetches_total",
			Help: "Total schedule snapshot fetch attempts.",
		}),
		SnapshotFetchErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wayfinder_snapshot_fetch_errors_total",
			Help: "Total schedule snapshot fetch failures.",
		}),
	}

	reg.MustRegister(
		c.PlanRequests, c.PlanDuration, c.JourneysFound,
		c.SnapshotAge, c.SnapshotStops, c.SnapshotTrips,
		c.SnapshotFetches, c.SnapshotFetchErrs,
	)

	return c
}

// Handler exposes the collector's registry in Prometheus text format.
func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }
