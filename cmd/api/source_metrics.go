package main

import (
	"context"

	"wayfinder.transitapp.org/internal/metrics"
	"wayfinder.transitapp.org/internal/schedule"
)

// meteredSource counts fetch attempts and failures around any schedule source.
type meteredSource struct {
	inner     schedule.Source
	collector *metrics.Collector
}

func newMeteredSource(inner schedule.Source, collector *metrics.Collector) *meteredSource {
	return &meteredSource{inner: inner, collector: collector}
}

func (s *meteredSource) FetchSnapshot(ctx context.Context) (*schedule.Snapshot, error) {
	s.collector.SnapshotFetches.Inc()
	snap, err := s.inner.FetchSnapshot(ctx)
	if err != nil {
		s.collector.SnapshotFetchErrs.Inc()
	}
	return snap, err
}

func (s *meteredSource) Source() string {
	return s.inner.Source()
}
