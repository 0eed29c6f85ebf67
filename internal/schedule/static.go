package schedule

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jamespfennell/gtfs"

	"wayfinder.transitapp.org/internal/models"
)

// StaticSource loads a snapshot from a GTFS static zip, either a URL or a
// local file path. It exists so deployments without a bulk-JSON provider can
// point the planner straight at a published GTFS feed.
type StaticSource struct {
	source      string
	isLocalFile bool
}

// NewStaticSource creates a source for the given GTFS zip URL or file path.
func NewStaticSource(source string) *StaticSource {
	isLocalFile := !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://")
	return &StaticSource{source: source, isLocalFile: isLocalFile}
}

// Source returns a human-readable description of where the snapshot comes from.
func (s *StaticSource) Source() string {
	return s.source
}

// FetchSnapshot reads and parses the GTFS feed and converts it to snapshot rows.
func (s *StaticSource) FetchSnapshot(ctx context.Context) (*Snapshot, error) {
	b, err := s.rawData(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScheduleUnavailable, err)
	}

	staticData, err := gtfs.ParseStatic(b, gtfs.ParseStaticOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: parsing GTFS data: %v", ErrScheduleUnavailable, err)
	}

	return snapshotFromStatic(staticData), nil
}

func (s *StaticSource) rawData(ctx context.Context) ([]byte, error) {
	if s.isLocalFile {
		b, err := os.ReadFile(s.source)
		if err != nil {
			return nil, fmt.Errorf("error reading local GTFS file: %w", err)
		}
		return b, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.source, nil)
	if err != nil {
		return nil, fmt.Errorf("error building GTFS request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error downloading GTFS data: %w", err)
	}
	defer resp.Body.Close() // nolint

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading GTFS data: %w", err)
	}
	return b, nil
}

func snapshotFromStatic(staticData *gtfs.Static) *Snapshot {
	snap := &Snapshot{}

	for _, s := range staticData.Stops {
		stop := models.Stop{
			ID:   s.Id,
			Name: s.Name,
		}
		if s.Latitude != nil {
			lat := *s.Latitude
			stop.Lat = &lat
		}
		if s.Longitude != nil {
			lon := *s.Longitude
			stop.Lon = &lon
		}
		snap.Stops = append(snap.Stops, stop)
	}

	for _, r := range staticData.Routes {
		snap.Routes = append(snap.Routes, models.Route{
			ID:        r.Id,
			ShortName: r.ShortName,
			LongName:  r.LongName,
			Color:     r.Color,
		})
	}

	for _, t := range staticData.Trips {
		if t.Route == nil || t.Service == nil {
			continue
		}
		direction := int(t.DirectionId)
		trip := models.Trip{
			ID:          t.ID,
			RouteID:     t.Route.Id,
			ServiceID:   t.Service.Id,
			DirectionID: &direction,
			Headsign:    t.Headsign,
		}
		snap.Trips = append(snap.Trips, trip)

		for _, st := range t.StopTimes {
			if st.Stop == nil {
				continue
			}
			snap.StopTimes = append(snap.StopTimes, models.StopTimeRow{
				TripID:        t.ID,
				StopID:        st.Stop.Id,
				StopSequence:  int(st.StopSequence),
				ArrivalTime:   formatClockDuration(st.ArrivalTime),
				DepartureTime: formatClockDuration(st.DepartureTime),
			})
		}
	}

	return snap
}

// formatClockDuration renders a time-of-day offset as zero-padded HH:MM:SS.
// Hours may exceed 24 for post-midnight trips.
func formatClockDuration(d time.Duration) string {
	total := int(d / time.Second)
	if total < 0 {
		return ""
	}
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
