package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"wayfinder.transitapp.org/internal/models"
)

// Client fetches the four schedule tables from the upstream provider's bulk
// read endpoints. The provider owns staleness and caching; the client only
// consumes a point-in-time snapshot.
type Client struct {
	baseURL      string
	fetchTimeout time.Duration
	httpClient   *http.Client
}

// NewClient creates a provider client. The fetch timeout covers the whole
// four-table fetch, not each request individually.
func NewClient(baseURL string, fetchTimeout time.Duration) *Client {
	return &Client{
		baseURL:      baseURL,
		fetchTimeout: fetchTimeout,
		httpClient:   &http.Client{},
	}
}

// FetchSnapshot downloads stops, routes, trips and stop-times concurrently
// and joins the results. A deadline hit surfaces ErrScheduleTimeout; any
// other failure surfaces ErrScheduleUnavailable.
func (c *Client) FetchSnapshot(ctx context.Context) (*Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	var (
		wg        sync.WaitGroup
		stops     []models.Stop
		routes    []models.Route
		trips     []models.Trip
		stopTimes []models.StopTimeRow

		stopsErr, routesErr, tripsErr, stopTimesErr error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		stopsErr = c.fetchTable(ctx, "/stops", &stops)
	}()
	go func() {
		defer wg.Done()
		routesErr = c.fetchTable(ctx, "/routes", &routes)
	}()
	go func() {
		defer wg.Done()
		tripsErr = c.fetchTable(ctx, "/trips", &trips)
	}()
	go func() {
		defer wg.Done()
		stopTimesErr = c.fetchTable(ctx, "/stop-times", &stopTimes)
	}()
	wg.Wait()

	for _, err := range []error{stopsErr, routesErr, tripsErr, stopTimesErr} {
		if err == nil {
			continue
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", ErrScheduleTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrScheduleUnavailable, err)
	}

	return &Snapshot{
		Stops:     stops,
		Routes:    routes,
		Trips:     trips,
		StopTimes: stopTimes,
	}, nil
}

// Source returns a human-readable description of where the snapshot comes from.
func (c *Client) Source() string {
	return c.baseURL
}

func (c *Client) fetchTable(ctx context.Context, path string, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", path, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", path, err)
	}
	defer resp.Body.Close() // nolint

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetching %s: unexpected status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}

	return nil
}
