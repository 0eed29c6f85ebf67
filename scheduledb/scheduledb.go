// Package scheduledb persists schedule snapshots in a local SQLite database
// so the service can warm-start when the upstream provider is unreachable.
package scheduledb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"

	"wayfinder.transitapp.org/internal/logging"
	"wayfinder.transitapp.org/internal/models"
	"wayfinder.transitapp.org/internal/schedule"
)

// Client stores and loads snapshots. It implements schedule.SnapshotCache.
type Client struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewClient opens (or creates) the cache database at the given path.
// Use ":memory:" in tests.
func NewClient(path string, logger *slog.Logger) (*Client, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening snapshot cache: %w", err)
	}

	// One connection keeps ":memory:" databases coherent and serializes the
	// store/load pair; the cache is not a hot path.
	db.SetMaxOpenConns(1)

	if err := createTables(db); err != nil {
		logging.SafeCloseWithLogging(db, logger, "close_snapshot_cache")
		return nil, err
	}

	return &Client{db: db, logger: logger}, nil
}

func (c *Client) Close() error {
	return c.db.Close()
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS stops (
			stop_id TEXT PRIMARY KEY,
			stop_name TEXT,
			stop_lat REAL,
			stop_lon REAL
		);
		CREATE TABLE IF NOT EXISTS routes (
			route_id TEXT PRIMARY KEY,
			route_short_name TEXT,
			route_long_name TEXT,
			route_color TEXT
		);
		CREATE TABLE IF NOT EXISTS trips (
			trip_id TEXT PRIMARY KEY,
			route_id TEXT NOT NULL,
			service_id TEXT,
			direction_id INTEGER,
			trip_headsign TEXT
		);
		CREATE TABLE IF NOT EXISTS stop_times (
			trip_id TEXT NOT NULL,
			stop_id TEXT NOT NULL,
			stop_sequence INTEGER NOT NULL,
			arrival_time TEXT,
			departure_time TEXT,
			PRIMARY KEY (trip_id, stop_sequence)
		);
		CREATE INDEX IF NOT EXISTS idx_trips_route_id ON trips(route_id);
		CREATE INDEX IF NOT EXISTS idx_stop_times_trip_id ON stop_times(trip_id);
		CREATE INDEX IF NOT EXISTS idx_stop_times_stop_id ON stop_times(stop_id);
	`)
	if err != nil {
		return fmt.Errorf("error creating snapshot cache tables: %w", err)
	}
	return nil
}

// Store replaces the cached snapshot with the given one in a single
// transaction, so a crash mid-write never leaves a mixed snapshot behind.
func (c *Client) Store(ctx context.Context, snap *schedule.Snapshot) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer logging.SafeRollbackWithLogging(tx, c.logger, "store_snapshot")

	for _, table := range []string{"stops", "routes", "trips", "stop_times"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("error clearing %s: %w", table, err)
		}
	}

	if err := insertStops(ctx, tx, snap.Stops); err != nil {
		return err
	}
	if err := insertRoutes(ctx, tx, snap.Routes); err != nil {
		return err
	}
	if err := insertTrips(ctx, tx, snap.Trips); err != nil {
		return err
	}
	if err := insertStopTimes(ctx, tx, snap.StopTimes); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing snapshot: %w", err)
	}
	return nil
}

func insertStops(ctx context.Context, tx *sql.Tx, stops []models.Stop) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO stops (stop_id, stop_name, stop_lat, stop_lon)
		VALUES (?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("error preparing statement: %w", err)
	}
	defer stmt.Close() // nolint:errcheck

	for _, stop := range stops {
		if _, err := stmt.ExecContext(ctx, stop.ID, stop.Name, stop.Lat, stop.Lon); err != nil {
			return fmt.Errorf("error inserting stop: %w", err)
		}
	}
	return nil
}

func insertRoutes(ctx context.Context, tx *sql.Tx, routes []models.Route) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO routes (route_id, route_short_name, route_long_name, route_color)
		VALUES (?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("error preparing statement: %w", err)
	}
	defer stmt.Close() // nolint:errcheck

	for _, route := range routes {
		if _, err := stmt.ExecContext(ctx, route.ID, route.ShortName, route.LongName, route.Color); err != nil {
			return fmt.Errorf("error inserting route: %w", err)
		}
	}
	return nil
}

func insertTrips(ctx context.Context, tx *sql.Tx, trips []models.Trip) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO trips (trip_id, route_id, service_id, direction_id, trip_headsign)
		VALUES (?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("error preparing statement: %w", err)
	}
	defer stmt.Close() // nolint:errcheck

	for _, trip := range trips {
		if _, err := stmt.ExecContext(ctx, trip.ID, trip.RouteID, trip.ServiceID, trip.DirectionID, trip.Headsign); err != nil {
			return fmt.Errorf("error inserting trip: %w", err)
		}
	}
	return nil
}

func insertStopTimes(ctx context.Context, tx *sql.Tx, rows []models.StopTimeRow) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO stop_times (trip_id, stop_id, stop_sequence, arrival_time, departure_time)
		VALUES (?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("error preparing statement: %w", err)
	}
	defer stmt.Close() // nolint:errcheck

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, row.TripID, row.StopID, row.StopSequence, row.ArrivalTime, row.DepartureTime); err != nil {
			return fmt.Errorf("error inserting stop time: %w", err)
		}
	}
	return nil
}

// Load reads the cached snapshot. An empty cache yields an empty snapshot,
// not an error; callers check IsEmpty.
func (c *Client) Load(ctx context.Context) (*schedule.Snapshot, error) {
	snap := &schedule.Snapshot{}

	rows, err := c.db.QueryContext(ctx, `SELECT stop_id, stop_name, stop_lat, stop_lon FROM stops ORDER BY stop_id`)
	if err != nil {
		return nil, fmt.Errorf("error loading stops: %w", err)
	}
	defer rows.Close() // nolint:errcheck
	for rows.Next() {
		var stop models.Stop
		if err := rows.Scan(&stop.ID, &stop.Name, &stop.Lat, &stop.Lon); err != nil {
			return nil, fmt.Errorf("error scanning stop: %w", err)
		}
		snap.Stops = append(snap.Stops, stop)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error loading stops: %w", err)
	}

	routeRows, err := c.db.QueryContext(ctx, `SELECT route_id, route_short_name, route_long_name, route_color FROM routes ORDER BY route_id`)
	if err != nil {
		return nil, fmt.Errorf("error loading routes: %w", err)
	}
	defer routeRows.Close() // nolint:errcheck
	for routeRows.Next() {
		var route models.Route
		if err := routeRows.Scan(&route.ID, &route.ShortName, &route.LongName, &route.Color); err != nil {
			return nil, fmt.Errorf("error scanning route: %w", err)
		}
		snap.Routes = append(snap.Routes, route)
	}
	if err := routeRows.Err(); err != nil {
		return nil, fmt.Errorf("error loading routes: %w", err)
	}

	tripRows, err := c.db.QueryContext(ctx, `SELECT trip_id, route_id, service_id, direction_id, trip_headsign FROM trips ORDER BY trip_id`)
	if err != nil {
		return nil, fmt.Errorf("error loading trips: %w", err)
	}
	defer tripRows.Close() // nolint:errcheck
	for tripRows.Next() {
		var trip models.Trip
		if err := tripRows.Scan(&trip.ID, &trip.RouteID, &trip.ServiceID, &trip.DirectionID, &trip.Headsign); err != nil {
			return nil, fmt.Errorf("error scanning trip: %w", err)
		}
		snap.Trips = append(snap.Trips, trip)
	}
	if err := tripRows.Err(); err != nil {
		return nil, fmt.Errorf("error loading trips: %w", err)
	}

	stRows, err := c.db.QueryContext(ctx, `SELECT trip_id, stop_id, stop_sequence, arrival_time, departure_time FROM stop_times ORDER BY trip_id, stop_sequence`)
	if err != nil {
		return nil, fmt.Errorf("error loading stop times: %w", err)
	}
	defer stRows.Close() // nolint:errcheck
	for stRows.Next() {
		var row models.StopTimeRow
		var arrival, departure sql.NullString
		if err := stRows.Scan(&row.TripID, &row.StopID, &row.StopSequence, &arrival, &departure); err != nil {
			return nil, fmt.Errorf("error scanning stop time: %w", err)
		}
		row.ArrivalTime = arrival.String
		row.DepartureTime = departure.String
		snap.StopTimes = append(snap.StopTimes, row)
	}
	if err := stRows.Err(); err != nil {
		return nil, fmt.Errorf("error loading stop times: %w", err)
	}

	return snap, nil
}
