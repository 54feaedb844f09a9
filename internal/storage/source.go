package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/runnerr0/timemap/internal/dataset"
	"github.com/runnerr0/timemap/internal/metrics"
)

// SQLSource reads events and routes from the events and routes tables. It
// never writes records.
type SQLSource struct {
	db     *sql.DB
	driver string
}

var _ dataset.Source = (*SQLSource)(nil)

// Open connects to dsn with driver ("sqlite3" or "pgx"), makes sure the
// schema exists and returns a ready-to-use source.
func Open(driver, dsn string) (*SQLSource, error) {
	switch driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	runner := NewMigrationRunner(db, driver)
	if err := runner.Run(); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return NewSQLSource(db, driver), nil
}

// NewSQLSource wraps an already-opened and migrated database.
func NewSQLSource(db *sql.DB, driver string) *SQLSource {
	return &SQLSource{db: db, driver: driver}
}

// Close releases the database handle.
func (s *SQLSource) Close() error {
	return s.db.Close()
}

// LoadEvents returns every event ordered by position. Rows whose JSON
// columns cannot be decoded are skipped.
func (s *SQLSource) LoadEvents(ctx context.Context) ([]dataset.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT position, time, lat, lon, title, category, description, images, refs
		FROM events ORDER BY position
	`)
	if err != nil {
		return nil, s.fetchError("events", err)
	}
	defer rows.Close()

	var events []dataset.Event
	for rows.Next() {
		var r eventRow
		if err := rows.Scan(&r.Position, &r.Time, &r.Lat, &r.Lon, &r.Title,
			&r.Category, &r.Description, &r.Images, &r.Refs); err != nil {
			return nil, s.fetchError("events", err)
		}
		e, err := r.toEvent()
		if err != nil {
			skipRow("event", r.Position, err)
			continue
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fetchError("events", err)
	}
	return events, nil
}

// LoadRoutes returns every route ordered by position.
func (s *SQLSource) LoadRoutes(ctx context.Context) ([]dataset.Route, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT position, time, title, description, path, refs
		FROM routes ORDER BY position
	`)
	if err != nil {
		return nil, s.fetchError("routes", err)
	}
	defer rows.Close()

	var routes []dataset.Route
	for rows.Next() {
		var r routeRow
		if err := rows.Scan(&r.Position, &r.Time, &r.Title, &r.Description, &r.Path, &r.Refs); err != nil {
			return nil, s.fetchError("routes", err)
		}
		rt, err := r.toRoute()
		if err != nil {
			skipRow("route", r.Position, err)
			continue
		}
		routes = append(routes, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fetchError("routes", err)
	}
	return routes, nil
}

func (s *SQLSource) fetchError(kind string, err error) error {
	return &dataset.FetchError{Kind: kind, Location: s.driver, Err: err}
}

func skipRow(kind string, position int, err error) {
	metrics.SkippedRecords.WithLabelValues(kind, "decode").Inc()
	log.Debug().Err(err).Str("kind", kind).Int("position", position).Msg("skipping malformed row")
}
