// Package postgres provides a flight data provider backed by a PostgreSQL table.
//
// Expected schema:
//
//	CREATE TABLE flights (
//	    position    BIGSERIAL PRIMARY KEY,
//	    id          TEXT NOT NULL,
//	    origin      TEXT NOT NULL,
//	    destination TEXT NOT NULL,
//	    price       NUMERIC NOT NULL CHECK (price >= 0),
//	    extra       JSONB
//	);
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flight-search/flight-price-tracker/internal/domain"
)

// ProviderName is the unique identifier for the PostgreSQL provider.
const ProviderName = "postgres"

const selectColumns = `SELECT id, origin, destination, price::float8, extra FROM flights`

// querier is the subset of *pgxpool.Pool used for reads.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Adapter reads flights through a connection pool.
type Adapter struct {
	pool *pgxpool.Pool
	db   querier
}

// NewAdapter opens a pool for dsn and verifies the connection.
func NewAdapter(ctx context.Context, dsn string) (*Adapter, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres provider: open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres provider: ping: %w", err)
	}
	return NewAdapterWithPool(pool), nil
}

// NewAdapterWithPool wraps an existing pool.
func NewAdapterWithPool(pool *pgxpool.Pool) *Adapter {
	return &Adapter{pool: pool, db: pool}
}

// Name returns the provider's unique identifier.
func (a *Adapter) Name() string {
	return ProviderName
}

// Flights implements domain.FlightProvider.
func (a *Adapter) Flights(ctx context.Context) ([]domain.Flight, error) {
	return a.query(ctx, selectColumns+` ORDER BY position`)
}

// FlightsByRoute implements domain.RouteFinder. Comparison is case-sensitive,
// matching the in-memory route filter.
func (a *Adapter) FlightsByRoute(ctx context.Context, origin, destination string) ([]domain.Flight, error) {
	return a.query(ctx, selectColumns+` WHERE origin = $1 AND destination = $2 ORDER BY position`, origin, destination)
}

// Close releases the pool.
func (a *Adapter) Close() error {
	a.pool.Close()
	return nil
}

func (a *Adapter) query(ctx context.Context, sql string, args ...any) ([]domain.Flight, error) {
	rows, err := a.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, domain.NewProviderError(ProviderName, err)
	}
	return collectFlights(rows)
}

// collectFlights drains rows in order and closes them.
func collectFlights(rows pgx.Rows) ([]domain.Flight, error) {
	flights, err := pgx.CollectRows(rows, scanFlight)
	if err != nil {
		return nil, domain.NewProviderError(ProviderName, err)
	}
	return flights, nil
}

// scanFlight maps one row, validating the price like every other source.
func scanFlight(row pgx.CollectableRow) (domain.Flight, error) {
	var (
		f     domain.Flight
		id    string
		price float64
		extra map[string]any
	)
	if err := row.Scan(&id, &f.Origin, &f.Destination, &price, &extra); err != nil {
		return domain.Flight{}, err
	}

	validPrice, err := domain.ParsePrice(price)
	if err != nil {
		return domain.Flight{}, fmt.Errorf("flight %s: %w", id, err)
	}

	f.ID = id
	f.Price = validPrice
	if len(extra) > 0 {
		f.Extra = extra
	}
	return f, nil
}
