// Package sqlite provides a flight data provider backed by a SQLite database file.
// Records are returned in insertion (rowid) order.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/flight-search/flight-price-tracker/internal/domain"
)

// ProviderName is the unique identifier for the SQLite provider.
const ProviderName = "sqlite"

// Schema creates the flights table used by this provider.
const Schema = `CREATE TABLE IF NOT EXISTS flights (
	id          TEXT NOT NULL,
	origin      TEXT NOT NULL,
	destination TEXT NOT NULL,
	price       REAL NOT NULL,
	extra       TEXT
)`

const selectColumns = `SELECT id, origin, destination, price, extra FROM flights`

// Adapter reads flights from a database/sql handle.
type Adapter struct {
	db *sql.DB
}

// NewAdapter opens the database at path in read-only mode.
func NewAdapter(ctx context.Context, path string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("sqlite provider: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite provider: ping: %w", err)
	}
	return NewAdapterWithDB(db), nil
}

// NewAdapterWithDB wraps an open handle.
func NewAdapterWithDB(db *sql.DB) *Adapter {
	return &Adapter{db: db}
}

// Name returns the provider's unique identifier.
func (a *Adapter) Name() string {
	return ProviderName
}

// Flights implements domain.FlightProvider.
func (a *Adapter) Flights(ctx context.Context) ([]domain.Flight, error) {
	return a.query(ctx, selectColumns+` ORDER BY rowid`)
}

// FlightsByRoute implements domain.RouteFinder. SQLite's = on TEXT is
// case-sensitive under the default BINARY collation.
func (a *Adapter) FlightsByRoute(ctx context.Context, origin, destination string) ([]domain.Flight, error) {
	return a.query(ctx, selectColumns+` WHERE origin = ? AND destination = ? ORDER BY rowid`, origin, destination)
}

// Close closes the database handle.
func (a *Adapter) Close() error {
	return a.db.Close()
}

func (a *Adapter) query(ctx context.Context, query string, args ...any) ([]domain.Flight, error) {
	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.NewProviderError(ProviderName, err)
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, domain.NewProviderError(ProviderName, err)
		}
		flights = append(flights, f)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewProviderError(ProviderName, err)
	}
	return flights, nil
}

func scanFlight(rows *sql.Rows) (domain.Flight, error) {
	var (
		f     domain.Flight
		id    string
		price float64
		extra sql.NullString
	)
	if err := rows.Scan(&id, &f.Origin, &f.Destination, &price, &extra); err != nil {
		return domain.Flight{}, err
	}

	validPrice, err := domain.ParsePrice(price)
	if err != nil {
		return domain.Flight{}, fmt.Errorf("flight %s: %w", id, err)
	}
	f.ID = id
	f.Price = validPrice

	if extra.Valid && extra.String != "" {
		if err := json.Unmarshal([]byte(extra.String), &f.Extra); err != nil {
			return domain.Flight{}, fmt.Errorf("%w: flight %s extra: %v", domain.ErrMalformedRecord, id, err)
		}
	}
	return f, nil
}
