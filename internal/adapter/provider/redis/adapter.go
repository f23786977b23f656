// Package redis provides a flight data provider that reads a Redis list.
// Each list element is one JSON-encoded flight record; list order is response order.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/flight-search/flight-price-tracker/internal/domain"
)

// ProviderName is the unique identifier for the Redis provider.
const ProviderName = "redis"

// listReader is the subset of the client used here.
type listReader interface {
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
}

// Config holds connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// Adapter reads the full list on every call.
type Adapter struct {
	client listReader
	closer func() error
	key    string
}

// NewAdapter connects to the server described by cfg and verifies it answers.
func NewAdapter(ctx context.Context, cfg Config) (*Adapter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:       cfg.Addr,
		Password:   cfg.Password,
		DB:         cfg.DB,
		MaxRetries: -1,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis provider: ping %s: %w", cfg.Addr, err)
	}
	return NewAdapterWithClient(client, cfg.Key), nil
}

// NewAdapterWithClient wraps an existing client. Close closes the client.
func NewAdapterWithClient(client *redis.Client, key string) *Adapter {
	return &Adapter{
		client: client,
		closer: client.Close,
		key:    key,
	}
}

// Name returns the provider's unique identifier.
func (a *Adapter) Name() string {
	return ProviderName
}

// Flights implements domain.FlightProvider. A missing key reads as an empty list.
func (a *Adapter) Flights(ctx context.Context) ([]domain.Flight, error) {
	items, err := a.client.LRange(ctx, a.key, 0, -1).Result()
	if err != nil {
		return nil, domain.NewProviderError(ProviderName, err)
	}

	flights, err := decodeItems(items)
	if err != nil {
		return nil, domain.NewProviderError(ProviderName, err)
	}
	return flights, nil
}

// Close releases the client connection pool.
func (a *Adapter) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer()
}

func decodeItems(items []string) ([]domain.Flight, error) {
	flights := make([]domain.Flight, 0, len(items))
	for i, item := range items {
		var f domain.Flight
		if err := json.Unmarshal([]byte(item), &f); err != nil {
			if errors.Is(err, domain.ErrMalformedRecord) {
				return nil, fmt.Errorf("list item %d: %w", i, err)
			}
			return nil, fmt.Errorf("%w: list item %d: %v", domain.ErrMalformedRecord, i, err)
		}
		flights = append(flights, f)
	}
	return flights, nil
}
