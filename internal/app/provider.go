package app

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/flight-search/flight-price-tracker/internal/adapter/provider/archive"
	"github.com/flight-search/flight-price-tracker/internal/adapter/provider/file"
	"github.com/flight-search/flight-price-tracker/internal/adapter/provider/mongo"
	"github.com/flight-search/flight-price-tracker/internal/adapter/provider/postgres"
	"github.com/flight-search/flight-price-tracker/internal/adapter/provider/redis"
	"github.com/flight-search/flight-price-tracker/internal/adapter/provider/remote"
	"github.com/flight-search/flight-price-tracker/internal/adapter/provider/s3store"
	"github.com/flight-search/flight-price-tracker/internal/adapter/provider/sqlite"
	"github.com/flight-search/flight-price-tracker/internal/config"
	"github.com/flight-search/flight-price-tracker/internal/domain"
)

// NewProvider builds the flight data provider selected by cfg.Flights.Source.
// Sources backed by a server connect eagerly so misconfiguration fails at startup.
func NewProvider(ctx context.Context, cfg *config.Config) (domain.FlightProvider, error) {
	switch cfg.Flights.Source {
	case config.SourceFile:
		return file.NewAdapter(cfg.Flights.DataPath), nil
	case config.SourceArchive:
		return archive.NewAdapter(cfg.Flights.ArchiveDir), nil
	case config.SourceHTTP:
		return remote.NewAdapter(cfg.Flights.DataURL, &http.Client{}), nil
	case config.SourcePostgres:
		return postgres.NewAdapter(ctx, cfg.Flights.DatabaseURL)
	case config.SourceSQLite:
		return sqlite.NewAdapter(ctx, cfg.Flights.DatabaseURL)
	case config.SourceRedis:
		return redis.NewAdapter(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Key:      cfg.Redis.Key,
		})
	case config.SourceS3:
		return s3store.NewAdapter(ctx, s3store.Config{
			Bucket:    cfg.S3.Bucket,
			Key:       cfg.S3.Key,
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
		})
	case config.SourceMongo:
		return mongo.NewAdapter(ctx, mongo.Config{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
	default:
		return nil, fmt.Errorf("unknown flight source %q", cfg.Flights.Source)
	}
}

// CloseProvider releases the provider's connections, if it holds any.
func CloseProvider(p domain.FlightProvider) error {
	if c, ok := p.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
