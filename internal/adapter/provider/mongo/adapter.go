// Package mongo provides a flight data provider backed by a MongoDB collection.
package mongo

import (
	"context"
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/flight-search/flight-price-tracker/internal/domain"
)

// ProviderName is the unique identifier for the MongoDB provider.
const ProviderName = "mongo"

// Config holds connection settings.
type Config struct {
	URI        string
	Database   string
	Collection string
}

// collection is the subset of *mongo.Collection used here.
type collection interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
}

// Adapter queries the collection on every call.
type Adapter struct {
	client *mongo.Client
	col    collection
}

// NewAdapter connects to cfg.URI and verifies the deployment is reachable.
func NewAdapter(ctx context.Context, cfg Config) (*Adapter, error) {
	clientOpts := options.Client().
		ApplyURI(cfg.URI).
		SetRetryReads(false)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo provider: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo provider: ping: %w", err)
	}

	return &Adapter{
		client: client,
		col:    client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Name returns the provider's unique identifier.
func (a *Adapter) Name() string {
	return ProviderName
}

// Flights implements domain.FlightProvider. Documents come back in _id order.
func (a *Adapter) Flights(ctx context.Context) ([]domain.Flight, error) {
	return a.find(ctx, bson.D{})
}

// FlightsByRoute implements domain.RouteFinder.
func (a *Adapter) FlightsByRoute(ctx context.Context, origin, destination string) ([]domain.Flight, error) {
	return a.find(ctx, bson.D{
		{Key: domain.FieldOrigin, Value: origin},
		{Key: domain.FieldDestination, Value: destination},
	})
}

// Close disconnects the client.
func (a *Adapter) Close() error {
	return a.client.Disconnect(context.Background())
}

func (a *Adapter) find(ctx context.Context, filter bson.D) ([]domain.Flight, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := a.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, domain.NewProviderError(ProviderName, err)
	}

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, domain.NewProviderError(ProviderName, err)
	}

	flights := make([]domain.Flight, 0, len(docs))
	for _, doc := range docs {
		f, err := documentToFlight(doc)
		if err != nil {
			return nil, domain.NewProviderError(ProviderName, err)
		}
		flights = append(flights, f)
	}
	return flights, nil
}

// documentToFlight normalizes a BSON document. The document's _id stands in
// for a missing id field and is otherwise dropped.
func documentToFlight(doc bson.M) (domain.Flight, error) {
	raw := make(map[string]any, len(doc))
	for k, v := range doc {
		if k == "_id" {
			continue
		}
		raw[k] = plainValue(v)
	}
	if _, ok := raw[domain.FieldID]; !ok {
		if oid, ok := doc["_id"]; ok {
			raw[domain.FieldID] = plainValue(oid)
		}
	}
	return domain.FlightFromMap(raw)
}

// plainValue converts driver types into values that encode cleanly as JSON.
func plainValue(v any) any {
	switch t := v.(type) {
	case primitive.ObjectID:
		return t.Hex()
	case primitive.DateTime:
		return t.Time().UTC()
	case primitive.Decimal128:
		// json.Number cannot carry NaN or Infinity
		if t.IsNaN() || t.IsInf() != 0 {
			return t.String()
		}
		return json.Number(t.String())
	case bson.M:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = plainValue(val)
		}
		return out
	case bson.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = plainValue(e.Value)
		}
		return out
	case bson.A:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = plainValue(val)
		}
		return out
	default:
		return v
	}
}
