// Package s3store provides a flight data provider reading a JSON document from an
// S3-compatible object store (AWS S3, MinIO, Cloudflare R2).
package s3store

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/flight-search/flight-price-tracker/internal/adapter/provider/document"
	"github.com/flight-search/flight-price-tracker/internal/domain"
)

// ProviderName is the unique identifier for the S3 provider.
const ProviderName = "s3"

// Config holds the object location and client settings.
type Config struct {
	Bucket string
	Key    string
	Region string

	// Endpoint overrides the AWS endpoint, e.g. for MinIO. Path-style addressing is used when set.
	Endpoint string

	// AccessKey and SecretKey select static credentials; empty means the default chain.
	AccessKey string
	SecretKey string
}

// Adapter downloads and decodes the object on every call.
type Adapter struct {
	client *s3.Client
	bucket string
	key    string
}

// NewAdapter builds an S3 client from cfg.
func NewAdapter(ctx context.Context, cfg Config) (*Adapter, error) {
	if cfg.Bucket == "" || cfg.Key == "" {
		return nil, fmt.Errorf("s3 provider: bucket and key are required")
	}

	opts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsConfig, err := awscfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("s3 provider: load config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		// provider reads are never retried
		o.Retryer = aws.NopRetryer{}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewAdapterWithClient(client, cfg.Bucket, cfg.Key), nil
}

// NewAdapterWithClient creates an adapter around an existing client.
func NewAdapterWithClient(client *s3.Client, bucket, key string) *Adapter {
	return &Adapter{
		client: client,
		bucket: bucket,
		key:    key,
	}
}

// Name returns the provider's unique identifier.
func (a *Adapter) Name() string {
	return ProviderName
}

// Flights implements domain.FlightProvider.
func (a *Adapter) Flights(ctx context.Context) ([]domain.Flight, error) {
	out, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(a.key),
	})
	if err != nil {
		return nil, domain.NewProviderError(ProviderName, fmt.Errorf("get s3://%s/%s: %w", a.bucket, a.key, err))
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, domain.NewProviderError(ProviderName, fmt.Errorf("read s3://%s/%s: %w", a.bucket, a.key, err))
	}

	flights, err := document.DecodeJSON(data)
	if err != nil {
		return nil, domain.NewProviderError(ProviderName, err)
	}
	return flights, nil
}
