// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Flight data sources selectable with FLIGHT_SOURCE.
const (
	SourceFile     = "file"
	SourceArchive  = "archive"
	SourceHTTP     = "http"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
	SourceRedis    = "redis"
	SourceS3       = "s3"
	SourceMongo    = "mongo"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Static  StaticConfig
	Logging LoggingConfig
	App     AppConfig
	Flights FlightSourceConfig
	Redis   RedisConfig
	S3      S3Config
	Mongo   MongoConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `env:"PORT" envDefault:"3001"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// StaticConfig holds settings for the public asset directory.
type StaticConfig struct {
	Dir   string `env:"STATIC_DIR" envDefault:"src/ui/public"`
	Index string `env:"STATIC_INDEX" envDefault:"index.html"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`
}

// FlightSourceConfig selects the flight data provider.
type FlightSourceConfig struct {
	Source      string `env:"FLIGHT_SOURCE" envDefault:"file"`
	DataPath    string `env:"FLIGHT_DATA_PATH" envDefault:"data/flights.json"`
	ArchiveDir  string `env:"FLIGHT_ARCHIVE_DIR" envDefault:"data"`
	DataURL     string `env:"FLIGHT_DATA_URL"`
	DatabaseURL string `env:"DATABASE_URL"`
}

// RedisConfig holds settings for the redis source.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	Key      string `env:"REDIS_KEY" envDefault:"flights"`
}

// S3Config holds settings for the s3 source.
type S3Config struct {
	Bucket    string `env:"S3_BUCKET"`
	Key       string `env:"S3_KEY"`
	Region    string `env:"S3_REGION"`
	Endpoint  string `env:"S3_ENDPOINT"`
	AccessKey string `env:"S3_ACCESS_KEY"`
	SecretKey string `env:"S3_SECRET_KEY"`
}

// MongoConfig holds settings for the mongo source.
type MongoConfig struct {
	URI        string `env:"MONGO_URI"`
	Database   string `env:"MONGO_DATABASE"`
	Collection string `env:"MONGO_COLLECTION"`
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}


// validate checks configuration values for correctness.
func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	if cfg.Server.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}

	if cfg.Static.Dir == "" {
		return fmt.Errorf("STATIC_DIR must not be empty")
	}
	if cfg.Static.Index == "" {
		return fmt.Errorf("STATIC_INDEX must not be empty")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", cfg.Logging.Level)
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", cfg.Logging.Format)
	}

	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[cfg.App.Env] {
		return fmt.Errorf("APP_ENV must be one of: development, staging, production; got %q", cfg.App.Env)
	}

	return validateSource(cfg)
}

// validateSource checks that the selected flight source has what it needs to connect.
func validateSource(cfg *Config) error {
	required := func(name, value string) error {
		if value == "" {
			return fmt.Errorf("%s is required when FLIGHT_SOURCE=%s", name, cfg.Flights.Source)
		}
		return nil
	}

	switch cfg.Flights.Source {
	case SourceFile:
		return required("FLIGHT_DATA_PATH", cfg.Flights.DataPath)
	case SourceArchive:
		return required("FLIGHT_ARCHIVE_DIR", cfg.Flights.ArchiveDir)
	case SourceHTTP:
		return required("FLIGHT_DATA_URL", cfg.Flights.DataURL)
	case SourcePostgres, SourceSQLite:
		return required("DATABASE_URL", cfg.Flights.DatabaseURL)
	case SourceRedis:
		if err := required("REDIS_ADDR", cfg.Redis.Addr); err != nil {
			return err
		}
		if cfg.Redis.DB < 0 {
			return fmt.Errorf("REDIS_DB must not be negative, got %d", cfg.Redis.DB)
		}
		return required("REDIS_KEY", cfg.Redis.Key)
	case SourceS3:
		if err := required("S3_BUCKET", cfg.S3.Bucket); err != nil {
			return err
		}
		if err := required("S3_KEY", cfg.S3.Key); err != nil {
			return err
		}
		if (cfg.S3.AccessKey == "") != (cfg.S3.SecretKey == "") {
			return fmt.Errorf("S3_ACCESS_KEY and S3_SECRET_KEY must be set together")
		}
		return nil
	case SourceMongo:
		if err := required("MONGO_URI", cfg.Mongo.URI); err != nil {
			return err
		}
		if err := required("MONGO_DATABASE", cfg.Mongo.Database); err != nil {
			return err
		}
		return required("MONGO_COLLECTION", cfg.Mongo.Collection)
	default:
		return fmt.Errorf("FLIGHT_SOURCE must be one of: file, archive, http, postgres, sqlite, redis, s3, mongo; got %q",
			cfg.Flights.Source)
	}
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
