// Package config loads the application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config aggregates application configuration values.
type Config struct {
	Store   StoreConfig
	Mongo   MongoConfig
	Graph   GraphConfig
	HTTP    HTTPConfig
	Logging LoggingConfig
}

// StoreConfig selects where the active record is persisted.
type StoreConfig struct {
	Backend      string // memory|file|sqlite|mongo|neo4j
	Path         string // directory for file, database file for sqlite
	Key          string // key of the active record
	SyncInterval time.Duration
}

// MongoConfig describes connectivity to MongoDB.
type MongoConfig struct {
	URI      string
	Database string
}

// GraphConfig describes connectivity to Neo4j.
type GraphConfig struct {
	URI      string
	Database string
	Username string
	Password string
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Addr returns the listen address.
func (c HTTPConfig) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level   string
	Format  string // text|json
	Colored bool
}

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMongo  = "mongo"
	BackendNeo4j  = "neo4j"
)

// Backends lists the known store backends.
var Backends = []string{BackendMemory, BackendFile, BackendSQLite, BackendMongo, BackendNeo4j}

const (
	defaultBackend         = BackendFile
	defaultStorePath       = ".wealth"
	defaultRecordKey       = "financialData"
	defaultMongoURI        = "mongodb://localhost:27017"
	defaultMongoDatabase   = "wealth"
	defaultHost            = "0.0.0.0"
	defaultPort            = 8080
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 15 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultLoggingLevel    = "info"
	defaultLoggingFormat   = "text"
)

// Load reads configuration from environment variables, applying defaults.
func Load() (Config, error) {
	cfg := Config{
		Store: StoreConfig{
			Backend: valueOrDefault("WEALTH_STORE", defaultBackend),
			Path:    valueOrDefault("WEALTH_STORE_PATH", defaultStorePath),
			Key:     valueOrDefault("WEALTH_RECORD_KEY", defaultRecordKey),
		},
		Mongo: MongoConfig{
			URI:      valueOrDefault("MONGO_URI", defaultMongoURI),
			Database: valueOrDefault("MONGO_DATABASE", defaultMongoDatabase),
		},
		Graph: GraphConfig{
			URI:      os.Getenv("NEO4J_URI"),
			Database: os.Getenv("NEO4J_DATABASE"),
			Username: os.Getenv("NEO4J_USERNAME"),
			Password: os.Getenv("NEO4J_PASSWORD"),
		},
		HTTP: HTTPConfig{
			Host:            valueOrDefault("SERVER_HOST", defaultHost),
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
		},
		Logging: LoggingConfig{
			Level:   valueOrDefault("LOG_LEVEL", defaultLoggingLevel),
			Format:  valueOrDefault("LOG_FORMAT", defaultLoggingFormat),
			Colored: parseBoolWithDefault("LOG_COLOR", true),
		},
	}

	if err := ValidateBackend(cfg.Store.Backend); err != nil {
		return Config{}, fmt.Errorf("invalid WEALTH_STORE: %w", err)
	}

	port, err := parsePort("SERVER_PORT", defaultPort)
	if err != nil {
		return Config{}, err
	}
	cfg.HTTP.Port = port

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"SERVER_READ_TIMEOUT", &cfg.HTTP.ReadTimeout},
		{"SERVER_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout},
		{"SERVER_SHUTDOWN_TIMEOUT", &cfg.HTTP.ShutdownTimeout},
		{"WEALTH_SYNC_INTERVAL", &cfg.Store.SyncInterval},
	}
	for _, d := range durations {
		if err := parseDuration(d.key, d.dst); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// ValidateBackend returns an error unless name is one of Backends.
func ValidateBackend(name string) error {
	for _, b := range Backends {
		if name == b {
			return nil
		}
	}
	return fmt.Errorf("unknown store backend %q (want one of %v)", name, Backends)
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBoolWithDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return val
	}
	return fallback
}

func parseDuration(key string, dst *time.Duration) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 {
		return fmt.Errorf("invalid %s: negative duration %s", key, d)
	}
	*dst = d
	return nil
}

func parsePort(key string, fallback int) (int, error) {
	if v := os.Getenv(key); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
		}
		if port <= 0 || port > 65535 {
			return 0, fmt.Errorf("port %d is out of range", port)
		}
		return port, nil
	}
	return fallback, nil
}
