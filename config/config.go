// Package config loads cityroutes settings: built-in defaults, then an
// optional YAML file, then a .env file, then CITYROUTES_* environment
// variables. The result is validated before it is returned.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "CITYROUTES_"

// Config aggregates application configuration values.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Engine    EngineConfig    `yaml:"engine"`
	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Seed      SeedConfig      `yaml:"seed"`
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" validate:"gt=0"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	// RateLimit is requests per second per server; 0 disables limiting.
	RateLimit float64 `yaml:"rate_limit" validate:"gte=0"`
	RateBurst int     `yaml:"rate_burst" validate:"gte=0"`
}

// Addr returns host:port.
func (h HTTPConfig) Addr() string { return fmt.Sprintf("%s:%d", h.Host, h.Port) }

// EngineConfig bounds the query engines.
type EngineConfig struct {
	QueryTimeout          time.Duration `yaml:"query_timeout" validate:"gt=0"`
	LongestPathMaxCities  int           `yaml:"longest_path_max_cities" validate:"min=2"`
	TourExactLimit        int           `yaml:"tour_exact_limit" validate:"min=2,max=12"`
	MaxConcurrentSearches int64         `yaml:"max_concurrent_searches" validate:"min=1"`
	NetworkMethod         string        `yaml:"network_method" validate:"oneof=kruskal prim"`
	CacheSize             int           `yaml:"cache_size" validate:"gte=0"`
	PruneOrphans          bool          `yaml:"prune_orphans"`
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string `yaml:"level" validate:"oneof=debug info warn error"`
	Format        string `yaml:"format" validate:"oneof=text json auto"` // auto: text on a terminal, json otherwise
	IncludeCaller bool   `yaml:"include_caller"`
}

// TelemetryConfig selects the OpenTelemetry exporters.
type TelemetryConfig struct {
	ServiceName    string `yaml:"service_name" validate:"required"`
	TraceExporter  string `yaml:"trace_exporter" validate:"oneof=none stdout"`
	MetricExporter string `yaml:"metric_exporter" validate:"oneof=none prometheus stdout"`
}

// SeedConfig describes where initial routes are imported from at startup.
type SeedConfig struct {
	Source string `yaml:"source" validate:"oneof=none sample yaml mysql neo4j"`
	Path   string `yaml:"path" validate:"required_if=Source yaml"`

	MySQLDSN   string `yaml:"mysql_dsn" validate:"required_if=Source mysql"`
	MySQLQuery string `yaml:"mysql_query"`

	Neo4jURI      string `yaml:"neo4j_uri" validate:"required_if=Source neo4j"`
	Neo4jDatabase string `yaml:"neo4j_database"`
	Neo4jUsername string `yaml:"neo4j_username"`
	Neo4jPassword string `yaml:"neo4j_password"`
	Neo4jQuery    string `yaml:"neo4j_query"`
}

const (
	defaultHost            = "0.0.0.0"
	defaultPort            = 8080
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 15 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultRateLimit       = 50
	defaultRateBurst       = 100
	defaultQueryTimeout    = 5 * time.Second
	defaultLongestMax      = 64
	defaultTourExact       = 9
	defaultSearches        = 4
	defaultCacheSize       = 1024
	defaultLoggingLevel    = "info"
	defaultLoggingFormat   = "auto"
	defaultServiceName     = "cityroutes"
)

var validate = validator.New()

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			Host:            defaultHost,
			Port:            defaultPort,
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			IdleTimeout:     defaultIdleTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
			AllowedOrigins:  []string{"*"},
			RateLimit:       defaultRateLimit,
			RateBurst:       defaultRateBurst,
		},
		Engine: EngineConfig{
			QueryTimeout:          defaultQueryTimeout,
			LongestPathMaxCities:  defaultLongestMax,
			TourExactLimit:        defaultTourExact,
			MaxConcurrentSearches: defaultSearches,
			NetworkMethod:         "kruskal",
			CacheSize:             defaultCacheSize,
		},
		Logging: LoggingConfig{
			Level:  defaultLoggingLevel,
			Format: defaultLoggingFormat,
		},
		Telemetry: TelemetryConfig{
			ServiceName:    defaultServiceName,
			TraceExporter:  "none",
			MetricExporter: "prometheus",
		},
		Seed: SeedConfig{
			Source: "sample",
		},
	}
}

// Load builds the configuration. path may be empty, in which case only
// defaults and the environment are used. A missing .env file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks every field constraint.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.HTTP.Host = valueOrDefault("HTTP_HOST", cfg.HTTP.Host)
	cfg.HTTP.AllowedOrigins = listOrDefault("HTTP_ALLOWED_ORIGINS", cfg.HTTP.AllowedOrigins)
	cfg.Engine.NetworkMethod = valueOrDefault("ENGINE_NETWORK_METHOD", cfg.Engine.NetworkMethod)
	cfg.Engine.PruneOrphans = parseBoolWithDefault("ENGINE_PRUNE_ORPHANS", cfg.Engine.PruneOrphans)
	cfg.Logging.Level = strings.ToLower(valueOrDefault("LOG_LEVEL", cfg.Logging.Level))
	cfg.Logging.Format = strings.ToLower(valueOrDefault("LOG_FORMAT", cfg.Logging.Format))
	cfg.Logging.IncludeCaller = parseBoolWithDefault("LOG_INCLUDE_CALLER", cfg.Logging.IncludeCaller)
	cfg.Telemetry.ServiceName = valueOrDefault("TELEMETRY_SERVICE_NAME", cfg.Telemetry.ServiceName)
	cfg.Telemetry.TraceExporter = valueOrDefault("TELEMETRY_TRACE_EXPORTER", cfg.Telemetry.TraceExporter)
	cfg.Telemetry.MetricExporter = valueOrDefault("TELEMETRY_METRIC_EXPORTER", cfg.Telemetry.MetricExporter)
	cfg.Seed.Source = valueOrDefault("SEED_SOURCE", cfg.Seed.Source)
	cfg.Seed.Path = valueOrDefault("SEED_PATH", cfg.Seed.Path)
	cfg.Seed.MySQLDSN = valueOrDefault("SEED_MYSQL_DSN", cfg.Seed.MySQLDSN)
	cfg.Seed.MySQLQuery = valueOrDefault("SEED_MYSQL_QUERY", cfg.Seed.MySQLQuery)
	cfg.Seed.Neo4jURI = valueOrDefault("SEED_NEO4J_URI", cfg.Seed.Neo4jURI)
	cfg.Seed.Neo4jDatabase = valueOrDefault("SEED_NEO4J_DATABASE", cfg.Seed.Neo4jDatabase)
	cfg.Seed.Neo4jUsername = valueOrDefault("SEED_NEO4J_USERNAME", cfg.Seed.Neo4jUsername)
	cfg.Seed.Neo4jPassword = valueOrDefault("SEED_NEO4J_PASSWORD", cfg.Seed.Neo4jPassword)
	cfg.Seed.Neo4jQuery = valueOrDefault("SEED_NEO4J_QUERY", cfg.Seed.Neo4jQuery)

	var err error
	if cfg.HTTP.Port, err = parseIntStrict("HTTP_PORT", cfg.HTTP.Port); err != nil {
		return err
	}
	if cfg.Engine.LongestPathMaxCities, err = parseIntStrict("ENGINE_LONGEST_PATH_MAX_CITIES", cfg.Engine.LongestPathMaxCities); err != nil {
		return err
	}
	if cfg.Engine.TourExactLimit, err = parseIntStrict("ENGINE_TOUR_EXACT_LIMIT", cfg.Engine.TourExactLimit); err != nil {
		return err
	}
	if cfg.Engine.CacheSize, err = parseIntStrict("ENGINE_CACHE_SIZE", cfg.Engine.CacheSize); err != nil {
		return err
	}
	searches, err := parseIntStrict("ENGINE_MAX_CONCURRENT_SEARCHES", int(cfg.Engine.MaxConcurrentSearches))
	if err != nil {
		return err
	}
	cfg.Engine.MaxConcurrentSearches = int64(searches)
	if cfg.HTTP.RateBurst, err = parseIntStrict("HTTP_RATE_BURST", cfg.HTTP.RateBurst); err != nil {
		return err
	}
	if v := lookup("HTTP_RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: invalid %sHTTP_RATE_LIMIT: %w", EnvPrefix, err)
		}
		cfg.HTTP.RateLimit = f
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"HTTP_READ_TIMEOUT", &cfg.HTTP.ReadTimeout},
		{"HTTP_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout},
		{"HTTP_IDLE_TIMEOUT", &cfg.HTTP.IdleTimeout},
		{"HTTP_SHUTDOWN_TIMEOUT", &cfg.HTTP.ShutdownTimeout},
		{"ENGINE_QUERY_TIMEOUT", &cfg.Engine.QueryTimeout},
	}
	for _, d := range durations {
		if v := lookup(d.key); v != "" {
			parsed, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("config: invalid %s%s: %w", EnvPrefix, d.key, err)
			}
			*d.dst = parsed
		}
	}

	return nil
}

func lookup(key string) string { return os.Getenv(EnvPrefix + key) }

func valueOrDefault(key, fallback string) string {
	if v := lookup(key); v != "" {
		return v
	}
	return fallback
}

func listOrDefault(key string, fallback []string) []string {
	v := lookup(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseBoolWithDefault(key string, fallback bool) bool {
	if v := lookup(key); v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return val
	}
	return fallback
}

func parseIntStrict(key string, fallback int) (int, error) {
	if v := lookup(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("config: invalid %s%s value %q: %w", EnvPrefix, key, v, err)
		}
		return n, nil
	}
	return fallback, nil
}
