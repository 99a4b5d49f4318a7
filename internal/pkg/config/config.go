package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/mfarias/rutasur/internal/core/domain"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Fleet     FleetConfig     `mapstructure:"fleet"`
	ORS       ORSConfig       `mapstructure:"ors"`
	Resolver  ResolverConfig  `mapstructure:"resolver"`
	NATS      NATSConfig      `mapstructure:"nats"`
	Valkey    ValkeyConfig    `mapstructure:"valkey"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	Simulator SimulatorConfig `mapstructure:"simulator"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
	StaticDir    string `mapstructure:"static_dir"`
}

type FleetConfig struct {
	TelemetryFile string `mapstructure:"telemetry_file"`
	RoutesFile    string `mapstructure:"routes_file"`
	VehicleID     string `mapstructure:"vehicle_id"`
}

type ORSConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	APIKey         string `mapstructure:"api_key"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type ResolverConfig struct {
	Concurrency     int `mapstructure:"concurrency"`
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds"`
}

type NATSConfig struct {
	URL string `mapstructure:"url"`
}

type ValkeyConfig struct {
	Addr string `mapstructure:"addr"`
}

type TracingConfig struct {
	ServiceName string `mapstructure:"service_name"`
	TempoAddr   string `mapstructure:"tempo_addr"`
	Enabled     bool   `mapstructure:"enabled"`
}

type SimulatorConfig struct {
	IntervalSeconds int `mapstructure:"interval_seconds"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
func Load(service string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.static_dir", "./static")
	v.SetDefault("fleet.telemetry_file", "./data/MessagesHistory.json")
	v.SetDefault("fleet.routes_file", "./configs/routes.json")
	v.SetDefault("fleet.vehicle_id", "TRUCK-001")
	v.SetDefault("ors.base_url", "https://api.openrouteservice.org")
	v.SetDefault("ors.api_key", "")
	v.SetDefault("ors.timeout_seconds", 15)
	v.SetDefault("resolver.concurrency", 4)
	v.SetDefault("resolver.cache_ttl_seconds", 86400)
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("valkey.addr", "localhost:6379")
	v.SetDefault("tracing.service_name", service)
	v.SetDefault("tracing.tempo_addr", "tempo:4317")
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("simulator.interval_seconds", 1)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: RUTASUR_ORS_API_KEY → ors.api_key
	v.SetEnvPrefix("RUTASUR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.Fleet.TelemetryFile == "" {
		errs = append(errs, "fleet.telemetry_file is required")
	}
	if c.Fleet.RoutesFile == "" {
		errs = append(errs, "fleet.routes_file is required")
	}
	if c.ORS.BaseURL == "" {
		errs = append(errs, "ors.base_url is required")
	}
	if c.ORS.TimeoutSeconds <= 0 {
		errs = append(errs, "ors.timeout_seconds must be positive")
	}
	if c.Resolver.Concurrency <= 0 {
		errs = append(errs, "resolver.concurrency must be positive")
	}
	if c.Simulator.IntervalSeconds <= 0 {
		errs = append(errs, "simulator.interval_seconds must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// LoadRouteDefinitions reads the named-route definitions file. Order in the
// file is the order routes appear in the catalog.
func LoadRouteDefinitions(path string) ([]domain.RouteDefinition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read routes file: %w", err)
	}

	var defs []domain.RouteDefinition
	if err := json.Unmarshal(raw, &defs); err != nil {
		return nil, fmt.Errorf("parse routes file %s: %w", path, err)
	}
	return defs, nil
}
