package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Parking    ParkingConfig
	Monitoring MonitoringConfig
	Catalog    CatalogConfig
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	History PostgresConfig `mapstructure:"history"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Host          string        `mapstructure:"host"`
	Port          int           `mapstructure:"port"`
	Password      string        `mapstructure:"password"`
	DB            int           `mapstructure:"db"`
	ProbeInterval time.Duration `mapstructure:"probe_interval"`
}

// ParkingConfig carries the empirical tuning values of the availability
// engine. These are deployment configuration, not invariants.
type ParkingConfig struct {
	RecencyHalfLife       time.Duration `mapstructure:"recency_half_life"`
	RecencyWindow         time.Duration `mapstructure:"recency_window"`
	RapidFillWindow       time.Duration `mapstructure:"rapid_fill_window"`
	RapidFillRate         float64       `mapstructure:"rapid_fill_rate"` // spots lost per minute
	DefaultAlertThreshold float64       `mapstructure:"default_alert_threshold"`
	MinHistorySamples     int           `mapstructure:"min_history_samples"`
	BaselineConfidence    float64       `mapstructure:"baseline_confidence"`
	HistoryRetention      time.Duration `mapstructure:"history_retention"`
	MonitorInterval       time.Duration `mapstructure:"monitor_interval"`
}

type MonitoringConfig struct {
	LogLevel           string `mapstructure:"log_level"`
	PrometheusEndpoint string `mapstructure:"prometheus_endpoint"`
}

type CatalogConfig struct {
	Path string `mapstructure:"path"` // empty means the built-in seed catalog
}

// Load initializes configuration from environment variables and config file
func Load() (*Config, error) {
	viper.SetEnvPrefix("PARKHUB")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	// Load config file if exists
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "15s")
	viper.SetDefault("server.shutdown_timeout", "30s")

	// Database defaults
	viper.SetDefault("database.history.host", "localhost")
	viper.SetDefault("database.history.port", 5432)
	viper.SetDefault("database.history.user", "parkhub")
	viper.SetDefault("database.history.dbname", "parkhub_history")
	viper.SetDefault("database.history.sslmode", "disable")

	// Redis defaults
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.probe_interval", "10s")

	// Parking engine defaults. The half-life and rapid-fill values are
	// empirical; override them per deployment rather than editing code.
	viper.SetDefault("parking.recency_half_life", "10m")
	viper.SetDefault("parking.recency_window", "2h")
	viper.SetDefault("parking.rapid_fill_window", "30m")
	viper.SetDefault("parking.rapid_fill_rate", 2.0)
	viper.SetDefault("parking.default_alert_threshold", 90.0)
	viper.SetDefault("parking.min_history_samples", 10)
	viper.SetDefault("parking.baseline_confidence", 0.5)
	viper.SetDefault("parking.history_retention", "2160h") // 90 days
	viper.SetDefault("parking.monitor_interval", "5m")

	// Monitoring defaults
	viper.SetDefault("monitoring.log_level", "info")
	viper.SetDefault("monitoring.prometheus_endpoint", "http://localhost:9090")
}

func validateConfig(config *Config) error {
	if config.Parking.RecencyHalfLife <= 0 {
		return fmt.Errorf("parking recency half-life must be positive")
	}
	if config.Parking.RecencyWindow <= 0 {
		return fmt.Errorf("parking recency window must be positive")
	}
	if config.Parking.RapidFillRate <= 0 {
		return fmt.Errorf("parking rapid-fill rate must be positive")
	}
	if config.Parking.DefaultAlertThreshold < 0 || config.Parking.DefaultAlertThreshold > 100 {
		return fmt.Errorf("default alert threshold must be within [0,100]")
	}
	if config.Parking.BaselineConfidence < 0 || config.Parking.BaselineConfidence > 1 {
		return fmt.Errorf("baseline confidence must be within [0,1]")
	}
	return nil
}
