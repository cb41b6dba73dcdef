// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Port                    string  `mapstructure:"PORT"`
	Env                     string  `mapstructure:"APP_ENV"`
	AllowedOrigins          string  `mapstructure:"ALLOWED_ORIGINS"`
	RedisURL                string  `mapstructure:"REDIS_URL"`
	FeatureFlags            string  `mapstructure:"FEATURE_FLAGS"`
	DatasetSize             int     `mapstructure:"DATASET_SIZE"`
	DatasetSeed             int64   `mapstructure:"DATASET_SEED"`
	LookbackDays            int     `mapstructure:"LOOKBACK_DAYS"`
	DefaultWindowDays       int     `mapstructure:"DEFAULT_WINDOW_DAYS"`
	TableRowLimit           int     `mapstructure:"TABLE_ROW_LIMIT"`
	CatalogFile             string  `mapstructure:"CATALOG_FILE"`
	ExportRateLimit         int     `mapstructure:"EXPORT_RATE_LIMIT"`
	ExportRateWindowSeconds int     `mapstructure:"EXPORT_RATE_WINDOW_SECONDS"`
	TracingEnabled          bool    `mapstructure:"TRACING_ENABLED"`
	TracingExporter         string  `mapstructure:"TRACING_EXPORTER"`
	OTLPEndpoint            string  `mapstructure:"OTLP_ENDPOINT"`
	TracingSamplerRatio     float64 `mapstructure:"TRACING_SAMPLER_RATIO"`
	LogFormat               string  `mapstructure:"LOG_FORMAT"`
	LogLevel                string  `mapstructure:"LOG_LEVEL"`
}

// LoadConfig loads application configuration from .env, config files and
// environment variables, in increasing order of precedence.
func LoadConfig() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// The base config file is optional too.
	_ = viper.ReadInConfig()

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	if env != "development" {
		viper.SetConfigName("config." + env)
		if err := viper.MergeInConfig(); err == nil {
			slog.Info("loaded profile-specific configuration", slog.String("file", "config."+env+".yml"))
		}
	}

	setDefaults()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	config.normalize()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("PORT", "8501")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("ALLOWED_ORIGINS", "*")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("FEATURE_FLAGS", "")
	viper.SetDefault("DATASET_SIZE", 50)
	viper.SetDefault("DATASET_SEED", 42)
	viper.SetDefault("LOOKBACK_DAYS", 30)
	viper.SetDefault("DEFAULT_WINDOW_DAYS", 7)
	viper.SetDefault("TABLE_ROW_LIMIT", 20)
	viper.SetDefault("CATALOG_FILE", "")
	viper.SetDefault("EXPORT_RATE_LIMIT", 10)
	viper.SetDefault("EXPORT_RATE_WINDOW_SECONDS", 60)
	viper.SetDefault("TRACING_ENABLED", false)
	viper.SetDefault("TRACING_EXPORTER", "stdout")
	viper.SetDefault("OTLP_ENDPOINT", "localhost:4318")
	viper.SetDefault("TRACING_SAMPLER_RATIO", 1.0)
	viper.SetDefault("LOG_FORMAT", "")
	viper.SetDefault("LOG_LEVEL", "info")
}

func (c *Config) normalize() {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	c.TracingExporter = strings.ToLower(strings.TrimSpace(c.TracingExporter))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	c.AllowedOrigins = strings.TrimSpace(c.AllowedOrigins)
}

// IsProduction reports whether the app runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// ExportRateWindow is the export rate limit window as a duration.
func (c *Config) ExportRateWindow() time.Duration {
	return time.Duration(c.ExportRateWindowSeconds) * time.Second
}

// Validate ensures that required configuration values are present and consistent.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.DatasetSize <= 0 {
		return fmt.Errorf("DATASET_SIZE must be positive, got %d", c.DatasetSize)
	}
	if c.LookbackDays < 1 {
		return fmt.Errorf("LOOKBACK_DAYS must be at least 1, got %d", c.LookbackDays)
	}
	if c.DefaultWindowDays < 1 || c.DefaultWindowDays > c.LookbackDays {
		return fmt.Errorf("DEFAULT_WINDOW_DAYS must be between 1 and LOOKBACK_DAYS (%d), got %d", c.LookbackDays, c.DefaultWindowDays)
	}
	if c.TableRowLimit < 1 {
		return fmt.Errorf("TABLE_ROW_LIMIT must be at least 1, got %d", c.TableRowLimit)
	}
	if c.ExportRateLimit < 1 || c.ExportRateWindowSeconds < 1 {
		return errors.New("EXPORT_RATE_LIMIT and EXPORT_RATE_WINDOW_SECONDS must be positive")
	}
	if c.TracingSamplerRatio < 0 || c.TracingSamplerRatio > 1 {
		return fmt.Errorf("TRACING_SAMPLER_RATIO must be within [0, 1], got %v", c.TracingSamplerRatio)
	}
	switch c.TracingExporter {
	case "", "stdout", "otlp":
	default:
		return fmt.Errorf("TRACING_EXPORTER must be stdout or otlp, got %q", c.TracingExporter)
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}

	if c.IsProduction() {
		if c.AllowedOrigins == "" || c.AllowedOrigins == "*" {
			return errors.New("ALLOWED_ORIGINS must list explicit origins in production")
		}
	}

	return nil
}
