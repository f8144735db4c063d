package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server       ServerConfig
	Catalog      CatalogConfig
	Alternatives AlternativesConfig
	Risk         RiskConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds remote product catalog configuration
type CatalogConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// AlternativesConfig holds the alternative-search policy knobs
type AlternativesConfig struct {
	MaxResults    int `mapstructure:"max_results"`
	PageSize      int `mapstructure:"page_size"`
	MaxCategories int `mapstructure:"max_categories"`
}

// RiskConfig holds the per-100g nutrient risk thresholds
type RiskConfig struct {
	SaltLimitG         float64 `mapstructure:"salt_limit_g"`
	SugarsLimitG       float64 `mapstructure:"sugars_limit_g"`
	SaturatedFatLimitG float64 `mapstructure:"saturated_fat_limit_g"`
	CalorieLimitKcal   float64 `mapstructure:"calorie_limit_kcal"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/nutriscan/")

	// Environment variable settings
	v.SetEnvPrefix("NUTRISCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Catalog defaults
	v.SetDefault("catalog.base_url", "https://world.openfoodfacts.org")
	v.SetDefault("catalog.timeout", "20s")
	v.SetDefault("catalog.user_agent", "NutriScan/1.0")

	// Alternative-search defaults
	v.SetDefault("alternatives.max_results", 15)
	v.SetDefault("alternatives.page_size", 10)
	v.SetDefault("alternatives.max_categories", 4)

	// Risk thresholds, per 100g
	v.SetDefault("risk.salt_limit_g", 1.5)
	v.SetDefault("risk.sugars_limit_g", 22.5)
	v.SetDefault("risk.saturated_fat_limit_g", 5.0)
	v.SetDefault("risk.calorie_limit_kcal", 500.0)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Catalog.BaseURL == "" {
		return fmt.Errorf("catalog base URL is required (set NUTRISCAN_CATALOG_BASE_URL)")
	}

	if config.Catalog.Timeout <= 0 {
		return fmt.Errorf("catalog timeout must be positive, got: %s", config.Catalog.Timeout)
	}

	if config.Alternatives.MaxResults <= 0 {
		return fmt.Errorf("alternatives max_results must be positive, got: %d", config.Alternatives.MaxResults)
	}

	if config.Alternatives.PageSize < 1 || config.Alternatives.PageSize > 100 {
		return fmt.Errorf("alternatives page_size must be between 1 and 100, got: %d", config.Alternatives.PageSize)
	}

	if config.Alternatives.MaxCategories < 1 {
		return fmt.Errorf("alternatives max_categories must be at least 1, got: %d", config.Alternatives.MaxCategories)
	}

	if config.Risk.SaltLimitG <= 0 || config.Risk.SugarsLimitG <= 0 ||
		config.Risk.SaturatedFatLimitG <= 0 || config.Risk.CalorieLimitKcal <= 0 {
		return fmt.Errorf("risk thresholds must all be positive")
	}

	return nil
}
