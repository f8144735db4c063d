package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("NUTRISCAN_SERVER_PORT")
		os.Unsetenv("NUTRISCAN_SERVER_ENVIRONMENT")
		os.Unsetenv("NUTRISCAN_CATALOG_BASE_URL")
		os.Unsetenv("NUTRISCAN_CATALOG_TIMEOUT")
		os.Unsetenv("NUTRISCAN_CATALOG_USER_AGENT")
		os.Unsetenv("NUTRISCAN_ALTERNATIVES_MAX_RESULTS")
		os.Unsetenv("NUTRISCAN_ALTERNATIVES_PAGE_SIZE")
		os.Unsetenv("NUTRISCAN_ALTERNATIVES_MAX_CATEGORIES")
		os.Unsetenv("NUTRISCAN_RISK_SALT_LIMIT_G")
		os.Unsetenv("NUTRISCAN_RISK_CALORIE_LIMIT_KCAL")
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		// Check defaults
		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Catalog.BaseURL != "https://world.openfoodfacts.org" {
			t.Errorf("Catalog.BaseURL = %s, want https://world.openfoodfacts.org", cfg.Catalog.BaseURL)
		}
		if cfg.Catalog.Timeout != 20*time.Second {
			t.Errorf("Catalog.Timeout = %v, want 20s", cfg.Catalog.Timeout)
		}
		if cfg.Alternatives.MaxResults != 15 {
			t.Errorf("Alternatives.MaxResults = %d, want 15", cfg.Alternatives.MaxResults)
		}
		if cfg.Alternatives.PageSize != 10 {
			t.Errorf("Alternatives.PageSize = %d, want 10", cfg.Alternatives.PageSize)
		}
		if cfg.Alternatives.MaxCategories != 4 {
			t.Errorf("Alternatives.MaxCategories = %d, want 4", cfg.Alternatives.MaxCategories)
		}
		if cfg.Risk.SaltLimitG != 1.5 {
			t.Errorf("Risk.SaltLimitG = %v, want 1.5", cfg.Risk.SaltLimitG)
		}
		if cfg.Risk.SugarsLimitG != 22.5 {
			t.Errorf("Risk.SugarsLimitG = %v, want 22.5", cfg.Risk.SugarsLimitG)
		}
		if cfg.Risk.SaturatedFatLimitG != 5.0 {
			t.Errorf("Risk.SaturatedFatLimitG = %v, want 5.0", cfg.Risk.SaturatedFatLimitG)
		}
		if cfg.Risk.CalorieLimitKcal != 500.0 {
			t.Errorf("Risk.CalorieLimitKcal = %v, want 500.0", cfg.Risk.CalorieLimitKcal)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("NUTRISCAN_SERVER_PORT", "9090")
		os.Setenv("NUTRISCAN_SERVER_ENVIRONMENT", "production")
		os.Setenv("NUTRISCAN_CATALOG_BASE_URL", "https://catalog.example")
		os.Setenv("NUTRISCAN_CATALOG_TIMEOUT", "5s")
		os.Setenv("NUTRISCAN_ALTERNATIVES_MAX_RESULTS", "25")
		os.Setenv("NUTRISCAN_ALTERNATIVES_PAGE_SIZE", "20")
		os.Setenv("NUTRISCAN_RISK_SALT_LIMIT_G", "2.0")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Catalog.BaseURL != "https://catalog.example" {
			t.Errorf("Catalog.BaseURL = %s, want https://catalog.example", cfg.Catalog.BaseURL)
		}
		if cfg.Catalog.Timeout != 5*time.Second {
			t.Errorf("Catalog.Timeout = %v, want 5s", cfg.Catalog.Timeout)
		}
		if cfg.Alternatives.MaxResults != 25 {
			t.Errorf("Alternatives.MaxResults = %d, want 25", cfg.Alternatives.MaxResults)
		}
		if cfg.Alternatives.PageSize != 20 {
			t.Errorf("Alternatives.PageSize = %d, want 20", cfg.Alternatives.PageSize)
		}
		if cfg.Risk.SaltLimitG != 2.0 {
			t.Errorf("Risk.SaltLimitG = %v, want 2.0", cfg.Risk.SaltLimitG)
		}
	})

	t.Run("fails validation for out-of-range page size", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("NUTRISCAN_ALTERNATIVES_PAGE_SIZE", "500")
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want error for page_size > 100")
		}
	})

	t.Run("fails validation for non-positive max results", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("NUTRISCAN_ALTERNATIVES_MAX_RESULTS", "0")
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want error for max_results = 0")
		}
	})

	t.Run("fails validation for non-positive threshold", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("NUTRISCAN_RISK_SALT_LIMIT_G", "0")
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want error for zero salt limit")
		}
	})

	t.Run("fails validation for non-positive timeout", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("NUTRISCAN_CATALOG_TIMEOUT", "0s")
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want error for zero timeout")
		}
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:  ServerConfig{Port: "8080", Environment: "development"},
			Catalog: CatalogConfig{BaseURL: "https://catalog.example", Timeout: 20 * time.Second},
			Alternatives: AlternativesConfig{
				MaxResults:    15,
				PageSize:      10,
				MaxCategories: 4,
			},
			Risk: RiskConfig{
				SaltLimitG:         1.5,
				SugarsLimitG:       22.5,
				SaturatedFatLimitG: 5.0,
				CalorieLimitKcal:   500,
			},
		}
	}

	if err := validate(valid()); err != nil {
		t.Fatalf("validate() error = %v, want nil for valid config", err)
	}

	cfg := valid()
	cfg.Catalog.BaseURL = ""
	if err := validate(cfg); err == nil {
		t.Error("validate() error = nil, want error for empty base URL")
	}

	cfg = valid()
	cfg.Alternatives.MaxCategories = 0
	if err := validate(cfg); err == nil {
		t.Error("validate() error = nil, want error for zero max_categories")
	}
}
