package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("FRAGANCIA_SERVER_PORT")
		os.Unsetenv("FRAGANCIA_SERVER_ENVIRONMENT")
		os.Unsetenv("FRAGANCIA_DATABASE_URL")
		os.Unsetenv("FRAGANCIA_SUPPLIER_SLUG")
		os.Unsetenv("FRAGANCIA_SUPPLIER_BASE_URL")
		os.Unsetenv("FRAGANCIA_SUPPLIER_MASCULINO_PATH")
		os.Unsetenv("FRAGANCIA_SUPPLIER_FEMENINO_PATH")
		os.Unsetenv("FRAGANCIA_MATCHING_THRESHOLD")
		os.Unsetenv("FRAGANCIA_MATCHING_MAX_WORKERS")
		os.Unsetenv("FRAGANCIA_MATCHING_DEBUG")
		os.Unsetenv("FRAGANCIA_CACHE_TTL")
	}

	t.Run("loads with defaults when only required vars set", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("FRAGANCIA_DATABASE_URL", "postgres://localhost/fragancia_test")
		os.Setenv("FRAGANCIA_SUPPLIER_BASE_URL", "https://supplier.example.com")
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
		if cfg.Supplier.Slug != "fragancia" {
			t.Errorf("Supplier.Slug = %s, want fragancia", cfg.Supplier.Slug)
		}
		if cfg.Supplier.MasculinoPath != "/perfumes/masculinos" {
			t.Errorf("Supplier.MasculinoPath = %s, want /perfumes/masculinos", cfg.Supplier.MasculinoPath)
		}
		if cfg.Matching.Threshold != 0.70 {
			t.Errorf("Matching.Threshold = %v, want 0.70", cfg.Matching.Threshold)
		}
		if cfg.Matching.MaxWorkers != 8 {
			t.Errorf("Matching.MaxWorkers = %d, want 8", cfg.Matching.MaxWorkers)
		}
		if cfg.Cache.TTL != 24*time.Hour {
			t.Errorf("Cache.TTL = %v, want 24h", cfg.Cache.TTL)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("FRAGANCIA_SERVER_PORT", "9090")
		os.Setenv("FRAGANCIA_SERVER_ENVIRONMENT", "production")
		os.Setenv("FRAGANCIA_DATABASE_URL", "postgres://db.internal/fragancia")
		os.Setenv("FRAGANCIA_SUPPLIER_SLUG", "decants-sur")
		os.Setenv("FRAGANCIA_SUPPLIER_BASE_URL", "https://decants-sur.example.ar")
		os.Setenv("FRAGANCIA_MATCHING_THRESHOLD", "0.75")
		os.Setenv("FRAGANCIA_MATCHING_MAX_WORKERS", "16")
		os.Setenv("FRAGANCIA_CACHE_TTL", "12h")
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
		if cfg.Database.URL != "postgres://db.internal/fragancia" {
			t.Errorf("Database.URL = %s, want postgres://db.internal/fragancia", cfg.Database.URL)
		}
		if cfg.Supplier.Slug != "decants-sur" {
			t.Errorf("Supplier.Slug = %s, want decants-sur", cfg.Supplier.Slug)
		}
		if cfg.Matching.Threshold != 0.75 {
			t.Errorf("Matching.Threshold = %v, want 0.75", cfg.Matching.Threshold)
		}
		if cfg.Matching.MaxWorkers != 16 {
			t.Errorf("Matching.MaxWorkers = %d, want 16", cfg.Matching.MaxWorkers)
		}
		if cfg.Cache.TTL != 12*time.Hour {
			t.Errorf("Cache.TTL = %v, want 12h", cfg.Cache.TTL)
		}
	})

	t.Run("fails validation when database URL is missing", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("FRAGANCIA_SUPPLIER_BASE_URL", "https://supplier.example.com")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for missing database URL")
		}
	})

	t.Run("fails validation when supplier base URL is missing", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("FRAGANCIA_DATABASE_URL", "postgres://localhost/fragancia_test")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for missing supplier base URL")
		}
	})

	t.Run("fails validation for out-of-range threshold", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("FRAGANCIA_DATABASE_URL", "postgres://localhost/fragancia_test")
		os.Setenv("FRAGANCIA_SUPPLIER_BASE_URL", "https://supplier.example.com")
		os.Setenv("FRAGANCIA_MATCHING_THRESHOLD", "1.5")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for threshold above 1")
		}
	})
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("returns nil when .env file doesn't exist", func(t *testing.T) {
		originalDir, _ := os.Getwd()
		defer os.Chdir(originalDir)

		tempDir := t.TempDir()
		os.Chdir(tempDir)

		if err := loadEnvFile(); err != nil {
			t.Errorf("loadEnvFile() error = %v, want nil when file doesn't exist", err)
		}
	})

	t.Run("loads variables from .env file", func(t *testing.T) {
		originalDir, _ := os.Getwd()
		defer os.Chdir(originalDir)

		tempDir := t.TempDir()
		os.Chdir(tempDir)

		envContent := `
# Comment line
TEST_VAR_1=value1
TEST_VAR_2=value2

# Another comment
TEST_VAR_3=value3
`
		if err := os.WriteFile(".env", []byte(envContent), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}

		os.Unsetenv("TEST_VAR_1")
		os.Unsetenv("TEST_VAR_2")
		os.Unsetenv("TEST_VAR_3")

		if err := loadEnvFile(); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("TEST_VAR_1") != "value1" {
			t.Errorf("TEST_VAR_1 = %s, want value1", os.Getenv("TEST_VAR_1"))
		}
		if os.Getenv("TEST_VAR_2") != "value2" {
			t.Errorf("TEST_VAR_2 = %s, want value2", os.Getenv("TEST_VAR_2"))
		}
		if os.Getenv("TEST_VAR_3") != "value3" {
			t.Errorf("TEST_VAR_3 = %s, want value3", os.Getenv("TEST_VAR_3"))
		}

		os.Unsetenv("TEST_VAR_1")
		os.Unsetenv("TEST_VAR_2")
		os.Unsetenv("TEST_VAR_3")
	})

	t.Run("doesn't override existing environment variables", func(t *testing.T) {
		originalDir, _ := os.Getwd()
		defer os.Chdir(originalDir)

		tempDir := t.TempDir()
		os.Chdir(tempDir)

		os.Setenv("TEST_OVERRIDE", "existing-value")

		if err := os.WriteFile(".env", []byte("TEST_OVERRIDE=new-value"), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}

		if err := loadEnvFile(); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("TEST_OVERRIDE") != "existing-value" {
			t.Errorf("TEST_OVERRIDE = %s, want existing-value (should not override)", os.Getenv("TEST_OVERRIDE"))
		}

		os.Unsetenv("TEST_OVERRIDE")
	})
}

func TestValidate(t *testing.T) {
	validConfig := func() *Config {
		return &Config{
			Database: DatabaseConfig{URL: "postgres://localhost/fragancia_test"},
			Supplier: SupplierConfig{
				Slug:    "fragancia",
				BaseURL: "https://supplier.example.com",
			},
			Matching: MatchingConfig{
				Threshold:  0.70,
				MaxWorkers: 8,
			},
		}
	}

	t.Run("validates successfully with all required fields", func(t *testing.T) {
		if err := validate(validConfig()); err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})

	t.Run("fails when database URL is empty", func(t *testing.T) {
		cfg := validConfig()
		cfg.Database.URL = ""
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for empty database URL")
		}
	})

	t.Run("fails when supplier base URL is empty", func(t *testing.T) {
		cfg := validConfig()
		cfg.Supplier.BaseURL = ""
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for empty supplier base URL")
		}
	})

	t.Run("fails for zero threshold", func(t *testing.T) {
		cfg := validConfig()
		cfg.Matching.Threshold = 0
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for zero threshold")
		}
	})

	t.Run("fails for zero workers", func(t *testing.T) {
		cfg := validConfig()
		cfg.Matching.MaxWorkers = 0
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for zero workers")
		}
	})
}
