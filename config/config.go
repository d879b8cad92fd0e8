package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Supplier SupplierConfig
	Matching MatchingConfig
	Cache    CacheConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig holds Postgres connection configuration
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// SupplierConfig holds the scraped supplier's site configuration
type SupplierConfig struct {
	Slug          string             `mapstructure:"slug"`
	BaseURL       string             `mapstructure:"base_url"`
	MasculinoPath string             `mapstructure:"masculino_path"`
	FemeninoPath  string             `mapstructure:"femenino_path"`
	RescuePages   []RescuePageConfig `mapstructure:"rescue_pages"`
}

// RescuePageConfig names one detail page fetched directly when its code is
// missing from the paginated catalogs. Only settable via the config file.
type RescuePageConfig struct {
	Code   string `mapstructure:"code"`
	Path   string `mapstructure:"path"`
	Gender string `mapstructure:"gender"`
}

// MatchingConfig holds matcher tuning configuration
type MatchingConfig struct {
	Threshold  float64 `mapstructure:"threshold"`
	MaxWorkers int     `mapstructure:"max_workers"`
	Debug      bool    `mapstructure:"debug"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/fragancia/")

	// Environment variable settings
	v.SetEnvPrefix("FRAGANCIA")
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

// loadEnvFile loads a local .env file into the environment if one exists.
// Existing variables are never overridden.
func loadEnvFile() error {
	file, err := os.Open(".env")
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if os.Getenv(key) != "" {
			continue
		}
		os.Setenv(key, strings.TrimSpace(value))
	}
	return scanner.Err()
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Supplier defaults
	v.SetDefault("supplier.slug", "fragancia")
	v.SetDefault("supplier.masculino_path", "/perfumes/masculinos")
	v.SetDefault("supplier.femenino_path", "/perfumes/femeninos")

	// Matching defaults
	v.SetDefault("matching.threshold", 0.70)
	v.SetDefault("matching.max_workers", 8)
	v.SetDefault("matching.debug", false)

	// Cache defaults
	v.SetDefault("cache.ttl", "24h")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Database.URL == "" {
		return fmt.Errorf("database URL is required (set FRAGANCIA_DATABASE_URL)")
	}

	if config.Supplier.BaseURL == "" {
		return fmt.Errorf("supplier base URL is required (set FRAGANCIA_SUPPLIER_BASE_URL)")
	}

	if config.Matching.Threshold <= 0 || config.Matching.Threshold >= 1 {
		return fmt.Errorf("matching threshold must be between 0 and 1, got: %v", config.Matching.Threshold)
	}

	if config.Matching.MaxWorkers < 1 {
		return fmt.Errorf("matching max_workers must be at least 1, got: %d", config.Matching.MaxWorkers)
	}

	return nil
}
