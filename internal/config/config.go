// Package config handles application configuration from environment
// variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/amslee/postcal/internal/models"
	"github.com/amslee/postcal/internal/planner"
)

// Config holds all application configuration. Fields are populated
// from environment variables; a .env file is honored in development.
type Config struct {
	// Storage file; extension picks the provider (.json or .db)
	StorePath string

	// Feed sources, file path or http(s) URL each. Empty disables the
	// feed.
	EventsCSV      string
	HolidaysCSV    string
	ObservancesCSV string

	// HTTP port for the serve command
	Port int

	// Platform policy for auto-populated posts: "random" or
	// "fixed:<platform>"
	PlatformPolicy string

	Debug bool
}

// Load reads configuration from environment variables, loading .env
// first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		StorePath:      getEnv("POSTCAL_STORE", defaultStorePath()),
		EventsCSV:      getEnv("POSTCAL_EVENTS_CSV", ""),
		HolidaysCSV:    getEnv("POSTCAL_HOLIDAYS_CSV", ""),
		ObservancesCSV: getEnv("POSTCAL_OBSERVANCES_CSV", ""),
		Port:           getEnvInt("PORT", 8080),
		PlatformPolicy: getEnv("POSTCAL_PLATFORM_POLICY", "random"),
		Debug:          getEnv("POSTCAL_DEBUG", "") != "",
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that all configuration values are usable.
func (c *Config) Validate() error {
	if c.StorePath == "" {
		return fmt.Errorf("POSTCAL_STORE is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if _, err := c.Platform(); err != nil {
		return err
	}
	return nil
}

// Platform resolves the configured platform policy.
func (c *Config) Platform() (planner.PlatformPolicy, error) {
	switch {
	case c.PlatformPolicy == "" || c.PlatformPolicy == "random":
		return planner.DefaultPlatformPolicy, nil
	case strings.HasPrefix(c.PlatformPolicy, "fixed:"):
		p := models.Platform(strings.TrimPrefix(c.PlatformPolicy, "fixed:"))
		if !models.ValidPlatform(p) {
			return planner.PlatformPolicy{}, fmt.Errorf("POSTCAL_PLATFORM_POLICY names unknown platform %q", p)
		}
		return planner.PlatformPolicy{Fixed: p}, nil
	default:
		return planner.PlatformPolicy{}, fmt.Errorf("POSTCAL_PLATFORM_POLICY must be \"random\" or \"fixed:<platform>\", got %q", c.PlatformPolicy)
	}
}

// ConfigDir returns the directory holding the store file, used for
// logs.
func (c *Config) ConfigDir() string {
	if i := strings.LastIndexByte(c.StorePath, '/'); i > 0 {
		return c.StorePath[:i]
	}
	return "."
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "postcal.db"
	}
	return home + "/.config/postcal/postcal.db"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
