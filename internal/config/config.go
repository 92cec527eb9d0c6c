package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Store drivers for the session preferences
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config holds application configuration
type Config struct {
	APIBaseURL  string        `validate:"omitempty,url"`
	HTTPTimeout time.Duration `validate:"gt=0"`

	StoreDriver string `validate:"oneof=sqlite postgres memory"`
	StorePath   string `validate:"required_if=StoreDriver sqlite"`
	DatabaseURL string `validate:"required_if=StoreDriver postgres"`

	Port  string `validate:"required,numeric"`
	Env   string
	Debug bool

	TipInterval time.Duration `validate:"gt=0"`

	CameraBackURL       string        `validate:"omitempty,url"`
	CameraFrontURL      string        `validate:"omitempty,url"`
	CameraFrameInterval time.Duration `validate:"gt=0"`
	CameraPermission    bool
}

var validate = validator.New()

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		APIBaseURL:          getEnv("API_BASE_URL", ""),
		HTTPTimeout:         getEnvDuration("HTTP_TIMEOUT", 10*time.Second),
		StoreDriver:         getEnv("STORE_DRIVER", StoreSQLite),
		StorePath:           getEnv("STORE_PATH", defaultStorePath()),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		Port:                getEnv("PORT", "8080"),
		Env:                 getEnv("GO_ENV", "development"),
		Debug:               getEnvBool("DEBUG", false),
		TipInterval:         getEnvDuration("TIP_INTERVAL", 4*time.Second),
		CameraBackURL:       getEnv("CAMERA_BACK_URL", ""),
		CameraFrontURL:      getEnv("CAMERA_FRONT_URL", ""),
		CameraFrameInterval: getEnvDuration("CAMERA_FRAME_INTERVAL", 200*time.Millisecond),
		CameraPermission:    getEnvBool("CAMERA_PERMISSION", true),
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MockMode reports whether statistics come from the built-in demo data
func (c *Config) MockMode() bool {
	return c.APIBaseURL == ""
}

// IsDevelopment reports whether the console logger should be used
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".cabmobile", "auth_prefs.db")
	}
	return filepath.Join(home, ".cabmobile", "auth_prefs.db")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		if ms, err := strconv.Atoi(value); err == nil {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return defaultValue
}
