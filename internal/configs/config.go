package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type RESTConfig struct {
	Address         string
	ShutdownTimeout time.Duration
}

type StorageConfig struct {
	DatabasePath   string
	PropertiesPath string
}

type CostsConfig struct {
	// ServiceURL points at a remote hidden-costs calculator. Empty means
	// the calculation runs in process.
	ServiceURL string
	Timeout    time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

type AppConfig struct {
	Rest        RESTConfig
	Storage     StorageConfig
	Costs       CostsConfig
	Log         LogConfig
	WeightsPath string
}

// LoadConfig reads an optional .env file (or the given path) and then the
// process environment. A missing .env file is not an error.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env (path: %v): %w", envPath, err)
	}

	cfg := &AppConfig{}

	cfg.Rest.Address = getEnvAsString("API_ADDRESS", ":8080")
	cfg.Rest.ShutdownTimeout, err = getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	cfg.Storage.DatabasePath = getEnvAsString("DATABASE_PATH", "data/properties.db")
	cfg.Storage.PropertiesPath = getEnvAsString("PROPERTIES_PATH", "data/properties.json")
	cfg.WeightsPath = getEnvAsString("WEIGHTS_PATH", "configs/weights.yaml")

	cfg.Costs.ServiceURL = getEnvAsString("COSTS_SERVICE_URL", "")
	cfg.Costs.Timeout, err = getEnvAsDuration("COSTS_SERVICE_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	cfg.Log.Level = getEnvAsString("LOG_LEVEL", "info")
	cfg.Log.Format = getEnvAsString("LOG_FORMAT", "color")

	return cfg, nil
}

func getEnvAsString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsDuration accepts Go durations ("15s") or a bare number of seconds.
func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue, nil
	}
	if secs, err := strconv.Atoi(valueStr); err == nil {
		if secs < 0 {
			return 0, fmt.Errorf("%s must not be negative, got %q", key, valueStr)
		}
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(valueStr)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative, got %q", key, valueStr)
	}
	return d, nil
}
