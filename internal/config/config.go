package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort           = "8080"
	DefaultAirportsSource = "aeroportos.json"
	DefaultCORSOrigin     = "*"
)

// Config holds the server configuration
type Config struct {
	Port           string `yaml:"port"`
	AirportsSource string `yaml:"airports_source"` // file path or http(s) URL
	DatabaseURL    string `yaml:"database_url"`    // empty disables persistence
	CORSOrigin     string `yaml:"cors_origin"`
}

// Load builds the configuration. A .env file in the working directory is
// loaded first, then the YAML file named by QUOTE_CONFIG (if any); variables
// set in the environment override the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		Port:           DefaultPort,
		AirportsSource: DefaultAirportsSource,
		CORSOrigin:     DefaultCORSOrigin,
	}

	if path := os.Getenv("QUOTE_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.Port = getEnv("API_PORT", cfg.Port)
	cfg.AirportsSource = getEnv("AIRPORTS_SOURCE", cfg.AirportsSource)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.CORSOrigin = getEnv("CORS_ORIGIN", cfg.CORSOrigin)

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
