// Package config provides configuration loading and validation for the server.
package config

import (
	"fmt"
	"os"
)

// Config holds server configuration read from the environment.
// Optional integrations (AI drafting, job search, PDF export) degrade
// gracefully when their settings are absent.
type Config struct {
	Port        string // PORT, default 8080
	DatabaseURL string // DATABASE_URL (required)

	GeminiAPIKey string // GEMINI_API_KEY, empty disables AI endpoints

	JobsAPIURL string // JOBS_API_URL, empty disables job search
	JobsAppID  string // JOBS_APP_ID
	JobsAPIKey string // JOBS_API_KEY

	ChromePath string // CHROME_PATH, optional explicit browser binary for PDF export
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:         os.Getenv("PORT"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		JobsAPIURL:   os.Getenv("JOBS_API_URL"),
		JobsAppID:    os.Getenv("JOBS_APP_ID"),
		JobsAPIKey:   os.Getenv("JOBS_API_KEY"),
		ChromePath:   os.Getenv("CHROME_PATH"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("config error: DATABASE_URL is required")
	}
	if c.JobsAPIURL != "" && (c.JobsAppID == "" || c.JobsAPIKey == "") {
		return fmt.Errorf("config error: JOBS_APP_ID and JOBS_API_KEY are required when JOBS_API_URL is set")
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
