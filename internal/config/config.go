// Package config reads process settings from the environment (and an optional .env file).
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// AppConfig holds the settings that are fixed for the lifetime of the process.
type AppConfig struct {
	// Port is the HTTP listen port.
	Port int `envconfig:"PORT" default:"8080"`

	// DBURL selects the driver by scheme: mysql://, postgres://, sqlite://.
	// A bare DSN is handed to the MySQL driver.
	DBURL string `envconfig:"DB_URL"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"console"`

	JWTSecret string        `envconfig:"JWT_SECRET"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`

	// Only opens POST /register when explicitly enabled.
	AllowRegistration bool `envconfig:"ALLOW_REGISTRATION" default:"false"`

	// OpenRouterTimeout bounds every outbound completion call made by the shared client.
	OpenRouterTimeout time.Duration `envconfig:"OPENROUTER_TIMEOUT" default:"100s"`
}

// OpenRouter is the per-request snapshot of the completion endpoint settings.
type OpenRouter struct {
	APIURL string `envconfig:"OPENROUTER_API_URL"`
	APIKey string `envconfig:"OPENROUTER_API_KEY"`
	Model  string `envconfig:"OPENROUTER_MODEL"`
}

// Complete reports whether all three values are present.
func (o OpenRouter) Complete() bool {
	return strings.TrimSpace(o.APIURL) != "" &&
		strings.TrimSpace(o.APIKey) != "" &&
		strings.TrimSpace(o.Model) != ""
}

// ErrMissingSetting is returned by Validate when a required setting is empty.
var ErrMissingSetting = errors.New("missing required setting")

// LoadDotEnv loads a .env file if one exists. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

// Load parses AppConfig from the environment.
func Load() (AppConfig, error) {
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("process env: %w", err)
	}
	return cfg, nil
}

// Validate checks the settings the HTTP server cannot start without.
func (c AppConfig) Validate() error {
	if strings.TrimSpace(c.DBURL) == "" {
		return fmt.Errorf("%w: DB_URL", ErrMissingSetting)
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("%w: JWT_SECRET", ErrMissingSetting)
	}
	return nil
}

// LoadOpenRouter reads the completion endpoint settings fresh from the environment.
// Callers must not cache the result across requests.
func LoadOpenRouter() (OpenRouter, error) {
	var or OpenRouter
	if err := envconfig.Process("", &or); err != nil {
		return OpenRouter{}, fmt.Errorf("process openrouter env: %w", err)
	}
	return or, nil
}
