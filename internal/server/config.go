package server

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds the HTTP server runtime configuration. Values come from the
// environment, with a best-effort .env file load first.
type Config struct {
	Addr            string        `env:"KAYFABE_HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	Env             string        `env:"KAYFABE_ENV" envDefault:"development"`
	SessionSecret   string        `env:"KAYFABE_SESSION_SECRET"`
	ShutdownTimeout time.Duration `env:"KAYFABE_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// LoadConfig reads a .env file if present, then parses the environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse server config: %w", err)
	}
	return cfg, nil
}
