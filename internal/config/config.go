// Package config loads server configuration from the environment, with
// an optional .env file for development.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all tunables for the server process.
type Config struct {
	Addr           string        `env:"ADDR" envDefault:":8000"`
	PublicBaseURL  string        `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8000"`
	UploadDir      string        `env:"UPLOAD_DIR" envDefault:"uploads"`
	BotDelay       time.Duration `env:"BOT_DELAY" envDefault:"1s"`
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS" envSeparator:","`
	Debug          bool          `env:"DEBUG"`
}

// Load reads configuration from the environment. A missing .env file
// is not an error; explicit environment variables always win.
func Load() (*Config, error) {
	_ = godotenv.Load()
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}
