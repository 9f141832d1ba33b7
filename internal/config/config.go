// internal/config/config.go
//
// Process configuration, read once from the environment at startup.
// main loads an optional .env file first, so values may come from either.

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every tunable the server reads.
type Config struct {
	Port       string `env:"PORT"        envDefault:"5175"`
	LogLevel   string `env:"LOG_LEVEL"   envDefault:"info"`
	DBPath     string `env:"DB_PATH"     envDefault:"./data/app.db"`
	ContentDir string `env:"CONTENT_DIR"`

	DailySalt    string        `env:"DAILY_SALT"     envDefault:"local_dev_salt"`
	JWTSecret    string        `env:"JWT_SECRET"     envDefault:"dev_secret_change_me"`
	GameTokenTTL time.Duration `env:"GAME_TOKEN_TTL" envDefault:"24h"`
	ClientOrigin string        `env:"CLIENT_ORIGIN"  envDefault:"http://localhost:5173"`

	// SecureCookies marks the game cookie Secure and SameSite=None.
	SecureCookies bool `env:"SECURE_COOKIES" envDefault:"false"`

	// Live sessions idle longer than SessionIdleTTL are dropped every
	// SweepInterval.
	SessionIdleTTL time.Duration `env:"SESSION_IDLE_TTL" envDefault:"6h"`
	SweepInterval  time.Duration `env:"SWEEP_INTERVAL"   envDefault:"10m"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.SweepInterval <= 0 {
		return Config{}, fmt.Errorf("SWEEP_INTERVAL must be positive, got %s", cfg.SweepInterval)
	}
	return cfg, nil
}

// Addr is the listen address for Port.
func (c Config) Addr() string { return ":" + c.Port }
