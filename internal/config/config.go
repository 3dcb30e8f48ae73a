// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every tunable of the life server.
type Config struct {
	Addr           string        `env:"LIFE_ADDR" envDefault:":8080"`
	DBPath         string        `env:"LIFE_DB_PATH" envDefault:"life.db"`
	LogMode        string        `env:"LIFE_LOG_MODE" envDefault:"dev"`
	DefaultCountry string        `env:"LIFE_DEFAULT_COUNTRY" envDefault:"US"`
	AutosaveSlot   string        `env:"LIFE_AUTOSAVE_SLOT" envDefault:"autosave"`
	Autosave       bool          `env:"LIFE_AUTOSAVE" envDefault:"true"`
	Autoplay       bool          `env:"LIFE_AUTOPLAY" envDefault:"false"`
	AutoplayPace   time.Duration `env:"LIFE_AUTOPLAY_PACE" envDefault:"5s"`
	ShutdownGrace  time.Duration `env:"LIFE_SHUTDOWN_GRACE" envDefault:"5s"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
