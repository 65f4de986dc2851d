package config

import (
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime configuration, populated from environment
// variables (a local .env file is loaded automatically when present).
type Config struct {
	Port    string `envconfig:"PORT" default:"8080"`
	Storage string `envconfig:"STORAGE" default:"memory"` // "memory" or "mysql"

	DBUser string `envconfig:"DB_USER" default:"auction"`
	DBPass string `envconfig:"DB_PASS" default:""`
	DBHost string `envconfig:"DB_HOST" default:"localhost"`
	DBPort string `envconfig:"DB_PORT" default:"3306"`
	DBName string `envconfig:"DB_NAME" default:"auction_house"`

	// SweepInterval is how often the reconciliation worker runs both sweeps.
	SweepInterval time.Duration `envconfig:"SWEEP_INTERVAL" default:"1m"`
	// SystemUsername names the identity stamped onto payments created by the
	// payment-ensure sweep.
	SystemUsername string `envconfig:"SYSTEM_USERNAME" default:"reconciler"`
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
