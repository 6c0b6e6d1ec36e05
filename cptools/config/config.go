package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cycleplus-tools/cptools/ride"
	"cycleplus-tools/cptools/store"

	"github.com/github/go-config"
)

// ErrInvalidDriver is returned for an unknown store driver
var ErrInvalidDriver = errors.New("store driver must be \"json\" or \"sqlite\"")

// Config holds application configuration, read from the environment.
type Config struct {
	// DataDir is where rides are stored, relative to the home directory
	// unless absolute.
	DataDir     string `config:".cycleplus,env=CYCLEPLUS_DATA_DIR"`
	StoreDriver string `config:"json,env=CYCLEPLUS_STORE"`

	ThinningSeconds   int    `config:"5,env=CYCLEPLUS_THINNING_SECONDS"`
	MinMovementMeters int    `config:"0,env=CYCLEPLUS_MIN_MOVEMENT_METERS"`
	PowerOwner        string `config:"cycleplus,env=CYCLEPLUS_POWER_OWNER"`
	TrailLength       int    `config:"100,env=CYCLEPLUS_TRAIL_LENGTH"`
}

// Load parses configuration from the environment and places it in a newly
// allocated Config struct.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := config.Load(cfg); err != nil {
		return nil, err
	}

	if !filepath.IsAbs(cfg.DataDir) {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(home, cfg.DataDir)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the config values
func (c *Config) Validate() error {
	if c.StoreDriver != store.DriverJSON && c.StoreDriver != store.DriverSQLite {
		return fmt.Errorf("%w, got %q", ErrInvalidDriver, c.StoreDriver)
	}
	if c.DataDir == "" {
		return errors.New("data directory must not be empty")
	}
	if c.ThinningSeconds < 0 {
		return fmt.Errorf("thinning seconds must not be negative, got %d", c.ThinningSeconds)
	}
	if c.MinMovementMeters < 0 {
		return fmt.Errorf("minimum movement must not be negative, got %d", c.MinMovementMeters)
	}
	if c.TrailLength <= 0 {
		return fmt.Errorf("trail length must be positive, got %d", c.TrailLength)
	}
	return nil
}

// Settings returns the ride session settings matching the config
func (c *Config) Settings() ride.Settings {
	s := ride.DefaultSettings()
	s.ThinInterval = time.Duration(c.ThinningSeconds) * time.Second
	s.MinMovementKm = float64(c.MinMovementMeters) / 1000
	s.PowerOwner = c.PowerOwner
	s.TrailLength = c.TrailLength
	return s
}

// OpenStore opens the ride store described by the config
func (c *Config) OpenStore() (store.Store, error) {
	return store.Open(c.StoreDriver, c.DataDir)
}
