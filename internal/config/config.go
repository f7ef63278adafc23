// Package config resolves runtime settings from code defaults, a TOML
// file, a .env file and SIGHTREAD_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "SIGHTREAD_"

// Config is the full application configuration.
type Config struct {
	DB       DB       `toml:"db" envPrefix:"DB_"`
	Profiles Profiles `toml:"profiles" envPrefix:"PROFILES_"`
	Quiz     Quiz     `toml:"quiz" envPrefix:"QUIZ_"`
	Log      Log      `toml:"log" envPrefix:"LOG_"`
}

// DB locates the local SQLite database.
type DB struct {
	// Path overrides the XDG data location when set.
	Path string `toml:"path" env:"PATH"`
}

// Profiles configures where parents and profiles live.
type Profiles struct {
	// PostgresURL switches profile storage to a shared Postgres database.
	PostgresURL  string `toml:"postgres_url" env:"POSTGRES_URL"`
	MaxPerParent int    `toml:"max_per_parent" env:"MAX_PER_PARENT"`
}

// Quiz holds gameplay settings.
type Quiz struct {
	Questions        int           `toml:"questions" env:"QUESTIONS"`
	PointsPerCorrect int           `toml:"points_per_correct" env:"POINTS_PER_CORRECT"`
	CorrectDelay     time.Duration `toml:"correct_delay" env:"CORRECT_DELAY"`
	WrongDelay       time.Duration `toml:"wrong_delay" env:"WRONG_DELAY"`
	// Seed fixes the random source; 0 seeds from the clock.
	Seed uint64 `toml:"seed" env:"SEED"`
}

// Log configures the file logger.
type Log struct {
	Level string `toml:"level" env:"LEVEL"`
	Path  string `toml:"path" env:"PATH"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Profiles: Profiles{MaxPerParent: 6},
		Quiz: Quiz{
			Questions:        10,
			PointsPerCorrect: 10,
			CorrectDelay:     time.Second,
			WrongDelay:       2 * time.Second,
		},
		Log: Log{Level: "info"},
	}
}

// LoadOptions controls where Load looks for files. Empty paths use the
// defaults; a missing file at a default path is not an error.
type LoadOptions struct {
	ConfigPath string
	DotEnvPath string
}

// Load builds the configuration. Later sources override earlier ones
// field by field.
func Load(opts LoadOptions) (*Config, error) {
	cfg := Default()

	path := opts.ConfigPath
	explicit := path != ""
	if !explicit {
		path = FilePath()
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	}

	dotenv := opts.DotEnvPath
	if dotenv == "" {
		dotenv = ".env"
	}
	if _, err := os.Stat(dotenv); err == nil {
		if err := godotenv.Load(dotenv); err != nil {
			return nil, fmt.Errorf("load %s: %w", dotenv, err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the app cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Quiz.Questions < 1 {
		errs = append(errs, fmt.Errorf("quiz.questions must be at least 1, got %d", c.Quiz.Questions))
	}
	if c.Quiz.PointsPerCorrect < 0 {
		errs = append(errs, fmt.Errorf("quiz.points_per_correct must not be negative"))
	}
	if c.Quiz.CorrectDelay < 0 || c.Quiz.WrongDelay < 0 {
		errs = append(errs, fmt.Errorf("quiz delays must not be negative"))
	}
	if c.Profiles.MaxPerParent < 1 {
		errs = append(errs, fmt.Errorf("profiles.max_per_parent must be at least 1, got %d", c.Profiles.MaxPerParent))
	}
	return errors.Join(errs...)
}

// FilePath returns $XDG_CONFIG_HOME/sightread/config.toml.
func FilePath() string {
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), "sightread", "config.toml")
}

// DefaultLogPath returns $XDG_STATE_HOME/sightread/sightread.log.
func DefaultLogPath() string {
	return filepath.Join(xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state")), "sightread", "sightread.log")
}

func xdgDir(envVar, fallback string) string {
	if dir := os.Getenv(envVar); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return fallback
	}
	return filepath.Join(home, fallback)
}
