// Package config reads server settings from the environment. Command-line
// flags in main override what is loaded here.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"

	"boardquest/internal/engine"
)

// Config is the process configuration.
type Config struct {
	Port    int    `env:"BOARDQUEST_PORT" envDefault:"8080"`
	Content string `env:"BOARDQUEST_CONTENT"` // empty uses the embedded board

	MaxStorage int `env:"BOARDQUEST_MAX_STORAGE" envDefault:"3"`
	DieMin     int `env:"BOARDQUEST_DIE_MIN" envDefault:"1"`
	DieMax     int `env:"BOARDQUEST_DIE_MAX" envDefault:"6"`

	Bots       int           `env:"BOARDQUEST_BOTS" envDefault:"2"`
	Difficulty string        `env:"BOARDQUEST_DIFFICULTY" envDefault:"medium"`
	BotDelay   time.Duration `env:"BOARDQUEST_BOT_DELAY" envDefault:"750ms"`

	Seed               int64 `env:"BOARDQUEST_SEED" envDefault:"0"`
	StoredMovesTrigger bool  `env:"BOARDQUEST_STORED_MOVES_TRIGGER" envDefault:"false"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Bots < 0 {
		return Config{}, fmt.Errorf("bots must be >= 0, got %d", cfg.Bots)
	}
	return cfg, nil
}

// GameConfig turns the settings into an engine configuration for board.
// Validation happens in engine.NewGame.
func (c Config) GameConfig(board []engine.Tile) (engine.GameConfig, error) {
	diff, err := engine.ParseDifficulty(c.Difficulty)
	if err != nil {
		return engine.GameConfig{}, err
	}
	gc := engine.DefaultConfig()
	gc.Board = board
	gc.MaxStorage = c.MaxStorage
	gc.Die = engine.DieRange{Min: c.DieMin, Max: c.DieMax}
	gc.Bots.Difficulty = diff
	gc.Bots.Delay = c.BotDelay
	gc.StoredMovesTrigger = c.StoredMovesTrigger
	return gc, nil
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
