// internal/config/config.go
//
// Game settings.
// Responsibilities:
//   - Read the YAML settings file (board size, attempts, colours, dev flag).
//   - Regenerate the file from embedded defaults when it is missing, malformed
//     or out of range, and carry on with those defaults.
//   - Apply COYOTE_* environment overrides on top of the file.
//
// Environment variables:
//   COYOTE_BOARD_SIZE, COYOTE_ATTEMPTS, COYOTE_COLORS, COYOTE_DEV
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/robalobadob/coyotemind/assets"
	"github.com/robalobadob/coyotemind/internal/game"
)

// DefaultPath is used when no --config flag or COYOTE_CONFIG is given.
const DefaultPath = "coyotemind.yaml"

// Accepted ranges.
const (
	MinBoardSize, MaxBoardSize = 1, 8
	MinAttempts, MaxAttempts   = 1, 20
	MinColors, MaxColors       = 4, 10
)

// ErrInvalid wraps every range violation.
var ErrInvalid = errors.New("config: invalid settings")

// Config holds the settings every round is built from.
type Config struct {
	BoardSize int  `yaml:"board_size" env:"COYOTE_BOARD_SIZE"`
	Attempts  int  `yaml:"attempts" env:"COYOTE_ATTEMPTS"`
	Colors    int  `yaml:"colors" env:"COYOTE_COLORS"`
	Dev       bool `yaml:"dev" env:"COYOTE_DEV"`
}

// Default returns the embedded default settings.
func Default() Config {
	c, err := decode(assets.DefaultSettings)
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return c
}

// Validate checks every field against its accepted range.
func (c Config) Validate() error {
	switch {
	case c.BoardSize < MinBoardSize || c.BoardSize > MaxBoardSize:
		return fmt.Errorf("board_size %d not in %d..%d: %w", c.BoardSize, MinBoardSize, MaxBoardSize, ErrInvalid)
	case c.Attempts < MinAttempts || c.Attempts > MaxAttempts:
		return fmt.Errorf("attempts %d not in %d..%d: %w", c.Attempts, MinAttempts, MaxAttempts, ErrInvalid)
	case c.Colors < MinColors || c.Colors > MaxColors:
		return fmt.Errorf("colors %d not in %d..%d: %w", c.Colors, MinColors, MaxColors, ErrInvalid)
	}
	return nil
}

// Rules builds the board shape for a rule family.
func (c Config) Rules(f game.Family) game.Rules {
	return game.Rules{Family: f, Width: c.BoardSize, Colors: c.Colors}
}

// Load reads path, falling back to (and rewriting) defaults when the file is
// unusable, then applies environment overrides. Only a bad override is an error.
func Load(path string) (Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Info().Str("path", path).Msg("no settings file, writing defaults")
		} else {
			log.Warn().Err(err).Str("path", path).Msg("settings unusable, regenerating defaults")
		}
		cfg = Default()
		if werr := WriteDefaults(path); werr != nil {
			log.Warn().Err(werr).Str("path", path).Msg("could not write default settings")
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: env overrides: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: env overrides: %w", err)
	}
	return cfg, nil
}

// WriteDefaults (re)creates path with the embedded defaults.
func WriteDefaults(path string) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, assets.DefaultSettings, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Marshal renders the settings as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func readFile(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return decode(b)
}

func decode(b []byte) (Config, error) {
	var c Config
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("parse settings: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
