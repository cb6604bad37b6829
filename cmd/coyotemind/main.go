// cmd/coyotemind/main.go
//
// Console entry point.
// Responsibilities:
//   - Load .env, set the log level, resolve the settings file.
//   - Dispatch the cobra commands: play (default) and config.
//   - Exit non-zero when a round is abandoned on contradictory feedback.
//
// Environment variables:
//   LOG_LEVEL     - zerolog level (default "info"; dev settings force "debug")
//   COYOTE_CONFIG - settings file path (default ./coyotemind.yaml)
//   DAILY_SALT    - salt for --daily secrets
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/coyotemind/internal/config"
	"github.com/robalobadob/coyotemind/internal/solver"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "coyotemind",
	Short:         "Break secret codes against the computer, or let it break yours",
	Long:          "Master Coyote Mind: Recherche +/- and Mastermind, in Challenger, Defenseur or Duel mode.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "settings file (default $COYOTE_CONFIG or ./"+config.DefaultPath+")")
	addPlayFlags(rootCmd)
	rootCmd.AddCommand(playCmd, configCmd)
}

func main() {
	_ = godotenv.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, solver.ErrInconsistentFeedback) {
			log.Error().Err(err).Msg("round abandoned")
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// loadConfig resolves the settings path and applies dev logging.
func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		path = getEnv("COYOTE_CONFIG", config.DefaultPath)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if cfg.Dev {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Debug().Str("path", path).Interface("settings", cfg).Msg("settings loaded")
	return cfg, nil
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
