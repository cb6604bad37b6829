package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/robalobadob/coyotemind/internal/game"
	"github.com/robalobadob/coyotemind/internal/round"
	"github.com/robalobadob/coyotemind/internal/secret"
	"github.com/robalobadob/coyotemind/internal/session"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start an interactive session",
	Long: `Starts the selection screen, or goes straight to a game when --game and --mode are set.

Games: recherche (digit-wise +/-/= hints), mastermind (present / well placed pegs).
Modes: challenger (you guess), defenseur (the computer guesses), duel (both, shared attempts).`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().String("game", "", "recherche or mastermind")
	cmd.Flags().String("mode", "", "challenger, defenseur or duel")
	cmd.Flags().Bool("daily", false, "use the day's secret instead of a random one")
	cmd.Flags().Bool("no-color", os.Getenv("NO_COLOR") != "", "disable coloured output")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	opts := session.Options{Config: cfg}
	if v, _ := flags.GetString("game"); v != "" {
		f, ok := game.ParseFamily(v)
		if !ok {
			return fmt.Errorf("unknown game %q", v)
		}
		opts.Family = f
	}
	if v, _ := flags.GetString("mode"); v != "" {
		m, ok := round.ParseMode(v)
		if !ok {
			return fmt.Errorf("unknown mode %q", v)
		}
		opts.Mode = m
	}
	if daily, _ := flags.GetBool("daily"); daily {
		opts.Secrets = secret.Daily{Salt: getEnv("DAILY_SALT", "local_dev_salt")}
	}
	noColor, _ := flags.GetBool("no-color")
	opts.Color = !noColor

	return session.New(cmd.InOrStdin(), cmd.OutOrStdout(), opts).Run(cmd.Context())
}
