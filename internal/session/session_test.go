package session

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/coyotemind/internal/config"
	"github.com/robalobadob/coyotemind/internal/game"
	"github.com/robalobadob/coyotemind/internal/round"
	"github.com/robalobadob/coyotemind/internal/solver"
	"github.com/robalobadob/coyotemind/internal/stats"
)

// fixed always generates the same secret.
type fixed game.Code

func (f fixed) Generate(game.Rules) (game.Code, error) { return game.Code(f).Clone(), nil }

// contradicted guesses zeros and rejects every feedback.
type contradicted struct{}

func (contradicted) NextGuess(context.Context) (game.Code, error) { return game.Code{0, 0, 0, 0}, nil }

func (contradicted) Learn(game.Code, game.Feedback) error {
	return fmt.Errorf("position 0: %w", solver.ErrInconsistentFeedback)
}

func zeros(game.Rules) (round.GuessSource, error) {
	return round.SourceFunc(func(context.Context) (game.Code, error) { return game.Code{0, 0, 0, 0}, nil }), nil
}

func newSession(input string, opts Options) (*Session, *bytes.Buffer) {
	var out bytes.Buffer
	if opts.Config == (config.Config{}) {
		opts.Config = config.Default()
	}
	if opts.Secrets == nil {
		opts.Secrets = fixed{2, 4, 0, 5}
	}
	return New(strings.NewReader(input), &out, opts), &out
}

func TestChallengerRound(t *testing.T) {
	st := stats.NewMemoryStore()
	s, out := newSession("1111\n2405\nn\nn\n", Options{Family: game.Mastermind, Mode: round.Challenger, Stats: st})
	require.NoError(t, s.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "10 attempts left.")
	assert.Contains(t, text, "9 attempts left.")
	assert.Contains(t, text, "You      1111 -> 0 present.")
	assert.Contains(t, text, "You found the code: 2405")
	assert.Contains(t, text, "played 1, won 1, streak 1 (best 1)")
	assert.NotContains(t, text, "(dev)")

	r, err := st.Get(context.Background(), stats.Key{Family: game.Mastermind, Mode: round.Challenger})
	require.NoError(t, err)
	assert.Equal(t, 1, r.Wins)
}

func TestMenusAndReplay(t *testing.T) {
	// mastermind, challenger, win, play again, win, no, new game, recherche, challenger, lose, no, no
	input := strings.Join([]string{"2", "1", "2405", "y", "2405", "n", "y", "1", "1", "0000", "n", "n"}, "\n") + "\n"
	cfg := config.Default()
	cfg.Attempts = 1
	st := stats.NewMemoryStore()
	s, out := newSession(input, Options{Config: cfg, Stats: st})
	require.NoError(t, s.Run(context.Background()))

	ctx := context.Background()
	mm, err := st.Get(ctx, stats.Key{Family: game.Mastermind, Mode: round.Challenger})
	require.NoError(t, err)
	assert.Equal(t, stats.Record{Played: 2, Wins: 2, Streak: 2, BestStreak: 2}, mm)

	rc, err := st.Get(ctx, stats.Key{Family: game.Recherche, Mode: round.Challenger})
	require.NoError(t, err)
	assert.Equal(t, stats.Record{Played: 1}, rc)

	assert.Contains(t, out.String(), "You      0000 -> ++=+.")
	assert.Contains(t, out.String(), "The code was: 2405")
}

func TestDefenseurWithSolver(t *testing.T) {
	cfg := config.Default()
	cfg.Attempts = 20
	s, out := newSession("5190\n", Options{Config: cfg})

	v, err := s.PlayRound(context.Background(), game.Recherche, round.Defenseur)
	require.NoError(t, err)
	assert.Equal(t, round.ComputerWon, v)
	assert.Contains(t, out.String(), "The computer found your code!")
	assert.NotContains(t, out.String(), "attempts left", "no banner when only the computer plays")
}

func TestDuelRound(t *testing.T) {
	cfg := config.Default()
	cfg.Dev = true
	s, out := newSession("5555\n1111\n2405\n", Options{Config: cfg, NewSolver: zeros})

	v, err := s.PlayRound(context.Background(), game.Mastermind, round.Duel)
	require.NoError(t, err)
	assert.Equal(t, round.HumanWon, v)

	text := out.String()
	assert.Contains(t, text, "(dev) computer's secret: 2405")
	assert.Contains(t, text, "Computer 0000 -> 0 present.")
	assert.Equal(t, 1, strings.Count(text, "Computer 0000"), "computer skipped after the human win")
}

func TestDuelDraw(t *testing.T) {
	cfg := config.Default()
	cfg.Attempts = 2
	s, out := newSession("5555\n1111\n1111\n", Options{Config: cfg, NewSolver: zeros})

	v, err := s.PlayRound(context.Background(), game.Mastermind, round.Duel)
	require.NoError(t, err)
	assert.Equal(t, round.Draw, v)
	assert.Contains(t, out.String(), "The computer's code was: 2405")
}

func TestContradictionAbortsRound(t *testing.T) {
	opts := Options{
		Family: game.Mastermind,
		Mode:   round.Defenseur,
		NewSolver: func(game.Rules) (round.GuessSource, error) {
			return contradicted{}, nil
		},
	}
	s, out := newSession("5555\n", opts)
	err := s.Run(context.Background())
	assert.ErrorIs(t, err, solver.ErrInconsistentFeedback)
	assert.Contains(t, out.String(), "contradict each other")
}

func TestInputEndsCleanly(t *testing.T) {
	s, out := newSession("2\n1\n11", Options{})
	require.NoError(t, s.Run(context.Background()))
	assert.Contains(t, out.String(), "expected 4 digits, got 2")
	assert.NotContains(t, out.String(), "Session results")
}
