// internal/session/session.go
//
// Interactive session: selection menus, round set-up per mode, and the
// two-level replay loop.
//
// Flow:
//   choose family → choose mode → play round → "play again?" (same game, fresh
//   secrets) → "new game?" (back to selection) or quit with the session tally.
//
// Seats per mode:
//   Challenger: the human breaks a generated secret.
//   Defenseur:  the solver breaks a secret the human types in.
//   Duel:       both of the above, sharing one attempt budget.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/coyotemind/internal/config"
	"github.com/robalobadob/coyotemind/internal/console"
	"github.com/robalobadob/coyotemind/internal/game"
	"github.com/robalobadob/coyotemind/internal/round"
	"github.com/robalobadob/coyotemind/internal/secret"
	"github.com/robalobadob/coyotemind/internal/stats"
)

// Options configure a Session. Zero Family or Mode means "ask".
type Options struct {
	Config  config.Config
	Family  game.Family
	Mode    round.Mode
	Secrets secret.Generator // defaults to secret.Crypto
	Stats   stats.Store      // defaults to an in-memory store
	Color   bool

	// NewSolver builds the computer's guess source; defaults to round.NewSolverSource.
	NewSolver func(game.Rules) (round.GuessSource, error)
}

// Session drives play over one console.
type Session struct {
	opts   Options
	prompt *console.Prompter
	render *console.Renderer
}

func New(in io.Reader, out io.Writer, opts Options) *Session {
	if opts.Secrets == nil {
		opts.Secrets = secret.Crypto{}
	}
	if opts.Stats == nil {
		opts.Stats = stats.NewMemoryStore()
	}
	if opts.NewSolver == nil {
		opts.NewSolver = func(r game.Rules) (round.GuessSource, error) { return round.NewSolverSource(r) }
	}
	return &Session{
		opts:   opts,
		prompt: console.NewPrompter(in, out),
		render: console.NewRenderer(out, opts.Color, opts.Config.Dev),
	}
}

// Run plays until the player quits. Input ending ends the session without error.
func (s *Session) Run(ctx context.Context) error {
	s.render.Title()
	family, mode := s.opts.Family, s.opts.Mode
	for {
		var err error
		if family, mode, err = s.choose(family, mode); err != nil {
			return s.finish(ctx, err)
		}
		for {
			if _, err := s.PlayRound(ctx, family, mode); err != nil {
				return s.finish(ctx, err)
			}
			again, err := s.prompt.Confirm("Play again?")
			if err != nil {
				return s.finish(ctx, err)
			}
			if !again {
				break
			}
		}
		more, err := s.prompt.Confirm("Start a new game? (y = selection screen, n = quit)")
		if err != nil || !more {
			return s.finish(ctx, err)
		}
		// flags only preselect the first game
		family, mode = 0, 0
	}
}

func (s *Session) finish(ctx context.Context, err error) error {
	if entries, serr := s.opts.Stats.All(ctx); serr == nil {
		s.render.Stats(entries)
	}
	if errors.Is(err, io.EOF) {
		log.Debug().Msg("input closed, leaving")
		return nil
	}
	return err
}

func (s *Session) choose(family game.Family, mode round.Mode) (game.Family, round.Mode, error) {
	if family == 0 {
		i, err := s.prompt.Choose("Choose the game:", []string{"Recherche +/-", "Mastermind"})
		if err != nil {
			return 0, 0, err
		}
		family = game.Recherche + game.Family(i)
	}
	if mode == 0 {
		i, err := s.prompt.Choose("Choose the mode:", []string{"Challenger", "Defenseur", "Duel"})
		if err != nil {
			return 0, 0, err
		}
		mode = round.Challenger + round.Mode(i)
	}
	return family, mode, nil
}

// PlayRound sets up and plays one round, then records its verdict.
func (s *Session) PlayRound(ctx context.Context, family game.Family, mode round.Mode) (round.Verdict, error) {
	rules := s.opts.Config.Rules(family)
	seats, target, err := s.seats(rules, mode)
	if err != nil {
		return round.Pending, err
	}
	r, err := round.New(round.Config{Rules: rules, Attempts: s.opts.Config.Attempts, Mode: mode}, seats,
		round.WithReporter(s.render))
	if err != nil {
		return round.Pending, err
	}
	log.Debug().
		Str("family", family.String()).
		Str("mode", mode.String()).
		Int("width", rules.Width).
		Int("alphabet", rules.Alphabet()).
		Int("attempts", s.opts.Config.Attempts).
		Msg("round started")

	for {
		side, ok := r.Next()
		if !ok {
			break
		}
		if side == round.Human {
			s.render.Banner(r.Remaining())
		}
		if _, err := r.Step(ctx, side); err != nil {
			if r.State() == round.Failed {
				s.render.Verdict(round.Aborted, mode, target)
			}
			return r.Verdict(), err
		}
	}

	v := r.Verdict()
	s.render.Verdict(v, mode, target)
	if err := s.opts.Stats.Record(ctx, stats.Key{Family: family, Mode: mode}, stats.HumanWon(v)); err != nil {
		log.Warn().Err(err).Msg("could not record round")
	}
	return v, nil
}

// seats builds the mode's seats and returns the code the human must find, if any.
func (s *Session) seats(rules game.Rules, mode round.Mode) ([]round.Seat, game.Code, error) {
	var (
		seats  []round.Seat
		target game.Code
	)
	if mode == round.Challenger || mode == round.Duel {
		c, err := s.opts.Secrets.Generate(rules)
		if err != nil {
			return nil, nil, fmt.Errorf("generate secret: %w", err)
		}
		s.render.Reveal("computer's secret", c)
		target = c
		seats = append(seats, round.Seat{
			Side:   round.Human,
			Source: &console.HumanSource{Prompter: s.prompt, Rules: rules},
			Secret: c,
		})
	}
	if mode == round.Defenseur || mode == round.Duel {
		c, err := s.prompt.ReadCode("Your secret code for the computer to find", rules)
		if err != nil {
			return nil, nil, err
		}
		src, err := s.opts.NewSolver(rules)
		if err != nil {
			return nil, nil, fmt.Errorf("start solver: %w", err)
		}
		seats = append(seats, round.Seat{Side: round.Computer, Source: src, Secret: c})
	}
	return seats, target, nil
}
