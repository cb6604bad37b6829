// Package solver implements the automated codebreaker.
//
// A Solver owns one search space for one round: a CandidateSpace for
// Mastermind or a PositionalRangeSpace for Recherche. Each turn it offers a
// guess drawn uniformly from what is still possible, then learns from the
// feedback that guess earned.
package solver

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/coyotemind/internal/game"
)

var (
	// ErrInconsistentFeedback means the search space emptied: the feedback
	// sequence cannot have come from any code. It is never recovered from.
	ErrInconsistentFeedback = errors.New("solver: feedback is inconsistent with every code")
	// ErrShape is returned for a board the solver cannot represent.
	ErrShape = errors.New("solver: unsupported board shape")
	// ErrFeedbackKind is returned when feedback does not belong to the solver's rule family.
	ErrFeedbackKind = errors.New("solver: feedback does not match rule family")
)

// Solver is the codebreaker contract shared by both rule families.
type Solver interface {
	// NextGuess proposes the next code to try.
	NextGuess() (game.Code, error)
	// RecordFeedback shrinks the search space using the score guess earned.
	RecordFeedback(guess game.Code, fb game.Feedback) error
	// Remaining reports the size of the search space (product of range sizes for Recherche).
	Remaining() int
}

// New builds the solver matching the rule family.
// rng may be nil, in which case a randomly seeded generator is used.
func New(rules game.Rules, rng *rand.Rand) (Solver, error) {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	switch rules.Family {
	case game.Mastermind:
		space, err := NewCandidateSpace(rules.Width, rules.Colors, rng)
		if err != nil {
			return nil, err
		}
		return &mastermind{space: space}, nil
	case game.Recherche:
		space, err := NewPositionalRangeSpace(rules.Width, game.RechercheDigits, rng)
		if err != nil {
			return nil, err
		}
		return &recherche{space: space}, nil
	}
	return nil, fmt.Errorf("new solver for family %d: %w", rules.Family, ErrShape)
}

type mastermind struct {
	space *CandidateSpace
}

func (m *mastermind) NextGuess() (game.Code, error) {
	log.Debug().Int("candidates", m.space.Len()).Msg("solver picking")
	return m.space.Pick()
}

func (m *mastermind) RecordFeedback(guess game.Code, fb game.Feedback) error {
	pegs, ok := fb.(game.Pegs)
	if !ok {
		return fmt.Errorf("record %T: %w", fb, ErrFeedbackKind)
	}
	before := m.space.Len()
	if err := m.space.Prune(guess, pegs); err != nil {
		return err
	}
	log.Debug().Int("before", before).Int("after", m.space.Len()).Str("guess", guess.String()).Msg("candidates pruned")
	return nil
}

func (m *mastermind) Remaining() int { return m.space.Len() }

type recherche struct {
	space *PositionalRangeSpace
}

func (r *recherche) NextGuess() (game.Code, error) {
	return r.space.Pick()
}

func (r *recherche) RecordFeedback(guess game.Code, fb game.Feedback) error {
	hints, ok := fb.(game.Hints)
	if !ok {
		return fmt.Errorf("record %T: %w", fb, ErrFeedbackKind)
	}
	if err := r.space.NarrowAll(guess, hints); err != nil {
		return err
	}
	log.Debug().Int("remaining", r.Remaining()).Str("guess", guess.String()).Msg("ranges narrowed")
	return nil
}

func (r *recherche) Remaining() int {
	n := 1
	for i := 0; i < r.space.Width(); i++ {
		n *= len(r.space.sets[i])
	}
	return n
}
