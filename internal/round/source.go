package round

import (
	"context"

	"github.com/robalobadob/coyotemind/internal/game"
	"github.com/robalobadob/coyotemind/internal/solver"
)

// GuessSource supplies the next guess for one side.
// Human sources may block on input; solver sources never block.
type GuessSource interface {
	NextGuess(ctx context.Context) (game.Code, error)
}

// Learner is implemented by sources that learn from the feedback their guess earned.
type Learner interface {
	Learn(guess game.Code, fb game.Feedback) error
}

// SolverSource adapts a solver.Solver to GuessSource.
type SolverSource struct {
	Solver solver.Solver
}

// NewSolverSource builds a fresh solver for the rules.
func NewSolverSource(rules game.Rules) (*SolverSource, error) {
	sv, err := solver.New(rules, nil)
	if err != nil {
		return nil, err
	}
	return &SolverSource{Solver: sv}, nil
}

func (s *SolverSource) NextGuess(context.Context) (game.Code, error) {
	return s.Solver.NextGuess()
}

func (s *SolverSource) Learn(guess game.Code, fb game.Feedback) error {
	return s.Solver.RecordFeedback(guess, fb)
}

// Remaining exposes the solver's search-space size for dev output.
func (s *SolverSource) Remaining() int { return s.Solver.Remaining() }

// SourceFunc adapts a plain function to GuessSource.
type SourceFunc func(ctx context.Context) (game.Code, error)

func (f SourceFunc) NextGuess(ctx context.Context) (game.Code, error) { return f(ctx) }
