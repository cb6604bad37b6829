// internal/solver/ranges.go
//
// PositionalRangeSpace: for Recherche, the digits each position may still hold.
// Positions narrow independently; no cross-position deduction is attempted.
package solver

import (
	"fmt"
	"math/rand/v2"

	"github.com/robalobadob/coyotemind/internal/game"
)

// PositionalRangeSpace holds one ascending digit set per position.
type PositionalRangeSpace struct {
	sets [][]int
	rng  *rand.Rand
}

// NewPositionalRangeSpace starts every position at {0..digits-1}.
func NewPositionalRangeSpace(width, digits int, rng *rand.Rand) (*PositionalRangeSpace, error) {
	if width < 1 || digits < 1 {
		return nil, fmt.Errorf("range space %dx%d: %w", width, digits, ErrShape)
	}
	sets := make([][]int, width)
	for i := range sets {
		sets[i] = make([]int, digits)
		for d := range sets[i] {
			sets[i][d] = d
		}
	}
	return &PositionalRangeSpace{sets: sets, rng: rng}, nil
}

// Width returns the number of positions.
func (s *PositionalRangeSpace) Width() int { return len(s.sets) }

// Remaining returns a copy of the digits still possible at position i.
func (s *PositionalRangeSpace) Remaining(i int) []int {
	return append([]int(nil), s.sets[i]...)
}

// Pick draws each position uniformly from its remaining set.
func (s *PositionalRangeSpace) Pick() (game.Code, error) {
	c := make(game.Code, len(s.sets))
	for i, set := range s.sets {
		switch len(set) {
		case 0:
			return nil, fmt.Errorf("pick at position %d: %w", i, ErrInconsistentFeedback)
		case 1:
			c[i] = set[0]
		default:
			c[i] = set[s.rng.IntN(len(set))]
		}
	}
	return c, nil
}

// Narrow applies the verdict for one position:
//   - Equal collapses the set to {guessed} (no-op once singleton).
//   - TooLow drops every digit <= guessed.
//   - TooHigh drops every digit >= guessed.
func (s *PositionalRangeSpace) Narrow(i, guessed int, sym game.Symbol) error {
	if i < 0 || i >= len(s.sets) {
		return fmt.Errorf("narrow position %d of %d: %w", i, len(s.sets), game.ErrWidth)
	}
	set := s.sets[i]
	switch sym {
	case game.Equal:
		if len(set) > 1 {
			set = append(set[:0], guessed)
		}
	case game.TooLow:
		set = filter(set, func(d int) bool { return d > guessed })
	case game.TooHigh:
		set = filter(set, func(d int) bool { return d < guessed })
	default:
		return fmt.Errorf("narrow position %d: unknown symbol %d", i, sym)
	}
	s.sets[i] = set
	if len(set) == 0 {
		return fmt.Errorf("narrow position %d on %d%s emptied its range: %w", i, guessed, sym, ErrInconsistentFeedback)
	}
	return nil
}

// NarrowAll applies a full Recherche score for guess.
func (s *PositionalRangeSpace) NarrowAll(guess game.Code, hints game.Hints) error {
	if len(guess) != len(s.sets) || len(hints) != len(s.sets) {
		return fmt.Errorf("narrow with guess %q: %w", guess, game.ErrWidth)
	}
	for i := range guess {
		if err := s.Narrow(i, guess[i], hints[i]); err != nil {
			return err
		}
	}
	return nil
}

func filter(set []int, keep func(int) bool) []int {
	out := set[:0]
	for _, d := range set {
		if keep(d) {
			out = append(out, d)
		}
	}
	return out
}
