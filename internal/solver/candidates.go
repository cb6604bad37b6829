// internal/solver/candidates.go
//
// CandidateSpace: every Mastermind code still consistent with the feedback
// observed so far.
//
// Codes are encoded as base-K integers of fixed width L (leading zeros are
// significant). The untouched space is kept implicit: a fresh space of K^L
// codes is only materialised by the first prune, which then keeps just the
// survivors.
package solver

import (
	"fmt"
	"math/rand/v2"

	"github.com/robalobadob/coyotemind/internal/game"
)

// CandidateSpace is owned by a single solver for a single round.
type CandidateSpace struct {
	width  int
	colors int
	total  uint64   // K^L
	full   bool     // true until the first prune
	codes  []uint32 // surviving encodings once !full
	rng    *rand.Rand
}

// maxCandidates caps K^L so encodings fit in uint32 (10^8 < 2^32).
const maxCandidates = 1 << 32

// NewCandidateSpace creates the space of all colors^width codes.
func NewCandidateSpace(width, colors int, rng *rand.Rand) (*CandidateSpace, error) {
	if width < 1 || colors < 1 {
		return nil, fmt.Errorf("candidate space %dx%d: %w", width, colors, ErrShape)
	}
	total := uint64(1)
	for i := 0; i < width; i++ {
		total *= uint64(colors)
		if total >= maxCandidates {
			return nil, fmt.Errorf("candidate space %d^%d too large: %w", colors, width, ErrShape)
		}
	}
	return &CandidateSpace{width: width, colors: colors, total: total, full: true, rng: rng}, nil
}

// Len returns the number of codes still possible.
func (s *CandidateSpace) Len() int {
	if s.full {
		return int(s.total)
	}
	return len(s.codes)
}

// Contains reports whether c is still a candidate.
func (s *CandidateSpace) Contains(c game.Code) bool {
	if len(c) != s.width {
		return false
	}
	for _, d := range c {
		if d < 0 || d >= s.colors {
			return false
		}
	}
	n := s.encode(c)
	if s.full {
		return uint64(n) < s.total
	}
	for _, v := range s.codes {
		if v == n {
			return true
		}
	}
	return false
}

// Pick returns a uniformly random remaining candidate.
// A single survivor is returned as is; it is the solver's convergence signal.
func (s *CandidateSpace) Pick() (game.Code, error) {
	switch {
	case s.Len() == 0:
		return nil, fmt.Errorf("pick from empty candidate space: %w", ErrInconsistentFeedback)
	case s.full:
		return s.decode(uint32(s.rng.Uint64N(s.total))), nil
	case len(s.codes) == 1:
		return s.decode(s.codes[0]), nil
	}
	return s.decode(s.codes[s.rng.IntN(len(s.codes))]), nil
}

// Prune removes every candidate that, were it the secret, would not have
// scored lastGuess exactly as observed. The true secret always survives
// honest feedback, so an empty result means the feedback was inconsistent.
func (s *CandidateSpace) Prune(lastGuess game.Code, observed game.Pegs) error {
	if len(lastGuess) != s.width {
		return fmt.Errorf("prune with guess %q: %w", lastGuess, game.ErrWidth)
	}
	buf := make(game.Code, s.width)
	keep := func(n uint32) bool {
		s.decodeInto(n, buf)
		return game.ScoreMastermind(buf, lastGuess) == observed
	}

	if s.full {
		survivors := make([]uint32, 0, 64)
		for n := uint64(0); n < s.total; n++ {
			if keep(uint32(n)) {
				survivors = append(survivors, uint32(n))
			}
		}
		s.codes, s.full = survivors, false
	} else {
		// in-place filter; order is preserved
		out := s.codes[:0]
		for _, n := range s.codes {
			if keep(n) {
				out = append(out, n)
			}
		}
		s.codes = out
	}

	if len(s.codes) == 0 {
		return fmt.Errorf("prune on guess %s with %s left no candidates: %w", lastGuess, observed, ErrInconsistentFeedback)
	}
	return nil
}

func (s *CandidateSpace) encode(c game.Code) uint32 {
	var n uint32
	for _, d := range c {
		n = n*uint32(s.colors) + uint32(d)
	}
	return n
}

func (s *CandidateSpace) decode(n uint32) game.Code {
	c := make(game.Code, s.width)
	s.decodeInto(n, c)
	return c
}

// decodeInto writes the most significant digit first.
func (s *CandidateSpace) decodeInto(n uint32, dst game.Code) {
	k := uint32(s.colors)
	for i := s.width - 1; i >= 0; i-- {
		dst[i] = int(n % k)
		n /= k
	}
}
