// internal/game/engine.go
//
// Scoring and board bookkeeping.
// Responsibilities:
//   - Score guesses under both rule families.
//   - Apply a guess to a Board and detect the winning turn.
//
// Notes:
//   - Scoring is pure; callers decide what to print or learn from it.
//   - The Mastermind scorer reproduces the greedy, leftmost-match handling of
//     repeated digits using per-position "consumed" flags.
package game

import (
	"errors"
	"fmt"
)

var (
	// ErrWidth is returned when a code does not match the board width.
	ErrWidth = errors.New("code width does not match board")
	// ErrFinished is returned when guessing on a board that is already won.
	ErrFinished = errors.New("board already solved")
)

// maxWidth bounds the stack-allocated consumed flags; wider boards fall back to the heap.
const maxWidth = 16

// ScoreMastermind compares guess against secret.
//
// Pass 1:
//   - Every position where the digits agree is exact; it is consumed on both sides.
//
// Pass 2:
//   - For each unconsumed secret position i, scan guess positions j != i from the left
//     for an unconsumed digit equal to secret[i] that is not itself an exact match.
//     The first hit is consumed and counts as present.
//
// Both codes must have the same width.
func ScoreMastermind(secret, guess Code) Pegs {
	n := len(secret)
	var secretBuf, guessBuf [maxWidth]bool
	usedSecret, usedGuess := secretBuf[:], guessBuf[:]
	if n > maxWidth {
		usedSecret, usedGuess = make([]bool, n), make([]bool, n)
	}

	var p Pegs
	for i := 0; i < n; i++ {
		if guess[i] == secret[i] {
			p.Exact++
			usedSecret[i], usedGuess[i] = true, true
		}
	}
	for i := 0; i < n; i++ {
		if usedSecret[i] {
			continue
		}
		for j := 0; j < n; j++ {
			if j == i || usedGuess[j] || guess[j] == secret[j] {
				continue
			}
			if secret[i] == guess[j] {
				usedGuess[j] = true
				p.Present++
				break
			}
		}
	}
	return p
}

// ScoreRecherche compares guess against secret position by position.
func ScoreRecherche(secret, guess Code) Hints {
	h := make(Hints, len(secret))
	for i := range secret {
		switch {
		case guess[i] == secret[i]:
			h[i] = Equal
		case guess[i] < secret[i]:
			h[i] = TooLow
		default:
			h[i] = TooHigh
		}
	}
	return h
}

// Score dispatches to the scorer of the rule family.
func (r Rules) Score(secret, guess Code) (Feedback, error) {
	if len(secret) != r.Width || len(guess) != r.Width {
		return nil, fmt.Errorf("score %d-wide board with secret %q, guess %q: %w", r.Width, secret, guess, ErrWidth)
	}
	if r.Family == Recherche {
		return ScoreRecherche(secret, guess), nil
	}
	return ScoreMastermind(secret, guess), nil
}

// NewBoard starts a board for the given secret.
func NewBoard(rules Rules, secret Code) (*Board, error) {
	if len(secret) != rules.Width {
		return nil, fmt.Errorf("new board: %w", ErrWidth)
	}
	return &Board{Rules: rules, Secret: secret.Clone()}, nil
}

// ApplyGuess scores a guess, records it, and marks the board won on a full match.
func (b *Board) ApplyGuess(guess Code) (Feedback, error) {
	if b.Won {
		return nil, ErrFinished
	}
	fb, err := b.Rules.Score(b.Secret, guess)
	if err != nil {
		return nil, err
	}
	b.Turns = append(b.Turns, Turn{Guess: guess.Clone(), Feedback: fb})
	if fb.Solved(b.Rules.Width) {
		b.Won = true
	}
	return fb, nil
}
