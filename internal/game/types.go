// internal/game/types.go
//
// Core type definitions for the code-breaking engine.
// Defines:
//   - Family: the rule family (Recherche or Mastermind).
//   - Rules: family + board width + colour count.
//   - Code: a fixed-width sequence of digits.
//   - Feedback: the result of scoring a guess (Pegs or Hints).
//   - Board: one side's ledger of guesses against a hidden code.

package game

import (
	"strconv"
	"strings"
)

// Family selects how guesses are scored.
type Family int

const (
	// Recherche scores each position as =, + (secret higher) or - (secret lower).
	Recherche Family = iota + 1
	// Mastermind scores exact and present pegs.
	Mastermind
)

// RechercheDigits is the fixed alphabet size of the Recherche family (0..9).
const RechercheDigits = 10

func (f Family) String() string {
	switch f {
	case Recherche:
		return "recherche"
	case Mastermind:
		return "mastermind"
	}
	return "unknown"
}

// ParseFamily maps a user-facing name to a Family.
func ParseFamily(s string) (Family, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "recherche", "search", "1":
		return Recherche, true
	case "mastermind", "2":
		return Mastermind, true
	}
	return 0, false
}

// Rules describes the shape of the codes in play.
type Rules struct {
	Family Family
	Width  int // L: number of positions on the board
	Colors int // K: alphabet size for Mastermind; ignored for Recherche
}

// Alphabet returns the number of distinct digits a position may hold.
func (r Rules) Alphabet() int {
	if r.Family == Recherche {
		return RechercheDigits
	}
	return r.Colors
}

// Code is an ordered sequence of digits, fixed width once created.
type Code []int

// String renders a code as its digits, e.g. "2405".
func (c Code) String() string {
	var b strings.Builder
	for _, d := range c {
		b.WriteString(strconv.Itoa(d))
	}
	return b.String()
}

// Equal reports whether two codes hold the same digits.
func (c Code) Equal(o Code) bool {
	if len(c) != len(o) {
		return false
	}
	for i := range c {
		if c[i] != o[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (c Code) Clone() Code {
	return append(Code(nil), c...)
}

// Feedback is the score a guess earned.
// Implementations: Pegs (Mastermind) and Hints (Recherche).
type Feedback interface {
	// Solved reports whether the feedback denotes a full match on a board of the given width.
	Solved(width int) bool
	String() string
}

// Pegs is the Mastermind score.
type Pegs struct {
	Exact   int // digit and position match
	Present int // digit present elsewhere, not double-counted
}

func (p Pegs) Solved(width int) bool { return p.Exact == width }

func (p Pegs) String() string {
	return strconv.Itoa(p.Exact) + "E" + strconv.Itoa(p.Present) + "P"
}

// Symbol is the per-position Recherche verdict.
type Symbol int

const (
	Equal   Symbol = iota // guess digit == secret digit
	TooLow                // guess digit < secret digit
	TooHigh               // guess digit > secret digit
)

// String uses the classic notation: "+" means the secret digit is higher.
func (s Symbol) String() string {
	switch s {
	case Equal:
		return "="
	case TooLow:
		return "+"
	case TooHigh:
		return "-"
	}
	return "?"
}

// Hints is the Recherche score, one symbol per position.
type Hints []Symbol

func (h Hints) Solved(width int) bool {
	if len(h) != width {
		return false
	}
	for _, s := range h {
		if s != Equal {
			return false
		}
	}
	return true
}

func (h Hints) String() string {
	var b strings.Builder
	for _, s := range h {
		b.WriteString(s.String())
	}
	return b.String()
}

// Turn records one scored guess.
type Turn struct {
	Guess    Code
	Feedback Feedback
}

// Board holds the state of one side's search for a hidden code.
type Board struct {
	Rules  Rules
	Secret Code   // the code this side must find
	Turns  []Turn // guesses made so far, in order
	Won    bool   // true once a guess fully matched
}
