package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreMastermind(t *testing.T) {
	cases := []struct {
		name   string
		secret Code
		guess  Code
		want   Pegs
	}{
		{"repeated guess digits do not borrow exact positions", Code{1, 1, 2, 3}, Code{1, 2, 2, 2}, Pegs{Exact: 2}},
		{"two exact", Code{2, 4, 0, 5}, Code{2, 0, 0, 0}, Pegs{Exact: 2}},
		{"one exact three present", Code{2, 4, 0, 5}, Code{0, 4, 5, 2}, Pegs{Exact: 1, Present: 3}},
		{"nothing in common", Code{0, 0, 0, 0}, Code{1, 1, 1, 1}, Pegs{}},
		{"all present", Code{1, 1, 2, 2}, Code{2, 2, 1, 1}, Pegs{Present: 4}},
		{"single present for repeated secret digit", Code{3, 3, 0, 1}, Code{2, 2, 3, 2}, Pegs{Present: 1}},
		{"width one", Code{5}, Code{5}, Pegs{Exact: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ScoreMastermind(tc.secret, tc.guess))
		})
	}
}

func TestScoreMastermindBounds(t *testing.T) {
	// Every pair of 3-wide codes over 4 colours.
	all := enumerate(3, 4)
	for _, s := range all {
		for _, g := range all {
			p := ScoreMastermind(s, g)
			require.LessOrEqual(t, p.Exact+p.Present, 3, "secret %s guess %s", s, g)
		}
		assert.Equal(t, Pegs{Exact: 3}, ScoreMastermind(s, s))
	}
}

func TestScoreMastermindWide(t *testing.T) {
	secret := make(Code, maxWidth+2)
	guess := make(Code, maxWidth+2)
	for i := range secret {
		secret[i] = i % 3
		guess[i] = (i + 1) % 3
	}
	p := ScoreMastermind(secret, guess)
	assert.Equal(t, 0, p.Exact)
	assert.Equal(t, len(secret), p.Present)
}

func TestScoreRecherche(t *testing.T) {
	h := ScoreRecherche(Code{5, 0, 9, 3}, Code{5, 4, 2, 3})
	assert.Equal(t, Hints{Equal, TooHigh, TooLow, Equal}, h)
	assert.Equal(t, "=-+=", h.String())
	assert.False(t, h.Solved(4))

	same := ScoreRecherche(Code{1, 2, 3}, Code{1, 2, 3})
	assert.True(t, same.Solved(3))
}

func TestRulesScore(t *testing.T) {
	mm := Rules{Family: Mastermind, Width: 4, Colors: 6}
	fb, err := mm.Score(Code{2, 4, 0, 5}, Code{2, 4, 0, 5})
	require.NoError(t, err)
	assert.True(t, fb.Solved(4))
	assert.Equal(t, "4E0P", fb.String())

	_, err = mm.Score(Code{2, 4, 0}, Code{2, 4, 0, 5})
	assert.ErrorIs(t, err, ErrWidth)

	rc := Rules{Family: Recherche, Width: 2}
	fb, err = rc.Score(Code{7, 1}, Code{3, 1})
	require.NoError(t, err)
	assert.Equal(t, Hints{TooLow, Equal}, fb)
	assert.Equal(t, 10, rc.Alphabet())
	assert.Equal(t, 6, mm.Alphabet())
}

func TestBoardApplyGuess(t *testing.T) {
	b, err := NewBoard(Rules{Family: Mastermind, Width: 4, Colors: 6}, Code{2, 4, 0, 5})
	require.NoError(t, err)

	fb, err := b.ApplyGuess(Code{2, 0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, Pegs{Exact: 2}, fb)
	assert.False(t, b.Won)

	fb, err = b.ApplyGuess(Code{2, 4, 0, 5})
	require.NoError(t, err)
	assert.True(t, fb.Solved(4))
	assert.True(t, b.Won)
	assert.Len(t, b.Turns, 2)

	_, err = b.ApplyGuess(Code{2, 4, 0, 5})
	assert.ErrorIs(t, err, ErrFinished)

	_, err = NewBoard(Rules{Family: Recherche, Width: 3}, Code{1, 2})
	assert.ErrorIs(t, err, ErrWidth)
}

func TestParseFamily(t *testing.T) {
	f, ok := ParseFamily(" MasterMind ")
	assert.True(t, ok)
	assert.Equal(t, Mastermind, f)

	f, ok = ParseFamily("1")
	assert.True(t, ok)
	assert.Equal(t, Recherche, f)

	_, ok = ParseFamily("chess")
	assert.False(t, ok)
}

func enumerate(width, colors int) []Code {
	out := []Code{{}}
	for i := 0; i < width; i++ {
		var next []Code
		for _, prefix := range out {
			for d := 0; d < colors; d++ {
				next = append(next, append(prefix.Clone(), d))
			}
		}
		out = next
	}
	return out
}
