package stats

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/coyotemind/internal/game"
	"github.com/robalobadob/coyotemind/internal/round"
)

func TestRecordStreaks(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	k := Key{Family: game.Mastermind, Mode: round.Duel}

	_, err := s.Get(ctx, k)
	assert.ErrorIs(t, err, ErrNotFound)

	for _, won := range []bool{true, true, false, true} {
		require.NoError(t, s.Record(ctx, k, won))
	}
	r, err := s.Get(ctx, k)
	require.NoError(t, err)
	assert.Equal(t, Record{Played: 4, Wins: 3, Streak: 1, BestStreak: 2}, r)
}

func TestAllIsOrdered(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Record(ctx, Key{game.Mastermind, round.Challenger}, true))
	require.NoError(t, s.Record(ctx, Key{game.Recherche, round.Duel}, false))
	require.NoError(t, s.Record(ctx, Key{game.Recherche, round.Challenger}, true))

	all, err := s.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "recherche/challenger", all[0].Key.String())
	assert.Equal(t, "recherche/duel", all[1].Key.String())
	assert.Equal(t, "mastermind/challenger", all[2].Key.String())
}

func TestConcurrentRecord(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	k := Key{game.Recherche, round.Defenseur}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Record(ctx, k, true)
		}()
	}
	wg.Wait()
	r, err := s.Get(ctx, k)
	require.NoError(t, err)
	assert.Equal(t, 50, r.Played)
	assert.Equal(t, 50, r.BestStreak)
}

func TestHumanWon(t *testing.T) {
	assert.True(t, HumanWon(round.HumanWon))
	assert.True(t, HumanWon(round.ComputerFailed))
	assert.False(t, HumanWon(round.ComputerWon))
	assert.False(t, HumanWon(round.Draw))
	assert.False(t, HumanWon(round.HumanFailed))
}
