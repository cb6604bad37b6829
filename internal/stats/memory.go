// internal/stats/memory.go
//
// In-memory tally of round results for the current session.
//
// Characteristics:
//   - Records are keyed by rule family and mode.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process exits.
//   - Get returns ErrNotFound for a key that was never recorded.

package stats

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/robalobadob/coyotemind/internal/game"
	"github.com/robalobadob/coyotemind/internal/round"
)

// ErrNotFound is returned for keys with no recorded rounds.
var ErrNotFound = errors.New("stats: not found")

// Key identifies one kind of game.
type Key struct {
	Family game.Family
	Mode   round.Mode
}

func (k Key) String() string { return k.Family.String() + "/" + k.Mode.String() }

// Record is the tally for one Key.
type Record struct {
	Played     int
	Wins       int
	Streak     int // consecutive wins ending with the latest round
	BestStreak int
}

// Entry pairs a key with its record.
type Entry struct {
	Key    Key
	Record Record
}

// Store defines where round results are tallied.
type Store interface {
	// Record adds one finished round.
	Record(ctx context.Context, k Key, won bool) error

	// Get returns the tally for a key.
	Get(ctx context.Context, k Key) (Record, error)

	// All returns every tally, ordered by family then mode.
	All(ctx context.Context) ([]Entry, error)
}

// memory is a map-based Store.
type memory struct {
	mu      sync.RWMutex
	records map[Key]Record
}

// NewMemoryStore constructs an empty in-memory Store.
func NewMemoryStore() Store {
	return &memory{records: make(map[Key]Record)}
}

func (m *memory) Record(ctx context.Context, k Key, won bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.records[k]
	r.Played++
	if won {
		r.Wins++
		r.Streak++
		r.BestStreak = max(r.BestStreak, r.Streak)
	} else {
		r.Streak = 0
	}
	m.records[k] = r
	return nil
}

func (m *memory) Get(ctx context.Context, k Key) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.records[k]; ok {
		return r, nil
	}
	return Record{}, ErrNotFound
}

func (m *memory) All(ctx context.Context) ([]Entry, error) {
	m.mu.RLock()
	out := make([]Entry, 0, len(m.records))
	for k, r := range m.records {
		out = append(out, Entry{Key: k, Record: r})
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Key.Family != out[j].Key.Family {
			return out[i].Key.Family < out[j].Key.Family
		}
		return out[i].Key.Mode < out[j].Key.Mode
	})
	return out, nil
}

// HumanWon reports whether a verdict counts as a win for the player.
// In Defenseur the player wins when the computer fails to find their code.
func HumanWon(v round.Verdict) bool {
	return v == round.HumanWon || v == round.ComputerFailed
}
