// internal/round/round.go
//
// Round controller: the attempt/turn state machine shared by every mode.
// Responsibilities:
//   - Ask the active side's GuessSource for a guess.
//   - Score it on that side's board and let learning sources update themselves.
//   - Count attempts down, detect victory, and alternate sides in a duel.
//
// State transitions:
//   AwaitingGuess → Scored → (AwaitingGuess | Won | Exhausted)
//   Any learning failure moves the round to Failed.
//
// Duel rules:
//   - The human plays first within each shared attempt.
//   - If the human wins, the computer's turn for that attempt is skipped.
//   - The shared attempt closes (attempts decrement) once the computer's turn
//     resolves or is skipped.
package round

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/coyotemind/internal/game"
)

var (
	ErrRoundOver   = errors.New("round: already finished")
	ErrOutOfTurn   = errors.New("round: side played out of turn")
	ErrUnknownSide = errors.New("round: side has no seat in this mode")
	ErrSeats       = errors.New("round: seats do not match mode")
)

// Mode is one of the three ways to play.
type Mode int

const (
	// Challenger: the human breaks a computer secret.
	Challenger Mode = iota + 1
	// Defenseur: the computer breaks a human secret.
	Defenseur
	// Duel: both at once, sharing the attempt budget.
	Duel
)

func (m Mode) String() string {
	switch m {
	case Challenger:
		return "challenger"
	case Defenseur:
		return "defenseur"
	case Duel:
		return "duel"
	}
	return "unknown"
}

// ParseMode maps a user-facing name to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "challenger", "1":
		return Challenger, true
	case "defenseur", "defender", "2":
		return Defenseur, true
	case "duel", "3":
		return Duel, true
	}
	return 0, false
}

// sides lists the seats each mode requires, in play order.
func (m Mode) sides() []Side {
	switch m {
	case Challenger:
		return []Side{Human}
	case Defenseur:
		return []Side{Computer}
	case Duel:
		return []Side{Human, Computer}
	}
	return nil
}

// Side identifies who is guessing.
type Side int

const (
	Human Side = iota + 1
	Computer
)

func (s Side) String() string {
	switch s {
	case Human:
		return "human"
	case Computer:
		return "computer"
	}
	return "unknown"
}

// State is the controller's position in the state machine.
type State int

const (
	AwaitingGuess State = iota
	Scored
	Won
	Exhausted
	Failed
)

// Outcome is what a single Step resolved to.
type Outcome int

const (
	Continue Outcome = iota
	Victory
	OutOfAttempts
)

func (o Outcome) String() string {
	switch o {
	case Continue:
		return "continue"
	case Victory:
		return "won"
	case OutOfAttempts:
		return "exhausted"
	}
	return "unknown"
}

// Verdict is the terminal result of a round.
type Verdict int

const (
	Pending Verdict = iota
	HumanWon
	ComputerWon
	Draw           // duel: nobody found their code
	HumanFailed    // challenger: attempts ran out
	ComputerFailed // defenseur: attempts ran out
	Aborted        // invariant violation
)

func (v Verdict) String() string {
	switch v {
	case Pending:
		return "pending"
	case HumanWon:
		return "human_won"
	case ComputerWon:
		return "computer_won"
	case Draw:
		return "draw"
	case HumanFailed:
		return "human_failed"
	case ComputerFailed:
		return "computer_failed"
	case Aborted:
		return "aborted"
	}
	return "unknown"
}

// Config is everything a round needs to know up front.
type Config struct {
	Rules    game.Rules
	Attempts int
	Mode     Mode
}

// Seat binds a side to its guess source and the code it must find.
type Seat struct {
	Side   Side
	Source GuessSource
	Secret game.Code
}

// Event describes one scored turn.
type Event struct {
	Side       Side
	Attempt    int // 1-based
	Guess      game.Code
	Feedback   game.Feedback
	Remaining  int // attempts left after this turn
	Candidates int // solver search-space size after learning; -1 when not a solver
}

// Reporter is told about each scored turn.
type Reporter interface {
	Scored(Event)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(Event)

func (f ReporterFunc) Scored(e Event) { f(e) }

// Option customises a Round.
type Option func(*Round)

// WithReporter registers a per-turn reporter.
func WithReporter(r Reporter) Option {
	return func(rd *Round) { rd.reporter = r }
}

type seat struct {
	source GuessSource
	board  *game.Board
}

// Round is one game from first attempt to a terminal state. Not safe for concurrent use.
type Round struct {
	cfg         Config
	remaining   int
	state       State
	seats       map[Side]*seat
	humanPlayed bool // duel: the human has resolved the current attempt
	winner      Side
	err         error
	reporter    Reporter
}

// New validates the seats against the mode and starts the round.
func New(cfg Config, seats []Seat, opts ...Option) (*Round, error) {
	want := cfg.Mode.sides()
	if want == nil {
		return nil, fmt.Errorf("new round: mode %d: %w", cfg.Mode, ErrSeats)
	}
	if cfg.Attempts < 1 {
		return nil, fmt.Errorf("new round: %d attempts: %w", cfg.Attempts, ErrSeats)
	}
	if len(seats) != len(want) {
		return nil, fmt.Errorf("new round: %s needs %d seats, got %d: %w", cfg.Mode, len(want), len(seats), ErrSeats)
	}

	r := &Round{cfg: cfg, remaining: cfg.Attempts, seats: make(map[Side]*seat, len(seats))}
	for _, s := range seats {
		if s.Source == nil {
			return nil, fmt.Errorf("new round: %s seat has no source: %w", s.Side, ErrSeats)
		}
		if _, dup := r.seats[s.Side]; dup {
			return nil, fmt.Errorf("new round: duplicate %s seat: %w", s.Side, ErrSeats)
		}
		b, err := game.NewBoard(cfg.Rules, s.Secret)
		if err != nil {
			return nil, fmt.Errorf("new round: %s seat: %w", s.Side, err)
		}
		r.seats[s.Side] = &seat{source: s.Source, board: b}
	}
	for _, side := range want {
		if _, ok := r.seats[side]; !ok {
			return nil, fmt.Errorf("new round: %s needs a %s seat: %w", cfg.Mode, side, ErrSeats)
		}
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Next reports which side must play, or false once the round is over.
func (r *Round) Next() (Side, bool) {
	if r.Done() {
		return 0, false
	}
	switch r.cfg.Mode {
	case Challenger:
		return Human, true
	case Defenseur:
		return Computer, true
	}
	if r.humanPlayed {
		return Computer, true
	}
	return Human, true
}

// Step plays one turn for side.
func (r *Round) Step(ctx context.Context, side Side) (Outcome, error) {
	if r.Done() {
		return r.outcome(), ErrRoundOver
	}
	st, ok := r.seats[side]
	if !ok {
		return Continue, fmt.Errorf("step %s: %w", side, ErrUnknownSide)
	}
	if next, _ := r.Next(); next != side {
		return Continue, fmt.Errorf("step %s, expected %s: %w", side, next, ErrOutOfTurn)
	}

	guess, err := st.source.NextGuess(ctx)
	if err != nil {
		return Continue, fmt.Errorf("%s guess: %w", side, err)
	}
	fb, err := st.board.ApplyGuess(guess)
	if err != nil {
		return Continue, fmt.Errorf("%s guess: %w", side, err)
	}
	r.state = Scored
	attempt := r.Attempt()
	solved := fb.Solved(r.cfg.Rules.Width)

	candidates := -1
	if l, ok := st.source.(Learner); ok && !solved {
		if err := l.Learn(guess, fb); err != nil {
			r.state, r.err = Failed, err
			log.Error().Err(err).Str("side", side.String()).Str("guess", guess.String()).Msg("solver invariant violated")
			return Continue, fmt.Errorf("%s learn: %w", side, err)
		}
	}
	if s, ok := st.source.(interface{ Remaining() int }); ok {
		candidates = s.Remaining()
	}

	out := r.resolve(side, solved)
	log.Debug().
		Str("side", side.String()).
		Int("attempt", attempt).
		Str("guess", guess.String()).
		Str("feedback", fb.String()).
		Int("remaining", r.remaining).
		Str("outcome", out.String()).
		Msg("turn scored")
	if r.reporter != nil {
		r.reporter.Scored(Event{
			Side: side, Attempt: attempt, Guess: guess.Clone(), Feedback: fb,
			Remaining: r.remaining, Candidates: candidates,
		})
	}
	return out, nil
}

// resolve moves the machine out of Scored.
func (r *Round) resolve(side Side, solved bool) Outcome {
	duel := r.cfg.Mode == Duel
	if solved {
		r.state, r.winner = Won, side
		if duel {
			// the attempt closes whether the computer played or was skipped
			r.remaining--
		}
		return Victory
	}
	if duel && side == Human {
		r.humanPlayed = true
		r.state = AwaitingGuess
		return Continue
	}
	r.humanPlayed = false
	r.remaining--
	if r.remaining <= 0 {
		r.state = Exhausted
		return OutOfAttempts
	}
	r.state = AwaitingGuess
	return Continue
}

func (r *Round) outcome() Outcome {
	switch r.state {
	case Won:
		return Victory
	case Exhausted:
		return OutOfAttempts
	}
	return Continue
}

// Play runs the round to a terminal state.
func (r *Round) Play(ctx context.Context) (Verdict, error) {
	for {
		side, ok := r.Next()
		if !ok {
			return r.Verdict(), nil
		}
		if _, err := r.Step(ctx, side); err != nil {
			return r.Verdict(), err
		}
	}
}

// Done reports whether the round reached a terminal state.
func (r *Round) Done() bool {
	return r.state == Won || r.state == Exhausted || r.state == Failed
}

// Verdict maps the terminal state to a result.
func (r *Round) Verdict() Verdict {
	switch r.state {
	case Won:
		if r.winner == Human {
			return HumanWon
		}
		return ComputerWon
	case Exhausted:
		switch r.cfg.Mode {
		case Duel:
			return Draw
		case Challenger:
			return HumanFailed
		}
		return ComputerFailed
	case Failed:
		return Aborted
	}
	return Pending
}

// State returns the current machine state.
func (r *Round) State() State { return r.state }

// Err returns the invariant violation that failed the round, if any.
func (r *Round) Err() error { return r.err }

// Remaining returns the attempts left.
func (r *Round) Remaining() int { return r.remaining }

// Attempt returns the 1-based number of the attempt in progress.
func (r *Round) Attempt() int { return r.cfg.Attempts - r.remaining + 1 }

// Winner returns the winning side, if any.
func (r *Round) Winner() (Side, bool) {
	if r.state != Won {
		return 0, false
	}
	return r.winner, true
}

// Board exposes a side's ledger.
func (r *Round) Board(side Side) (*game.Board, bool) {
	s, ok := r.seats[side]
	if !ok {
		return nil, false
	}
	return s.board, true
}

// Config returns the round's configuration.
func (r *Round) Config() Config { return r.cfg }
