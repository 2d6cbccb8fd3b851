package session

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/vovakirdan/bizsim/internal/econ"
	"github.com/vovakirdan/bizsim/internal/game"
)

// Session is the single owner of one Game.
type Session struct {
	id     ID
	player string
	events *ChannelSession

	advancing atomic.Bool // an Advance call is in flight

	mu         sync.Mutex
	game       *game.Game
	lastActive time.Time
	closed     bool
	finished   bool // result already recorded
	onFinish   func(*Session, Outcome)
}

func newSession(id ID, player string, g *game.Game, buffer int) *Session {
	return &Session{
		id:         id,
		player:     player,
		events:     NewChannelSession(buffer),
		game:       g,
		lastActive: time.Now(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() ID { return s.id }

// Player returns the player name.
func (s *Session) Player() string { return s.player }

// Events returns the event stream.
func (s *Session) Events() <-chan Event { return s.events.Events() }

// Done returns a channel closed when the session ends.
func (s *Session) Done() <-chan struct{} { return s.events.Done() }

// SetPrice changes the selling price.
func (s *Session) SetPrice(price float64) error {
	return s.do(func(g *game.Game) error { return g.SetPrice(price) })
}

// Apply spends amount on an action.
func (s *Session) Apply(kind econ.ActionKind, amount float64) error {
	return s.do(func(g *game.Game) error { return g.Apply(kind, amount) })
}

// Buy applies a fixed-cost action at catalog price.
func (s *Session) Buy(kind econ.ActionKind) error {
	return s.do(func(g *game.Game) error { return g.Buy(kind) })
}

// Advance simulates one period. A call that overlaps another Advance on the
// same session fails with ErrBusy instead of queueing behind it; other
// callers holding the session only delay it.
func (s *Session) Advance() (game.Outcome, error) {
	if !s.advancing.CompareAndSwap(false, true) {
		return game.Outcome{}, ErrBusy
	}
	defer s.advancing.Store(false)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return game.Outcome{}, ErrClosed
	}

	out, err := s.game.Advance()
	s.lastActive = time.Now()
	if err != nil {
		s.mu.Unlock()
		return out, err
	}
	state := s.game.State()
	score := s.game.Score()
	finish := s.onFinish
	s.mu.Unlock()

	s.events.Send(PeriodAdvancedEvent{Period: state.Period, Result: out.Result, Insight: out.Insight})
	for _, id := range out.Missions {
		s.events.Send(MissionCompletedEvent{MissionID: id})
	}
	for _, id := range out.Achievements {
		s.events.Send(AchievementEarnedEvent{AchievementID: id})
	}
	if out.Victory {
		s.events.Send(VictoryEvent{Period: state.Period, Score: score})
	}
	if out.GameOver {
		s.events.Send(GameOverEvent{Period: state.Period, Score: score})
		if finish != nil {
			finish(s, OutcomeBankrupt)
		}
	}
	return out, nil
}

// Snapshot captures the game for rendering.
func (s *Session) Snapshot() game.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Snapshot()
}

// Encode flattens the game for saving.
func (s *Session) Encode() game.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Encode()
}

// Restore replaces the game state from a saved record.
func (s *Session) Restore(rec game.Record) error {
	return s.do(func(g *game.Game) error {
		g.Decode(rec)
		return nil
	})
}

// IdleSince reports when the session was last touched.
func (s *Session) IdleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// result builds the run result and marks it recorded. ok is false when the
// result was already recorded or nothing was played.
func (s *Session) result(outcome Outcome) (RunResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.game.State()
	if s.finished || state.Period == 0 {
		return RunResult{}, false
	}
	s.finished = true

	if outcome == OutcomeQuit && state.Victory {
		outcome = OutcomeVictory
	}
	return RunResult{
		SessionID:  string(s.id),
		BusinessID: s.game.Business().ID,
		ProfileID:  s.game.Profile().ID,
		Player:     s.player,
		Score:      s.game.Score(),
		Periods:    state.Period,
		Outcome:    outcome,
	}, true
}

func (s *Session) close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.events.Close()
}

func (s *Session) do(fn func(*game.Game) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.lastActive = time.Now()
	return fn(s.game)
}
