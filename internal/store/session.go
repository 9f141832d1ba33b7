// internal/store/session.go
//
// A Session is one live playthrough: the game state, the seeded RNG stream
// that belongs to it, and the event card drawn ahead of the next turn.
// All access goes through the session mutex so a turn and the RNG draw it
// consumes resolve atomically.

package store

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/liferoguelite/internal/game"
)

// Session pairs a game state with its RNG stream.
type Session struct {
	ID string

	mu      sync.Mutex
	state   *game.State
	rng     *rand.Rand
	pending *game.EventCard
	touched time.Time
}

// NewSession starts a game for seed under a fresh random ID.
func NewSession(seed string) *Session {
	return &Session{
		ID:      uuid.NewString(),
		state:   game.NewState(seed),
		rng:     game.NewRNG(seed),
		touched: time.Now(),
	}
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() *game.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Pending returns the event drawn for the upcoming turn, if any.
func (s *Session) Pending() *game.EventCard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// LastActive reports when the session was last used.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touched
}

// DrawEvent draws the upcoming turn's event so the player can see it before
// choosing a response. Repeated calls return the same card until a turn
// consumes it. A nil card means no eligible event remains this stage.
func (s *Session) DrawEvent(c *game.Content) (*game.EventCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if game.IsGameOver(s.state) {
		return nil, game.ErrGameOver
	}
	s.touched = time.Now()
	if s.pending == nil {
		s.pending = game.DrawEvent(c.Events, s.state.CurrentStage, s.state.UsedEventIDs, s.rng)
	}
	return s.pending, nil
}

// PlayTurn validates choices and resolves one full turn, consuming the
// pending event if one was drawn. It returns the turn result and a snapshot
// of the state afterwards.
func (s *Session) PlayTurn(c *game.Content, choices game.PlayerChoices) (game.TurnResult, *game.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if game.IsGameOver(s.state) {
		return game.TurnResult{}, nil, game.ErrGameOver
	}
	if err := game.ValidateChoices(s.state, choices, c, s.pending); err != nil {
		return game.TurnResult{}, nil, err
	}
	res := game.SubmitTurn(s.state, choices, c, s.rng, s.pending)
	s.pending = nil
	s.touched = time.Now()
	return res, s.state.Clone(), nil
}
