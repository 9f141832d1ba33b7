// internal/httpserver/routes_game.go
//
// HTTP routes for playing a game.
//   - POST /game/new            → start a game, returns ID, token and state
//   - GET  /game/{id}           → current state
//   - GET  /game/{id}/options   → what the player may choose this turn
//   - POST /game/{id}/event     → reveal this turn's event before choosing
//   - POST /game/{id}/turn      → resolve one turn
//   - GET  /game/{id}/timeline  → the most impactful decisions so far
//   - GET  /game/{id}/ending    → the ending (409 until the game is over)

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/liferoguelite/internal/daily"
	"github.com/robalobadob/liferoguelite/internal/game"
	"github.com/robalobadob/liferoguelite/internal/store"
)

const maxSeedLength = 64

func (s *Server) mountGame() {
	s.r.Post("/game/new", s.handleNewGame)
	s.r.Route("/game/{id}", func(r chi.Router) {
		r.Use(s.requireGameToken)
		r.Get("/", s.handleGetGame)
		r.Get("/options", s.handleOptions)
		r.Post("/event", s.handleDrawEvent)
		r.Post("/turn", s.handleTurn)
		r.Get("/timeline", s.handleTimeline)
		r.Get("/ending", s.handleEnding)
	})
}

// writeError writes {"error":code} with status.
func writeError(w http.ResponseWriter, status int, code string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}

// session loads the game named by the verified token. It writes the error
// response itself and returns false when the game is gone.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*store.Session, bool) {
	id := gameIDFrom(r)
	sess, err := s.opts.Store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "no_active_game")
		return nil, false
	}
	if err != nil {
		log.Error().Err(err).Str("gameId", id).Msg("load session")
		writeError(w, http.StatusInternalServerError, "store_error")
		return nil, false
	}
	return sess, true
}

// ------------------------------ new game -----------------------------------

type newGameReq struct {
	Seed  string `json:"seed"`
	Daily bool   `json:"daily"` // use the seed of the day
}

type newGameRes struct {
	GameID string      `json:"gameId"`
	Token  string      `json:"token"`
	Seed   string      `json:"seed"`
	State  *game.State `json:"state"`
}

// handleNewGame creates a session for the requested seed, the daily seed,
// or a fresh random one, and issues its token.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	// An empty body is a valid request for a random seed.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	seed := strings.TrimSpace(req.Seed)
	switch {
	case req.Daily:
		seed = daily.Seed(s.now(), s.opts.DailySalt)
	case seed == "":
		seed = game.GenerateSeed()
	case len(seed) > maxSeedLength:
		writeError(w, http.StatusBadRequest, "seed_too_long")
		return
	}

	sess := store.NewSession(seed)
	if err := s.opts.Store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	token, exp, err := s.signGameToken(sess.ID)
	if err != nil {
		log.Error().Err(err).Str("gameId", sess.ID).Msg("sign game token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	s.setGameCookie(w, token, exp)

	log.Info().Str("gameId", sess.ID).Str("seed", seed).Msg("game started")
	_ = json.NewEncoder(w).Encode(newGameRes{GameID: sess.ID, Token: token, Seed: seed, State: sess.Snapshot()})
}

// ------------------------------ state --------------------------------------

type gameRes struct {
	State        *game.State     `json:"state"`
	GameOver     bool            `json:"gameOver"`
	InDebt       bool            `json:"inDebt"`
	SupportBonus bool            `json:"supportBonus"`
	PendingEvent *game.EventCard `json:"pendingEvent,omitempty"`
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	st := sess.Snapshot()
	_ = json.NewEncoder(w).Encode(gameRes{
		State:        st,
		GameOver:     game.IsGameOver(st),
		InDebt:       game.IsInDebt(st),
		SupportBonus: game.HasSupportBonus(st),
		PendingEvent: sess.Pending(),
	})
}

// ------------------------------ options ------------------------------------

type decisionView struct {
	ID      string       `json:"id"`
	Prompt  string       `json:"prompt"`
	Options []optionView `json:"options"`
}

// optionView is a decision option plus its index in the full option list,
// which is what the turn request refers to.
type optionView struct {
	Index int `json:"index"`
	game.DecisionOption
}

type optionsRes struct {
	Stage           game.Stage    `json:"stage"`
	Turn            int           `json:"turn"`
	TimeSlots       int           `json:"timeSlots"`
	Actions         []game.Action `json:"actions"`
	Decision        *decisionView `json:"decision,omitempty"`
	Jobs            []game.Job    `json:"jobs"`
	EventsRemaining int           `json:"eventsRemaining"`
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	st := sess.Snapshot()
	if game.IsGameOver(st) {
		writeError(w, http.StatusConflict, "game_over")
		return
	}
	c := s.opts.Content

	res := optionsRes{
		Stage:           st.CurrentStage,
		Turn:            st.CurrentTurn,
		TimeSlots:       st.TimeSlots,
		Actions:         nonNil(c.ActionsFor(st.CurrentStage)),
		Jobs:            nonNil(c.EligibleJobs(st)),
		EventsRemaining: len(game.AvailableEvents(c.Events, st.CurrentStage, st.UsedEventIDs)),
	}
	if d, ok := c.DecisionFor(st.CurrentStage, st.CurrentTurn); ok {
		view := &decisionView{ID: d.ID, Prompt: d.Prompt, Options: []optionView{}}
		for _, i := range game.VisibleOptions(d, st) {
			view.Options = append(view.Options, optionView{Index: i, DecisionOption: d.Options[i]})
		}
		res.Decision = view
	}
	_ = json.NewEncoder(w).Encode(res)
}

func nonNil[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}

// ------------------------------ event --------------------------------------

type eventRes struct {
	Event *game.EventCard `json:"event"`
}

// handleDrawEvent reveals this turn's event. The card stays pending, and is
// returned again, until the turn is submitted. A null event means the
// stage's deck is exhausted.
func (s *Server) handleDrawEvent(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	card, err := sess.DrawEvent(s.opts.Content)
	if errors.Is(err, game.ErrGameOver) {
		writeError(w, http.StatusConflict, "game_over")
		return
	}
	_ = json.NewEncoder(w).Encode(eventRes{Event: card})
}

// ------------------------------ turn ---------------------------------------

type turnRes struct {
	Result   game.TurnResult `json:"result"`
	State    *game.State     `json:"state"`
	GameOver bool            `json:"gameOver"`
	Ending   *game.Ending    `json:"ending,omitempty"`
}

func (s *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	var choices game.PlayerChoices
	if err := json.NewDecoder(r.Body).Decode(&choices); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	res, st, err := sess.PlayTurn(s.opts.Content, choices)
	switch {
	case errors.Is(err, game.ErrGameOver):
		writeError(w, http.StatusConflict, "game_over")
		return
	case errors.Is(err, game.ErrNotEnoughTime):
		writeError(w, http.StatusBadRequest, "not_enough_time")
		return
	case errors.Is(err, game.ErrOptionLocked):
		writeError(w, http.StatusBadRequest, "option_locked")
		return
	case err != nil:
		log.Error().Err(err).Str("gameId", sess.ID).Msg("play turn")
		writeError(w, http.StatusInternalServerError, "turn_failed")
		return
	}

	out := turnRes{Result: res, State: st, GameOver: game.IsGameOver(st)}
	if out.GameOver {
		out.Ending = game.ResolveEnding(s.opts.Content.Endings, st)
		s.recordRun(r, sess.ID, st, out.Ending)
	}
	_ = json.NewEncoder(w).Encode(out)
}

// recordRun stores the outcome of a finished game (best effort).
func (s *Server) recordRun(r *http.Request, gameID string, st *game.State, ending *game.Ending) {
	if s.opts.Runs == nil {
		return
	}
	run := daily.RunFromState(gameID, st, ending)
	if err := s.opts.Runs.Record(r.Context(), run); err != nil {
		log.Warn().Err(err).Str("gameId", gameID).Msg("record run")
		return
	}
	log.Info().Str("gameId", gameID).Str("seed", run.Seed).Str("ending", run.EndingID).Int("money", run.Money).Msg("game finished")
}

// ------------------------------ recap --------------------------------------

type timelineRes struct {
	Timeline []game.DecisionEntry `json:"timeline"`
}

func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(timelineRes{Timeline: game.Timeline(sess.Snapshot().DecisionLog)})
}

type endingRes struct {
	Ending   *game.Ending         `json:"ending"`
	Timeline []game.DecisionEntry `json:"timeline"`
	State    *game.State          `json:"state"`
}

func (s *Server) handleEnding(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	st := sess.Snapshot()
	if !game.IsGameOver(st) {
		writeError(w, http.StatusConflict, "game_not_over")
		return
	}
	_ = json.NewEncoder(w).Encode(endingRes{
		Ending:   game.ResolveEnding(s.opts.Content.Endings, st),
		Timeline: game.Timeline(st.DecisionLog),
		State:    st,
	})
}
