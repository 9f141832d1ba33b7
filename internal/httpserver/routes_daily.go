// internal/httpserver/routes_daily.go
//
// HTTP routes for the shared daily game.
//   - GET /daily             → today's date key and seed
//   - GET /daily/leaderboard → top finished runs for a seed (default: today's)
//
// Everyone starting a game with {"daily":true} on the same UTC date plays
// the same seed, so their runs are comparable on one leaderboard.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/liferoguelite/internal/daily"
)

const maxLeaderboard = 100

// mountDaily registers all /daily routes.
func (s *Server) mountDaily() {
	s.r.Route("/daily", func(r chi.Router) {
		r.Get("/", s.handleDaily)
		r.Get("/leaderboard", s.handleLeaderboard)
	})
}

// dailyRes is returned by GET /daily.
type dailyRes struct {
	Date string `json:"date"`
	Seed string `json:"seed"`
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	_ = json.NewEncoder(w).Encode(dailyRes{Date: daily.DateKey(now), Seed: daily.Seed(now, s.opts.DailySalt)})
}

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Seed string      `json:"seed"`
	Top  []daily.Run `json:"top"`
}

// handleLeaderboard returns the leaderboard for ?seed= (default today's
// seed), limited by ?limit= (default 20, at most 100).
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if s.opts.Runs == nil {
		writeError(w, http.StatusServiceUnavailable, "leaderboard_unavailable")
		return
	}
	seed := r.URL.Query().Get("seed")
	if seed == "" {
		seed = daily.Seed(s.now(), s.opts.DailySalt)
	}
	limit := daily.DefaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "bad_limit")
			return
		}
		limit = min(n, maxLeaderboard)
	}

	rows, err := s.opts.Runs.Leaderboard(r.Context(), seed, limit)
	if err != nil {
		log.Error().Err(err).Str("seed", seed).Msg("leaderboard")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	if rows == nil {
		rows = []daily.Run{}
	}
	_ = json.NewEncoder(w).Encode(lbRes{Seed: seed, Top: rows})
}
