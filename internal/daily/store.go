package daily

import (
	"context"
	"database/sql"
	"time"

	"github.com/robalobadob/liferoguelite/internal/game"
)

// DefaultLimit is the leaderboard size when none is requested.
const DefaultLimit = 20

// Run is the recorded outcome of one finished game.
type Run struct {
	GameID      string    `json:"gameId"`
	Seed        string    `json:"seed"`
	EndingID    string    `json:"endingId"`
	Money       int       `json:"money"`
	Stress      int       `json:"stress"`
	Support     int       `json:"support"`
	Credentials int       `json:"credentials"`
	FinishedAt  time.Time `json:"finishedAt"`
}

// RunFromState captures the final numbers of a finished game.
func RunFromState(gameID string, s *game.State, ending *game.Ending) Run {
	r := Run{
		GameID:      gameID,
		Seed:        s.Seed,
		Money:       s.Money,
		Stress:      s.Stress,
		Support:     s.Support,
		Credentials: len(s.Credentials),
	}
	if ending != nil {
		r.EndingID = ending.ID
	}
	return r
}

// Store records finished runs in the runs table.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Record inserts a run. Recording the same game twice is a no-op.
func (s *Store) Record(ctx context.Context, r Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO runs(game_id, seed, ending_id, money, stress, support, credentials)
		VALUES(?,?,?,?,?,?,?)`,
		r.GameID, r.Seed, r.EndingID, r.Money, r.Stress, r.Support, r.Credentials,
	)
	return err
}

// Leaderboard returns the best runs for a seed: most money first, then
// least stress, then earliest finish.
func (s *Store) Leaderboard(ctx context.Context, seed string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT game_id, seed, ending_id, money, stress, support, credentials, finished_at
		FROM runs
		WHERE seed=?
		ORDER BY money DESC, stress ASC, finished_at ASC, id ASC
		LIMIT ?`, seed, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Run, 0, limit)
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.GameID, &r.Seed, &r.EndingID, &r.Money, &r.Stress, &r.Support, &r.Credentials, &r.FinishedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
