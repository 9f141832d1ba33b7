package daily

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/liferoguelite/internal/game"
)

func TestDateKeyIsUTC(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	d := time.Date(2026, 3, 2, 5, 0, 0, 0, loc)
	assert.Equal(t, "2026-03-01", DateKey(d))
}

func TestSeedIsStablePerDay(t *testing.T) {
	morning := time.Date(2026, 5, 1, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 5, 1, 23, 59, 0, 0, time.UTC)
	nextDay := morning.Add(24 * time.Hour)

	s := Seed(morning, "salt")
	assert.Equal(t, s, Seed(evening, "salt"))
	assert.NotEqual(t, s, Seed(nextDay, "salt"))
	assert.NotEqual(t, s, Seed(morning, "other salt"))

	require.Len(t, s, game.SeedLength)
	for _, r := range s {
		assert.True(t, strings.ContainsRune(game.SeedAlphabet, r), "char %q", r)
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	ddl, err := os.ReadFile("../../sql/001_runs.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(ddl))
	require.NoError(t, err)
	return NewStore(db)
}

func TestStoreLeaderboardOrdering(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	runs := []Run{
		{GameID: "g1", Seed: "AAAA1111", EndingID: "end_secure", Money: 300, Stress: 40},
		{GameID: "g2", Seed: "AAAA1111", EndingID: "end_thriving", Money: 600, Stress: 45},
		{GameID: "g3", Seed: "AAAA1111", EndingID: "end_secure", Money: 300, Stress: 20},
		{GameID: "g4", Seed: "BBBB2222", EndingID: "end_thriving", Money: 900, Stress: 10},
	}
	for _, r := range runs {
		require.NoError(t, st.Record(ctx, r))
	}

	board, err := st.Leaderboard(ctx, "AAAA1111", 0)
	require.NoError(t, err)
	require.Len(t, board, 3)
	assert.Equal(t, "g2", board[0].GameID)
	assert.Equal(t, "g3", board[1].GameID)
	assert.Equal(t, "g1", board[2].GameID)
	assert.False(t, board[0].FinishedAt.IsZero())

	board, err = st.Leaderboard(ctx, "AAAA1111", 1)
	require.NoError(t, err)
	assert.Len(t, board, 1)

	board, err = st.Leaderboard(ctx, "NOPE0000", 5)
	require.NoError(t, err)
	assert.Empty(t, board)
}

func TestStoreRecordIsIdempotent(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	r := Run{GameID: "g1", Seed: "SEED", EndingID: "end_getting_by", Money: 10}
	require.NoError(t, st.Record(ctx, r))
	r.Money = 9999
	require.NoError(t, st.Record(ctx, r))

	board, err := st.Leaderboard(ctx, "SEED", 10)
	require.NoError(t, err)
	require.Len(t, board, 1)
	assert.Equal(t, 10, board[0].Money)
}

func TestRunFromState(t *testing.T) {
	s := game.NewState("ABCD1234")
	s.Money = 420
	s.Credentials = []string{"CPR Certified", "IT Fundamentals"}

	r := RunFromState("game-1", s, &game.Ending{ID: "end_secure"})
	assert.Equal(t, Run{
		GameID: "game-1", Seed: "ABCD1234", EndingID: "end_secure",
		Money: 420, Stress: 20, Support: 5, Credentials: 2,
	}, r)

	assert.Empty(t, RunFromState("game-2", s, nil).EndingID)
}
