package daily

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/hardle/internal/db"
	"github.com/robalobadob/hardle/internal/words"
)

func TestDateKey(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	assert.Equal(t, "2024-03-09", DateKey(time.Date(2024, 3, 10, 5, 0, 0, 0, loc)))
	assert.Equal(t, "2024-03-10", DateKey(time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC)))
}

func TestWordIndex(t *testing.T) {
	day := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	a := WordIndex(day, "salt", 480)
	assert.Equal(t, a, WordIndex(day.Add(10*time.Hour), "salt", 480), "same UTC day, same index")
	assert.GreaterOrEqual(t, a, 0)
	assert.Less(t, a, 480)
	assert.Equal(t, 0, WordIndex(day, "salt", 0))

	distinct := map[int]bool{}
	for d := 0; d < 30; d++ {
		distinct[WordIndex(day.AddDate(0, 0, d), "salt", 480)] = true
	}
	assert.Greater(t, len(distinct), 20, "indices should spread across days")
}

func TestSource(t *testing.T) {
	list, err := words.FromLists([]string{"rate", "moon", "bear", "tear"}, nil)
	require.NoError(t, err)
	src := NewSource(list, "salt")
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	w1, i1 := src.WordForDate(day)
	w2, i2 := src.WordForDate(day.Add(23 * time.Hour))
	assert.Equal(t, w1, w2)
	assert.Equal(t, i1, i2)
	assert.Equal(t, list.Answers()[i1], w1)

	other := NewSource(list, "pepper")
	same := 0
	for d := 0; d < 20; d++ {
		a, _ := src.WordForDate(day.AddDate(0, 0, d))
		b, _ := other.WordForDate(day.AddDate(0, 0, d))
		if a == b {
			same++
		}
	}
	assert.Less(t, same, 20, "salt changes the sequence")

	for i := 0; i < 10; i++ {
		assert.True(t, list.IsAnswer(src.RandomWord()))
	}
}

func openStore(t *testing.T) (*Store, *sql.DB) {
	t.Helper()
	conn, err := db.Open(filepath.Join(t.TempDir(), "daily.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.Migrate(conn))
	return NewStore(conn), conn
}

func TestStore(t *testing.T) {
	st, conn := openStore(t)
	ctx := context.Background()
	_, err := conn.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, created_at) VALUES ('bob', 'Bobby', 'x', '2024-01-01T00:00:00Z')`)
	require.NoError(t, err)
	date := "2024-05-01"

	played, err := st.AlreadyPlayed(ctx, "alice", date)
	require.NoError(t, err)
	assert.False(t, played)

	require.NoError(t, st.InsertResult(ctx, Result{OwnerID: "alice", Date: date, WordIndex: 3, Guesses: 4, Won: true}))
	require.NoError(t, st.InsertResult(ctx, Result{OwnerID: "bob", Date: date, WordIndex: 3, Guesses: 2, Won: true}))
	require.NoError(t, st.InsertResult(ctx, Result{OwnerID: "carol", Date: date, WordIndex: 3, Guesses: 8, Won: false}))
	require.NoError(t, st.InsertResult(ctx, Result{OwnerID: "dave", Date: "2024-05-02", WordIndex: 7, Guesses: 1, Won: true}))

	// A second result for the same day is ignored.
	require.NoError(t, st.InsertResult(ctx, Result{OwnerID: "alice", Date: date, WordIndex: 3, Guesses: 1, Won: true}))

	played, err = st.AlreadyPlayed(ctx, "alice", date)
	require.NoError(t, err)
	assert.True(t, played)

	top, err := st.Leaderboard(ctx, date, 0)
	require.NoError(t, err)
	assert.Equal(t, []LBRow{{OwnerID: "bob", Username: "Bobby", Guesses: 2}, {OwnerID: "alice", Guesses: 4}}, top)

	top, err = st.Leaderboard(ctx, date, 1)
	require.NoError(t, err)
	assert.Len(t, top, 1)

	top, err = st.Leaderboard(ctx, "1999-01-01", 10)
	require.NoError(t, err)
	assert.NotNil(t, top)
	assert.Empty(t, top)
}
