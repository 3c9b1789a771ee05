package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/hardle/internal/db"
	"github.com/robalobadob/hardle/internal/game"
)

func sampleGame(t *testing.T) *game.Game {
	t.Helper()
	g := game.New("RATE", game.ModeEasy, nil)
	for _, w := range []string{"BUSY", "RANT"} {
		for i := 0; i < len(w); i++ {
			require.True(t, g.AddLetter(string(w[i])))
		}
		require.True(t, g.SubmitGuess().OK)
	}
	return g
}

func openSQLite(t *testing.T) Store {
	t.Helper()
	conn, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.Migrate(conn))
	return NewSQLiteStore(conn)
}

// exercise runs the shared Store contract against st.
func exercise(t *testing.T, st Store) {
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, err := st.Load(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("save and load", func(t *testing.T) {
		g := sampleGame(t)
		require.NoError(t, st.Save(ctx, "k1", g.Snapshot()))

		snap, err := st.Load(ctx, "k1")
		require.NoError(t, err)
		assert.Equal(t, g.Snapshot(), snap)
	})

	t.Run("save replaces", func(t *testing.T) {
		require.NoError(t, st.Save(ctx, "k2", game.New("MOON", game.ModeHard, nil).Snapshot()))
		require.NoError(t, st.Save(ctx, "k2", game.New("RATE", game.ModeHard, nil).Snapshot()))
		snap, err := st.Load(ctx, "k2")
		require.NoError(t, err)
		assert.Equal(t, "RATE", snap.Answer)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, st.Save(ctx, "k3", sampleGame(t).Snapshot()))
		require.NoError(t, st.Delete(ctx, "k3"))
		_, err := st.Load(ctx, "k3")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NoError(t, st.Delete(ctx, "k3"), "deleting twice is fine")
	})

	t.Run("load game", func(t *testing.T) {
		g := sampleGame(t)
		require.NoError(t, st.Save(ctx, "k4", g.Snapshot()))

		restored, ok := LoadGame(ctx, st, "k4", "RATE", nil)
		require.True(t, ok)
		assert.Equal(t, g, restored)

		_, ok = LoadGame(ctx, st, "k4", "MOON", nil)
		assert.False(t, ok, "a different answer is a miss")

		restored, ok = LoadGame(ctx, st, "k4", "", nil)
		require.True(t, ok, "empty answer accepts any saved word")
		assert.Equal(t, "RATE", restored.Answer)

		_, ok = LoadGame(ctx, st, "missing", "RATE", nil)
		assert.False(t, ok)
	})

	t.Run("stale version is a miss", func(t *testing.T) {
		snap := sampleGame(t).Snapshot()
		snap.Version = game.SnapshotVersion + 1
		require.NoError(t, st.Save(ctx, "k5", snap))
		_, ok := LoadGame(ctx, st, "k5", "RATE", nil)
		assert.False(t, ok)
	})
}

func TestMemoryStore(t *testing.T) {
	exercise(t, NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	exercise(t, openSQLite(t))
}

// Requires a reachable server, e.g. HARDLE_TEST_REDIS=localhost:6379.
func TestRedisStore(t *testing.T) {
	addr := os.Getenv("HARDLE_TEST_REDIS")
	if addr == "" {
		t.Skip("HARDLE_TEST_REDIS not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	client, err := DialRedis(ctx, addr, "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	prefix := "hardle:test:" + time.Now().Format("150405.000000") + ":"
	exercise(t, NewRedisStore(client, prefix, time.Minute))
}
