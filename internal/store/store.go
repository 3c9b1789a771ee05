// internal/store/store.go
//
// Persistence for game snapshots.
// Implementations may be backed by memory, SQLite or Redis; they all save the
// JSON encoding of game.Snapshot under a caller-chosen key.

package store

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hardle/internal/game"
)

// ErrNotFound is returned by Load when nothing is saved under the key.
var ErrNotFound = errors.New("store: not found")

// Store defines the persistence interface for game snapshots.
type Store interface {
	// Save persists or replaces the snapshot under key.
	Save(ctx context.Context, key string, s game.Snapshot) error

	// Load retrieves the snapshot under key, or ErrNotFound.
	Load(ctx context.Context, key string) (game.Snapshot, error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// LoadGame restores the game saved under key if it was dealt for answer.
// An empty answer accepts whatever word the saved game was dealt.
//
// A missing key, unreadable data, an unknown snapshot version or a different
// answer all report ok=false: the caller starts a fresh game. Only the unusual
// cases are logged.
func LoadGame(ctx context.Context, st Store, key, answer string, dict game.Dictionary) (*game.Game, bool) {
	snap, err := st.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Warn().Err(err).Str("key", key).Msg("load snapshot")
		}
		return nil, false
	}
	if answer != "" && snap.Answer != answer {
		return nil, false
	}
	g, err := game.Restore(snap, dict)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("restore snapshot")
		return nil, false
	}
	return g, true
}
