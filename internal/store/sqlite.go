// internal/store/sqlite.go
//
// SQLite-backed Store. Snapshots live in the `snapshots` table created by the
// db package migrations; the answer is kept in its own column for inspection.

package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/robalobadob/hardle/internal/game"
)

type sqliteStore struct {
	db *sql.DB
}

// NewSQLiteStore returns a Store over an opened, migrated database.
func NewSQLiteStore(db *sql.DB) Store {
	return &sqliteStore{db: db}
}

func (s *sqliteStore) Save(ctx context.Context, key string, snap game.Snapshot) error {
	b, err := snap.Encode()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, answer, body, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET answer=excluded.answer, body=excluded.body, updated_at=excluded.updated_at`,
		key, snap.Answer, string(b), time.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *sqliteStore) Load(ctx context.Context, key string) (game.Snapshot, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM snapshots WHERE key=?`, key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return game.Snapshot{}, ErrNotFound
	}
	if err != nil {
		return game.Snapshot{}, err
	}
	return game.DecodeSnapshot([]byte(body))
}

func (s *sqliteStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE key=?`, key)
	return err
}
