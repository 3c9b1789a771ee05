package daily

import (
	"context"
	"database/sql"
)

// Result is one owner's finished daily game.
type Result struct {
	OwnerID   string `json:"ownerId"`
	Date      string `json:"date"`
	WordIndex int    `json:"wordIndex"`
	Guesses   int    `json:"guesses"`
	Won       bool   `json:"won"`
}

// Store persists daily results. One row per (owner, date).
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) AlreadyPlayed(ctx context.Context, ownerID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM daily_results WHERE owner_id=? AND date=?",
		ownerID, date,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult records r; a second result for the same owner and date is ignored.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(owner_id, date, word_index, guesses, won)
		VALUES(?,?,?,?,?)`, r.OwnerID, r.Date, r.WordIndex, r.Guesses, r.Won,
	)
	return err
}

// LBRow is one leaderboard entry. OwnerID is the raw owner key and never
// leaves the server; Username is set when the owner is a registered user.
type LBRow struct {
	OwnerID  string `json:"-"`
	Username string `json:"-"`
	Guesses  int    `json:"guesses"`
}

// Leaderboard lists the winners for date, fewest guesses first.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.owner_id, COALESCE(u.username, ''), r.guesses
		FROM daily_results r
		LEFT JOIN users u ON u.id = r.owner_id
		WHERE r.date=? AND r.won=1
		ORDER BY r.guesses ASC, r.created_at ASC
		LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []LBRow{}
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.OwnerID, &r.Username, &r.Guesses); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
