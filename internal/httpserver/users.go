// internal/httpserver/users.go
//
// Account persistence over the users table: create, look up, stats, and
// moving a guest's daily results onto an account.

package httpserver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"
)

var errUsernameTaken = errors.New("username taken")

// signupError is a validation failure safe to show to the user.
type signupError string

func (e signupError) Error() string { return string(e) }

// account is one row of the users table.
type account struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	GamesPlayed  int
	Wins         int
	Streak       int
}

// userStore reads and writes accounts.
type userStore struct{ db *sql.DB }

const accountCols = `id, username, password_hash, created_at, games_played, wins, streak`

// create validates and inserts a new account. The UNIQUE NOCASE index on
// username is the only uniqueness check, so concurrent signups cannot race.
func (u *userStore) create(ctx context.Context, username, pw string) (*account, error) {
	username = strings.TrimSpace(username)
	if err := validateSignup(username, pw); err != nil {
		return nil, err
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	a := &account{ID: genID(), Username: username, PasswordHash: string(h), CreatedAt: time.Now().UTC().Truncate(time.Second)}
	_, err = u.db.ExecContext(ctx, `INSERT INTO users (id, username, password_hash, created_at) VALUES (?,?,?,?)`,
		a.ID, a.Username, a.PasswordHash, a.CreatedAt.Format(time.RFC3339))
	if isUniqueViolation(err) {
		return nil, errUsernameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return a, nil
}

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique
}

// byName finds an account case-insensitively; sql.ErrNoRows if missing.
func (u *userStore) byName(ctx context.Context, username string) (*account, error) {
	return scanAccount(u.db.QueryRowContext(ctx,
		`SELECT `+accountCols+` FROM users WHERE username=?`, strings.TrimSpace(username)))
}

func (u *userStore) byID(ctx context.Context, id string) (*account, error) {
	return scanAccount(u.db.QueryRowContext(ctx, `SELECT `+accountCols+` FROM users WHERE id=?`, id))
}

func scanAccount(row *sql.Row) (*account, error) {
	var a account
	var created string
	if err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &created, &a.GamesPlayed, &a.Wins, &a.Streak); err != nil {
		return nil, err
	}
	a.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &a, nil
}

// recordGame bumps games played; a win extends the streak, a loss resets it.
func (u *userStore) recordGame(ctx context.Context, id string, won bool) error {
	win := 0
	if won {
		win = 1
	}
	res, err := u.db.ExecContext(ctx, `
		UPDATE users SET
			games_played = games_played + 1,
			wins = wins + ?,
			streak = CASE WHEN ? = 1 THEN streak + 1 ELSE 0 END
		WHERE id=?`, win, win, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// claimResults moves a guest's daily results to an account.
// Dates the account already has a result for keep the account's row.
func (u *userStore) claimResults(ctx context.Context, anonID, userID string) error {
	if anonID == "" || userID == "" {
		return nil
	}
	_, err := u.db.ExecContext(ctx, `UPDATE OR IGNORE daily_results SET owner_id=? WHERE owner_id=?`, userID, anonID)
	return err
}

func (a *account) checkPassword(pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(pw)) == nil
}

// validateSignup enforces basic username/password rules.
func validateSignup(u, p string) error {
	if len(u) < 3 || len(u) > 24 {
		return signupError("username must be 3-24 chars")
	}
	for _, r := range u {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return signupError("username: letters, numbers, underscore only")
		}
	}
	if len(p) < 8 || len(p) > 100 {
		return signupError("password must be 8-100 chars")
	}
	return nil
}
