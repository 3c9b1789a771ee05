// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily (hardle) results.
//   - GET /daily/leaderboard → winners for today (or ?date=YYYY-MM-DD)
//   - GET /daily/status      → whether the caller already finished today's word
//
// Results themselves are written by handleCommand when a hardle game ends.

package httpserver

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hardle/internal/daily"
)

const leaderboardSize = 20

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Get("/leaderboard", s.handleLeaderboard)
		r.Get("/status", s.handleDailyStatus)
	})
}

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string    `json:"date"`
	Top  []lbEntry `json:"top"`
}

// lbEntry is the public form of a leaderboard row. Owner keys double as
// guest credentials, so only a username or a keyed hash of the owner is shown.
type lbEntry struct {
	Player  string `json:"player"`
	Guest   bool   `json:"guest"`
	Guesses int    `json:"guesses"`
}

func (s *Server) publicEntry(row daily.LBRow) lbEntry {
	if row.Username != "" {
		return lbEntry{Player: row.Username, Guesses: row.Guesses}
	}
	return lbEntry{Player: s.guestName(row.OwnerID), Guest: true, Guesses: row.Guesses}
}

// guestName is a stable display name for an anonymous owner.
func (s *Server) guestName(owner string) string {
	h := hmac.New(sha256.New, []byte(s.cfg.JWTSecret))
	h.Write([]byte(owner))
	return "guest-" + hex.EncodeToString(h.Sum(nil))[:8]
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(s.now())
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		writeError(w, http.StatusBadRequest, "bad_date")
		return
	}
	rows, err := s.daily.Leaderboard(r.Context(), date, leaderboardSize)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("leaderboard")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	top := make([]lbEntry, 0, len(rows))
	for _, row := range rows {
		top = append(top, s.publicEntry(row))
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: top})
}

// statusRes is returned by /daily/status.
type statusRes struct {
	Date   string `json:"date"`
	Played bool   `json:"played"`
}

// handleDailyStatus reports whether the caller has a result for today.
func (s *Server) handleDailyStatus(w http.ResponseWriter, r *http.Request) {
	owner := s.ownerID(w, r)
	date := daily.DateKey(s.now())
	played, err := s.daily.AlreadyPlayed(r.Context(), owner, date)
	if err != nil {
		log.Error().Err(err).Str("owner", owner).Msg("already played")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	_ = json.NewEncoder(w).Encode(statusRes{Date: date, Played: played})
}
