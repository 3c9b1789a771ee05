// internal/httpserver/server.go
//
// HTTP server wiring for the Hardle backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Game endpoints (optional auth): GET /game/{variant},
//     POST /game/{variant}/command, POST /game/randle/new.
//   - Daily leaderboard: mounted under /daily.
//   - Auth + profile/stat endpoints: /auth/*, /stats/me.
//
// Notes:
//   - Variants: "hardle" deals the date-keyed word, "randle" a random one.
//   - Every command runs load → apply → save under one mutex, so a game is
//     never mutated by two requests at once.
//   - Save failures are fatal for the request; load failures just start a
//     fresh game.

package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hardle/internal/config"
	"github.com/robalobadob/hardle/internal/daily"
	"github.com/robalobadob/hardle/internal/game"
	"github.com/robalobadob/hardle/internal/store"
	"github.com/robalobadob/hardle/internal/words"
)

const (
	variantHardle = "hardle"
	variantRandle = "randle"
)

// Deps are the collaborators a Server needs.
type Deps struct {
	Store  store.Store
	DB     *sql.DB
	Words  *words.List
	Config config.Config
}

// Server bundles router, snapshot store, word source, result and account stores.
type Server struct {
	r      *chi.Mux
	store  store.Store
	words  *words.List
	source *daily.Source
	daily  *daily.Store
	users  *userStore
	cfg    config.Config
	now    func() time.Time

	mu sync.Mutex // serializes game commands
}

// New constructs a Server, installs middleware, and registers routes.
func New(d Deps) *Server {
	s := &Server{
		r:      chi.NewRouter(),
		store:  d.Store,
		words:  d.Words,
		source: daily.NewSource(d.Words, d.Config.DailySalt),
		daily:  daily.NewStore(d.DB),
		users:  &userStore{db: d.DB},
		cfg:    d.Config,
		now:    time.Now,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFor(d.Config.ClientOrigin))  // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"hardle-go","endpoints":["/health","GET /game/{variant}","POST /game/{variant}/command","POST /game/randle/new","/daily/leaderboard","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		a, g := s.words.Stats()
		_ = json.NewEncoder(w).Encode(map[string]int{"answers": a, "allowed": g})
	})

	// Game endpoints — OPTIONAL AUTH (guests can play)
	s.r.Group(func(r chi.Router) {
		r.Use(s.withOptionalAuth())
		r.Get("/game/{variant}", s.handleGetGame)
		r.Post("/game/{variant}/command", s.handleCommand)
		r.Post("/game/randle/new", s.handleNewRandle)
		s.mountDaily(r)
	})

	s.mountAuthRoutes()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ------------------------------ GAME ---------------------------------------

// gameView is the read-only projection sent to clients.
type gameView struct {
	Variant      string                   `json:"variant"`
	Mode         game.Mode                `json:"mode"`
	Tiles        [][]game.TileRecord      `json:"tiles"`
	Keyboard     map[string]game.KeyColor `json:"keyboard"`
	Guesses      []game.Guess             `json:"guesses"`
	CurrentRow   int                      `json:"currentRow"`
	CurrentGuess string                   `json:"currentGuess"`
	GameOver     bool                     `json:"gameOver"`
	Won          bool                     `json:"won"`
	Answer       string                   `json:"answer,omitempty"`
}

func viewOf(variant string, g *game.Game) gameView {
	snap := g.Snapshot()
	v := gameView{
		Variant:      variant,
		Mode:         g.Mode,
		Tiles:        snap.Tiles,
		Keyboard:     make(map[string]game.KeyColor, len(snap.KeyboardColors)),
		Guesses:      snap.Guesses,
		CurrentRow:   g.CurrentRow,
		CurrentGuess: g.Buffer,
		GameOver:     g.GameOver,
		Won:          g.Won,
	}
	for _, kc := range snap.KeyboardColors {
		v.Keyboard[kc.Letter] = kc.Color
	}
	if g.GameOver {
		v.Answer = g.Answer
	}
	return v
}

// dictionary is the validator handed to games; nil when validation is off.
func (s *Server) dictionary() game.Dictionary {
	if s.cfg.SkipValidation {
		return nil
	}
	return s.words
}

// gameKey is the snapshot key for owner's game of variant.
func (s *Server) gameKey(variant, owner string) string {
	if variant == variantHardle {
		return variantHardle + ":" + owner + ":" + daily.DateKey(s.now())
	}
	return variantRandle + ":" + owner
}

// loadGame restores owner's game or deals a new one in mode.
// A restored game with no guesses yet switches to the requested mode.
// A random game whose word left the answer list is dealt again.
func (s *Server) loadGame(ctx context.Context, variant, owner string, mode game.Mode) (*game.Game, string) {
	key := s.gameKey(variant, owner)

	answer := ""
	if variant == variantHardle {
		answer, _ = s.source.WordForDate(s.now())
	}
	g, ok := store.LoadGame(ctx, s.store, key, answer, s.dictionary())
	if ok && variant == variantRandle && !s.words.IsAnswer(g.Answer) {
		log.Warn().Str("key", key).Msg("saved random word is not an answer")
		ok = false
	}
	if ok {
		if mode != "" && len(g.Guesses) == 0 && g.Mode != mode {
			g.ToggleMode()
		}
		return g, key
	}

	if answer == "" {
		answer = s.source.RandomWord()
	}
	return game.New(answer, mode, s.dictionary()), key
}

// variantParam reads {variant}; writes a 404 and returns "" if unknown.
func variantParam(w http.ResponseWriter, r *http.Request) string {
	v := chi.URLParam(r, "variant")
	if v != variantHardle && v != variantRandle {
		writeError(w, http.StatusNotFound, "unknown_variant")
		return ""
	}
	return v
}

// handleGetGame returns the owner's current game, creating it if needed.
// Query: ?mode=easy|hard picks the mode for a new game.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	variant := variantParam(w, r)
	if variant == "" {
		return
	}
	owner := s.ownerID(w, r)
	mode := game.Mode(r.URL.Query().Get("mode"))
	if mode != game.ModeEasy && mode != game.ModeHard {
		mode = ""
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g, key := s.loadGame(r.Context(), variant, owner, mode)
	if err := s.store.Save(r.Context(), key, g.Snapshot()); err != nil {
		log.Error().Err(err).Str("key", key).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	_ = json.NewEncoder(w).Encode(viewOf(variant, g))
}

// commandRes is the response of POST /game/{variant}/command.
type commandRes struct {
	Outcome game.Outcome `json:"outcome"`
	Game    gameView     `json:"game"`
}

// handleCommand applies one command to the owner's game and persists it.
// Finishing a game records the daily result (hardle) and bumps user stats.
func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	variant := variantParam(w, r)
	if variant == "" {
		return
	}
	var cmd game.Command
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	owner := s.ownerID(w, r)

	s.mu.Lock()
	defer s.mu.Unlock()

	g, key := s.loadGame(r.Context(), variant, owner, "")
	g, out := s.apply(variant, g, cmd)
	if out.Changed {
		if err := s.store.Save(r.Context(), key, g.Snapshot()); err != nil {
			log.Error().Err(err).Str("key", key).Msg("save game")
			writeError(w, http.StatusInternalServerError, "save_failed")
			return
		}
	}
	if out.Submit != nil && out.Submit.OK && g.GameOver {
		s.recordFinish(r, variant, owner, g)
	}

	_ = json.NewEncoder(w).Encode(commandRes{Outcome: out, Game: viewOf(variant, g)})
}

const (
	noticeModeLocked = "You cannot change modes during a Hardle game. Finish this game first!"
	noticeNewGame    = "New game started"
)

// apply runs cmd on g. Mode is locked once a game is under way: a daily game
// refuses the switch and a random game is dealt again in the other mode.
func (s *Server) apply(variant string, g *game.Game, cmd game.Command) (*game.Game, game.Outcome) {
	if cmd.Kind != game.CmdToggleMode || len(g.Guesses) == 0 || g.GameOver {
		return g, g.Apply(cmd)
	}
	if variant == variantHardle {
		return g, game.Outcome{Notice: noticeModeLocked}
	}
	mode := game.ModeHard
	if g.Mode == game.ModeHard {
		mode = game.ModeEasy
	}
	return game.New(s.source.RandomWord(), mode, s.dictionary()), game.Outcome{Changed: true, Notice: noticeNewGame}
}

// newRandleReq is the body of POST /game/randle/new.
type newRandleReq struct {
	Mode game.Mode `json:"mode"`
}

// handleNewRandle discards the owner's random game and deals a new word.
func (s *Server) handleNewRandle(w http.ResponseWriter, r *http.Request) {
	var req newRandleReq
	_ = json.NewDecoder(r.Body).Decode(&req)
	owner := s.ownerID(w, r)
	key := s.gameKey(variantRandle, owner)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(r.Context(), key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("delete game")
	}
	g := game.New(s.source.RandomWord(), req.Mode, s.dictionary())
	if err := s.store.Save(r.Context(), key, g.Snapshot()); err != nil {
		log.Error().Err(err).Str("key", key).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	_ = json.NewEncoder(w).Encode(viewOf(variantRandle, g))
}

// recordFinish persists side effects of a finished game (best effort).
func (s *Server) recordFinish(r *http.Request, variant, owner string, g *game.Game) {
	if variant == variantHardle {
		now := s.now()
		_, idx := s.source.WordForDate(now)
		if err := s.daily.InsertResult(r.Context(), daily.Result{
			OwnerID: owner, Date: daily.DateKey(now), WordIndex: idx, Guesses: len(g.Guesses), Won: g.Won,
		}); err != nil {
			log.Warn().Err(err).Str("owner", owner).Msg("insert daily result")
		}
	}
	if me := userFrom(r); me != nil {
		if err := s.users.recordGame(r.Context(), me.ID, g.Won); err != nil {
			log.Warn().Err(err).Str("user", me.ID).Msg("bump stats")
		}
	}
	log.Info().Str("variant", variant).Str("owner", owner).Str("state", g.State()).Int("guesses", len(g.Guesses)).Msg("game finished")
}

// ------------------------------- small util --------------------------------

// writeError writes a JSON error body with status.
func writeError(w http.ResponseWriter, status int, code string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}
