package main

import (
	"context"
	"database/sql"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hardle/internal/config"
	"github.com/robalobadob/hardle/internal/db"
	"github.com/robalobadob/hardle/internal/httpserver"
	"github.com/robalobadob/hardle/internal/store"
	"github.com/robalobadob/hardle/internal/words"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	list, err := words.Load(cfg.AnswersFile, cfg.AllowedFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}

	conn, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open db")
	}
	defer conn.Close()
	if err := db.Migrate(conn); err != nil {
		log.Fatal().Err(err).Msg("migrate db")
	}

	srv := httpserver.New(httpserver.Deps{
		Store:  openStore(cfg, conn),
		DB:     conn,
		Words:  list,
		Config: cfg,
	})
	log.Info().Str("port", cfg.Port).Str("store", cfg.StoreBackend).Msg("starting hardle server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// openStore picks the snapshot backend. An unreachable Redis falls back to SQLite.
func openStore(cfg config.Config, conn *sql.DB) store.Store {
	switch cfg.StoreBackend {
	case "memory":
		return store.NewMemoryStore()
	case "redis":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		client, err := store.DialRedis(ctx, cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
		if err == nil {
			return store.NewRedisStore(client, "hardle:snap:", cfg.SnapshotTTL)
		}
		log.Warn().Err(err).Str("addr", cfg.RedisURL).Msg("redis unavailable, using sqlite")
	case "sqlite":
	default:
		log.Warn().Str("backend", cfg.StoreBackend).Msg("unknown store backend, using sqlite")
	}
	return store.NewSQLiteStore(conn)
}
