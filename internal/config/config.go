package config

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// Config is the server configuration, read once from the environment.
type Config struct {
	Port           string
	LogLevel       string
	StoreBackend   string // memory | sqlite | redis
	DBPath         string
	RedisURL       string
	RedisPassword  string
	RedisDB        int
	SnapshotTTL    time.Duration
	DailySalt      string
	JWTSecret      string
	JWTExpiresDays int
	CookieName     string
	ClientOrigin   string
	Production     bool
	SkipValidation bool
	AnswersFile    string
	AllowedFile    string
}

// Load reads the configuration. Call godotenv.Load first to pick up a .env file.
func Load() Config {
	return Config{
		Port:           GetEnv("PORT", "5175"),
		LogLevel:       GetEnv("LOG_LEVEL", "info"),
		StoreBackend:   GetEnv("STORE_BACKEND", "sqlite"),
		DBPath:         GetEnv("DB_PATH", "./data/app.db"),
		RedisURL:       GetEnv("REDIS_URL", "localhost:6379"),
		RedisPassword:  GetEnv("REDIS_PASSWORD", ""),
		RedisDB:        GetEnvAsInt("REDIS_DB", 0),
		SnapshotTTL:    time.Duration(GetEnvAsInt("SNAPSHOT_TTL_HOURS", 72)) * time.Hour,
		DailySalt:      GetEnv("DAILY_SALT", "local_dev_salt"),
		JWTSecret:      GetEnv("JWT_SECRET", "dev_secret_change_me"),
		JWTExpiresDays: GetEnvAsInt("JWT_EXPIRES_DAYS", 14),
		CookieName:     GetEnv("COOKIE_NAME", "hardle_token"),
		ClientOrigin:   GetEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		Production:     os.Getenv("NODE_ENV") == "production",
		SkipValidation: GetEnvAsBool("SKIP_WORD_VALIDATION", false),
		AnswersFile:    os.Getenv("WORDS_ANSWERS_FILE"),
		AllowedFile:    os.Getenv("WORDS_ALLOWED_FILE"),
	}
}

// GetEnv returns the value of key or def if unset/empty.
func GetEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// GetEnvAsInt parses key as an int, falling back to def.
func GetEnvAsInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		log.Warn().Str("key", key).Str("value", s).Int("default", def).Msg("invalid integer, using default")
		return def
	}
	return v
}

// GetEnvAsBool parses key as a bool, falling back to def.
func GetEnvAsBool(key string, def bool) bool {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		log.Warn().Str("key", key).Str("value", s).Bool("default", def).Msg("invalid bool, using default")
		return def
	}
	return v
}
