package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

type Config struct {
	Addr           string
	DataDir        string
	PersistBackend string
	RedisAddr      string
	MockDelay      time.Duration
	PageSize       int
	LogLevel       string
}

// Load reads .env when present, then the environment.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		Addr:           ":" + GetEnv("PORT", "8080"),
		DataDir:        GetEnv("DATA_DIR", "./data"),
		PersistBackend: GetEnv("PERSIST_BACKEND", BackendSQLite),
		RedisAddr:      GetEnv("REDIS_ADDR", "localhost:6379"),
		MockDelay:      time.Duration(GetInt("MOCK_DELAY_MS", 500)) * time.Millisecond,
		PageSize:       GetInt("FEED_PAGE_SIZE", 5),
		LogLevel:       GetEnv("LOG_LEVEL", "info"),
	}
}

func GetEnv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

// GetInt falls back to def when k is unset or not a non-negative integer.
func GetInt(k string, def int) int {
	n, err := strconv.Atoi(os.Getenv(k))
	if err != nil || n < 0 {
		return def
	}
	return n
}
