package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port           string
	DatabaseURL    string
	ObjectStoreDir string
	PublicBaseURL  string

	Workers            int
	WorkerPollInterval time.Duration

	PollInterval time.Duration
	PollTimeout  time.Duration

	StatsCacheTTL time.Duration

	RetryMaxAttempts int
	RetryBaseDelay   time.Duration
	RetryJitterMax   time.Duration
}

func Load() Config {
	return Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		ObjectStoreDir: getEnv("OBJECT_STORE_DIR", "./objects"),
		PublicBaseURL:  getEnv("PUBLIC_BASE_URL", "http://localhost:8080/objects"),

		Workers:            getEnvInt("IMPORT_WORKERS", 1),
		WorkerPollInterval: getEnvMillis("IMPORT_WORKER_POLL_MS", 2000),

		PollInterval: getEnvMillis("IMPORT_POLL_INTERVAL_MS", 2000),
		PollTimeout:  getEnvMillis("IMPORT_POLL_TIMEOUT_MS", 30000),

		StatsCacheTTL: getEnvMillis("IMPORT_STATS_CACHE_TTL_MS", 5*60*1000),

		RetryMaxAttempts: getEnvInt("IMPORT_RETRY_MAX_ATTEMPTS", 3),
		RetryBaseDelay:   getEnvMillis("IMPORT_RETRY_BASE_DELAY_MS", 1000),
		RetryJitterMax:   getEnvMillis("IMPORT_RETRY_JITTER_MS", 1000),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func getEnvMillis(key string, fallback int) time.Duration {
	return time.Duration(getEnvInt(key, fallback)) * time.Millisecond
}
