package shared

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	MetricsAddr    string
	MySQLDSN       string
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	ContactLimit   int
	ContactWindow  time.Duration
	JWTSecret      string
	MediaRoot      string
	SeedWorkers    int
	SeedRPS        float64
	RequestTimeout time.Duration
	TrustProxy     bool // honour X-Forwarded-For / X-Real-IP from a fronting proxy
}

// Load reads the environment, after merging a .env file from the working
// directory when one exists. Real environment variables win over .env.
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg(".env present but unreadable")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
		}
		return def
	}
	c := Config{
		AppEnv:         env("APP_ENV", "prod"),
		HTTPAddr:       env("HTTP_ADDR", ":8080"),
		MetricsAddr:    env("METRICS_ADDR", ""),
		MySQLDSN:       env("MYSQL_DSN", "root:root@tcp(localhost:3306)/travel?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:      env("REDIS_ADDR", ""),
		RedisPass:      env("REDIS_PASSWORD", ""),
		RedisDB:        atoi("REDIS_DB", 0),
		ContactLimit:   atoi("CONTACT_LIMIT", 5),
		ContactWindow:  time.Duration(atoi("CONTACT_WINDOW_SECONDS", 3600)) * time.Second,
		JWTSecret:      env("JWT_SECRET", ""),
		MediaRoot:      env("MEDIA_ROOT", "./media"),
		SeedWorkers:    atoi("SEED_WORKERS", 4),
		SeedRPS:        atof("SEED_RPS", 20),
		RequestTimeout: time.Duration(atoi("REQUEST_TIMEOUT_SECONDS", 15)) * time.Second,
		TrustProxy:     env("TRUST_PROXY", "false") == "true",
	}
	if c.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is empty; admin API will reject every token")
	}
	if c.RedisAddr == "" {
		log.Warn().Msg("REDIS_ADDR is empty; contact form is not throttled")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
