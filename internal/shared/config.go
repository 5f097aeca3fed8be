package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv       string
	LogLevel     string
	HTTPAddr     string
	MetricsAddr  string
	FSQBase      string
	FSQClientID  string
	FSQSecret    string
	FSQVersion   string
	CacheBackend string // memory|redis
	CacheTTL     time.Duration
	RedisAddr    string
	RedisDB      int
	RedisPass    string
	CORSOrigins  []string
	WarmWorkers  int
	WarmRPS      int
}

// Load reads the environment, after merging a .env file from the working
// directory when one exists. Real environment variables take precedence.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg(".env could not be parsed")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		}
		return def
	}
	c := Config{
		AppEnv:       env("APP_ENV", "prod"),
		LogLevel:     env("LOG_LEVEL", ""),
		HTTPAddr:     env("HTTP_ADDR", ":5001"),
		MetricsAddr:  env("METRICS_ADDR", ""),
		FSQBase:      env("FOURSQUARE_BASE_URL", "https://api.foursquare.com/v2"),
		FSQClientID:  env("FOURSQUARE_CLIENT_ID", ""),
		FSQSecret:    env("FOURSQUARE_CLIENT_SECRET", ""),
		FSQVersion:   env("FOURSQUARE_API_VERSION", "20231010"),
		CacheBackend: strings.ToLower(env("CACHE_BACKEND", "memory")),
		CacheTTL:     time.Duration(atoi("CACHE_TTL_SECONDS", 86400)) * time.Second,
		RedisAddr:    env("REDIS_ADDR", "localhost:6379"),
		RedisDB:      atoi("REDIS_DB", 0),
		RedisPass:    env("REDIS_PASSWORD", ""),
		CORSOrigins:  splitList(env("CORS_ALLOWED_ORIGINS", "*")),
		WarmWorkers:  atoi("WARM_WORKERS", 4),
		WarmRPS:      atoi("WARM_RPS", 2),
	}
	if !c.FoursquareConfigured() {
		log.Warn().Msg("FOURSQUARE_CLIENT_ID or FOURSQUARE_CLIENT_SECRET is empty")
	}
	return c
}

func (c Config) FoursquareConfigured() bool {
	return c.FSQClientID != "" && c.FSQSecret != ""
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
