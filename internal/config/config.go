package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds application configuration.
type Config struct {
	AppName          string
	AppVersion       string
	Environment      string
	AuthCookieSecure bool
	DefaultChurchID  int64

	Hosts HostConfig

	OTLPEndpoint string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	RateLimit RateLimitConfig

	// PlatformAdminUserIDs are user IDs granted the platform role, which
	// allows cross-church operations such as feature override writes.
	PlatformAdminUserIDs []string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int
}

// RateLimitConfig controls the redis token buckets that shield auth and
// check-in endpoints from abuse. Disabled when no redis addr is set.
type RateLimitConfig struct {
	Enabled bool

	LoginRate  float64
	LoginBurst int

	CheckinRate  float64
	CheckinBurst int
}

// HostConfig is the host classification table for inbound requests. It is
// built once at startup and injected wherever host routing decisions are
// made, so classification stays unit-testable with fabricated configs.
type HostConfig struct {
	CanonicalHost  string
	APIHost        string
	MarketingHosts []string
	AliasHosts     []string
	Environment    string
}

// IsProduction reports whether unknown hosts should be rejected outright.
func (h HostConfig) IsProduction() bool {
	return h.Environment == "production"
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	environment := getenv("ENVIRONMENT", "development")
	authCookieSecure := environment == "production"
	if !authCookieSecure {
		authCookieSecure = getenvBool("AUTH_COOKIE_SECURE", false)
	}

	cfg := Config{
		AppName:          getenv("APP_SERVICE", "steeple"),
		AppVersion:       getenv("APP_VERSION", "0.1.0"),
		Environment:      environment,
		AuthCookieSecure: authCookieSecure,
		DefaultChurchID:  getenvInt64("DEFAULT_CHURCH", 0),
		Hosts: HostConfig{
			CanonicalHost:  getenv("CANONICAL_HOST", "my.steeple.church"),
			APIHost:        getenv("API_HOST", "api.steeple.church"),
			MarketingHosts: parseHosts(getenv("MARKETING_HOSTS", "steeple.church,www.steeple.church")),
			AliasHosts:     parseHosts(getenv("ALIAS_HOSTS", "app.steeple.church")),
			Environment:    environment,
		},
		OTLPEndpoint:  getenv("OTLP_ENDPOINT", "localhost:4317"),
		RedisAddr:     getenv("REDIS_ADDR", ""),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       int(getenvInt64("REDIS_DB", 0)),
		RateLimit: RateLimitConfig{
			Enabled:      getenvBool("RATE_LIMIT_ENABLED", getenv("REDIS_ADDR", "") != ""),
			LoginRate:    getenvFloat("RATE_LIMIT_LOGIN_RATE", 0.5),
			LoginBurst:   int(getenvInt64("RATE_LIMIT_LOGIN_BURST", 10)),
			CheckinRate:  getenvFloat("RATE_LIMIT_CHECKIN_RATE", 5),
			CheckinBurst: int(getenvInt64("RATE_LIMIT_CHECKIN_BURST", 30)),
		},
		PlatformAdminUserIDs: parseList(getenv("PLATFORM_ADMIN_USER_IDS", "")),
		DBType:               getenv("DATABASE_TYPE", "postgres"),
		DBHost:               getenv("DATABASE_HOST", "localhost"),
		DBPort:               getenv("DATABASE_PORT", "5432"),
		DBName:               getenv("DATABASE_NAME", "steeple"),
		DBUser:               getenv("DATABASE_USER", "postgres"),
		DBPassword:           getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:            getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:        int(getenvInt64("DATABASE_MAX_IDLE_CONN", 5)),
		DBMaxOpenConn:        int(getenvInt64("DATABASE_MAX_OPEN_CONN", 25)),
		DBConnMaxLifetime:    int(getenvInt64("DATABASE_CONN_MAX_LIFETIME", 1800)),
	}

	return cfg
}

// Module wires config for fx consumers.
var Module = fx.Module("config",
	fx.Provide(Load),
	fx.Provide(func(cfg Config) HostConfig { return cfg.Hosts }),
	fx.Provide(NewPlanConfigHolder),
)

func parseHosts(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func parseList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvFloat(key string, def float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return def
	}
	return parsed
}

func getenvInt64(key string, def int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return def
	}
	return parsed
}
