package config

import (
	"context"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	Env        string
	Port       int
	DBURL      string
	DBMaxConns int32

	// Store selects the persistence backend: postgres or memory.
	Store          string
	MigrateOnStart bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	OtelExporter string
	OtelEndpoint string

	// auth on write routes is off while JWTSecret is empty.
	JWTSecret           string
	JWTAccessTTLMinutes int

	RateLimitPerMinute int
	MaxBodyBytes       int64
	CORSOrigins        []string
}

func Load() Config {
	// a missing .env is fine, real environment variables still apply
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	dbURL := v.GetString("DATABASE_URL")
	if dbURL == "" {
		dbURL = buildDBURL(v)
	}

	return Config{
		Env:                 v.GetString("APP_ENV"),
		Port:                v.GetInt("PORT"),
		DBURL:               dbURL,
		DBMaxConns:          v.GetInt32("DB_MAX_CONNS"),
		Store:               strings.ToLower(v.GetString("STORE")),
		MigrateOnStart:      v.GetBool("MIGRATE_ON_START"),
		RedisAddr:           v.GetString("REDIS_ADDR"),
		RedisPassword:       v.GetString("REDIS_PASSWORD"),
		RedisDB:             v.GetInt("REDIS_DB"),
		CacheTTL:            v.GetDuration("CACHE_TTL"),
		OtelExporter:        strings.ToLower(v.GetString("OTEL_EXPORTER")),
		OtelEndpoint:        v.GetString("OTEL_ENDPOINT"),
		JWTSecret:           v.GetString("JWT_SECRET"),
		JWTAccessTTLMinutes: v.GetInt("JWT_ACCESS_TTL_MINUTES"),
		RateLimitPerMinute:  v.GetInt("RATE_LIMIT_PER_MINUTE"),
		MaxBodyBytes:        v.GetInt64("MAX_BODY_BYTES"),
		CORSOrigins:         splitList(v.GetString("CORS_ORIGINS")),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("PORT", 8080)

	v.SetDefault("DB_HOST", "127.0.0.1")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "meetup")
	v.SetDefault("DB_PASSWORD", "meetup")
	v.SetDefault("DB_NAME", "meetup")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 5)

	v.SetDefault("STORE", StorePostgres)
	v.SetDefault("MIGRATE_ON_START", true)

	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", "30s")

	v.SetDefault("OTEL_EXPORTER", "none")
	v.SetDefault("OTEL_ENDPOINT", "localhost:4317")

	v.SetDefault("JWT_ACCESS_TTL_MINUTES", 60)

	v.SetDefault("RATE_LIMIT_PER_MINUTE", 120)
	v.SetDefault("MAX_BODY_BYTES", 1<<20)
}

func buildDBURL(v *viper.Viper) string {
	host := v.GetString("DB_HOST")
	port := v.GetString("DB_PORT")
	user := v.GetString("DB_USER")
	pass := v.GetString("DB_PASSWORD")
	name := v.GetString("DB_NAME")
	ssl := v.GetString("DB_SSLMODE")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func WithTimeout(parent context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, duration)
}
