package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"goal-detector/internal/shared/telemetry"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	GoalsPath       string

	OpenAIAPIKey string
	LLMModel     string
	LLMTimeout   time.Duration

	DatabaseURL string
	// DB pool overrides. Zero keeps the pool default.
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	DBConnMaxIdleTime time.Duration
	DBPingTimeout     time.Duration

	RedisURL   string
	RoadmapTTL time.Duration
	// EventsStream names the Redis stream that receives roadmap events.
	// Empty disables publishing.
	EventsStream string

	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	SSEKMSKeyID     string

	RateLimitRPS   float64
	RateLimitBurst int
}

var defaults = map[string]any{
	"PORT":                  "8080",
	"ENV":                   "dev",
	"CORS_ALLOW_ORIGINS":    "http://localhost:5173",
	"GOALS_PATH":            "",
	"OPENAI_API_KEY":        "",
	"LLM_MODEL":             "gpt-4.1-mini",
	"LLM_TIMEOUT":           "30s",
	"DATABASE_URL":          "",
	"DB_MAX_OPEN_CONNS":     0,
	"DB_MAX_IDLE_CONNS":     0,
	"DB_CONN_MAX_LIFETIME":  "0s",
	"DB_CONN_MAX_IDLE_TIME": "0s",
	"DB_PING_TIMEOUT":       "0s",
	"REDIS_URL":             "",
	"ROADMAP_TTL":           "24h",
	"EVENTS_STREAM":         "roadmaps:events",
	"OBJECT_STORE":          "local",
	"LOCAL_STORE_DIR":       "./data",
	"AWS_REGION":            "",
	"S3_BUCKET":             "",
	"S3_PREFIX":             "",
	"SSE_KMS_KEY_ID":        "",
	"RATE_LIMIT_RPS":        5.0,
	"RATE_LIMIT_BURST":      10,
}

// Load reads configuration from the environment, falling back to .env files
// and then to defaults.
func Load() Config {
	return load(newViper(".env", "cmd/.env"))
}

func newViper(envFiles ...string) *viper.Viper {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	loadEnvFiles(v, envFiles...)
	v.AutomaticEnv()
	return v
}

func load(v *viper.Viper) Config {
	env := normalizeEnv(v.GetString("ENV"))
	dbURL := strings.TrimSpace(v.GetString("DATABASE_URL"))
	if env == "production" && dbURL == "" && strings.TrimSpace(v.GetString("REDIS_URL")) == "" {
		telemetry.Warn("config.no_persistent_store", map[string]any{"env": env})
	}

	return Config{
		Port:              v.GetString("PORT"),
		Env:               env,
		CORSAllowOrigin:   splitAndTrim(v.GetString("CORS_ALLOW_ORIGINS")),
		GoalsPath:         strings.TrimSpace(v.GetString("GOALS_PATH")),
		OpenAIAPIKey:      strings.TrimSpace(v.GetString("OPENAI_API_KEY")),
		LLMModel:          strings.TrimSpace(v.GetString("LLM_MODEL")),
		LLMTimeout:        positiveDuration(v.GetDuration("LLM_TIMEOUT"), 30*time.Second),
		DatabaseURL:       dbURL,
		DBMaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
		DBMaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
		DBConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		DBConnMaxIdleTime: v.GetDuration("DB_CONN_MAX_IDLE_TIME"),
		DBPingTimeout:     v.GetDuration("DB_PING_TIMEOUT"),
		RedisURL:          strings.TrimSpace(v.GetString("REDIS_URL")),
		RoadmapTTL:        positiveDuration(v.GetDuration("ROADMAP_TTL"), 24*time.Hour),
		EventsStream:      strings.TrimSpace(v.GetString("EVENTS_STREAM")),
		ObjectStoreType:   normalizeStoreType(v.GetString("OBJECT_STORE")),
		LocalStoreDir:     v.GetString("LOCAL_STORE_DIR"),
		AWSRegion:         v.GetString("AWS_REGION"),
		S3Bucket:          v.GetString("S3_BUCKET"),
		S3Prefix:          v.GetString("S3_PREFIX"),
		SSEKMSKeyID:       v.GetString("SSE_KMS_KEY_ID"),
		RateLimitRPS:      v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst:    v.GetInt("RATE_LIMIT_BURST"),
	}
}

// Personalization reports whether a generative provider is configured.
func (c Config) Personalization() bool {
	return c.OpenAIAPIKey != ""
}

func positiveDuration(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	case "none", "off":
		return "none"
	default:
		return "local"
	}
}
