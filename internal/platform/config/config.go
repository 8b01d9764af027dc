package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process level configuration pulled from the environment.
type Server struct {
	Addr        string
	DatabaseURL string
	Redis       RedisConfig
	Gemini      GeminiConfig
	AdminToken  string

	// Default X12 qualifiers applied when the stored document metadata
	// does not override them.
	DefaultAgency  string
	DefaultVersion string

	// ExtractTimeout bounds a single LLM extraction call.
	ExtractTimeout time.Duration
}

// RedisConfig configures the optional definition cache tier.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	TTL          time.Duration
}

// GeminiConfig configures the LLM extraction backend.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("MERCURY_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-1.5-pro"
	}

	agency := os.Getenv("EDI_DEFAULT_AGENCY")
	if agency == "" {
		agency = "X"
	}
	version := os.Getenv("EDI_DEFAULT_VERSION")
	if version == "" {
		version = "004010"
	}

	return Server{
		Addr:        addr,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			TTL:          envDuration("REDIS_DEFINITION_TTL", time.Hour),
		},
		Gemini: GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  model,
		},
		AdminToken:     os.Getenv("ADMIN_TOKEN"),
		DefaultAgency:  agency,
		DefaultVersion: version,
		ExtractTimeout: envDuration("EXTRACT_TIMEOUT", 10*time.Minute),
	}
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
