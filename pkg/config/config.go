package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Session SessionConfig
	Redis   RedisConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

type SessionConfig struct {
	CookieName   string
	SigningKey   string
	TTL          time.Duration
	SecureCookie bool
}

type RedisConfig struct {
	URL      string
	Password string
	DB       int
	Enabled  bool
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8090"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 5*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Backend: BackendConfig{
			BaseURL: getEnv("BOOKING_API_URL", "http://localhost:3001/api"),
			Timeout: getDuration("BOOKING_API_TIMEOUT", 10*time.Second),
		},
		Session: SessionConfig{
			CookieName:   getEnv("SESSION_COOKIE", "frontdesk_session"),
			SigningKey:   getEnv("SESSION_SIGNING_KEY", "dev-only-secret-change-in-prod"),
			TTL:          getDuration("SESSION_TTL", 8*time.Hour),
			SecureCookie: getBool("SESSION_SECURE_COOKIE", false),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getInt("REDIS_DB", 0),
			Enabled:  getBool("REDIS_SESSIONS", false),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
