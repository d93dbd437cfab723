package config

import (
	"os"
	"strings"
)

type Config struct {
	Port       string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret    string
	JWTExpiresIn string // minutes

	AllowedOrigins []string

	LogLevel  string
	LogFormat string // json or console

	// WalkInSubmissions allows unknown file numbers to be enrolled lazily on
	// first submission instead of being rejected. Off by default: rosters
	// are teacher-controlled.
	WalkInSubmissions bool
}

func Load() *Config {
	return &Config{
		Port:       getenv("PORT", "8080"),
		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBUser:     getenv("DB_USER", "postgres"),
		DBPassword: getenv("DB_PASSWORD", "postgres"),
		DBName:     getenv("DB_NAME", "wordcloud_db"),
		DBSSLMode:  getenv("DB_SSLMODE", "disable"),

		JWTSecret:    getenv("JWT_SECRET", "devsecret_change_me"),
		JWTExpiresIn: getenv("JWT_EXPIRES_IN", "60"),

		AllowedOrigins: splitList(getenv("ALLOWED_ORIGINS", "")),

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "json"),

		WalkInSubmissions: getenvBool("WALK_IN_SUBMISSIONS", false),
	}
}

func getenv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func getenvBool(key string, fallback bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return fallback
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
