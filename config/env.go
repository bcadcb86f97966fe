package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Env struct {
	Port string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	RedisAddr string
	RedisPass string
	RedisDB   int

	JWTSecret      string
	JWTExpiryHours int

	LockoutThreshold int
	LockoutMinutes   int

	ResetTokenExpMinutes int
	FrontendBaseURL      string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string

	GeminiAPIKey string
	GeminiModel  string
}

// LoadEnv reads configuration from a .env file if present, falling back to
// the process environment for anything not set there.
func LoadEnv() (*Env, error) {
	_ = godotenv.Load()

	env := &Env{
		Port: getEnv("PORT", "3000"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "kando_piar"),
		DBPort:     getEnv("DB_PORT", "5432"),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass: getEnv("REDIS_PASSWORD", ""),
		RedisDB:   getEnvInt("REDIS_DB", 0),

		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTExpiryHours: getEnvInt("JWT_EXPIRY_HOURS", 8),

		LockoutThreshold: getEnvInt("LOCKOUT_THRESHOLD", 3),
		LockoutMinutes:   getEnvInt("LOCKOUT_MINUTES", 15),

		ResetTokenExpMinutes: getEnvInt("RESET_TOKEN_EXP_MINUTES", 30),
		FrontendBaseURL:      getEnv("FRONTEND_BASE_URL", "http://localhost:5173"),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", ""),
		SMTPFromName: getEnv("SMTP_FROM_NAME", "Kando PIAR"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
	}

	if env.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return env, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
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
