package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Settings struct {
	Port           string
	DatabaseDSN    string
	JWTSecret      string
	TokenTTL       time.Duration
	AllowedOrigins []string
	RabbitURL      string
	RabbitExchange string
	AutoMigrate    bool
	// AllowAdminSignup lets /auth/register create admin accounts. Off by
	// default; enable it to bootstrap the first admin.
	AllowAdminSignup bool
	CookieDomain     string
	LambdaMode       bool
}

func LoadSettings() (*Settings, error) {
	if err := godotenv.Load(); err != nil {
		Logger.Debug("No .env file found, using system env")
	}

	s := &Settings{
		Port:           getEnv("PORT", "8080"),
		DatabaseDSN:    os.Getenv("DATABASE_DSN"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		RabbitURL:      os.Getenv("RABBITMQ_URL"),
		RabbitExchange: getEnv("RABBITMQ_EXCHANGE", "exam.events"),
		CookieDomain:   os.Getenv("COOKIE_DOMAIN"),
		LambdaMode:     os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "",
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
	}

	if s.DatabaseDSN == "" {
		return nil, errors.New("DATABASE_DSN is required")
	}
	if s.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	ttl, err := time.ParseDuration(getEnv("JWT_TTL", "24h"))
	if err != nil {
		return nil, errors.New("JWT_TTL must be a valid duration")
	}
	s.TokenTTL = ttl

	migrate, err := strconv.ParseBool(getEnv("DB_AUTO_MIGRATE", "true"))
	if err != nil {
		return nil, errors.New("DB_AUTO_MIGRATE must be a boolean")
	}
	s.AutoMigrate = migrate

	adminSignup, err := strconv.ParseBool(getEnv("ALLOW_ADMIN_SIGNUP", "false"))
	if err != nil {
		return nil, errors.New("ALLOW_ADMIN_SIGNUP must be a boolean")
	}
	s.AllowAdminSignup = adminSignup

	return s, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
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
