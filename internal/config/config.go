package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	HTTPAddr        string
	MongoURI        string
	MongoDB         string
	ShutdownTimeout time.Duration

	JWTSecret string
	JWTTTL    time.Duration

	OrderOtpTTL     time.Duration
	ResetOtpTTL     time.Duration
	OtpConsumeGrace time.Duration

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string

	CORSOrigins string
}

// FromEnv builds Config with defaults, overridden by environment variables.
func FromEnv() Config {
	return Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		MongoURI:        envOrDefault("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:         envOrDefault("MONGODB_DB", "sweetshop"),
		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second),
		JWTSecret:       envOrDefault("JWT_SECRET", "secret"),
		JWTTTL:          envDuration("JWT_TTL_SECONDS", 8*time.Hour),
		OrderOtpTTL:     envDuration("ORDER_OTP_TTL_SECONDS", 5*time.Minute),
		ResetOtpTTL:     envDuration("RESET_OTP_TTL_SECONDS", 10*time.Minute),
		OtpConsumeGrace: envDuration("OTP_CONSUME_GRACE_SECONDS", 10*time.Minute),
		SMTPHost:        envOrDefault("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:        envInt("SMTP_PORT", 587),
		SMTPUser:        envOrDefault("EMAIL_USER", ""),
		SMTPPass:        envOrDefault("EMAIL_PASS", ""),
		MailFrom:        envOrDefault("MAIL_FROM", "Sweet Shop <no-reply@sweetshop.local>"),
		CORSOrigins:     envOrDefault("CORS_ORIGINS", "*"),
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		seconds, err := strconv.Atoi(v)
		if err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return def
}
