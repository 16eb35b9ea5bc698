package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string
	LocalDBPath string
	JWTSecret   string

	KafkaBroker string
	KafkaTopic  string

	OutboxRetrySchedule string
	ReviewSyncSchedule  string
	OutboxMaxAttempts   int
	OutboxBaseBackoff   time.Duration
	OutboxMaxBackoff    time.Duration

	CollegesCacheTTL time.Duration
	SeedColleges     bool

	BrevoAPIKey     string
	EmailSender     string
	EmailSenderName string
	AlertEmail      string
}

func Load() Config {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("Warning: .env file not found, reading from system environment variables")
	}

	return Config{
		Port:        Env("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		LocalDBPath: Env("LOCAL_DB_PATH", "college_review.db"),
		JWTSecret:   os.Getenv("JWT_SECRET"),

		KafkaBroker: os.Getenv("KAFKA_BROKER"),
		KafkaTopic:  Env("KAFKA_TOPIC", "college-reviews"),

		OutboxRetrySchedule: Env("OUTBOX_RETRY_SCHEDULE", "@every 30s"),
		ReviewSyncSchedule:  Env("REVIEW_SYNC_SCHEDULE", "@every 15m"),
		OutboxMaxAttempts:   intValue("OUTBOX_MAX_ATTEMPTS", 8),
		OutboxBaseBackoff:   durationValue("OUTBOX_BASE_BACKOFF", 5*time.Second),
		OutboxMaxBackoff:    durationValue("OUTBOX_MAX_BACKOFF", 10*time.Minute),

		CollegesCacheTTL: durationValue("COLLEGES_CACHE_TTL", 6*time.Hour),
		SeedColleges:     strings.EqualFold(os.Getenv("SEED_COLLEGES"), "true"),

		BrevoAPIKey:     os.Getenv("BREVO_API_KEY"),
		EmailSender:     os.Getenv("EMAIL_SENDER"),
		EmailSenderName: os.Getenv("EMAIL_SENDER_NAME"),
		AlertEmail:      os.Getenv("ALERT_EMAIL"),
	}
}

// Env returns the environment value for key, or fallback when unset.
func Env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intValue(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("⚠️ Invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func durationValue(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("⚠️ Invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
