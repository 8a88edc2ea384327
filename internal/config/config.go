package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	QuestionSourceEmbedded = "embedded"
	QuestionSourceMongo    = "mongo"
)

// Config is the service configuration, read from the environment.
type Config struct {
	Port           string
	AllowedOrigins []string
	JWTSecret      string

	DatabaseEnabled  bool
	PostgresHost     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresPort     string
	PostgresSSLMode  string

	RedisAddr string

	QuestionSource      string
	MongoURI            string
	QuestionsDBName     string
	QuestionsCollection string

	SessionIdleTTL       time.Duration
	SessionSweepSchedule string
	CompanyCacheTTL      time.Duration

	ReportExportEnabled  bool
	ReportExportSchedule string
	ReportExportDir      string
}

// LoadConfig reads an optional .env file and then the environment.
func LoadConfig() (*Config, error) {
	// a missing .env is fine; real deployments set variables directly
	_ = godotenv.Load()

	config := &Config{
		Port:           getEnvOrDefault("PORT", "8080"),
		AllowedOrigins: splitList(getEnvOrDefault("ALLOWED_ORIGINS", "http://localhost:5173")),
		JWTSecret:      os.Getenv("JWT_SECRET"),

		DatabaseEnabled:  getEnvBool("DATABASE_ENABLED", true),
		PostgresHost:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
		PostgresUser:     getEnvOrDefault("POSTGRES_USER", "postgres"),
		PostgresPassword: getEnvOrDefault("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       getEnvOrDefault("POSTGRES_DB", "postgres"),
		PostgresPort:     getEnvOrDefault("POSTGRES_PORT", "5432"),
		PostgresSSLMode:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),

		RedisAddr: os.Getenv("REDIS_ADDR"),

		QuestionSource:      strings.ToLower(getEnvOrDefault("QUESTION_SOURCE", QuestionSourceEmbedded)),
		MongoURI:            os.Getenv("MONGO_URI"),
		QuestionsDBName:     getEnvOrDefault("QUESTIONS_DB_NAME", "interview"),
		QuestionsCollection: getEnvOrDefault("QUESTIONS_COLLECTION", "questions"),

		SessionIdleTTL:       getEnvDuration("SESSION_IDLE_TTL", 2*time.Hour),
		SessionSweepSchedule: getEnvOrDefault("SESSION_SWEEP_SCHEDULE", "@every 5m"),
		CompanyCacheTTL:      getEnvDuration("COMPANY_CACHE_TTL", 15*time.Minute),

		ReportExportEnabled:  getEnvBool("REPORT_EXPORT_ENABLED", false),
		ReportExportSchedule: getEnvOrDefault("REPORT_EXPORT_SCHEDULE", "0 2 * * *"),
		ReportExportDir:      getEnvOrDefault("REPORT_EXPORT_DIR", "./exports"),
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

// PostgresDSN renders the connection string for gorm's postgres driver.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresPort, c.PostgresSSLMode)
}

func validateConfig(config *Config) error {
	switch config.QuestionSource {
	case QuestionSourceEmbedded:
	case QuestionSourceMongo:
		if config.MongoURI == "" {
			return errors.New("MONGO_URI is required when QUESTION_SOURCE is mongo")
		}
	default:
		return errors.New("unsupported QUESTION_SOURCE: " + config.QuestionSource + ". Supported: embedded, mongo")
	}
	if config.SessionIdleTTL <= 0 {
		return errors.New("SESSION_IDLE_TTL must be positive")
	}
	if config.ReportExportEnabled && !config.DatabaseEnabled {
		return errors.New("REPORT_EXPORT_ENABLED requires DATABASE_ENABLED")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
