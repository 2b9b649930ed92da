package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server binds to localhost unless told otherwise: nothing in front of
	// the API authenticates callers.
	ServerHost  string
	ServerPort  string
	DBPath      string
	Environment string
	// Remote database (Turso). When set, DBPath is ignored.
	TursoDatabaseURL string
	TursoAuthToken   string
	// Email (Resend)
	ResendAPIKey  string
	EmailFrom     string
	EmailFromName string
	EmailTestMode bool // When true, emails are logged to console instead of sent
	// Cases
	CaseNumberPrefix string
	// Requests per client per minute on the API, 0 disables limiting
	APIRateLimit int
	// Scheduler
	TeamSyncSchedule  string // cron spec, empty disables the job
	SchedulerTimezone string
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		ServerHost:        getEnv("SERVER_HOST", "127.0.0.1"),
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		DBPath:            getEnv("DB_PATH", "db/app.db"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		TursoDatabaseURL:  getEnv("TURSO_DATABASE_URL", ""),
		TursoAuthToken:    getEnv("TURSO_AUTH_TOKEN", ""),
		ResendAPIKey:      getEnv("RESEND_API_KEY", ""),
		EmailFrom:         getEnv("EMAIL_FROM", "noreply@caseteam.local"),
		EmailFromName:     getEnv("EMAIL_FROM_NAME", "Case Team"),
		EmailTestMode:     getEnvBool("EMAIL_TEST_MODE", true), // Default true for safety
		CaseNumberPrefix:  getEnv("CASE_NUMBER_PREFIX", "CASE"),
		APIRateLimit:      getEnvInt("API_RATE_LIMIT", 300),
		TeamSyncSchedule:  getEnv("TEAM_SYNC_SCHEDULE", "0 2 * * *"),
		SchedulerTimezone: getEnv("SCHEDULER_TIMEZONE", "UTC"),
	}
}

// IsProduction reports whether the app runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Address returns the host:port the server listens on
func (c *Config) Address() string {
	return c.ServerHost + ":" + c.ServerPort
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Printf("Using default value for %s: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("[WARNING] Invalid integer for %s (%q), using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}
