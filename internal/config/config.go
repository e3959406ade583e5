package config

import (
	"fmt"     // For error formatting
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For joining collected errors
	"time"    // For durations and time zones

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort    string         // Application port
	DBUser     string         // Database user
	DBPassword string         // Database password
	DBHost     string         // Database host
	DBPort     string         // Database port
	DBName     string         // Database name
	JWTSecret  string         // Secret used to sign session tokens
	SessionTTL time.Duration  // Lifetime of a session token
	RedisAddr  string         // Redis server address
	RedisPass  string         // Redis password
	RedisDB    int            // Redis database number
	CacheTTL   time.Duration  // Lifetime of cached weekly reports
	Location   *time.Location // Time zone used to compute calendar dates
	IsProd     bool           // Is production environment
}

// DSN builds the MySQL Data Source Name for gorm
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true&loc=UTC&charset=utf8mb4"
}

// LoadConfig loads configuration from environment variables.
// Every invalid or missing value is collected and reported in a single error.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load() // Load .env file if present

	var problems []string // Collected configuration problems

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		problems = append(problems, fmt.Sprintf("invalid REDIS_DB: %v", err))
	}
	sessionTTL := getDuration("SESSION_TTL", 24*time.Hour, &problems)
	cacheTTL := getDuration("CACHE_TTL", 60*time.Second, &problems)

	loc, err := time.LoadLocation(getEnv("APP_TIMEZONE", "UTC"))
	if err != nil {
		problems = append(problems, fmt.Sprintf("invalid APP_TIMEZONE: %v", err))
		loc = time.UTC
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		problems = append(problems, "missing required environment variable: JWT_SECRET")
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(problems, "\n- "))
	}

	return &Config{
		AppPort:    getEnv("APP_PORT", "8080"),             // Application port
		DBUser:     os.Getenv("DB_USER"),                   // Database user
		DBPassword: os.Getenv("DB_PASSWORD"),               // Database password
		DBHost:     getEnv("DB_HOST", "127.0.0.1"),         // Database host
		DBPort:     getEnv("DB_PORT", "3306"),              // Database port
		DBName:     os.Getenv("DB_NAME"),                   // Database name
		JWTSecret:  jwtSecret,                              // JWT secret key
		SessionTTL: sessionTTL,                             // Session lifetime
		RedisAddr:  getEnv("REDIS_ADDR", "127.0.0.1:6379"), // Redis server address
		RedisPass:  os.Getenv("REDIS_PASS"),                // Redis password
		RedisDB:    redisDB,                                // Redis database number
		CacheTTL:   cacheTTL,                               // Weekly report cache lifetime
		Location:   loc,                                    // Calendar time zone
		IsProd:     os.Getenv("IS_PROD") == "true",         // Is production environment
	}, nil
}

// getEnv returns the variable or def when it is unset or empty
func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// getDuration parses a duration variable such as "15m" or "24h"
func getDuration(key string, def time.Duration, problems *[]string) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		*problems = append(*problems, fmt.Sprintf("invalid value for %s: expected positive duration, got '%s'", key, raw))
		return def
	}
	return d
}
