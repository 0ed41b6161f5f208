package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Advisor   AdvisorConfig
	Extractor ExtractorConfig
	Retention RetentionConfig
	Notes     NotesConfig
	Log       LogConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// AdvisorConfig configures the language-model backed advisory text generator.
// An empty APIKey disables the generator; every advisory call then takes its fallback path.
type AdvisorConfig struct {
	APIKey    string
	Model     string
	Timeout   time.Duration
	RateLimit int // requests per second
}

// ExtractorConfig configures listing-page retrieval.
type ExtractorConfig struct {
	Timeout   time.Duration
	UserAgent string
}

// RetentionConfig controls the scheduled purge of unsaved analyses.
// Days <= 0 disables the purge.
type RetentionConfig struct {
	Days     int
	Schedule string
}

// NotesConfig holds the fernet key used to encrypt portfolio notes at rest.
// An empty key stores notes as plain text.
type NotesConfig struct {
	EncryptionKey string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
	Env   string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	advisorTimeout, err := getEnvDuration("ADVISOR_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	advisorRate, err := getEnvInt("ADVISOR_RATE_LIMIT", 5)
	if err != nil {
		return nil, err
	}
	extractorTimeout, err := getEnvDuration("EXTRACTOR_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	retentionDays, err := getEnvInt("RETENTION_DAYS", 90)
	if err != nil {
		return nil, err
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/property_calculator.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost")),
		},
		Advisor: AdvisorConfig{
			APIKey:    getEnv("ADVISOR_API_KEY", os.Getenv("GEMINI_API_KEY")),
			Model:     getEnv("ADVISOR_MODEL", "gemini-2.5-flash"),
			Timeout:   advisorTimeout,
			RateLimit: advisorRate,
		},
		Extractor: ExtractorConfig{
			Timeout:   extractorTimeout,
			UserAgent: getEnv("EXTRACTOR_USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"),
		},
		Retention: RetentionConfig{
			Days:     retentionDays,
			Schedule: getEnv("RETENTION_SCHEDULE", "@daily"),
		},
		Notes: NotesConfig{
			EncryptionKey: getEnv("NOTES_ENCRYPTION_KEY", ""),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			Env:   getEnv("APP_ENV", "production"),
		},
	}

	if config.Advisor.Timeout <= 0 {
		return nil, fmt.Errorf("ADVISOR_TIMEOUT must be positive, got %s", config.Advisor.Timeout)
	}
	if config.Advisor.RateLimit <= 0 {
		return nil, fmt.Errorf("ADVISOR_RATE_LIMIT must be positive, got %d", config.Advisor.RateLimit)
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}

// getEnvDuration accepts Go duration strings ("15s") or a bare number of seconds.
func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
