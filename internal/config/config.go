package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	DBDriver       string
	DatabaseURL    string
	LLMProvider    string
	GeminiAPIKey   string
	GeminiModel    string
	CloudProject   string
	CloudLocation  string
	APIBaseURL     string
	RequestTimeout time.Duration
	AllowOrigins   []string
	ResumeDir      string

	Interview Interview
}

// Load reads .env (if present), the environment, and the optional interview
// YAML file named by INTERVIEW_CONFIG.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, using process environment")
	}

	cfg := &Config{
		Port:           getEnv("PORT", "8000"),
		DBDriver:       getEnv("DB_DRIVER", "postgres"),
		DatabaseURL:    getEnv("DATABASE_URL", "host=localhost user=postgres password=password dbname=jobtracker port=5432 sslmode=disable"),
		LLMProvider:    getEnv("LLM_PROVIDER", "googleai"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		CloudProject:   os.Getenv("GOOGLE_CLOUD_PROJECT"),
		CloudLocation:  getEnv("GOOGLE_CLOUD_LOCATION", "us-central1"),
		APIBaseURL:     getEnv("API_BASE_URL", "http://localhost:8000"),
		RequestTimeout: getEnvAsDuration("REQUEST_TIMEOUT", 60*time.Second),
		ResumeDir:      getEnv("RESUME_DIR", "generated_resumes"),
		Interview:      DefaultInterview(),
	}

	if path := os.Getenv("INTERVIEW_CONFIG"); path != "" {
		iv, err := LoadInterview(path)
		if err != nil {
			return nil, err
		}
		cfg.Interview = *iv
	}
	cfg.Interview.Temperature = getEnvAsFloat("LLM_TEMPERATURE", cfg.Interview.Temperature)

	// Empty means any origin is allowed.
	for _, origin := range strings.Split(os.Getenv("ALLOW_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowOrigins = append(cfg.AllowOrigins, origin)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings the API server needs.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", c.DBDriver)
	}

	switch c.LLMProvider {
	case "googleai":
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for the googleai provider")
		}
	case "vertex":
		if c.CloudProject == "" {
			return fmt.Errorf("GOOGLE_CLOUD_PROJECT is required for the vertex provider")
		}
	default:
		return fmt.Errorf("LLM_PROVIDER must be googleai or vertex, got %q", c.LLMProvider)
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}
	return c.Interview.Validate()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// ClientTimeout returns REQUEST_TIMEOUT for tools that do not need the full
// server configuration.
func ClientTimeout() time.Duration {
	return getEnvAsDuration("REQUEST_TIMEOUT", 60*time.Second)
}

// APIBaseURL returns API_BASE_URL or the local default.
func APIBaseURL() string {
	return getEnv("API_BASE_URL", "http://localhost:8000")
}
