package config

import (
	"os"
	"strconv"
)

// Config holds all configuration for the application
type Config struct {
	// Google Cloud
	ProjectID string
	Location  string

	// Server
	Port  string
	Debug bool

	// Gemini model used for resume/JD extraction and chat answering
	GeminiModel string

	// Ranking defaults, overridable per request
	DefaultTopK     int
	DefaultMinScore float64

	// Timeouts and limits
	HTTPTimeoutSeconds int
	MaxBulkIngest      int

	// Authentication
	JWTSecret      string
	JWTExpiryHours int

	// Cloud Storage bucket for uploaded resumes and job descriptions
	DocumentBucketName string
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		// Google Cloud
		ProjectID: getEnv("PROJECT_ID", ""),
		Location:  getEnv("LOCATION", ""),

		// Server
		Port:  getEnv("PORT", "8080"),
		Debug: getEnvBool("DEBUG", false),

		// Gemini Model
		GeminiModel: getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		// Ranking defaults
		DefaultTopK:     getEnvInt("DEFAULT_TOP_K", 10),
		DefaultMinScore: getEnvFloat("DEFAULT_MIN_SCORE", 0.3),

		// Timeouts and limits
		HTTPTimeoutSeconds: getEnvInt("HTTP_TIMEOUT_SECONDS", 30),
		MaxBulkIngest:      getEnvInt("MAX_BULK_INGEST", 100),

		// Authentication
		JWTSecret:      getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTExpiryHours: getEnvInt("JWT_EXPIRY_HOURS", 24),

		// Cloud Storage
		DocumentBucketName: getEnv("DOCUMENT_BUCKET_NAME", ""),
	}

	return cfg
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	// ProjectID is required for Firestore and Vertex AI
	if c.ProjectID == "" {
		return &ConfigError{Field: "PROJECT_ID", Message: "PROJECT_ID is required for Firestore and Vertex AI"}
	}

	if c.DefaultTopK <= 0 {
		return &ConfigError{Field: "DEFAULT_TOP_K", Message: "DEFAULT_TOP_K must be positive"}
	}
	if c.DefaultMinScore < 0 || c.DefaultMinScore > 1 {
		return &ConfigError{Field: "DEFAULT_MIN_SCORE", Message: "DEFAULT_MIN_SCORE must be within [0,1]"}
	}

	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
