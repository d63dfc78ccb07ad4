package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Paths  PathsConfig
	Render RenderConfig
	LLM    LLMConfig
	Runs   int
	XLSX   bool
}

// PathsConfig holds the fixed input file locations
type PathsConfig struct {
	KeyPath    string
	SchemaPath string
	JobsPath   string // optional; empty selects the built-in job list
}

// RenderConfig holds page rasterization settings
type RenderConfig struct {
	PageIndex int
	Zoom      float64
}

// LLMConfig holds inference-call configuration
type LLMConfig struct {
	Model   string
	BaseURL string
	Timeout time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			KeyPath:    getEnv("API_KEY_PATH", "./api_key.txt"),
			SchemaPath: getEnv("SCHEMA_PATH", "./structure.json"),
			JobsPath:   getEnv("JOBS_FILE", ""),
		},
		Render: RenderConfig{
			PageIndex: getEnvAsInt("PAGE_INDEX", 0),
			Zoom:      getEnvAsFloat64("RENDER_ZOOM", 3.5),
		},
		LLM: LLMConfig{
			Model:   getEnv("OPENAI_MODEL", "gpt-5-nano"),
			BaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Timeout: getEnvAsDuration("OPENAI_TIMEOUT", 90*time.Second),
		},
		Runs: getEnvAsInt("TEST_RUNS", 1),
		XLSX: getEnvAsBool("EXPORT_XLSX", false),
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
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
