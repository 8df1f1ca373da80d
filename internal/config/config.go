package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

type Config struct {
	// Server
	Port string

	// Completion backend
	Provider        string
	MaxTokens       int
	Temperature     float64
	UpstreamTimeout time.Duration

	// OpenAI
	OpenAIAPIKey string
	OpenAIAPIURL string
	OpenAIModel  string

	// Gemini AI
	GeminiAPIKey string
	GeminiModel  string

	// Metrics
	MetricsNamespace string

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:             getEnvOrDefault("PORT", "8080"),
		Provider:         getEnvOrDefault("LLM_PROVIDER", ProviderOpenAI),
		MaxTokens:        getEnvAsIntOrDefault("LLM_MAX_TOKENS", 1000),
		Temperature:      getEnvAsFloatOrDefault("LLM_TEMPERATURE", 0.7),
		UpstreamTimeout:  getEnvAsDurationOrDefault("UPSTREAM_TIMEOUT", 60*time.Second),
		OpenAIAPIURL:     getEnvOrDefault("OPENAI_API_URL", "https://api.openai.com/v1/chat/completions"),
		OpenAIModel:      getEnvOrDefault("OPENAI_MODEL", "gpt-4"),
		GeminiModel:      getEnvOrDefault("GEMINI_MODEL", "gemini-1.5-pro"),
		MetricsNamespace: getEnvOrDefault("METRICS_NAMESPACE", "clanchief"),
		FrontendURL:      getEnvOrDefault("FRONTEND_URL", "http://localhost:3000"),
	}

	// Only the selected backend's key is required
	switch cfg.Provider {
	case ProviderOpenAI:
		cfg.OpenAIAPIKey = mustGetEnv("OPENAI_API_KEY")
	case ProviderGemini:
		cfg.GeminiAPIKey = mustGetEnv("GEMINI_API_KEY")
	default:
		panic(fmt.Sprintf("unsupported LLM_PROVIDER %q (want %q or %q)", cfg.Provider, ProviderOpenAI, ProviderGemini))
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsFloatOrDefault(key string, defaultVal float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return defaultVal
	}
	return f
}

// getEnvAsDurationOrDefault accepts Go duration strings ("90s", "2m").
func getEnvAsDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}
