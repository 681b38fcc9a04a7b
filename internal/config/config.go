package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// defaultSystemPrompt is the behavioral policy sent with every generation
// call. It is opaque configuration; override it with SYSTEM_PROMPT.
const defaultSystemPrompt = "You are a Study bot,that can answer only study-related questions. " +
	"If the user shares personal info like name, remember it and use it naturally."

type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DatabaseURL string

	// Redis
	RedisURL string

	// Model gateway
	ModelProvider string
	GroqAPIKey    string
	GroqModel     string
	GeminiAPIKey  string
	GeminiModel   string
	SystemPrompt  string

	// Request handling
	GenerateTimeoutSecs int
	AuthRequestsPerMin  int
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:        getEnvOrDefault("PORT", "8080"),
		Env:         getEnvOrDefault("ENV", "development"),
		DatabaseURL: mustGetEnv("DATABASE_URL"),
		RedisURL:    mustGetEnv("REDIS_URL"),

		// Model API keys are deliberately optional here: a missing key
		// surfaces as a 500 from /chat, not as a boot failure.
		ModelProvider: getEnvOrDefault("MODEL_PROVIDER", "groq"),
		GroqAPIKey:    os.Getenv("GROQ_API_KEY"),
		GroqModel:     getEnvOrDefault("GROQ_MODEL", "openai/gpt-oss-20b"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		SystemPrompt:  getEnvOrDefault("SYSTEM_PROMPT", defaultSystemPrompt),

		GenerateTimeoutSecs: getEnvAsIntOrDefault("GENERATE_TIMEOUT_SECONDS", 60),
		AuthRequestsPerMin:  getEnvAsIntOrDefault("AUTH_REQUESTS_PER_MINUTE", 10),
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
