package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Env             string
	Port            string
	CORSAllowOrigin []string

	LLMProvider         string
	LLMModel            string
	OllamaURL           string
	OpenAIAPIKey        string
	OpenAIBaseURL       string
	GeminiAPIKey        string
	AITimeout           time.Duration
	AIRateLimitPerMin   int
	DefaultRateLimitMin int

	SessionTTL             time.Duration
	SessionSweepInterval   time.Duration
	RecentExperienceMonths int
	ChromePath             string
	PDFTimeout             time.Duration

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	GitHubClientID     string
	GitHubClientSecret string
	GitHubRedirectURL  string
	UIRedirectURL      string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))

	cfg := Config{
		Env:             env,
		Port:            getEnv("PORT", "8080"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000")),

		LLMProvider:         strings.ToLower(getEnv("LLM_PROVIDER", "ollama")),
		LLMModel:            getEnv("LLM_MODEL", ""),
		OllamaURL:           getEnv("OLLAMA_URL", "http://localhost:11434"),
		OpenAIAPIKey:        getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:       getEnv("OPENAI_BASE_URL", ""),
		GeminiAPIKey:        getEnv("GEMINI_API_KEY", ""),
		AITimeout:           time.Duration(getInt("AI_TIMEOUT_SECONDS", 120)) * time.Second,
		AIRateLimitPerMin:   getInt("AI_RATE_LIMIT_PER_MINUTE", 10),
		DefaultRateLimitMin: getInt("RATE_LIMIT_PER_MINUTE", 300),

		SessionTTL:             time.Duration(getInt("SESSION_TTL_MINUTES", 120)) * time.Minute,
		SessionSweepInterval:   time.Duration(getInt("SESSION_SWEEP_SECONDS", 60)) * time.Second,
		RecentExperienceMonths: getInt("RECENT_EXPERIENCE_MONTHS", 24),
		ChromePath:             getEnv("CHROME_PATH", ""),
		PDFTimeout:             time.Duration(getInt("PDF_TIMEOUT_SECONDS", 60)) * time.Second,

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
		GitHubClientID:     getEnv("GITHUB_CLIENT_ID", ""),
		GitHubClientSecret: getEnv("GITHUB_CLIENT_SECRET", ""),
		GitHubRedirectURL:  getEnv("GITHUB_REDIRECT_URL", ""),
		UIRedirectURL:      getEnv("UI_REDIRECT_URL", ""),
	}

	if env == "production" && cfg.LLMProvider == "openai" && cfg.OpenAIAPIKey == "" && cfg.OpenAIBaseURL == "" {
		log.Printf("OPENAI_API_KEY is required in production when LLM_PROVIDER=openai")
	}
	return cfg
}

// IsProduction reports whether the service runs in production.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		log.Printf("invalid %s=%q, using %d", key, raw, def)
		return def
	}
	return n
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}
