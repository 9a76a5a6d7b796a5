package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Providers selectable through LLM_PROVIDER.
const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

const (
	DefaultOllamaURL = "http://localhost:11434"
	DefaultModel     = "mistral:latest"
	DefaultTimeout   = 120 * time.Second
)

// ErrUnavailable is returned when the model service cannot be reached or answers with a failure.
var ErrUnavailable = errors.New("the local model service is not running")

// Generator completes a prompt with a language model.
type Generator interface {
	Name() string
	// Generate returns the raw completion. An empty model uses the configured default.
	Generate(ctx context.Context, prompt, model string) (string, error)
	// Ping reports whether the service is reachable.
	Ping(ctx context.Context) error
}

// Config selects and configures a provider.
type Config struct {
	Provider      string
	Model         string
	OllamaURL     string
	OpenAIKey     string
	OpenAIBaseURL string
	GeminiKey     string
	Timeout       time.Duration
}

// NewGenerator builds the configured provider. A provider missing its credentials yields an
// Unconfigured generator so the rest of the builder keeps working.
func NewGenerator(ctx context.Context, cfg Config) (Generator, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderOllama:
		return NewOllamaClient(cfg.OllamaURL, cfg.Model, cfg.Timeout), nil
	case ProviderOpenAI:
		if strings.TrimSpace(cfg.OpenAIKey) == "" && strings.TrimSpace(cfg.OpenAIBaseURL) == "" {
			return Unconfigured{Provider: ProviderOpenAI, Reason: "OPENAI_API_KEY is required"}, nil
		}
		return NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.Model), nil
	case ProviderGemini:
		if strings.TrimSpace(cfg.GeminiKey) == "" {
			return Unconfigured{Provider: ProviderGemini, Reason: "GEMINI_API_KEY is required"}, nil
		}
		return NewGeminiClient(ctx, cfg.GeminiKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.Provider)
	}
}

// Unconfigured is a placeholder generator for a provider without credentials.
type Unconfigured struct {
	Provider string
	Reason   string
}

// Name returns the provider name.
func (u Unconfigured) Name() string { return u.Provider }

// Generate always fails with ErrUnavailable.
func (u Unconfigured) Generate(context.Context, string, string) (string, error) {
	return "", fmt.Errorf("%w: %s", ErrUnavailable, u.Reason)
}

// Ping always fails with ErrUnavailable.
func (u Unconfigured) Ping(context.Context) error {
	return fmt.Errorf("%w: %s", ErrUnavailable, u.Reason)
}
