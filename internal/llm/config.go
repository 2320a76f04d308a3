package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted by Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures the model provider used by question
// authoring.
type Config struct {
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single generation including retries.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderOpenAI,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "openai/gpt-4o-mini"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 2 * time.Minute,
	}
}

// ConfigFromEnv reads KNOWTEST_LLM_* variables on top of DefaultConfig.
// When KNOWTEST_LLM_PROVIDER is unset, the vendor key variables are
// checked by DiscoverConfig.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	provider := os.Getenv("KNOWTEST_LLM_PROVIDER")
	if provider == "" {
		if found, ok := DiscoverConfig(); ok {
			cfg = found
		}
	} else {
		cfg.Provider = provider
	}

	setIf(&cfg.Anthropic.APIKey, "KNOWTEST_LLM_ANTHROPIC_API_KEY")
	setIf(&cfg.Anthropic.Model, "KNOWTEST_LLM_ANTHROPIC_MODEL")
	setIf(&cfg.OpenAI.APIKey, "KNOWTEST_LLM_OPENAI_API_KEY")
	setIf(&cfg.OpenAI.Model, "KNOWTEST_LLM_OPENAI_MODEL")
	setIf(&cfg.OpenAI.BaseURL, "KNOWTEST_LLM_OPENAI_BASE_URL")
	setIf(&cfg.Gemini.APIKey, "KNOWTEST_LLM_GEMINI_API_KEY")
	setIf(&cfg.Gemini.Model, "KNOWTEST_LLM_GEMINI_MODEL")
	setIf(&cfg.OpenRouter.APIKey, "KNOWTEST_LLM_OPENROUTER_API_KEY")
	setIf(&cfg.OpenRouter.Model, "KNOWTEST_LLM_OPENROUTER_MODEL")

	if d, err := time.ParseDuration(os.Getenv("KNOWTEST_LLM_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
	return cfg
}

func setIf(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// DiscoverConfig checks the vendor API key variables (OpenAI, Anthropic,
// Gemini, OpenRouter in that order) and returns a Config for the first
// one found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenAI
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = ProviderAnthropic
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = ProviderGemini
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenRouter
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}
	return Config{}, false
}

// Validate checks that the selected provider has an API key.
func (c Config) Validate() error {
	var key, env string
	switch c.Provider {
	case ProviderAnthropic:
		key, env = c.Anthropic.APIKey, "KNOWTEST_LLM_ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		key, env = c.OpenAI.APIKey, "KNOWTEST_LLM_OPENAI_API_KEY"
	case ProviderGemini:
		key, env = c.Gemini.APIKey, "KNOWTEST_LLM_GEMINI_API_KEY"
	case ProviderOpenRouter:
		key, env = c.OpenRouter.APIKey, "KNOWTEST_LLM_OPENROUTER_API_KEY"
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", env, c.Provider)
	}
	return nil
}
