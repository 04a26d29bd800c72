package providers

import (
	"context"
	"fmt"
	"os"
)

// Request contains the prompts sent to an LLM.
type Request struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float64
}

// Response contains the raw response from an LLM plus token usage.
type Response struct {
	Content      string
	InputTokens  int
	OutputTokens int
}

// Generator is the provider abstraction interface.
type Generator interface {
	Generate(ctx context.Context, req Request) (Response, error)
	Name() string
}

// ClientConfig carries resolved provider state through call chains.
// Initialized is explicit rather than a package-level flag so that two
// reviews in one process can use different providers without interference.
type ClientConfig struct {
	Provider    string
	Model       string
	APIKey      string
	Initialized bool
}

type constructor func(apiKey, model string) (Generator, error)

var constructors = map[string]constructor{
	"anthropic":  newAnthropic,
	"openai":     newOpenAI,
	"gemini":     newGemini,
	"google":     newGemini,
	"openrouter": newOpenRouter,
}

// apiKeyEnv maps a provider to the environment variables consulted for
// credentials, in priority order.
var apiKeyEnv = map[string][]string{
	"anthropic":  {"ANTHROPIC_API_KEY"},
	"openai":     {"OPENAI_API_KEY"},
	"gemini":     {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
	"google":     {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
	"openrouter": {"OPENROUTER_API_KEY"},
}

// Resolve builds an initialized ClientConfig for the provider from
// environment credentials.
func Resolve(provider, model string) (ClientConfig, error) {
	envs, ok := apiKeyEnv[provider]
	if !ok {
		return ClientConfig{}, fmt.Errorf("unknown provider: %s", provider)
	}
	for _, env := range envs {
		if key := os.Getenv(env); key != "" {
			return ClientConfig{
				Provider:    provider,
				Model:       model,
				APIKey:      key,
				Initialized: true,
			}, nil
		}
	}
	return ClientConfig{}, &authError{message: fmt.Sprintf("%s is not set", envs[0])}
}

// New creates a provider client from an initialized config.
func New(cfg ClientConfig) (Generator, error) {
	if !cfg.Initialized {
		return nil, fmt.Errorf("client config for %s is not initialized", cfg.Provider)
	}
	ctor, ok := constructors[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
	return ctor(cfg.APIKey, cfg.Model)
}
