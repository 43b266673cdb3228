package translate

import (
	"context"
	"fmt"
)

// Provider defines the interface for language-model backends
type Provider interface {
	// Complete sends a single prompt and returns the model's text reply
	Complete(ctx context.Context, prompt string) (string, error)

	// Name returns the provider name
	Name() string
}

// ProviderConfig holds common configuration for providers
type ProviderConfig struct {
	Provider string // Provider name: "openai" or "gemini"
	APIKey   string
	Model    string
}

// NewProvider creates the appropriate provider based on configuration
func NewProvider(ctx context.Context, config *ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("%s API key is required", config.Provider)
	}

	switch config.Provider {
	case "openai":
		return NewOpenAIProvider(config.APIKey, config.Model), nil

	case "gemini":
		return NewGeminiProvider(ctx, config.APIKey, config.Model)

	default:
		return nil, fmt.Errorf("unknown provider: %s", config.Provider)
	}
}
