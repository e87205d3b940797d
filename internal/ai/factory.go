package ai

import (
	"context"
	"net/http"

	"github.com/amishk599/resumeiq/internal/config"
)

// NewProvider builds the provider named by cfg. It never reads the environment;
// an empty APIKey yields UnconfiguredProvider.
func NewProvider(ctx context.Context, cfg config.AIConfig, httpClient *http.Client) (Provider, error) {
	if cfg.APIKey == "" {
		return UnconfiguredProvider{}, nil
	}
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAIProvider(cfg.BaseURL, cfg.APIKey, cfg.Model, httpClient), nil
	default:
		return NewGeminiProvider(ctx, cfg.APIKey, cfg.Model, cfg.BaseURL, httpClient)
	}
}
