package commands

import (
	"fmt"

	"github.com/colinmakerofthings/logpilot-cli/internal/ai"
	"github.com/colinmakerofthings/logpilot-cli/internal/config"
	"github.com/colinmakerofthings/logpilot-cli/internal/prompt"
)

// NewProvider builds the analysis provider selected by cfg. The pipeline
// itself only sees the ai.Provider interface, so tests can inject ai.Mock
// directly without touching configuration.
func NewProvider(cfg *config.Config) (ai.Provider, error) {
	switch ai.ProviderType(cfg.LLMProvider) {
	case ai.ProviderAnthropic:
		return ai.NewClient(ai.AnthropicConfig{
			APIKey:         cfg.AnthropicAPIKey,
			Model:          cfg.ClaudeModel,
			System:         prompt.SystemPrompt,
			ProxyURL:       cfg.GetProxyURL(true),
			TimeoutSeconds: cfg.AITimeoutSeconds,
			MaxTokens:      cfg.AIMaxTokens,
		})

	case ai.ProviderOllama:
		return ai.NewOllamaClient(ai.OllamaConfig{
			BaseURL:        cfg.OllamaBaseURL,
			Model:          cfg.OllamaModel,
			System:         prompt.SystemPrompt,
			TimeoutSeconds: cfg.AITimeoutSeconds,
			MaxTokens:      cfg.AIMaxTokens,
		})

	case ai.ProviderLMStudio:
		return ai.NewLMStudioClient(ai.LMStudioConfig{
			BaseURL:        cfg.LMStudioBaseURL,
			Model:          cfg.LMStudioModel,
			System:         prompt.SystemPrompt,
			TimeoutSeconds: cfg.AITimeoutSeconds,
			MaxTokens:      cfg.AIMaxTokens,
		})

	case ai.ProviderMock:
		return &ai.Mock{}, nil

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLMProvider)
	}
}
