package commands

import (
	"testing"

	"github.com/colinmakerofthings/logpilot-cli/internal/config"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name        string
		cfg         *config.Config
		wantName    string
		expectError bool
	}{
		{
			name: "anthropic",
			cfg: &config.Config{
				LLMProvider:     "anthropic",
				AnthropicAPIKey: "sk-ant-test",
				ClaudeModel:     "claude-sonnet-4-5-20250929",
			},
			wantName: "Anthropic",
		},
		{
			name: "ollama",
			cfg: &config.Config{
				LLMProvider:   "ollama",
				OllamaBaseURL: "http://localhost:11434",
				OllamaModel:   "llama3.3:latest",
			},
			wantName: "Ollama",
		},
		{
			name: "lmstudio",
			cfg: &config.Config{
				LLMProvider:     "lmstudio",
				LMStudioBaseURL: "http://localhost:1234",
			},
			wantName: "LM Studio",
		},
		{
			name:     "mock",
			cfg:      &config.Config{LLMProvider: "mock"},
			wantName: "Mock",
		},
		{
			name:        "unknown provider",
			cfg:         &config.Config{LLMProvider: "openai"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := NewProvider(tt.cfg)
			if tt.expectError {
				if err == nil {
					t.Error("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := provider.GetProviderName(); got != tt.wantName {
				t.Errorf("provider name = %q, want %q", got, tt.wantName)
			}
		})
	}
}
