package ai

import (
	"strings"
	"testing"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name          string
		cfg           AnthropicConfig
		expectError   bool
		errorContains string
	}{
		{
			name: "valid config",
			cfg:  AnthropicConfig{APIKey: "sk-ant-test", Model: "claude-sonnet-4-5-20250929"},
		},
		{
			name:          "missing API key",
			cfg:           AnthropicConfig{Model: "claude-sonnet-4-5-20250929"},
			expectError:   true,
			errorContains: "API key",
		},
		{
			name:          "missing model",
			cfg:           AnthropicConfig{APIKey: "sk-ant-test"},
			expectError:   true,
			errorContains: "model",
		},
		{
			name: "valid proxy",
			cfg: AnthropicConfig{
				APIKey:   "sk-ant-test",
				Model:    "claude-sonnet-4-5-20250929",
				ProxyURL: "http://proxy.example.com:8080",
			},
		},
		{
			name: "proxy with bad scheme",
			cfg: AnthropicConfig{
				APIKey:   "sk-ant-test",
				Model:    "claude-sonnet-4-5-20250929",
				ProxyURL: "socks5://proxy.example.com:1080",
			},
			expectError:   true,
			errorContains: "scheme",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.cfg)
			if tt.expectError {
				if err == nil {
					t.Fatal("expected an error")
				}
				if tt.errorContains != "" && !strings.Contains(err.Error(), tt.errorContains) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errorContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if client.GetProviderName() != "Anthropic" {
				t.Errorf("provider name = %q", client.GetProviderName())
			}
		})
	}
}

func TestNewClient_Defaults(t *testing.T) {
	client, err := NewClient(AnthropicConfig{APIKey: "sk-ant-test", Model: "m"})
	if err != nil {
		t.Fatal(err)
	}
	if client.maxTokens != 8000 {
		t.Errorf("maxTokens = %d, want 8000", client.maxTokens)
	}
}

func TestClientGetModelInfo(t *testing.T) {
	client, err := NewClient(AnthropicConfig{APIKey: "sk-ant-test", Model: "m", MaxTokens: 4000})
	if err != nil {
		t.Fatal(err)
	}
	info := client.GetModelInfo()
	if info["model"] != "m" {
		t.Errorf("model = %v", info["model"])
	}
	if info["max_tokens"] != 4000 {
		t.Errorf("max_tokens = %v", info["max_tokens"])
	}
}
