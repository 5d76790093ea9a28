package ai

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/liushuangls/go-anthropic/v2"

	internalerrors "github.com/colinmakerofthings/logpilot-cli/internal/errors"
)

// Client talks to the Anthropic Messages API.
type Client struct {
	client    *anthropic.Client
	model     string
	system    string
	maxTokens int
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey         string
	Model          string
	System         string // optional system prompt
	ProxyURL       string // optional HTTPS proxy
	TimeoutSeconds int
	MaxTokens      int // response token cap
}

// NewClient creates an Anthropic provider.
func NewClient(cfg AnthropicConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("anthropic model is required")
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 120
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 8000
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	httpClient := &http.Client{Timeout: timeout}
	if cfg.ProxyURL != "" {
		proxy, err := url.Parse(cfg.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy URL: %w", err)
		}
		if proxy.Scheme != "http" && proxy.Scheme != "https" {
			return nil, fmt.Errorf("proxy URL must use http or https scheme, got: %s", proxy.Scheme)
		}
		httpClient.Transport = &http.Transport{Proxy: http.ProxyURL(proxy)}
	}

	return &Client{
		client:    anthropic.NewClient(cfg.APIKey, anthropic.WithHTTPClient(httpClient)),
		model:     cfg.Model,
		system:    cfg.System,
		maxTokens: cfg.MaxTokens,
	}, nil
}

// Analyze sends prompt as a single user message and returns the
// concatenated text content of the response.
func (c *Client) Analyze(ctx context.Context, prompt string) (string, *Stats, error) {
	startTime := time.Now()

	request := anthropic.MessagesRequest{
		Model: anthropic.Model(c.model),
		Messages: []anthropic.Message{
			{
				Role: anthropic.RoleUser,
				Content: []anthropic.MessageContent{
					anthropic.NewTextMessageContent(prompt),
				},
			},
		},
		System:    c.system,
		MaxTokens: c.maxTokens,
	}

	response, err := c.client.CreateMessages(ctx, request)
	if err != nil {
		// The SDK may echo request headers into error messages.
		return "", nil, internalerrors.Wrapf(err, "anthropic API call failed")
	}
	if len(response.Content) == 0 {
		return "", nil, fmt.Errorf("empty response from Anthropic")
	}

	responseText := ""
	for _, content := range response.Content {
		if content.Type == "text" && content.Text != nil {
			responseText += *content.Text
		}
	}

	return responseText, c.calculateStats(response, time.Since(startTime).Seconds()), nil
}

// calculateStats derives token and cost figures from the API response.
func (c *Client) calculateStats(response anthropic.MessagesResponse, durationSeconds float64) *Stats {
	inputTokens := response.Usage.InputTokens
	outputTokens := response.Usage.OutputTokens
	cacheCreationTokens := response.Usage.CacheCreationInputTokens
	cacheReadTokens := response.Usage.CacheReadInputTokens

	// Claude Sonnet pricing: $3/MTok in, $15/MTok out,
	// $3.75/MTok cache write, $0.30/MTok cache read.
	totalCost := float64(inputTokens)/1e6*3.0 +
		float64(outputTokens)/1e6*15.0 +
		float64(cacheCreationTokens)/1e6*3.75 +
		float64(cacheReadTokens)/1e6*0.30

	return &Stats{
		Provider:            "Anthropic",
		Model:               c.model,
		InputTokens:         inputTokens,
		OutputTokens:        outputTokens,
		CacheCreationTokens: cacheCreationTokens,
		CacheReadTokens:     cacheReadTokens,
		CostUSD:             totalCost,
		DurationSeconds:     durationSeconds,
	}
}

// GetModelInfo returns information about the configured model.
func (c *Client) GetModelInfo() map[string]interface{} {
	return map[string]interface{}{
		"model":         c.model,
		"provider":      "Anthropic",
		"max_tokens":    c.maxTokens,
		"context_limit": 200000,
	}
}

// GetProviderName returns the name of the provider.
func (c *Client) GetProviderName() string {
	return "Anthropic"
}

var _ Provider = (*Client)(nil)
