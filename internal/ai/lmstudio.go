package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// LMStudioClient talks to LM Studio's OpenAI-compatible REST API.
type LMStudioClient struct {
	baseURL    string
	model      string
	system     string
	maxTokens  int
	httpClient *http.Client
}

// LMStudioConfig holds LM Studio-specific configuration.
type LMStudioConfig struct {
	BaseURL        string // e.g. "http://localhost:1234"
	Model          string // LM Studio model identifier
	System         string // optional system prompt
	TimeoutSeconds int
	MaxTokens      int
}

// openAIChatRequest is the request body for /v1/chat/completions.
type openAIChatRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
	Temperature float64         `json:"temperature,omitempty"`
	TopP        float64         `json:"top_p,omitempty"`
	Stream      bool            `json:"stream"`
}

type openAIMessage struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

// openAIChatResponse is the response from /v1/chat/completions.
type openAIChatResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int           `json:"index"`
		Message      openAIMessage `json:"message"`
		FinishReason string        `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// NewLMStudioClient creates an LM Studio provider.
func NewLMStudioClient(cfg LMStudioConfig) (*LMStudioClient, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:1234"
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")

	if cfg.Model == "" {
		// LM Studio answers with whatever model is loaded.
		cfg.Model = "local-model"
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 300
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 8000
	}

	return &LMStudioClient{
		baseURL:   cfg.BaseURL,
		model:     cfg.Model,
		system:    cfg.System,
		maxTokens: cfg.MaxTokens,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// Analyze sends prompt to LM Studio and returns the first choice's text.
func (c *LMStudioClient) Analyze(ctx context.Context, prompt string) (string, *Stats, error) {
	startTime := time.Now()

	messages := []openAIMessage{}
	if c.system != "" {
		messages = append(messages, openAIMessage{Role: "system", Content: c.system})
	}
	messages = append(messages, openAIMessage{Role: "user", Content: prompt})

	request := openAIChatRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   c.maxTokens,
		Temperature: 0.1,
		TopP:        0.9,
		Stream:      false,
	}

	response, err := doJSONPost[openAIChatResponse](ctx, c.httpClient, c.baseURL+"/v1/chat/completions", request)
	if err != nil {
		return "", nil, err
	}
	if len(response.Choices) == 0 {
		return "", nil, fmt.Errorf("no choices in LM Studio response")
	}
	content := response.Choices[0].Message.Content
	if content == "" {
		return "", nil, fmt.Errorf("empty response from LM Studio")
	}

	stats := &Stats{
		Provider:        "LM Studio",
		Model:           c.model,
		InputTokens:     response.Usage.PromptTokens,
		OutputTokens:    response.Usage.CompletionTokens,
		CostUSD:         0,
		DurationSeconds: time.Since(startTime).Seconds(),
	}
	return content, stats, nil
}

// GetModelInfo returns information about the configured model.
func (c *LMStudioClient) GetModelInfo() map[string]interface{} {
	return map[string]interface{}{
		"model":      c.model,
		"provider":   "LM Studio",
		"max_tokens": c.maxTokens,
		"base_url":   c.baseURL,
	}
}

// GetProviderName returns the name of the provider.
func (c *LMStudioClient) GetProviderName() string {
	return "LM Studio"
}

var _ Provider = (*LMStudioClient)(nil)
