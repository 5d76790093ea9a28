package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// OllamaClient talks to a local Ollama server via its REST API.
type OllamaClient struct {
	baseURL    string
	model      string
	system     string
	maxTokens  int
	httpClient *http.Client
}

// OllamaConfig holds Ollama-specific configuration.
type OllamaConfig struct {
	BaseURL        string // e.g. "http://localhost:11434"
	Model          string // e.g. "llama3.3:latest"
	System         string // optional system prompt
	TimeoutSeconds int
	MaxTokens      int
}

// ollamaChatRequest is the request body for /api/chat.
type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  ollamaOptions   `json:"options,omitempty"`
}

type ollamaMessage struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

type ollamaOptions struct {
	NumPredict  int     `json:"num_predict,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
	TopP        float64 `json:"top_p,omitempty"`
}

// ollamaChatResponse is the response from /api/chat.
type ollamaChatResponse struct {
	Model           string        `json:"model"`
	CreatedAt       time.Time     `json:"created_at"`
	Message         ollamaMessage `json:"message"`
	Done            bool          `json:"done"`
	TotalDuration   int64         `json:"total_duration,omitempty"`
	PromptEvalCount int           `json:"prompt_eval_count,omitempty"`
	EvalCount       int           `json:"eval_count,omitempty"`
}

// NewOllamaClient creates an Ollama provider.
func NewOllamaClient(cfg OllamaConfig) (*OllamaClient, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:11434"
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")

	if cfg.Model == "" {
		return nil, fmt.Errorf("ollama model is required")
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 300 // local models can be slow to load
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 8000
	}

	return &OllamaClient{
		baseURL:   cfg.BaseURL,
		model:     cfg.Model,
		system:    cfg.System,
		maxTokens: cfg.MaxTokens,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// Analyze sends prompt to Ollama's chat endpoint and returns the reply text.
func (c *OllamaClient) Analyze(ctx context.Context, prompt string) (string, *Stats, error) {
	startTime := time.Now()

	messages := []ollamaMessage{}
	if c.system != "" {
		messages = append(messages, ollamaMessage{Role: "system", Content: c.system})
	}
	messages = append(messages, ollamaMessage{Role: "user", Content: prompt})

	request := ollamaChatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   false,
		Options: ollamaOptions{
			NumPredict:  c.maxTokens,
			Temperature: 0.1, // keep output factual and stable
			TopP:        0.9,
		},
	}

	response, err := doJSONPost[ollamaChatResponse](ctx, c.httpClient, c.baseURL+"/api/chat", request)
	if err != nil {
		return "", nil, err
	}
	if !response.Done {
		return "", nil, fmt.Errorf("incomplete response from Ollama")
	}
	if response.Message.Content == "" {
		return "", nil, fmt.Errorf("empty response from Ollama")
	}

	stats := &Stats{
		Provider:        "Ollama",
		Model:           c.model,
		InputTokens:     response.PromptEvalCount,
		OutputTokens:    response.EvalCount,
		CostUSD:         0, // local inference is free
		DurationSeconds: time.Since(startTime).Seconds(),
	}
	return response.Message.Content, stats, nil
}

// CheckConnection verifies that Ollama is reachable and serves the
// configured model.
func (c *OllamaClient) CheckConnection(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ollama is not running at %s: %w", c.baseURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}
	return nil
}

// GetModelInfo returns information about the configured model.
func (c *OllamaClient) GetModelInfo() map[string]interface{} {
	return map[string]interface{}{
		"model":      c.model,
		"provider":   "Ollama",
		"max_tokens": c.maxTokens,
		"base_url":   c.baseURL,
	}
}

// GetProviderName returns the name of the provider.
func (c *OllamaClient) GetProviderName() string {
	return "Ollama"
}

var _ Provider = (*OllamaClient)(nil)
