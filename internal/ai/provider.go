// Package ai contains the LLM providers that analyze log prompts.
package ai

import "context"

// Provider is the analysis collaborator: it takes one rendered prompt and
// returns the model's answer. Calls are synchronous and single-shot; a
// failure propagates to the caller, there is no retry policy in the core.
// Implementations: Client (Anthropic), OllamaClient, LMStudioClient, and
// Mock for tests and offline runs.
type Provider interface {
	// Analyze sends one prompt and returns the response text plus call
	// statistics.
	Analyze(ctx context.Context, prompt string) (string, *Stats, error)

	// GetModelInfo returns information about the configured model.
	GetModelInfo() map[string]interface{}

	// GetProviderName returns a display name such as "Anthropic".
	GetProviderName() string
}

// Stats holds per-call usage statistics. Local providers report zero cost.
type Stats struct {
	Provider            string
	Model               string
	InputTokens         int
	OutputTokens        int
	CacheCreationTokens int
	CacheReadTokens     int
	CostUSD             float64
	DurationSeconds     float64
}

// Add accumulates another call's statistics into s. Durations sum because
// chunk analyses are issued strictly one after another.
func (s *Stats) Add(other *Stats) {
	if other == nil {
		return
	}
	if s.Provider == "" {
		s.Provider = other.Provider
	}
	if s.Model == "" {
		s.Model = other.Model
	}
	s.InputTokens += other.InputTokens
	s.OutputTokens += other.OutputTokens
	s.CacheCreationTokens += other.CacheCreationTokens
	s.CacheReadTokens += other.CacheReadTokens
	s.CostUSD += other.CostUSD
	s.DurationSeconds += other.DurationSeconds
}

// ProviderType identifies a configured provider backend.
type ProviderType string

const (
	ProviderAnthropic ProviderType = "anthropic"
	ProviderOllama    ProviderType = "ollama"
	ProviderLMStudio  ProviderType = "lmstudio"
	ProviderMock      ProviderType = "mock"
)

// ValidProviderTypes lists the accepted provider backends.
func ValidProviderTypes() []ProviderType {
	return []ProviderType{ProviderAnthropic, ProviderOllama, ProviderLMStudio, ProviderMock}
}

// IsValidProviderType checks whether pt names a known backend.
func IsValidProviderType(pt string) bool {
	for _, valid := range ValidProviderTypes() {
		if string(valid) == pt {
			return true
		}
	}
	return false
}
