package ai

import "context"

// DefaultMockResponse is returned by a zero-value Mock.
const DefaultMockResponse = "Mocked summary: Something failed"

// Mock is an offline Provider returning a canned response for every prompt.
// It replaces the old environment-variable mock switch: tests and dry runs
// inject it like any other provider instead of flipping global state.
type Mock struct {
	Response string
	// Prompts records every prompt received, in call order.
	Prompts []string
	// Err, when set, is returned instead of a response.
	Err error
}

// Analyze records the prompt and returns the canned response.
func (m *Mock) Analyze(_ context.Context, prompt string) (string, *Stats, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", nil, m.Err
	}
	response := m.Response
	if response == "" {
		response = DefaultMockResponse
	}
	stats := &Stats{
		Provider:     "Mock",
		Model:        "mock",
		InputTokens:  len(prompt) / 4,
		OutputTokens: len(response) / 4,
	}
	return response, stats, nil
}

// GetModelInfo returns information about the mock model.
func (m *Mock) GetModelInfo() map[string]interface{} {
	return map[string]interface{}{
		"model":    "mock",
		"provider": "Mock",
	}
}

// GetProviderName returns the name of the provider.
func (m *Mock) GetProviderName() string {
	return "Mock"
}

var _ Provider = (*Mock)(nil)
