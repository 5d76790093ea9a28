package ai

import (
	"context"
	"errors"
	"math"
	"testing"
)

func TestIsValidProviderType(t *testing.T) {
	tests := []struct {
		provider string
		want     bool
	}{
		{"anthropic", true},
		{"ollama", true},
		{"lmstudio", true},
		{"mock", true},
		{"openai", false},
		{"", false},
		{"Anthropic", false},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			if got := IsValidProviderType(tt.provider); got != tt.want {
				t.Errorf("IsValidProviderType(%q) = %v, want %v", tt.provider, got, tt.want)
			}
		})
	}
}

func TestStatsAdd(t *testing.T) {
	total := &Stats{}
	total.Add(&Stats{
		Provider:        "Anthropic",
		Model:           "claude-sonnet-4-5-20250929",
		InputTokens:     100,
		OutputTokens:    10,
		CostUSD:         0.01,
		DurationSeconds: 1.5,
	})
	total.Add(&Stats{InputTokens: 50, OutputTokens: 5, CostUSD: 0.005, DurationSeconds: 0.5})
	total.Add(nil)

	if total.Provider != "Anthropic" {
		t.Errorf("Provider = %q", total.Provider)
	}
	if total.Model != "claude-sonnet-4-5-20250929" {
		t.Errorf("Model = %q", total.Model)
	}
	if total.InputTokens != 150 || total.OutputTokens != 15 {
		t.Errorf("tokens = %d/%d", total.InputTokens, total.OutputTokens)
	}
	if math.Abs(total.CostUSD-0.015) > 1e-9 {
		t.Errorf("CostUSD = %f", total.CostUSD)
	}
	if total.DurationSeconds != 2.0 {
		t.Errorf("DurationSeconds = %f", total.DurationSeconds)
	}
}

func TestMockAnalyze(t *testing.T) {
	mock := &Mock{Response: "all clear"}

	response, stats, err := mock.Analyze(context.Background(), "first prompt")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if response != "all clear" {
		t.Errorf("response = %q", response)
	}
	if stats.Provider != "Mock" {
		t.Errorf("stats provider = %q", stats.Provider)
	}

	if _, _, err := mock.Analyze(context.Background(), "second prompt"); err != nil {
		t.Fatal(err)
	}
	if len(mock.Prompts) != 2 || mock.Prompts[0] != "first prompt" || mock.Prompts[1] != "second prompt" {
		t.Errorf("recorded prompts = %v", mock.Prompts)
	}
}

func TestMockAnalyze_Defaults(t *testing.T) {
	mock := &Mock{}
	response, _, err := mock.Analyze(context.Background(), "p")
	if err != nil {
		t.Fatal(err)
	}
	if response != DefaultMockResponse {
		t.Errorf("response = %q, want %q", response, DefaultMockResponse)
	}
}

func TestMockAnalyze_Error(t *testing.T) {
	wantErr := errors.New("provider unavailable")
	mock := &Mock{Err: wantErr}
	if _, _, err := mock.Analyze(context.Background(), "p"); !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
}
