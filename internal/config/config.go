// Package config loads provider and application settings from the
// environment. CLI flags cover per-run analysis options; everything about
// the LLM side (provider selection, credentials, endpoints, timeouts) and
// notifications comes from the environment or a .env file.
package config

import (
	"crypto/subtle"
	"fmt"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all environment-driven configuration.
type Config struct {
	// LLM provider selection: "anthropic" (default), "ollama",
	// "lmstudio", or "mock" for offline runs.
	LLMProvider string

	// Anthropic settings (LLM_PROVIDER=anthropic)
	AnthropicAPIKey string
	ClaudeModel     string

	// Ollama settings (LLM_PROVIDER=ollama)
	OllamaBaseURL string
	OllamaModel   string

	// LM Studio settings (LLM_PROVIDER=lmstudio)
	LMStudioBaseURL string
	LMStudioModel   string

	// Shared AI call settings
	AITimeoutSeconds int
	AIMaxTokens      int // response cap, not the per-chunk prompt budget

	// Optional Telegram delivery of the final report
	TelegramBotToken       string
	TelegramArchiveChannel int64

	// Proxy
	HTTPProxy  string
	HTTPSProxy string

	// Application
	LogLevel string
}

// Load reads configuration from a .env file and the OS environment.
// Values in .env override the OS environment.
func Load() (*Config, error) {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// godotenv exports .env entries into the process environment, where
	// viper picks them up.
	_ = godotenv.Load()

	setDefaults()

	cfg := &Config{
		LLMProvider:     viper.GetString("LLM_PROVIDER"),
		AnthropicAPIKey: viper.GetString("ANTHROPIC_API_KEY"),
		ClaudeModel:     viper.GetString("CLAUDE_MODEL"),
		OllamaBaseURL:   viper.GetString("OLLAMA_BASE_URL"),
		OllamaModel:     viper.GetString("OLLAMA_MODEL"),
		LMStudioBaseURL: viper.GetString("LMSTUDIO_BASE_URL"),
		LMStudioModel:   viper.GetString("LMSTUDIO_MODEL"),

		AITimeoutSeconds: viper.GetInt("AI_TIMEOUT_SECONDS"),
		AIMaxTokens:      viper.GetInt("AI_MAX_TOKENS"),

		TelegramBotToken:       viper.GetString("TELEGRAM_BOT_TOKEN"),
		TelegramArchiveChannel: viper.GetInt64("TELEGRAM_CHANNEL_ARCHIVE_ID"),

		HTTPProxy:  viper.GetString("HTTP_PROXY"),
		HTTPSProxy: viper.GetString("HTTPS_PROXY"),

		LogLevel: viper.GetString("LOG_LEVEL"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("LLM_PROVIDER", "anthropic")
	viper.SetDefault("CLAUDE_MODEL", "claude-sonnet-4-5-20250929")
	viper.SetDefault("OLLAMA_BASE_URL", "http://localhost:11434")
	viper.SetDefault("OLLAMA_MODEL", "llama3.3:latest")
	viper.SetDefault("LMSTUDIO_BASE_URL", "http://localhost:1234")
	viper.SetDefault("LMSTUDIO_MODEL", "local-model")
	viper.SetDefault("AI_TIMEOUT_SECONDS", 120)
	viper.SetDefault("AI_MAX_TOKENS", 8000)
	viper.SetDefault("LOG_LEVEL", "info")
}

// Validate checks provider, notification and application settings.
func (c *Config) Validate() error {
	if err := c.validateLLMProvider(); err != nil {
		return err
	}
	if err := c.validateTelegram(); err != nil {
		return err
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error")
	}

	if c.AITimeoutSeconds < 30 || c.AITimeoutSeconds > 600 {
		return fmt.Errorf("AI_TIMEOUT_SECONDS must be between 30 and 600")
	}
	if c.AIMaxTokens < 1000 || c.AIMaxTokens > 16000 {
		return fmt.Errorf("AI_MAX_TOKENS must be between 1000 and 16000")
	}
	return nil
}

// constantTimePrefixMatch checks whether s starts with prefix without
// leaking timing information about the rest of the string.
func constantTimePrefixMatch(s, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s[:len(prefix)]), []byte(prefix)) == 1
}

func (c *Config) validateLLMProvider() error {
	switch c.LLMProvider {
	case "anthropic":
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required when LLM_PROVIDER=anthropic")
		}
		if !constantTimePrefixMatch(c.AnthropicAPIKey, "sk-ant-") {
			return fmt.Errorf("ANTHROPIC_API_KEY must start with 'sk-ant-'")
		}
		if c.ClaudeModel == "" {
			return fmt.Errorf("CLAUDE_MODEL is required when LLM_PROVIDER=anthropic")
		}

	case "ollama":
		if c.OllamaModel == "" {
			return fmt.Errorf("OLLAMA_MODEL is required when LLM_PROVIDER=ollama")
		}
		if !hasHTTPScheme(c.OllamaBaseURL) {
			return fmt.Errorf("OLLAMA_BASE_URL must start with 'http://' or 'https://'")
		}

	case "lmstudio":
		if !hasHTTPScheme(c.LMStudioBaseURL) {
			return fmt.Errorf("LMSTUDIO_BASE_URL must start with 'http://' or 'https://'")
		}

	case "mock":
		// No settings needed; the mock provider answers every prompt.

	default:
		return fmt.Errorf("LLM_PROVIDER must be 'anthropic', 'ollama', 'lmstudio', or 'mock' (got: %s)", c.LLMProvider)
	}
	return nil
}

var telegramTokenRegex = regexp.MustCompile(`^\d+:[A-Za-z0-9_-]+$`)

func (c *Config) validateTelegram() error {
	if c.TelegramBotToken == "" {
		// Notifications are optional; nothing else to check.
		return nil
	}
	if !telegramTokenRegex.MatchString(c.TelegramBotToken) {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN has invalid format (expected: 'number:token')")
	}
	if c.TelegramArchiveChannel == 0 {
		return fmt.Errorf("TELEGRAM_CHANNEL_ARCHIVE_ID is required when TELEGRAM_BOT_TOKEN is set")
	}
	if c.TelegramArchiveChannel > -100 {
		return fmt.Errorf("TELEGRAM_CHANNEL_ARCHIVE_ID must be a supergroup/channel ID (starts with -100)")
	}
	return nil
}

func hasHTTPScheme(u string) bool {
	return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")
}

// NotificationsEnabled reports whether a Telegram target is configured.
func (c *Config) NotificationsEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramArchiveChannel != 0
}

// GetProxyURL returns the proxy for outbound requests, preferring the
// HTTPS proxy for HTTPS calls.
func (c *Config) GetProxyURL(isHTTPS bool) string {
	if isHTTPS && c.HTTPSProxy != "" {
		return c.HTTPSProxy
	}
	return c.HTTPProxy
}

// GetLLMModel returns the model name for the selected provider.
func (c *Config) GetLLMModel() string {
	switch c.LLMProvider {
	case "ollama":
		return c.OllamaModel
	case "lmstudio":
		return c.LMStudioModel
	case "mock":
		return "mock"
	default:
		return c.ClaudeModel
	}
}

// SetModel overrides the selected provider's model. Used for the --model
// CLI flag, which takes precedence over the environment.
func (c *Config) SetModel(model string) {
	if model == "" {
		return
	}
	switch c.LLMProvider {
	case "ollama":
		c.OllamaModel = model
	case "lmstudio":
		c.LMStudioModel = model
	case "mock":
		// Opaque to the mock provider.
	default:
		c.ClaudeModel = model
	}
}
