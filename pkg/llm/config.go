// Configuration types for creating provider clients
package llm

import (
	"time"

	"go.uber.org/zap"
)

// DefaultTemperature is used by the legacy model-name path and whenever a
// structured request or a ClientConfig leaves the temperature unset.
const DefaultTemperature = 0.7

const (
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultAnthropicModel = "claude-3-5-sonnet-latest"
	DefaultGroqModel      = "llama-3.1-8b-instant"
)

// ClientConfig holds configuration for creating LLM clients
type ClientConfig struct {
	Provider      string        `json:"provider"` // openai, anthropic, groq
	Model         string        `json:"model"`
	APIKey        string        `json:"api_key,omitempty"`
	BaseURL       string        `json:"base_url,omitempty"`
	Timeout       time.Duration `json:"timeout,omitempty"` // 0 means no override
	Temperature   *float64      `json:"temperature,omitempty"`
	StopSequences []string      `json:"stop_sequences,omitempty"`

	// Logger receives debug output from the client. Nil means no logging.
	Logger *zap.Logger `json:"-"`
}

// EffectiveTemperature returns the configured temperature, or DefaultTemperature when unset
func (c ClientConfig) EffectiveTemperature() float64 {
	if c.Temperature == nil {
		return DefaultTemperature
	}
	return *c.Temperature
}

// EffectiveLogger returns the configured logger or a no-op one
func (c ClientConfig) EffectiveLogger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// Float64 returns a pointer to v, handy for optional temperatures
func Float64(v float64) *float64 {
	return &v
}
