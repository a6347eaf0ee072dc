package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModelRequest(t *testing.T) {
	t.Parallel()

	t.Run("plain_name_is_legacy", func(t *testing.T) {
		t.Parallel()

		req, err := ParseModelRequest("gpt-4o")
		require.NoError(t, err)
		assert.Equal(t, LegacyModelName("gpt-4o"), req)
	})

	t.Run("json_object_is_structured", func(t *testing.T) {
		t.Parallel()

		req, err := ParseModelRequest(` {"provider":"anthropic","model":"claude-3-opus","temperature":0.2}`)
		require.NoError(t, err)

		structured, ok := req.(StructuredModelRequest)
		require.True(t, ok, "expected StructuredModelRequest, got %T", req)
		assert.Equal(t, "anthropic", structured.Provider)
		assert.Equal(t, "claude-3-opus", structured.Model)
		require.NotNil(t, structured.Temperature)
		assert.InDelta(t, 0.2, *structured.Temperature, 1e-9)
	})

	t.Run("absent_temperature_defaults", func(t *testing.T) {
		t.Parallel()

		req, err := ParseModelRequest(`{"provider":"groq","model":"llama-3.1-8b-instant"}`)
		require.NoError(t, err)
		structured := req.(StructuredModelRequest)
		assert.Nil(t, structured.Temperature)
		assert.InDelta(t, DefaultTemperature, structured.EffectiveTemperature(), 1e-9)
	})

	t.Run("explicit_zero_temperature_is_kept", func(t *testing.T) {
		t.Parallel()

		req, err := ParseModelRequest(`{"provider":"openai","model":"gpt-4o","temperature":0}`)
		require.NoError(t, err)
		assert.InDelta(t, 0.0, req.(StructuredModelRequest).EffectiveTemperature(), 1e-9)
	})

	t.Run("malformed_json", func(t *testing.T) {
		t.Parallel()

		_, err := ParseModelRequest(`{"provider":`)
		assert.Error(t, err)
	})
}

func TestDescribeModelRequest(t *testing.T) {
	assert.Equal(t, "gpt-4o (legacy)", DescribeModelRequest(LegacyModelName("gpt-4o")))
	assert.Equal(t, "groq/llama3@0.70", DescribeModelRequest(StructuredModelRequest{Provider: "groq", Model: "llama3"}))
	assert.Equal(t, "openai/gpt-4o@0.10", DescribeModelRequest(&StructuredModelRequest{Provider: "openai", Model: "gpt-4o", Temperature: Float64(0.1)}))
	assert.Equal(t, "<empty>", DescribeModelRequest(nil))
	assert.Equal(t, "<empty>", DescribeModelRequest((*StructuredModelRequest)(nil)))
}

func TestClientConfigDefaults(t *testing.T) {
	var cfg ClientConfig
	assert.InDelta(t, DefaultTemperature, cfg.EffectiveTemperature(), 1e-9)
	assert.NotNil(t, cfg.EffectiveLogger())

	cfg.Temperature = Float64(0)
	assert.InDelta(t, 0.0, cfg.EffectiveTemperature(), 1e-9)
}
