package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/primoagent/modelfactory/pkg/llm"
)

// clearEnv blanks every variable Load reads so the host environment cannot leak in
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LOG_LEVEL",
		"MODEL_PORTFOLIO_MANAGER", "MODEL_NLP_FEATURES", "MODEL_ASSESS_SIGNIFICANCE", "MODEL_ENHANCED_SUMMARY",
		"OPENAI_API_KEY", "OPENAI_BASE_URL",
		"ANTHROPIC_API_KEY", "ANTHROPIC_BASE_URL",
		"GROQ_API_KEY", "GROQ_BASE_URL",
	} {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func structured(t *testing.T, req llm.ModelRequest) llm.StructuredModelRequest {
	t.Helper()
	s, ok := req.(llm.StructuredModelRequest)
	require.True(t, ok, "expected StructuredModelRequest, got %T", req)
	return s
}

func TestDefaults(t *testing.T) {
	s := Defaults()
	require.NoError(t, s.Validate())

	for _, uc := range UseCases() {
		req, err := s.Model(uc)
		require.NoError(t, err)
		sr := structured(t, req)
		assert.NotEmpty(t, sr.Model, uc)
		_, err = llm.ParseProvider(sr.Provider)
		assert.NoError(t, err, uc)
	}

	req, _ := s.Model(UseCaseEnhancedSummary)
	assert.Equal(t, "anthropic", structured(t, req).Provider)
}

func TestLoadWithoutFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("GROQ_BASE_URL", "http://groq.local/openai/v1")

	s, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultLogLevel, s.LogLevel)
	assert.Equal(t, "sk-openai", s.Credentials.APIKey(llm.ProviderOpenAI))
	assert.Empty(t, s.Credentials.APIKey(llm.ProviderAnthropic))
	assert.Equal(t, "http://groq.local/openai/v1", s.Credentials.BaseURL(llm.ProviderGroq))
	assert.Equal(t, DefaultPortfolioManager, s.Models.PortfolioManager)
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	t.Setenv("SUMMARY_MODEL", "claude-3-haiku")

	path := writeFile(t, "models.yaml", `
log_level: debug
models:
  portfolio_manager:
    provider: anthropic
    model: claude-3-opus
    temperature: 0.2
  nlp_features: gpt-4o-mini
  enhanced_summary:
    provider: anthropic
    model: ${SUMMARY_MODEL}
`)

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", s.LogLevel)

	pm := structured(t, s.Models.PortfolioManager.Request)
	assert.Equal(t, "anthropic", pm.Provider)
	assert.Equal(t, "claude-3-opus", pm.Model)
	require.NotNil(t, pm.Temperature)
	assert.InDelta(t, 0.2, *pm.Temperature, 1e-9)

	assert.Equal(t, llm.LegacyModelName("gpt-4o-mini"), s.Models.NLPFeatures.Request)

	summary := structured(t, s.Models.EnhancedSummary.Request)
	assert.Equal(t, "claude-3-haiku", summary.Model)
	assert.Nil(t, summary.Temperature, "absent temperature must stay absent")

	// slots missing from the file keep their defaults
	assert.Equal(t, DefaultAssessSignificance, s.Models.AssessSignificance)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("MODEL_PORTFOLIO_MANAGER", "gpt-4-turbo")
	t.Setenv("MODEL_ASSESS_SIGNIFICANCE", `{"provider":"groq","model":"mixtral-8x7b-32768","temperature":0}`)

	path := writeFile(t, "models.yaml", `
log_level: debug
models:
  portfolio_manager:
    provider: anthropic
    model: claude-3-opus
`)

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "warn", s.LogLevel)
	assert.Equal(t, llm.LegacyModelName("gpt-4-turbo"), s.Models.PortfolioManager.Request)

	sig := structured(t, s.Models.AssessSignificance.Request)
	assert.Equal(t, "mixtral-8x7b-32768", sig.Model)
	require.NotNil(t, sig.Temperature)
	assert.Zero(t, *sig.Temperature)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing_file", func(t *testing.T) {
		clearEnv(t)
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("bad_slot_shape", func(t *testing.T) {
		clearEnv(t)
		path := writeFile(t, "models.yaml", "models:\n  nlp_features: [a, b]\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2: model must be a name or a mapping")
	})

	t.Run("bad_env_json", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("MODEL_NLP_FEATURES", `{"provider":`)
		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), string(UseCaseNLPFeatures))
	})

	t.Run("bad_log_level", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("LOG_LEVEL", "verbose")
		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

func TestInvalidSlotsLoadFine(t *testing.T) {
	clearEnv(t)
	// provider and model problems surface when the model is created, not here
	path := writeFile(t, "models.yaml", `
models:
  portfolio_manager:
    provider: cohere
    model: command-r
  nlp_features:
    provider: openai
  assess_significance: ~
  enhanced_summary:
`)

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "cohere", structured(t, s.Models.PortfolioManager.Request).Provider)
	assert.Empty(t, structured(t, s.Models.NLPFeatures.Request).Model)

	for _, uc := range []UseCase{UseCaseAssessSignificance, UseCaseEnhancedSummary} {
		req, err := s.Model(uc)
		require.NoError(t, err)
		assert.Nil(t, req, "null slot %s must not keep its default", uc)
	}
}

func TestModelsYAMLMapping(t *testing.T) {
	t.Run("null_models_keeps_defaults", func(t *testing.T) {
		clearEnv(t)
		path := writeFile(t, "models.yaml", "models: ~\nlog_level: debug\n")

		s, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, Defaults().Models, s.Models)
		assert.Equal(t, "debug", s.LogLevel)
	})

	t.Run("unknown_keys_are_ignored", func(t *testing.T) {
		clearEnv(t)
		path := writeFile(t, "models.yaml", "models:\n  research: gpt-4o\n  nlp_features: gpt-4.1-mini\n")

		s, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, llm.LegacyModelName("gpt-4.1-mini"), s.Models.NLPFeatures.Request)
		assert.Equal(t, Defaults().Models.PortfolioManager, s.Models.PortfolioManager)
	})

	t.Run("models_must_be_a_mapping", func(t *testing.T) {
		clearEnv(t)
		path := writeFile(t, "models.yaml", "models: gpt-4o\n")

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "models must be a mapping")
	})
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing_file_is_ignored", func(t *testing.T) {
		assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
	})

	t.Run("sets_unset_variables", func(t *testing.T) {
		clearEnv(t)
		require.NoError(t, os.Unsetenv("GROQ_API_KEY"))
		path := writeFile(t, ".env", "GROQ_API_KEY=gsk-from-dotenv\n")

		require.NoError(t, LoadDotEnv(path))
		assert.Equal(t, "gsk-from-dotenv", os.Getenv("GROQ_API_KEY"))
	})
}

func TestModelSlotYAMLRoundTrip(t *testing.T) {
	in := Models{
		PortfolioManager: Structured(llm.ProviderGroq, "llama-3.1-8b-instant", 0.4),
		NLPFeatures:      Legacy("gpt-4o"),
	}

	out, err := yaml.Marshal(in)
	require.NoError(t, err)

	var back Models
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, in.PortfolioManager, back.PortfolioManager)
	assert.Equal(t, in.NLPFeatures, back.NLPFeatures)
	assert.Nil(t, back.AssessSignificance.Request)
}

func TestUseCases(t *testing.T) {
	uc, err := ParseUseCase("nlp_features")
	require.NoError(t, err)
	assert.Equal(t, UseCaseNLPFeatures, uc)

	uc, err = ParseUseCase("model_enhanced_summary")
	require.NoError(t, err)
	assert.Equal(t, UseCaseEnhancedSummary, uc)

	_, err = ParseUseCase("trading")
	assert.Error(t, err)

	_, err = Defaults().Model("model_trading")
	assert.Error(t, err)

	assert.Equal(t, "portfolio_manager", UseCasePortfolioManager.Short())
}
