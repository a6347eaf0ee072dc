package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/primoagent/modelfactory/pkg/llm"
)

// Settings holds the model slots, provider credentials and logging level
type Settings struct {
	Models      Models      `yaml:"models"`
	Credentials Credentials `yaml:"-"` // Environment only, never read from the YAML file.
	LogLevel    string      `yaml:"log_level"`
}

// Models holds the four use-case slots
type Models struct {
	PortfolioManager   ModelSlot `yaml:"portfolio_manager"`
	NLPFeatures        ModelSlot `yaml:"nlp_features"`
	AssessSignificance ModelSlot `yaml:"assess_significance"`
	EnhancedSummary    ModelSlot `yaml:"enhanced_summary"`
}

// UnmarshalYAML decodes the slots one by one so that an explicit null
// clears a slot instead of leaving its default in place. Unknown keys are
// ignored.
func (m *Models) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		if node.ShortTag() == "!!null" {
			return nil
		}
		return fmt.Errorf("line %d: models must be a mapping of use case to model", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		slot := m.slot(node.Content[i].Value)
		if slot == nil {
			continue
		}
		if err := slot.UnmarshalYAML(node.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}

func (m *Models) slot(key string) *ModelSlot {
	switch key {
	case "portfolio_manager":
		return &m.PortfolioManager
	case "nlp_features":
		return &m.NLPFeatures
	case "assess_significance":
		return &m.AssessSignificance
	case "enhanced_summary":
		return &m.EnhancedSummary
	default:
		return nil
	}
}

// Credentials holds API keys and endpoint overrides per provider
type Credentials struct {
	OpenAIAPIKey     string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string `env:"OPENAI_BASE_URL"`
	AnthropicAPIKey  string `env:"ANTHROPIC_API_KEY"`
	AnthropicBaseURL string `env:"ANTHROPIC_BASE_URL"`
	GroqAPIKey       string `env:"GROQ_API_KEY"`
	GroqBaseURL      string `env:"GROQ_BASE_URL"`
}

// overrides are read from the environment after the YAML file. Slot values
// are a model name or a JSON object, see llm.ParseModelRequest.
type overrides struct {
	LogLevel           string `env:"LOG_LEVEL"`
	PortfolioManager   string `env:"MODEL_PORTFOLIO_MANAGER"`
	NLPFeatures        string `env:"MODEL_NLP_FEATURES"`
	AssessSignificance string `env:"MODEL_ASSESS_SIGNIFICANCE"`
	EnhancedSummary    string `env:"MODEL_ENHANCED_SUMMARY"`
}

// Default slot assignments
var (
	DefaultPortfolioManager   = Structured(llm.ProviderOpenAI, "gpt-4o", 0.2)
	DefaultNLPFeatures        = Structured(llm.ProviderOpenAI, llm.DefaultOpenAIModel, 0.1)
	DefaultAssessSignificance = Structured(llm.ProviderGroq, llm.DefaultGroqModel, 0.3)
	DefaultEnhancedSummary    = Structured(llm.ProviderAnthropic, llm.DefaultAnthropicModel, 0.5)
)

const DefaultLogLevel = "info"

// Defaults returns settings with every slot populated and no credentials
func Defaults() *Settings {
	return &Settings{
		Models: Models{
			PortfolioManager:   DefaultPortfolioManager,
			NLPFeatures:        DefaultNLPFeatures,
			AssessSignificance: DefaultAssessSignificance,
			EnhancedSummary:    DefaultEnhancedSummary,
		},
		LogLevel: DefaultLogLevel,
	}
}

// LoadDotEnv loads KEY=value pairs from path into the process environment.
// Variables already set win, and a missing file is not an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}

// Load builds settings from defaults, then the YAML file at path (skipped
// when path is empty), then the environment. References like ${VAR} in the
// file are expanded before parsing.
func Load(path string) (*Settings, error) {
	s := Defaults()

	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration
		if err != nil {
			return nil, fmt.Errorf("config: load: %w", err)
		}
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), s); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := s.applyEnv(); err != nil {
		return nil, err
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("config: invalid: %w", err)
	}
	return s, nil
}

func (s *Settings) applyEnv() error {
	if err := env.Parse(&s.Credentials); err != nil {
		return fmt.Errorf("config: parse credentials: %w", err)
	}

	var o overrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("config: parse environment: %w", err)
	}
	if o.LogLevel != "" {
		s.LogLevel = o.LogLevel
	}

	slots := []struct {
		value string
		slot  *ModelSlot
		name  UseCase
	}{
		{o.PortfolioManager, &s.Models.PortfolioManager, UseCasePortfolioManager},
		{o.NLPFeatures, &s.Models.NLPFeatures, UseCaseNLPFeatures},
		{o.AssessSignificance, &s.Models.AssessSignificance, UseCaseAssessSignificance},
		{o.EnhancedSummary, &s.Models.EnhancedSummary, UseCaseEnhancedSummary},
	}
	for _, sl := range slots {
		if sl.value == "" {
			continue
		}
		req, err := llm.ParseModelRequest(sl.value)
		if err != nil {
			return fmt.Errorf("config: %s: %w", sl.name, err)
		}
		sl.slot.Request = req
	}
	return nil
}

// Validate checks the logging level. Model slots are validated when a model
// is created from them.
func (s *Settings) Validate() error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[s.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", s.LogLevel)
	}
	return nil
}

// Model returns the request configured for a use case. An unset slot yields
// nil, which the factory treats as a request without a model.
func (s *Settings) Model(uc UseCase) (llm.ModelRequest, error) {
	switch uc {
	case UseCasePortfolioManager:
		return s.Models.PortfolioManager.Request, nil
	case UseCaseNLPFeatures:
		return s.Models.NLPFeatures.Request, nil
	case UseCaseAssessSignificance:
		return s.Models.AssessSignificance.Request, nil
	case UseCaseEnhancedSummary:
		return s.Models.EnhancedSummary.Request, nil
	default:
		return nil, fmt.Errorf("unknown use case %q", uc)
	}
}

// APIKey returns the credential for provider
func (c Credentials) APIKey(provider llm.Provider) string {
	switch provider {
	case llm.ProviderOpenAI:
		return c.OpenAIAPIKey
	case llm.ProviderAnthropic:
		return c.AnthropicAPIKey
	case llm.ProviderGroq:
		return c.GroqAPIKey
	default:
		return ""
	}
}

// BaseURL returns the endpoint override for provider, "" for the default
func (c Credentials) BaseURL(provider llm.Provider) string {
	switch provider {
	case llm.ProviderOpenAI:
		return c.OpenAIBaseURL
	case llm.ProviderAnthropic:
		return c.AnthropicBaseURL
	case llm.ProviderGroq:
		return c.GroqBaseURL
	default:
		return ""
	}
}
