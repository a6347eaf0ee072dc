package factory

import (
	"go.uber.org/zap"

	"github.com/primoagent/modelfactory/pkg/config"
	"github.com/primoagent/modelfactory/pkg/llm"
)

// Factory creates LLM clients from model requests. It holds no mutable
// state after New, so it is safe for concurrent use.
type Factory struct {
	settings  *config.Settings
	logger    *zap.Logger
	providers providerRegistry
}

// Option configures a Factory
type Option func(*Factory)

// WithSettings sets the configuration the named accessors and credentials come from
func WithSettings(settings *config.Settings) Option {
	return func(f *Factory) {
		if settings != nil {
			f.settings = settings
		}
	}
}

// WithLogger hands logger to every client the factory builds
func WithLogger(logger *zap.Logger) Option {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithProvider replaces the constructor used for provider. Only members of
// the closed provider set can be replaced; the supported set never grows.
func WithProvider(provider llm.Provider, constructor ProviderConstructor) Option {
	return func(f *Factory) {
		if _, ok := f.providers[provider]; ok && constructor != nil {
			f.providers[provider] = constructor
		}
	}
}

// New creates a new client factory. Without WithSettings it uses config.Defaults().
func New(opts ...Option) *Factory {
	f := &Factory{
		settings:  config.Defaults(),
		providers: defaultRegistry(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Settings returns the configuration the factory reads from
func (f *Factory) Settings() *config.Settings {
	return f.settings
}

// CreateModel builds a client for req.
//
// A LegacyModelName is served by llm.DefaultProvider at llm.DefaultTemperature
// without further checks. A structured request must name a model, checked
// before the provider, and a provider from the supported set.
func (f *Factory) CreateModel(req llm.ModelRequest) (llm.Client, error) {
	switch r := req.(type) {
	case llm.LegacyModelName:
		return f.createLegacy(string(r))
	case llm.StructuredModelRequest:
		return f.createStructured(r)
	case *llm.StructuredModelRequest:
		if r == nil {
			return f.createStructured(llm.StructuredModelRequest{})
		}
		return f.createStructured(*r)
	default:
		return f.createStructured(llm.StructuredModelRequest{})
	}
}

func (f *Factory) createLegacy(model string) (llm.Client, error) {
	constructor, _ := f.providers.get(llm.DefaultProvider)
	return constructor(f.clientConfig(llm.DefaultProvider, model, llm.DefaultTemperature))
}

func (f *Factory) createStructured(req llm.StructuredModelRequest) (llm.Client, error) {
	if req.Model == "" {
		return nil, llm.NewMissingModelError()
	}

	provider, err := llm.ParseProvider(req.Provider)
	if err != nil {
		return nil, err
	}

	cfg := f.clientConfig(provider, req.Model, req.EffectiveTemperature())
	switch provider {
	case llm.ProviderAnthropic:
		cfg.Timeout = 0
		cfg.StopSequences = nil
	case llm.ProviderOpenAI, llm.ProviderGroq:
		// model and temperature only
	}

	constructor, _ := f.providers.get(provider)
	return constructor(cfg)
}

// CreateClient creates an LLM client from a full configuration. It applies
// the same validation as CreateModel; credentials left empty in config are
// filled from the factory settings.
func (f *Factory) CreateClient(cfg llm.ClientConfig) (llm.Client, error) {
	if cfg.Model == "" {
		return nil, llm.NewMissingModelError()
	}

	provider, err := llm.ParseProvider(cfg.Provider)
	if err != nil {
		return nil, err
	}

	if cfg.APIKey == "" {
		cfg.APIKey = f.settings.Credentials.APIKey(provider)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = f.settings.Credentials.BaseURL(provider)
	}
	if cfg.Logger == nil {
		cfg.Logger = f.logger
	}

	constructor, _ := f.providers.get(provider)
	return constructor(cfg)
}

func (f *Factory) clientConfig(provider llm.Provider, model string, temperature float64) llm.ClientConfig {
	return llm.ClientConfig{
		Provider:    string(provider),
		Model:       model,
		Temperature: llm.Float64(temperature),
		APIKey:      f.settings.Credentials.APIKey(provider),
		BaseURL:     f.settings.Credentials.BaseURL(provider),
		Logger:      f.logger,
	}
}
