package factory

import (
	"github.com/primoagent/modelfactory/pkg/llm"
)

// ProviderConstructor is a function that creates a new client for a provider
type ProviderConstructor func(config llm.ClientConfig) (llm.Client, error)

// providerRegistry maps every supported provider to its constructor. It is
// filled once by New and only read afterwards.
type providerRegistry map[llm.Provider]ProviderConstructor

func (r providerRegistry) get(provider llm.Provider) (ProviderConstructor, bool) {
	constructor, exists := r[provider]
	return constructor, exists
}

// ListProviders returns the providers a factory can build, in the order
// used by error messages
func ListProviders() []llm.Provider {
	return llm.SupportedProviders()
}
