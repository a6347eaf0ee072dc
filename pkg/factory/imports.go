package factory

import (
	"github.com/primoagent/modelfactory/pkg/llm"
	"github.com/primoagent/modelfactory/pkg/providers/anthropic"
	"github.com/primoagent/modelfactory/pkg/providers/groq"
	"github.com/primoagent/modelfactory/pkg/providers/openai"
)

// defaultRegistry returns one constructor per member of llm.Provider
func defaultRegistry() providerRegistry {
	return providerRegistry{
		llm.ProviderOpenAI: func(config llm.ClientConfig) (llm.Client, error) {
			return openai.NewClient(config)
		},
		llm.ProviderAnthropic: func(config llm.ClientConfig) (llm.Client, error) {
			return anthropic.NewClient(config)
		},
		llm.ProviderGroq: func(config llm.ClientConfig) (llm.Client, error) {
			return groq.NewClient(config)
		},
	}
}
