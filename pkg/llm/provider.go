package llm

// Provider identifies one of the supported provider families
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGroq      Provider = "groq"
)

// DefaultProvider serves legacy plain model names
const DefaultProvider = ProviderOpenAI

// ordered as listed in error messages
var supportedProviders = []Provider{ProviderOpenAI, ProviderAnthropic, ProviderGroq}

// SupportedProviders returns every provider the selector can dispatch to
func SupportedProviders() []Provider {
	out := make([]Provider, len(supportedProviders))
	copy(out, supportedProviders)
	return out
}

// ParseProvider maps an external provider name onto the closed set.
// Matching is exact: "OpenAI" or " groq" are rejected.
func ParseProvider(name string) (Provider, error) {
	for _, p := range supportedProviders {
		if string(p) == name {
			return p, nil
		}
	}
	return "", NewUnsupportedProviderError(name)
}

func (p Provider) String() string {
	return string(p)
}
