package config

import "fmt"

// UseCase names one of the fixed model slots
type UseCase string

const (
	UseCasePortfolioManager   UseCase = "model_portfolio_manager"
	UseCaseNLPFeatures        UseCase = "model_nlp_features"
	UseCaseAssessSignificance UseCase = "model_assess_significance"
	UseCaseEnhancedSummary    UseCase = "model_enhanced_summary"
)

// UseCases returns every slot in a stable order
func UseCases() []UseCase {
	return []UseCase{
		UseCasePortfolioManager,
		UseCaseNLPFeatures,
		UseCaseAssessSignificance,
		UseCaseEnhancedSummary,
	}
}

// ParseUseCase accepts both the slot key ("model_nlp_features") and its
// short form ("nlp_features").
func ParseUseCase(name string) (UseCase, error) {
	for _, uc := range UseCases() {
		if string(uc) == name || uc.Short() == name {
			return uc, nil
		}
	}
	return "", fmt.Errorf("unknown use case %q", name)
}

// Short returns the slot name without the "model_" prefix, as used in YAML
func (u UseCase) Short() string {
	const prefix = "model_"
	s := string(u)
	if len(s) > len(prefix) && s[:len(prefix)] == prefix {
		return s[len(prefix):]
	}
	return s
}
