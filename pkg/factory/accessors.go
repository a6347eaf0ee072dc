package factory

import (
	"github.com/primoagent/modelfactory/pkg/config"
	"github.com/primoagent/modelfactory/pkg/llm"
)

// ModelFor resolves the slot for uc and forwards it unchanged to CreateModel
func (f *Factory) ModelFor(uc config.UseCase) (llm.Client, error) {
	req, err := f.settings.Model(uc)
	if err != nil {
		return nil, err
	}
	return f.CreateModel(req)
}

// PortfolioManagerModel returns the client configured for portfolio management
func (f *Factory) PortfolioManagerModel() (llm.Client, error) {
	return f.ModelFor(config.UseCasePortfolioManager)
}

// NLPFeaturesModel returns the client configured for NLP feature extraction
func (f *Factory) NLPFeaturesModel() (llm.Client, error) {
	return f.ModelFor(config.UseCaseNLPFeatures)
}

// AssessSignificanceModel returns the client configured for significance assessment
func (f *Factory) AssessSignificanceModel() (llm.Client, error) {
	return f.ModelFor(config.UseCaseAssessSignificance)
}

// EnhancedSummaryModel returns the client configured for summary enhancement
func (f *Factory) EnhancedSummaryModel() (llm.Client, error) {
	return f.ModelFor(config.UseCaseEnhancedSummary)
}
