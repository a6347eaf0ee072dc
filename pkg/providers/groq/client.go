package groq

import (
	"regexp"

	"github.com/primoagent/modelfactory/pkg/llm"
	"github.com/primoagent/modelfactory/pkg/providers/openai"
)

// DefaultBaseURL is Groq's OpenAI-compatible endpoint
const DefaultBaseURL = "https://api.groq.com/openai/v1"

var (
	contextLength = []openai.ModelAttribute[int]{
		{Pattern: regexp.MustCompile(`^llama-3\.[13]-.*`), Value: 131072},
		{Pattern: regexp.MustCompile(`^meta-llama/llama-4-.*`), Value: 131072},
		{Pattern: regexp.MustCompile(`^openai/gpt-oss-.*`), Value: 131072},
		{Pattern: regexp.MustCompile(`^mixtral-8x7b.*`), Value: 32768},
		{Pattern: regexp.MustCompile(`^gemma2?-.*`), Value: 8192},
		{Pattern: regexp.MustCompile(`.*`), Value: 8192},
	}

	toolsSupport = []openai.ModelAttribute[bool]{
		{Pattern: regexp.MustCompile(`^llama-3\.[13]-.*`), Value: true},
		{Pattern: regexp.MustCompile(`^meta-llama/llama-4-.*`), Value: true},
		{Pattern: regexp.MustCompile(`^openai/gpt-oss-.*`), Value: true},
		{Pattern: regexp.MustCompile(`.*`), Value: false},
	}
)

// Client implements the llm.Client interface for Groq. Requests go through
// the OpenAI-compatible client; only model metadata differs.
type Client struct {
	*openai.Client
}

// NewClient creates a new Groq client. Only the model and temperature of
// config are significant to the selector; BaseURL and APIKey come from credentials.
func NewClient(config llm.ClientConfig) (*Client, error) {
	inner, err := openai.NewCompatibleClient(config, llm.ProviderGroq, DefaultBaseURL)
	if err != nil {
		return nil, err
	}
	return &Client{Client: inner}, nil
}

// GetModelInfo returns information about the model being used
func (c *Client) GetModelInfo() llm.ModelInfo {
	model := c.Model()
	return llm.ModelInfo{
		Name:              model,
		Provider:          string(llm.ProviderGroq),
		Temperature:       c.Temperature(),
		MaxTokens:         openai.GetModelAttribute(model, contextLength),
		SupportsTools:     openai.GetModelAttribute(model, toolsSupport),
		SupportsVision:    false,
		SupportsStreaming: true,
	}
}
