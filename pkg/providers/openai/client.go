package openai

import (
	"context"
	"errors"
	"io"
	"math"
	"net/http"
	"regexp"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/primoagent/modelfactory/pkg/llm"
)

// ModelAttribute represents a model attribute with its pattern and value
type ModelAttribute[T any] struct {
	Pattern *regexp.Regexp
	Value   T
}

// ModelAttributes contains all model attribute patterns
var (
	// Vision support patterns - models that support image inputs
	visionSupport = []ModelAttribute[bool]{
		{regexp.MustCompile(`^gpt-4o(-mini)?$`), true},                   // gpt-4o, gpt-4o-mini
		{regexp.MustCompile(`^gpt-4\.1(-mini|-nano)?$`), true},           // gpt-4.1 family
		{regexp.MustCompile(`^gpt-4-turbo(-\d{4}-\d{2}-\d{2})?$`), true}, // gpt-4-turbo variants
		{regexp.MustCompile(`.*`), false},                                // Default: no vision support
	}

	// Tools support patterns - models that support function calling
	toolsSupport = []ModelAttribute[bool]{
		{regexp.MustCompile(`^gpt-4o(-mini)?$`), true},
		{regexp.MustCompile(`^gpt-4\.1(-mini|-nano)?$`), true},
		{regexp.MustCompile(`^gpt-4(-0613|-32k|-32k-0613)?$`), true},
		{regexp.MustCompile(`^gpt-4-turbo(-preview|-\d{4}-\d{2}-\d{2})?$`), true},
		{regexp.MustCompile(`^gpt-3\.5-turbo(-16k|-\d{4}-\d{2}-\d{2})?$`), true},
		{regexp.MustCompile(`.*`), false},
	}

	// Context length patterns - maximum tokens for different models
	contextLength = []ModelAttribute[int]{
		{regexp.MustCompile(`^gpt-4\.1(-mini|-nano)?$`), 1047576},
		{regexp.MustCompile(`^gpt-4o(-mini)?$`), 128000},
		{regexp.MustCompile(`^gpt-4-turbo(-preview|-\d{4}-\d{2}-\d{2})?$`), 128000},
		{regexp.MustCompile(`^gpt-4-32k(-0613)?$`), 32768},
		{regexp.MustCompile(`^gpt-4(-0613)?$`), 8192},
		{regexp.MustCompile(`^gpt-3\.5-turbo-16k(-\d{4}-\d{2}-\d{2})?$`), 16384},
		{regexp.MustCompile(`^gpt-3\.5-turbo(-\d{4}-\d{2}-\d{2})?$`), 4096},
		{regexp.MustCompile(`.*`), 4096},
	}
)

// GetModelAttribute returns the attribute value for a given model by matching against patterns
func GetModelAttribute[T any](model string, attributes []ModelAttribute[T]) T {
	for _, attr := range attributes {
		if attr.Pattern.MatchString(model) {
			return attr.Value
		}
	}
	var zero T
	return zero
}

// Client implements the llm.Client interface for OpenAI and OpenAI-compatible endpoints
type Client struct {
	client      *openai.Client
	model       string
	temperature float64
	provider    llm.Provider
	apiKey      string
	baseURL     string
	logger      *zap.Logger
}

// NewClient creates a new OpenAI client. A missing API key is reported by
// the first request, not here.
func NewClient(config llm.ClientConfig) (*Client, error) {
	return NewCompatibleClient(config, llm.ProviderOpenAI, "")
}

// NewCompatibleClient creates a client for any endpoint speaking the OpenAI
// chat completions protocol. defaultBaseURL applies when config.BaseURL is empty.
func NewCompatibleClient(config llm.ClientConfig, provider llm.Provider, defaultBaseURL string) (*Client, error) {
	clientConfig := openai.DefaultConfig(config.APIKey)
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}
	if config.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: config.Timeout}
	}

	return &Client{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       config.Model,
		temperature: config.EffectiveTemperature(),
		provider:    provider,
		apiKey:      config.APIKey,
		baseURL:     baseURL,
		logger:      config.EffectiveLogger().With(zap.String("provider", string(provider))),
	}, nil
}

// Model returns the model identifier the client is bound to
func (c *Client) Model() string {
	return c.model
}

// Temperature returns the temperature used when a request does not set one
func (c *Client) Temperature() float64 {
	return c.temperature
}

// Provider returns the provider family of the client
func (c *Client) Provider() llm.Provider {
	return c.provider
}

// BaseURL returns the endpoint override, or "" for the library default
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ChatCompletion performs a chat completion request
func (c *Client) ChatCompletion(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	if c.apiKey == "" {
		return nil, llm.NewMissingAPIKeyError(c.provider)
	}

	openaiReq := c.convertRequest(req)
	c.logger.Debug("chat completion",
		zap.String("model", openaiReq.Model),
		zap.Float32("temperature", openaiReq.Temperature),
		zap.Int("messages", len(openaiReq.Messages)))

	resp, err := c.client.CreateChatCompletion(ctx, openaiReq)
	if err != nil {
		return nil, c.convertError(err)
	}

	return c.convertResponse(resp), nil
}

// StreamChatCompletion performs a streaming chat completion request
func (c *Client) StreamChatCompletion(ctx context.Context, req llm.ChatRequest) (<-chan llm.StreamEvent, error) {
	if c.apiKey == "" {
		return nil, llm.NewMissingAPIKeyError(c.provider)
	}

	openaiReq := c.convertRequest(req)
	openaiReq.Stream = true

	stream, err := c.client.CreateChatCompletionStream(ctx, openaiReq)
	if err != nil {
		return nil, c.convertError(err)
	}

	ch := make(chan llm.StreamEvent, 10)

	go func() {
		defer close(ch)
		defer func() { _ = stream.Close() }()

		send := func(event llm.StreamEvent) bool {
			select {
			case <-ctx.Done():
				return false
			case ch <- event:
				return true
			}
		}

		finishReason := llm.FinishReasonStop
		for {
			response, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				send(llm.NewDoneEvent(0, finishReason))
				return
			}
			if err != nil {
				send(llm.NewErrorEvent(c.convertError(err)))
				return
			}

			if len(response.Choices) == 0 {
				continue
			}
			choice := response.Choices[0]
			if choice.FinishReason != "" {
				finishReason = string(choice.FinishReason)
			}
			if choice.Delta.Content != "" {
				if !send(llm.NewDeltaEvent(0, &llm.MessageDelta{Content: choice.Delta.Content})) {
					return
				}
			}
		}
	}()

	return ch, nil
}

// GetModelInfo returns information about the model being used
func (c *Client) GetModelInfo() llm.ModelInfo {
	return llm.ModelInfo{
		Name:              c.model,
		Provider:          string(c.provider),
		Temperature:       c.temperature,
		MaxTokens:         GetModelAttribute(c.model, contextLength),
		SupportsTools:     GetModelAttribute(c.model, toolsSupport),
		SupportsVision:    GetModelAttribute(c.model, visionSupport),
		SupportsStreaming: true,
	}
}

// Close cleans up any resources used by the client
func (c *Client) Close() error {
	// OpenAI client doesn't require explicit cleanup
	return nil
}

// convertRequest converts our ChatRequest to OpenAI format
func (c *Client) convertRequest(req llm.ChatRequest) openai.ChatCompletionRequest {
	openaiReq := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    c.convertMessages(req.Messages),
		Temperature: wireTemperature(float32(c.temperature)),
		Stream:      req.Stream,
	}

	if req.Temperature != nil {
		openaiReq.Temperature = wireTemperature(*req.Temperature)
	}
	if req.MaxTokens != nil {
		openaiReq.MaxTokens = *req.MaxTokens
	}
	if req.TopP != nil {
		openaiReq.TopP = *req.TopP
	}

	return openaiReq
}

// wireTemperature keeps a zero temperature on the wire. The request field
// is omitempty, so 0 would be dropped and the API default of 1 used instead.
func wireTemperature(t float32) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return t
}

// convertMessages converts our messages to OpenAI format
func (c *Client) convertMessages(messages []llm.Message) []openai.ChatCompletionMessage {
	openaiMessages := make([]openai.ChatCompletionMessage, 0, len(messages))

	for _, msg := range messages {
		content := msg.GetText()
		if strings.TrimSpace(content) == "" {
			// Use space for empty text to avoid 'undefined' error from API
			content = " "
		}
		openaiMessages = append(openaiMessages, openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: content,
		})
	}

	return openaiMessages
}

// convertResponse converts OpenAI response to our format
func (c *Client) convertResponse(resp openai.ChatCompletionResponse) *llm.ChatResponse {
	chatResp := &llm.ChatResponse{
		ID:    resp.ID,
		Model: resp.Model,
		Usage: llm.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}

	for _, choice := range resp.Choices {
		chatResp.Choices = append(chatResp.Choices, llm.Choice{
			Index:        choice.Index,
			Message:      llm.NewTextMessage(llm.MessageRole(choice.Message.Role), choice.Message.Content),
			FinishReason: string(choice.FinishReason),
		})
	}

	return chatResp
}

// convertError converts OpenAI error to our format
func (c *Client) convertError(err error) *llm.Error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		code := "unknown"
		if codeStr, ok := apiErr.Code.(string); ok {
			code = codeStr
		}
		return &llm.Error{
			Code:       code,
			Message:    apiErr.Message,
			Type:       apiErr.Type,
			StatusCode: apiErr.HTTPStatusCode,
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &llm.Error{
			Code:       llm.CodeUnknown,
			Message:    reqErr.Error(),
			Type:       llm.ErrorTypeAPI,
			StatusCode: reqErr.HTTPStatusCode,
		}
	}

	return &llm.Error{
		Code:    llm.CodeUnknown,
		Message: err.Error(),
		Type:    llm.ErrorTypeAPI,
	}
}
