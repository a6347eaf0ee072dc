package anthropic

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"github.com/primoagent/modelfactory/pkg/llm"
)

// DefaultMaxTokens is sent when a request does not set MaxTokens; the
// Messages API requires one.
const DefaultMaxTokens = 4096

// Client implements the llm.Client interface for Anthropic Claude models
type Client struct {
	client        anthropic.Client
	model         string
	temperature   float64
	timeout       time.Duration
	stopSequences []string
	apiKey        string
	logger        *zap.Logger
}

// NewClient creates a new Anthropic client. A zero Timeout keeps the SDK
// default and nil StopSequences sends none. A missing API key is reported
// by the first request.
func NewClient(config llm.ClientConfig) (*Client, error) {
	opts := []option.RequestOption{option.WithAPIKey(config.APIKey)}
	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}
	if config.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(config.Timeout))
	}

	var stop []string
	if len(config.StopSequences) > 0 {
		stop = append(stop, config.StopSequences...)
	}

	return &Client{
		client:        anthropic.NewClient(opts...),
		model:         config.Model,
		temperature:   config.EffectiveTemperature(),
		timeout:       config.Timeout,
		stopSequences: stop,
		apiKey:        config.APIKey,
		logger:        config.EffectiveLogger().With(zap.String("provider", string(llm.ProviderAnthropic))),
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

// Timeout returns the per-request timeout override, 0 when there is none
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// StopSequences returns the stop sequences sent with every request
func (c *Client) StopSequences() []string {
	return c.stopSequences
}

// ChatCompletion performs a chat completion request
func (c *Client) ChatCompletion(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	if c.apiKey == "" {
		return nil, llm.NewMissingAPIKeyError(llm.ProviderAnthropic)
	}

	params := c.convertRequest(req)
	c.logger.Debug("chat completion",
		zap.String("model", c.model),
		zap.Int64("max_tokens", params.MaxTokens),
		zap.Int("messages", len(params.Messages)))

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, convertError(err)
	}

	return c.convertResponse(msg), nil
}

// StreamChatCompletion performs a streaming chat completion request
func (c *Client) StreamChatCompletion(ctx context.Context, req llm.ChatRequest) (<-chan llm.StreamEvent, error) {
	if c.apiKey == "" {
		return nil, llm.NewMissingAPIKeyError(llm.ProviderAnthropic)
	}

	stream := c.client.Messages.NewStreaming(ctx, c.convertRequest(req))
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
		for stream.Next() {
			event := stream.Current()
			switch event.Type {
			case "content_block_delta":
				if event.Delta.Type == "text_delta" && event.Delta.Text != "" {
					if !send(llm.NewDeltaEvent(0, &llm.MessageDelta{Content: event.Delta.Text})) {
						return
					}
				}
			case "message_delta":
				if event.Delta.StopReason != "" {
					finishReason = convertStopReason(string(event.Delta.StopReason))
				}
			}
		}
		if err := stream.Err(); err != nil {
			send(llm.NewErrorEvent(convertError(err)))
			return
		}
		send(llm.NewDoneEvent(0, finishReason))
	}()

	return ch, nil
}

// GetModelInfo returns information about the model being used
func (c *Client) GetModelInfo() llm.ModelInfo {
	return llm.ModelInfo{
		Name:              c.model,
		Provider:          string(llm.ProviderAnthropic),
		Temperature:       c.temperature,
		MaxTokens:         contextLengthFor(c.model),
		SupportsTools:     true,
		SupportsVision:    strings.HasPrefix(c.model, "claude-") && !strings.HasPrefix(c.model, "claude-2"),
		SupportsStreaming: true,
	}
}

// Close cleans up any resources used by the client
func (c *Client) Close() error {
	return nil
}

func contextLengthFor(model string) int {
	if strings.HasPrefix(model, "claude-2.0") {
		return 100000
	}
	return 200000
}

// convertRequest converts our ChatRequest to Anthropic message params
func (c *Client) convertRequest(req llm.ChatRequest) anthropic.MessageNewParams {
	system, messages := llm.SplitSystem(req.Messages)

	maxTokens := int64(DefaultMaxTokens)
	if req.MaxTokens != nil {
		maxTokens = int64(*req.MaxTokens)
	}

	temperature := c.temperature
	if req.Temperature != nil {
		temperature = float64(*req.Temperature)
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   maxTokens,
		Messages:    convertMessages(messages),
		Temperature: anthropic.Float(temperature),
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}
	if len(c.stopSequences) > 0 {
		params.StopSequences = c.stopSequences
	}
	if req.TopP != nil {
		params.TopP = anthropic.Float(float64(*req.TopP))
	}

	return params
}

func convertMessages(messages []llm.Message) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(messages))
	for _, msg := range messages {
		text := msg.GetText()
		if msg.IsEmpty() {
			// the API rejects empty text blocks
			text = " "
		}
		block := anthropic.NewTextBlock(text)
		if msg.Role == llm.RoleAssistant {
			out = append(out, anthropic.NewAssistantMessage(block))
		} else {
			out = append(out, anthropic.NewUserMessage(block))
		}
	}
	return out
}

func (c *Client) convertResponse(msg *anthropic.Message) *llm.ChatResponse {
	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	prompt := int(msg.Usage.InputTokens)
	completion := int(msg.Usage.OutputTokens)
	return &llm.ChatResponse{
		ID:    msg.ID,
		Model: string(msg.Model),
		Choices: []llm.Choice{{
			Index:        0,
			Message:      llm.NewTextMessage(llm.RoleAssistant, text.String()),
			FinishReason: convertStopReason(string(msg.StopReason)),
		}},
		Usage: llm.Usage{
			PromptTokens:     prompt,
			CompletionTokens: completion,
			TotalTokens:      prompt + completion,
		},
	}
}

func convertStopReason(reason string) string {
	switch reason {
	case "end_turn", "stop_sequence":
		return llm.FinishReasonStop
	case "max_tokens":
		return llm.FinishReasonLength
	case "tool_use":
		return "tool_calls"
	default:
		return reason
	}
}

func convertError(err error) *llm.Error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return &llm.Error{
			Code:       "http_error",
			Message:    apiErr.Error(),
			Type:       llm.ErrorTypeAPI,
			StatusCode: apiErr.StatusCode,
		}
	}
	return &llm.Error{
		Code:    llm.CodeUnknown,
		Message: err.Error(),
		Type:    llm.ErrorTypeAPI,
	}
}
