package mock

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/primoagent/modelfactory/pkg/llm"
)

// Client implements the llm.Client interface for testing
type Client struct {
	mu sync.Mutex

	config            llm.ClientConfig
	modelInfo         llm.ModelInfo
	responses         []llm.ChatResponse
	responseIndex     int
	errors            []error
	errorIndex        int
	callLog           []llm.ChatRequest
	latencySimulation time.Duration
	closed            bool
}

// NewClient creates a new mock client that reports the provider, model and
// temperature of config. The config is kept so tests can inspect exactly
// what a constructor received.
func NewClient(config llm.ClientConfig) *Client {
	provider := config.Provider
	if provider == "" {
		provider = "mock"
	}
	return &Client{
		config: config,
		modelInfo: llm.ModelInfo{
			Name:              config.Model,
			Provider:          provider,
			Temperature:       config.EffectiveTemperature(),
			MaxTokens:         4096,
			SupportsStreaming: true,
		},
	}
}

// Constructor returns a constructor with the signature the factory registry
// expects. Every client it builds is also appended to *built when non-nil.
func Constructor(built *[]*Client) func(config llm.ClientConfig) (llm.Client, error) {
	var mu sync.Mutex
	return func(config llm.ClientConfig) (llm.Client, error) {
		c := NewClient(config)
		if built != nil {
			mu.Lock()
			*built = append(*built, c)
			mu.Unlock()
		}
		return c, nil
	}
}

// Config returns the configuration the client was created with
func (m *Client) Config() llm.ClientConfig {
	return m.config
}

// ChatCompletion returns pre-configured responses or errors, falling back
// to an echo of the last user message
func (m *Client) ChatCompletion(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	m.mu.Lock()
	m.callLog = append(m.callLog, req)
	latency := m.latencySimulation
	m.mu.Unlock()

	if latency > 0 {
		select {
		case <-time.After(latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.errorIndex < len(m.errors) {
		err := m.errors[m.errorIndex]
		m.errorIndex++
		return nil, err
	}

	if m.responseIndex < len(m.responses) {
		resp := m.responses[m.responseIndex]
		m.responseIndex++
		return &resp, nil
	}

	return m.echo(req), nil
}

// StreamChatCompletion simulates streaming by sending the response word by word
func (m *Client) StreamChatCompletion(ctx context.Context, req llm.ChatRequest) (<-chan llm.StreamEvent, error) {
	resp, err := m.ChatCompletion(ctx, req)
	if err != nil {
		ch := make(chan llm.StreamEvent, 1)
		ch <- llm.NewErrorEvent(&llm.Error{
			Code:    "mock_error",
			Message: err.Error(),
			Type:    "simulation_error",
		})
		close(ch)
		return ch, nil
	}

	finish := llm.FinishReasonStop
	if len(resp.Choices) > 0 && resp.Choices[0].FinishReason != "" {
		finish = resp.Choices[0].FinishReason
	}
	events := CreateWordByWordStream(resp.Text(), finish)

	ch := make(chan llm.StreamEvent, len(events))
	go func() {
		defer close(ch)
		for _, event := range events {
			select {
			case <-ctx.Done():
				return
			case ch <- event:
			}
		}
	}()
	return ch, nil
}

// GetModelInfo returns the model info
func (m *Client) GetModelInfo() llm.ModelInfo {
	return m.modelInfo
}

// Close marks the client closed
func (m *Client) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// IsClosed reports whether Close was called
func (m *Client) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *Client) echo(req llm.ChatRequest) *llm.ChatResponse {
	var userMessage string
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == llm.RoleUser {
			userMessage = req.Messages[i].GetText()
			break
		}
	}

	words := len(strings.Fields(userMessage))
	return &llm.ChatResponse{
		ID:    fmt.Sprintf("mock-%d", len(m.callLog)),
		Model: m.modelInfo.Name,
		Choices: []llm.Choice{{
			Index:        0,
			Message:      llm.NewTextMessage(llm.RoleAssistant, "echo: "+userMessage),
			FinishReason: llm.FinishReasonStop,
		}},
		Usage: llm.Usage{
			PromptTokens:     words,
			CompletionTokens: words + 1,
			TotalTokens:      2*words + 1,
		},
	}
}

// Test helper methods

// AddResponse adds a response to be returned by subsequent calls
func (m *Client) AddResponse(response llm.ChatResponse) *Client {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, response)
	return m
}

// AddError adds an error to be returned by subsequent calls
func (m *Client) AddError(err error) *Client {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, err)
	return m
}

// GetCallLog returns all requests made to this mock client
func (m *Client) GetCallLog() []llm.ChatRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]llm.ChatRequest, len(m.callLog))
	copy(out, m.callLog)
	return out
}

// GetLastCall returns the most recent request made to this mock client
func (m *Client) GetLastCall() *llm.ChatRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.callLog) == 0 {
		return nil
	}
	last := m.callLog[len(m.callLog)-1]
	return &last
}

// Reset clears all responses, errors, and call logs
func (m *Client) Reset() *Client {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = nil
	m.responseIndex = 0
	m.errors = nil
	m.errorIndex = 0
	m.callLog = nil
	return m
}

// WithSimpleResponse adds a simple text response
func (m *Client) WithSimpleResponse(content string) *Client {
	return m.AddResponse(llm.ChatResponse{
		ID:    fmt.Sprintf("mock-simple-%d", time.Now().UnixNano()),
		Model: m.modelInfo.Name,
		Choices: []llm.Choice{{
			Index:        0,
			Message:      llm.NewTextMessage(llm.RoleAssistant, content),
			FinishReason: llm.FinishReasonStop,
		}},
	})
}

// WithError adds an llm.Error to be returned by the next call
func (m *Client) WithError(code, message, errorType string) *Client {
	return m.AddError(&llm.Error{
		Code:    code,
		Message: message,
		Type:    errorType,
	})
}

// WithLatency delays every call by d, honoring context cancellation
func (m *Client) WithLatency(d time.Duration) *Client {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latencySimulation = d
	return m
}

// CreateWordByWordStream creates a streaming response that sends words individually
func CreateWordByWordStream(text, finishReason string) []llm.StreamEvent {
	words := strings.Fields(text)
	events := make([]llm.StreamEvent, 0, len(words)+1)

	for i, word := range words {
		if i < len(words)-1 {
			word += " "
		}
		events = append(events, llm.NewDeltaEvent(0, &llm.MessageDelta{Content: word}))
	}

	return append(events, llm.NewDoneEvent(0, finishReason))
}
