// Package llm provides abstractions for Large Language Model clients
// stream.go defines types for streaming chat completions

package llm

import (
	"context"
	"strings"
)

// StreamEvent represents a single event in the streaming response
type StreamEvent struct {
	Type   string        `json:"type"` // "delta", "done", "error"
	Choice *StreamChoice `json:"choice,omitempty"`
	Error  *Error        `json:"error,omitempty"`
}

// StreamChoice represents a choice in the streaming response
type StreamChoice struct {
	Index        int           `json:"index"`
	Delta        *MessageDelta `json:"delta,omitempty"`
	FinishReason string        `json:"finish_reason,omitempty"`
}

// MessageDelta represents incremental updates to a message
type MessageDelta struct {
	Content string `json:"content,omitempty"`
}

// IsDelta returns true if this is a delta event
func (e StreamEvent) IsDelta() bool {
	return e.Type == "delta" && e.Choice != nil && e.Choice.Delta != nil
}

// IsDone returns true if this is a done event
func (e StreamEvent) IsDone() bool {
	return e.Type == "done" && e.Choice != nil
}

// IsError returns true if this is an error event
func (e StreamEvent) IsError() bool {
	return e.Type == "error" && e.Error != nil
}

// NewDeltaEvent creates a new delta stream event
func NewDeltaEvent(index int, delta *MessageDelta) StreamEvent {
	return StreamEvent{
		Type: "delta",
		Choice: &StreamChoice{
			Index: index,
			Delta: delta,
		},
	}
}

// NewDoneEvent creates a new done stream event
func NewDoneEvent(index int, finishReason string) StreamEvent {
	return StreamEvent{
		Type: "done",
		Choice: &StreamChoice{
			Index:        index,
			FinishReason: finishReason,
		},
	}
}

// NewErrorEvent creates a new error stream event
func NewErrorEvent(err *Error) StreamEvent {
	return StreamEvent{
		Type:  "error",
		Error: err,
	}
}

// CollectStream drains a stream into a single response. It stops at the
// first done or error event, or when ctx is cancelled.
func CollectStream(ctx context.Context, events <-chan StreamEvent) (*ChatResponse, error) {
	var text strings.Builder
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return collected(text.String(), ""), nil
			}
			switch {
			case ev.IsError():
				return nil, ev.Error
			case ev.IsDelta():
				text.WriteString(ev.Choice.Delta.Content)
			case ev.IsDone():
				return collected(text.String(), ev.Choice.FinishReason), nil
			}
		}
	}
}

func collected(text, finish string) *ChatResponse {
	return &ChatResponse{
		Choices: []Choice{{
			Message:      NewTextMessage(RoleAssistant, text),
			FinishReason: finish,
		}},
	}
}
