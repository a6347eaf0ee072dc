// Message types and functionality
package llm

import "strings"

// Message represents a single chat message
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// MessageRole defines the role of a message sender
type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// NewTextMessage creates a new Message with the given text
func NewTextMessage(role MessageRole, text string) Message {
	return Message{
		Role:    role,
		Content: text,
	}
}

// GetText returns the message text
func (m Message) GetText() string {
	return m.Content
}

// IsEmpty reports whether the message carries no visible text
func (m Message) IsEmpty() bool {
	return strings.TrimSpace(m.Content) == ""
}

// SplitSystem separates system messages from the conversation. System texts
// are joined with blank lines, as providers like Anthropic take them apart
// from the message list.
func SplitSystem(messages []Message) (string, []Message) {
	var system []string
	rest := make([]Message, 0, len(messages))
	for _, msg := range messages {
		if msg.Role == RoleSystem {
			if !msg.IsEmpty() {
				system = append(system, msg.Content)
			}
			continue
		}
		rest = append(rest, msg)
	}
	return strings.Join(system, "\n\n"), rest
}
