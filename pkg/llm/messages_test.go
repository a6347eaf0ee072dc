package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSystem(t *testing.T) {
	t.Parallel()

	t.Run("system_messages_are_joined", func(t *testing.T) {
		t.Parallel()

		system, rest := SplitSystem([]Message{
			NewTextMessage(RoleSystem, "You are a portfolio manager."),
			NewTextMessage(RoleUser, "Should I buy?"),
			NewTextMessage(RoleSystem, "Answer in one word."),
			NewTextMessage(RoleAssistant, "Maybe."),
		})

		assert.Equal(t, "You are a portfolio manager.\n\nAnswer in one word.", system)
		assert.Len(t, rest, 2)
		assert.Equal(t, RoleUser, rest[0].Role)
		assert.Equal(t, RoleAssistant, rest[1].Role)
	})

	t.Run("blank_system_messages_are_dropped", func(t *testing.T) {
		t.Parallel()

		system, rest := SplitSystem([]Message{
			NewTextMessage(RoleSystem, "   "),
			NewTextMessage(RoleUser, "hi"),
		})

		assert.Empty(t, system)
		assert.Len(t, rest, 1)
	})

	t.Run("no_messages", func(t *testing.T) {
		t.Parallel()

		system, rest := SplitSystem(nil)
		assert.Empty(t, system)
		assert.Empty(t, rest)
	})
}

func TestMessageIsEmpty(t *testing.T) {
	assert.True(t, NewTextMessage(RoleUser, "").IsEmpty())
	assert.True(t, NewTextMessage(RoleUser, " \n\t").IsEmpty())
	assert.False(t, NewTextMessage(RoleUser, "x").IsEmpty())
}

func TestChatResponseText(t *testing.T) {
	assert.Empty(t, ChatResponse{}.Text())

	resp := ChatResponse{Choices: []Choice{
		{Message: NewTextMessage(RoleAssistant, "first"), FinishReason: FinishReasonStop},
		{Message: NewTextMessage(RoleAssistant, "second")},
	}}
	assert.Equal(t, "first", resp.Text())
	assert.True(t, resp.Choices[0].IsComplete())
	assert.False(t, resp.Choices[1].IsComplete())
}
