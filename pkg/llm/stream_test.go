package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamEventTypes(t *testing.T) {
	delta := NewDeltaEvent(0, &MessageDelta{Content: "test"})
	done := NewDoneEvent(0, "stop")
	errEvent := NewErrorEvent(&Error{Message: "test error"})

	if !delta.IsDelta() {
		t.Error("Delta event should be delta")
	}
	if delta.IsDone() || delta.IsError() {
		t.Error("Delta event should not be done or error")
	}

	if !done.IsDone() {
		t.Error("Done event should be done")
	}
	if done.IsDelta() || done.IsError() {
		t.Error("Done event should not be delta or error")
	}

	if !errEvent.IsError() {
		t.Error("Error event should be error")
	}
	if errEvent.IsDelta() || errEvent.IsDone() {
		t.Error("Error event should not be delta or done")
	}
}

func feed(events ...StreamEvent) <-chan StreamEvent {
	ch := make(chan StreamEvent, len(events))
	for _, ev := range events {
		ch <- ev
	}
	close(ch)
	return ch
}

func TestCollectStream(t *testing.T) {
	t.Parallel()

	t.Run("deltas_until_done", func(t *testing.T) {
		t.Parallel()

		resp, err := CollectStream(context.Background(), feed(
			NewDeltaEvent(0, &MessageDelta{Content: "Hel"}),
			NewDeltaEvent(0, &MessageDelta{Content: "lo"}),
			NewDoneEvent(0, FinishReasonLength),
		))
		require.NoError(t, err)
		assert.Equal(t, "Hello", resp.Text())
		assert.Equal(t, FinishReasonLength, resp.Choices[0].FinishReason)
	})

	t.Run("error_event_wins", func(t *testing.T) {
		t.Parallel()

		_, err := CollectStream(context.Background(), feed(
			NewDeltaEvent(0, &MessageDelta{Content: "partial"}),
			NewErrorEvent(&Error{Code: "rate_limited", Message: "slow down"}),
		))
		require.Error(t, err)
		assert.Equal(t, "slow down", err.Error())
	})

	t.Run("closed_without_done", func(t *testing.T) {
		t.Parallel()

		resp, err := CollectStream(context.Background(), feed(
			NewDeltaEvent(0, &MessageDelta{Content: "abc"}),
		))
		require.NoError(t, err)
		assert.Equal(t, "abc", resp.Text())
		assert.Empty(t, resp.Choices[0].FinishReason)
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := CollectStream(ctx, make(chan StreamEvent))
		assert.ErrorIs(t, err, context.Canceled)
	})
}
