// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/neuralchat/internal/model"
)

// stubSender records calls and answers with a fixed reply or error.
type stubSender struct {
	reply string
	err   error
	calls [][]model.Message
}

func (s *stubSender) Send(_ context.Context, history []model.Message) (string, error) {
	s.calls = append(s.calls, history)
	return s.reply, s.err
}

func contents(msgs []model.Message) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = string(m.Role()) + ":" + m.Content()
	}
	return out
}

func TestController_SendAppendsUserAndAssistant(t *testing.T) {
	c := NewController(nil)
	sender := &stubSender{reply: "hello"}

	c.SetDraft("hi")
	sent, err := c.Send(context.Background(), sender)

	require.NoError(t, err)
	assert.True(t, sent)
	assert.Equal(t, []string{"user:hi", "assistant:hello"}, contents(c.Conversation().Messages()))
	assert.Equal(t, "", c.Draft())
	assert.Equal(t, StateIdle, c.State())

	require.Len(t, sender.calls, 1)
	assert.Equal(t, []string{"user:hi"}, contents(sender.calls[0]))
}

func TestController_EmptyInputIsNoOp(t *testing.T) {
	for _, draft := range []string{"", "   ", "\n\t "} {
		c := NewController(nil)
		sender := &stubSender{reply: "unused"}

		c.SetDraft(draft)
		sent, err := c.Send(context.Background(), sender)

		assert.NoError(t, err)
		assert.False(t, sent, "draft %q", draft)
		assert.Equal(t, 0, c.Conversation().Len())
		assert.Empty(t, sender.calls)
		assert.Equal(t, draft, c.Draft(), "draft is kept when nothing is sent")
	}
}

func TestController_SubmitWhileSendingIsNoOp(t *testing.T) {
	c := NewController(nil)

	c.SetDraft("first")
	history, ok := c.Submit()
	require.True(t, ok)
	require.Len(t, history, 1)
	assert.True(t, c.IsSending())

	c.SetDraft("second")
	assert.False(t, c.CanSubmit())
	_, ok = c.Submit()
	assert.False(t, ok)
	assert.Equal(t, 1, c.Conversation().Len())
	assert.Equal(t, "second", c.Draft())

	c.Complete("reply", nil)
	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, []string{"user:first", "assistant:reply"}, contents(c.Conversation().Messages()))
}

func TestController_FailureAppendsErrorReply(t *testing.T) {
	c := NewController(nil)
	boom := errors.New("connection refused")

	c.SetDraft("hi")
	sent, err := c.Send(context.Background(), &stubSender{err: boom})

	assert.True(t, sent)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, []string{"user:hi", "assistant:" + ErrorReply}, contents(c.Conversation().Messages()))
}

func TestController_CompleteOutsideSendingIsIgnored(t *testing.T) {
	c := NewController(nil)
	c.Complete("stray", nil)

	assert.Equal(t, 0, c.Conversation().Len())
	assert.Equal(t, StateIdle, c.State())
}

func TestController_HistoryIncludesEarlierTurns(t *testing.T) {
	c := NewController(nil)
	sender := &stubSender{reply: "ok"}

	for _, text := range []string{"one", "two"} {
		c.SetDraft(text)
		_, err := c.Send(context.Background(), sender)
		require.NoError(t, err)
	}

	require.Len(t, sender.calls, 2)
	assert.Equal(t, []string{"user:one", "assistant:ok", "user:two"}, contents(sender.calls[1]))
}

func TestController_KeepsWhitespaceInContent(t *testing.T) {
	c := NewController(nil)
	c.SetDraft("  indented\ncode  ")
	_, ok := c.Submit()
	require.True(t, ok)

	last, _ := c.Conversation().Last()
	assert.Equal(t, "  indented\ncode  ", last.Content())
}

func TestController_Session(t *testing.T) {
	conv := model.NewConversation()
	c := NewController(conv)

	assert.Same(t, conv, c.Conversation())
	assert.NotEmpty(t, c.SessionID())
	assert.GreaterOrEqual(t, int64(c.Duration()), int64(0))
}
