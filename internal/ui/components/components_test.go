// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/neuralchat/internal/model"
	"github.com/jeranaias/neuralchat/internal/render"
	"github.com/jeranaias/neuralchat/internal/ui/styles"
)

func testRenderer(t *testing.T, width int) *render.Terminal {
	t.Helper()
	r, err := render.NewTerminal(render.WithStyle("notty"), render.WithWidth(width))
	require.NoError(t, err)
	return r
}

func TestMessageBubble_UserIsPlainText(t *testing.T) {
	msg := model.NewUserMessage("**not bold**  spaced")
	bubble := NewMessageBubble(msg, testRenderer(t, 56), styles.NewTheme())
	bubble.SetWidth(60)

	out := ansi.Strip(bubble.View())
	assert.Contains(t, out, "You")
	assert.Contains(t, out, "**not bold**  spaced")
}

func TestMessageBubble_AssistantIsMarkdown(t *testing.T) {
	msg := model.NewAssistantMessage("Try `go test`:\n\n```bash\ngo test ./...\n```")
	bubble := NewMessageBubble(msg, testRenderer(t, 56), nil)
	bubble.SetWidth(60)

	out := ansi.Strip(bubble.View())
	assert.Contains(t, out, "Assistant")
	assert.Contains(t, out, "go test")
	assert.Contains(t, out, "bash")
	assert.NotContains(t, out, "```")
}

func TestRenderConversation_Order(t *testing.T) {
	msgs := []model.Message{
		model.NewUserMessage("first question"),
		model.NewAssistantMessage("first answer"),
		model.NewUserMessage("second question"),
	}

	out := ansi.Strip(RenderConversation(msgs, 60, testRenderer(t, 56), nil))
	i1 := strings.Index(out, "first question")
	i2 := strings.Index(out, "first answer")
	i3 := strings.Index(out, "second question")
	require.True(t, i1 >= 0 && i2 >= 0 && i3 >= 0, out)
	assert.True(t, i1 < i2 && i2 < i3)

	assert.Empty(t, RenderConversation(nil, 60, nil, nil))
}

func TestTypingIndicator(t *testing.T) {
	typing := NewTypingIndicator(nil)
	assert.False(t, typing.IsActive())
	assert.Empty(t, typing.View())

	cmd := typing.Start()
	require.NotNil(t, cmd)
	assert.True(t, typing.IsActive())
	assert.Contains(t, ansi.Strip(typing.View()), "typing")

	tick, ok := cmd().(spinner.TickMsg)
	require.True(t, ok)
	typing, next := typing.Update(tick)
	assert.NotNil(t, next)

	typing.Stop()
	_, next = typing.Update(tick)
	assert.Nil(t, next)
	assert.Empty(t, typing.View())
}

func TestHeader_View(t *testing.T) {
	h := NewHeader(nil)
	h.SetWidth(60)
	h.SetModel("mistral")

	out := ansi.Strip(h.View())
	assert.Contains(t, out, DefaultTitle)
	assert.Contains(t, out, DefaultSubtitle)
	assert.Contains(t, out, "mistral")
	assert.Equal(t, 4, h.Height())
}

func TestFooter_View(t *testing.T) {
	f := NewFooter(nil)
	f.SetWidth(100)

	out := ansi.Strip(f.View())
	assert.Contains(t, out, "ctrl+e")
	assert.Contains(t, out, "stay local on your machine")
	h := f.Height()

	f.SetNotice("Exported to chat.html", false)
	assert.Contains(t, ansi.Strip(f.View()), "Exported to chat.html")
	assert.Equal(t, h+1, f.Height())

	f.SetNotice("", false)
	assert.Equal(t, h, f.Height())
}

func TestWelcome_View(t *testing.T) {
	w := NewWelcome(nil)
	w.SetSize(80, 12)

	out := ansi.Strip(w.View())
	assert.Contains(t, out, WelcomeTitle)
	assert.Contains(t, out, "private")
}
