// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/neuralchat/internal/model"
	"github.com/jeranaias/neuralchat/internal/render"
	"github.com/jeranaias/neuralchat/internal/ui/styles"
	"github.com/jeranaias/neuralchat/internal/util"
)

// BubbleChrome is the width a bubble's border and padding add to its content.
const BubbleChrome = 4

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble draws one message. User turns are plain text aligned right;
// assistant turns are rendered markdown aligned left.
type MessageBubble struct {
	Message       model.Message
	Width         int
	ShowTimestamp bool

	renderer *render.Terminal
	theme    *styles.Theme
}

// NewMessageBubble creates a bubble. The renderer's width should be the
// content width, Width minus BubbleChrome.
func NewMessageBubble(msg model.Message, renderer *render.Terminal, theme *styles.Theme) *MessageBubble {
	if theme == nil {
		theme = styles.DefaultTheme
	}
	return &MessageBubble{
		Message:       msg,
		Width:         80,
		ShowTimestamp: true,
		renderer:      renderer,
		theme:         theme,
	}
}

// SetWidth sets the available width.
func (b *MessageBubble) SetWidth(width int) {
	b.Width = width
}

// View renders the bubble with its role label.
func (b *MessageBubble) View() string {
	if b.Message.Role() == model.RoleUser {
		return b.renderUserBubble()
	}
	return b.renderAssistantBubble()
}

func (b *MessageBubble) header() string {
	label := b.theme.RoleLabel.Render(b.Message.Role().DisplayName())
	if b.ShowTimestamp && !b.Message.CreatedAt().IsZero() {
		label += " " + b.theme.ShortcutDesc.Render(b.Message.CreatedAt().Format("15:04"))
	}
	return label
}

func (b *MessageBubble) contentWidth() int {
	w := b.Width - BubbleChrome
	if w < 10 {
		w = 10
	}
	return w
}

func (b *MessageBubble) renderUserBubble() string {
	content := util.WrapPreserve(b.Message.Content(), b.contentWidth())
	bubble := b.theme.UserBubble.Render(content)

	block := lipgloss.JoinVertical(lipgloss.Right, b.header(), bubble)
	return lipgloss.PlaceHorizontal(b.Width, lipgloss.Right, block)
}

func (b *MessageBubble) renderAssistantBubble() string {
	var content string
	if b.renderer != nil {
		content = b.renderer.Markdown(b.Message.Content())
	} else {
		content = util.WrapPreserve(b.Message.Content(), b.contentWidth())
	}
	bubble := b.theme.AssistantBubble.Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, b.header(), bubble)
}

// RenderConversation draws every message in order, separated by blank lines.
func RenderConversation(messages []model.Message, width int, renderer *render.Terminal, theme *styles.Theme) string {
	views := make([]string, 0, len(messages))
	for _, msg := range messages {
		bubble := NewMessageBubble(msg, renderer, theme)
		bubble.SetWidth(width)
		views = append(views, bubble.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, interleave(views, "")...)
}

func interleave(items []string, sep string) []string {
	if len(items) == 0 {
		return nil
	}
	out := make([]string, 0, len(items)*2-1)
	for i, item := range items {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, item)
	}
	return out
}
