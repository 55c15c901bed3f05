// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"log"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/neuralchat/internal/ui/components"
)

// View renders the chat screen: header, transcript, input, footer.
func (m Model) View() string {
	input := m.theme.InputContainer.Width(m.width).Render(m.input.View())
	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		m.viewport.View(),
		input,
		m.footer.View(),
	)
}

// resize lays the screen out for a new terminal size.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	m.header.SetWidth(width)
	m.footer.SetWidth(width)
	m.input.Width = width - 6

	vpHeight := height - m.header.Height() - m.footer.Height() - inputHeight
	if vpHeight < 3 {
		vpHeight = 3
	}
	m.viewport.Width = width
	m.viewport.Height = vpHeight
	m.welcome.SetSize(width, vpHeight)

	if err := m.renderer.SetWidth(contentWidth(width)); err != nil {
		log.Printf("RENDERER_RESIZE_ERROR | width=%d error=%v", width, err)
	}
	m.cache.dirty = true
	m.refresh()
}

// refresh rebuilds the viewport content. The transcript is re-rendered only
// after an append or resize; the typing indicator is redrawn every frame.
// Only new content scrolls the view to the end, so the user can read back
// while a reply is outstanding.
func (m *Model) refresh() {
	conv := m.ctrl.Conversation()
	changed := m.cache.dirty

	if m.cache.dirty {
		if conv.IsEmpty() {
			m.cache.transcript = ""
		} else {
			m.cache.transcript = components.RenderConversation(conv.Messages(), m.width, m.renderer, m.theme)
		}
		m.cache.dirty = false
	}

	var content string
	switch {
	case conv.IsEmpty() && !m.typing.IsActive():
		content = m.welcome.View()
	case m.typing.IsActive():
		content = m.cache.transcript + "\n\n" + m.typing.View()
	default:
		content = m.cache.transcript
	}

	m.viewport.SetContent(content)
	if changed {
		m.viewport.GotoBottom()
	}
}
