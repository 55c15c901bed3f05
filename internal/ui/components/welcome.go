// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/neuralchat/internal/ui/styles"
)

const (
	WelcomeTitle = "How can I help?"
	WelcomeText  = "Ask me anything and I will do my best to help. All conversations stay private on your machine."
)

// Welcome is the placeholder shown while the conversation is empty.
type Welcome struct {
	width  int
	height int
	theme  *styles.Theme
}

// NewWelcome creates the empty-conversation placeholder.
func NewWelcome(theme *styles.Theme) Welcome {
	if theme == nil {
		theme = styles.DefaultTheme
	}
	return Welcome{theme: theme}
}

// SetSize updates the area the placeholder is centered in.
func (w *Welcome) SetSize(width, height int) {
	w.width = width
	w.height = height
}

// View renders the placeholder centered in its area.
func (w Welcome) View() string {
	textWidth := w.width - 4
	if textWidth > 60 {
		textWidth = 60
	}
	if textWidth < 20 {
		textWidth = 20
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		w.theme.HeaderTitle.Render(WelcomeTitle),
		"",
		w.theme.HeaderSubtitle.Width(textWidth).Align(lipgloss.Center).Render(WelcomeText),
	)
	return lipgloss.Place(w.width, w.height, lipgloss.Center, lipgloss.Center, body)
}
