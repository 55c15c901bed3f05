// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/neuralchat/internal/ui/styles"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

const (
	DefaultTitle    = "Neural Chat"
	DefaultSubtitle = "Powered by Ollama Local LLM"
)

// Header is the title bar.
type Header struct {
	Title     string
	Subtitle  string
	ModelName string
	Width     int
	theme     *styles.Theme
}

// NewHeader creates a header with the default title and subtitle.
func NewHeader(theme *styles.Theme) *Header {
	if theme == nil {
		theme = styles.DefaultTheme
	}
	return &Header{
		Title:    DefaultTitle,
		Subtitle: DefaultSubtitle,
		Width:    80,
		theme:    theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetModel shows the model name next to the subtitle.
func (h *Header) SetModel(name string) {
	h.ModelName = name
}

// View renders the header.
func (h *Header) View() string {
	width := h.Width
	if width < 30 {
		width = 30
	}

	subtitle := h.Subtitle
	if h.ModelName != "" {
		subtitle += " (" + h.ModelName + ")"
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		h.theme.HeaderTitle.Render(h.Title),
		h.theme.HeaderSubtitle.Render(subtitle),
	)

	// Width excludes the border.
	return h.theme.Header.Width(width - 2).Render(body)
}

// Height returns the rendered height in lines.
func (h *Header) Height() int {
	return lipgloss.Height(h.View())
}
