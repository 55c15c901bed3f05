// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/neuralchat/internal/ui/styles"
)

// PrivacyNote is shown under the input.
const PrivacyNote = "🔒 All conversations stay local on your machine. Powered by Ollama Neural Chat."

// Shortcut is one key hint in the footer.
type Shortcut struct {
	Key  string
	Desc string
}

// DefaultShortcuts are the chat screen's key hints.
var DefaultShortcuts = []Shortcut{
	{Key: "enter", Desc: "send"},
	{Key: "ctrl+e", Desc: "export"},
	{Key: "pgup/pgdn", Desc: "scroll"},
	{Key: "ctrl+c", Desc: "quit"},
}

// =============================================================================
// FOOTER COMPONENT
// =============================================================================

// Footer shows key hints, an optional one-line notice and the privacy note.
type Footer struct {
	Width     int
	Shortcuts []Shortcut

	notice      string
	noticeError bool
	theme       *styles.Theme
}

// NewFooter creates a footer with the default shortcuts.
func NewFooter(theme *styles.Theme) *Footer {
	if theme == nil {
		theme = styles.DefaultTheme
	}
	return &Footer{
		Width:     80,
		Shortcuts: DefaultShortcuts,
		theme:     theme,
	}
}

// SetWidth updates the footer width.
func (f *Footer) SetWidth(width int) {
	f.Width = width
}

// SetNotice replaces the notice line; an empty text clears it.
func (f *Footer) SetNotice(text string, isError bool) {
	f.notice = text
	f.noticeError = isError
}

// Notice returns the current notice text.
func (f *Footer) Notice() string {
	return f.notice
}

// View renders the footer.
func (f *Footer) View() string {
	hints := make([]string, 0, len(f.Shortcuts))
	for _, s := range f.Shortcuts {
		hints = append(hints, f.theme.ShortcutKey.Render(s.Key)+" "+f.theme.ShortcutDesc.Render(s.Desc))
	}

	lines := []string{strings.Join(hints, "  ")}
	if f.notice != "" {
		style := f.theme.Notice
		if f.noticeError {
			style = f.theme.ErrorText
		}
		lines = append(lines, style.Render(f.notice))
	}
	lines = append(lines, f.theme.ShortcutDesc.Render(PrivacyNote))

	return f.theme.Footer.
		Width(f.Width).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// Height returns the rendered height in lines.
func (f *Footer) Height() int {
	return lipgloss.Height(f.View())
}
