// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/neuralchat/internal/ui/styles"
)

// =============================================================================
// TYPING INDICATOR
// =============================================================================

// TypingText is the label next to the spinner.
const TypingText = "Assistant is typing"

// TypingIndicator is the animated placeholder shown after the last message
// while a reply is outstanding.
type TypingIndicator struct {
	spinner spinner.Model
	message string
	active  bool
	theme   *styles.Theme
}

// NewTypingIndicator creates an inactive indicator.
func NewTypingIndicator(theme *styles.Theme) TypingIndicator {
	if theme == nil {
		theme = styles.DefaultTheme
	}

	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: styles.DotsSpinner.Frames,
		FPS:    styles.DotsSpinner.Duration(),
	}
	s.Style = theme.Spinner

	return TypingIndicator{
		spinner: s,
		message: TypingText,
		theme:   theme,
	}
}

// Start activates the indicator and returns the first animation tick.
func (t *TypingIndicator) Start() tea.Cmd {
	t.active = true
	return t.spinner.Tick
}

// Stop hides the indicator. Pending ticks die out in Update.
func (t *TypingIndicator) Stop() {
	t.active = false
}

// IsActive reports whether the indicator is showing.
func (t TypingIndicator) IsActive() bool {
	return t.active
}

// Update advances the animation while active.
func (t TypingIndicator) Update(msg tea.Msg) (TypingIndicator, tea.Cmd) {
	if !t.active {
		return t, nil
	}
	var cmd tea.Cmd
	t.spinner, cmd = t.spinner.Update(msg)
	return t, cmd
}

// View renders the indicator, or nothing when inactive.
func (t TypingIndicator) View() string {
	if !t.active {
		return ""
	}
	return t.theme.AssistantBubble.Render(
		t.theme.ThinkingText.Render(t.message) + " " + t.spinner.View(),
	)
}
