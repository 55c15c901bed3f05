// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Shared styles for line-mode commands.
//
// Colors come from the TUI palette so both front ends look alike. They are
// dropped for non-TTY output and when NO_COLOR is set.

package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/neuralchat/internal/ui/styles"
)

func init() {
	lipgloss.SetColorProfile(GetColorProfile())
}

var (
	// TitleStyle is the banner line of the chat command.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(styles.Purple)

	// PromptStyle colors the input prompt.
	PromptStyle = lipgloss.NewStyle().Bold(true).Foreground(styles.Cyan)

	// UserLabelStyle and AssistantLabelStyle prefix each turn.
	UserLabelStyle      = lipgloss.NewStyle().Bold(true).Foreground(styles.Cyan)
	AssistantLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(styles.Purple)

	// DimStyle is for hints and the typing indicator.
	DimStyle = lipgloss.NewStyle().Foreground(styles.TextMuted)

	// SuccessStyle confirms a completed action.
	SuccessStyle = lipgloss.NewStyle().Foreground(styles.Emerald)

	// ErrorStyle flags failures.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(styles.Rose)
)
