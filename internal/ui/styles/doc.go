// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the colors and lipgloss styles of the chat screen.

All colors are lipgloss AdaptiveColors, so light and dark terminals each get a
readable variant without configuration.

# Color System (colors.go)

  - Purple - Assistant turns and the header title
  - Cyan - Prompt and shortcut keys
  - Emerald, Rose - Success and failure notices

Message bubbles use semantic tokens:

	UserBubbleBg          - Background for user messages
	UserBubbleFg          - Text color for user messages
	AssistantBubbleBorder - Border around rendered assistant markdown

# Theme System (theme.go)

	theme := styles.NewTheme()
	if theme.IsDark {
		// Dark terminal detected
	}
	renderer, _ := render.NewTerminal(render.WithStyle(theme.GlamourStyle()))

# Spinners (animations.go)

	DotsSpinner - Typing indicator
	LineSpinner - Line REPL wait indicator
*/
package styles
