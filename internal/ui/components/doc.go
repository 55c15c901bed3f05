// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the visual pieces of the chat screen.

Each component is a plain struct with a View method; the ones that animate
also follow the Bubble Tea Update pattern.

# Key Types

  - Header (header.go) - Title and subtitle bar
  - MessageBubble (message.go) - One user or assistant turn
  - TypingIndicator (spinner.go) - Shown while a reply is outstanding
  - Footer (footer.go) - Key hints, notices and the privacy note
  - Welcome (welcome.go) - Placeholder for an empty conversation

# Usage

	theme := styles.NewTheme()
	header := components.NewHeader(theme)
	header.SetWidth(80)
	view := header.View()

	typing := components.NewTypingIndicator(theme)
	cmd := typing.Start()
*/
package components
