// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// UNICODE: Width math goes through go-runewidth so CJK and emoji take the
// columns a terminal actually gives them.

// TruncateRunes truncates a string to a maximum number of runes (characters).
// If the string is truncated, "..." is appended.
func TruncateRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	if maxRunes <= 3 {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-3]) + "..."
}

// TruncateWidth truncates a string to a maximum display width, ending in "..."
// when anything was cut.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if maxWidth < 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// StringWidth returns the display width of a string.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// MaxLineWidth returns the display width of the widest line.
func MaxLineWidth(text string) int {
	maxWidth := 0
	for _, line := range strings.Split(text, "\n") {
		if w := runewidth.StringWidth(line); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

// TabWidth is the number of spaces lipgloss draws for a tab.
const TabWidth = 4

// ExpandTabs replaces each tab with TabWidth spaces, matching how lipgloss
// renders them.
func ExpandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", TabWidth))
}

// WrapPreserve wraps text to width columns without collapsing whitespace.
// Existing line breaks, indentation and runs of spaces are kept; long lines
// break after the last space that fits, or mid-word when none does. Tabs
// are expanded first so the measured width is the drawn width.
func WrapPreserve(text string, width int) string {
	if width <= 0 {
		return text
	}
	text = ExpandTabs(text)

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, wrapLine(line, width)...)
	}
	return strings.Join(out, "\n")
}

func wrapLine(line string, width int) []string {
	if runewidth.StringWidth(line) <= width {
		return []string{line}
	}

	var out []string
	runes := []rune(line)
	start := 0
	for start < len(runes) {
		cols := 0
		end := start
		lastSpace := -1
		for end < len(runes) {
			w := runewidth.RuneWidth(runes[end])
			if cols+w > width {
				break
			}
			if runes[end] == ' ' {
				lastSpace = end
			}
			cols += w
			end++
		}

		if end == len(runes) {
			out = append(out, string(runes[start:]))
			break
		}
		if end == start {
			// A single rune wider than width still has to go somewhere.
			end = start + 1
		} else if lastSpace > start {
			end = lastSpace + 1
		}
		out = append(out, string(runes[start:end]))
		start = end
	}
	return out
}
