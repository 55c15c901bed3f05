// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/neuralchat/internal/ui/styles"
	"github.com/jeranaias/neuralchat/internal/util"
)

// DefaultWidth is the wrap width used before the terminal reports its size.
const DefaultWidth = 80

// =============================================================================
// TERMINAL RENDERER
// =============================================================================

// Terminal renders message content for a terminal of a given width.
// Prose goes through glamour; fenced code is drawn as CodeBlocks.
// A Terminal is not safe for concurrent use.
type Terminal struct {
	width     int
	style     string
	plainCode bool
	theme     *styles.Theme
	md        *glamour.TermRenderer
}

// TerminalOption configures a Terminal.
type TerminalOption func(*Terminal)

// WithWidth sets the wrap width.
func WithWidth(width int) TerminalOption {
	return func(t *Terminal) {
		t.width = width
	}
}

// WithStyle sets the glamour style by name ("dark", "light", "notty", ...)
// or JSON file path. "notty" also turns off code highlighting.
func WithStyle(style string) TerminalOption {
	return func(t *Terminal) {
		t.style = style
	}
}

// WithTheme sets the theme used for code blocks.
func WithTheme(theme *styles.Theme) TerminalOption {
	return func(t *Terminal) {
		t.theme = theme
	}
}

// NewTerminal creates a terminal renderer. The default style follows the
// theme's detected background.
func NewTerminal(opts ...TerminalOption) (*Terminal, error) {
	t := &Terminal{width: DefaultWidth}
	for _, opt := range opts {
		opt(t)
	}
	if t.theme == nil {
		t.theme = styles.DefaultTheme
	}
	if t.style == "" {
		t.style = t.theme.GlamourStyle()
	}
	t.plainCode = t.style == "notty"

	if err := t.build(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Terminal) build() error {
	md, err := glamour.NewTermRenderer(
		glamour.WithStylePath(t.style),
		glamour.WithWordWrap(t.width),
		glamour.WithEmoji(),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	t.md = md
	return nil
}

// Width returns the wrap width.
func (t *Terminal) Width() int {
	return t.width
}

// SetWidth changes the wrap width, rebuilding the markdown renderer when it
// actually changes.
func (t *Terminal) SetWidth(width int) error {
	if width <= 0 || width == t.width {
		return nil
	}
	t.width = width
	return t.build()
}

// Plain renders user text: no markdown, whitespace kept, wrapped to width.
func (t *Terminal) Plain(content string) string {
	return util.WrapPreserve(content, t.width)
}

// Markdown renders assistant text. When glamour fails on a segment, that
// segment falls back to plain wrapped text.
func (t *Terminal) Markdown(content string) string {
	var parts []string
	for _, seg := range SplitSegments(content) {
		switch seg.Kind {
		case SegmentCode:
			cb := CodeBlock{
				Language: seg.Language,
				Code:     seg.Text,
				MaxWidth: t.width,
				Plain:    t.plainCode,
				Theme:    t.theme,
			}
			parts = append(parts, cb.Render())
		default:
			out, err := t.md.Render(seg.Text)
			if err != nil {
				log.Printf("MARKDOWN_RENDER_ERROR | error=%v", err)
				out = t.Plain(seg.Text)
			}
			parts = append(parts, strings.Trim(out, "\n"))
		}
	}
	return strings.Join(parts, "\n")
}
