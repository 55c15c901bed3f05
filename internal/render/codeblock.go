// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"

	"github.com/jeranaias/neuralchat/internal/ui/styles"
)

// =============================================================================
// CODE BLOCK RENDERER
// =============================================================================

// CodeBlock is a fenced code block drawn for the terminal.
type CodeBlock struct {
	Language string
	Code     string
	MaxWidth int

	// Plain skips syntax highlighting.
	Plain bool
	Theme *styles.Theme
}

// NewCodeBlock creates a code block with the default width and theme.
func NewCodeBlock(language, code string) CodeBlock {
	return CodeBlock{
		Language: language,
		Code:     code,
		MaxWidth: 80,
		Theme:    styles.DefaultTheme,
	}
}

// Label returns the badge text: the language, or "code".
func (c CodeBlock) Label() string {
	if c.Language == "" {
		return DefaultCodeLabel
	}
	return c.Language
}

// Render draws the block: a language badge over numbered, highlighted lines
// inside a rounded border.
func (c CodeBlock) Render() string {
	theme := c.Theme
	if theme == nil {
		theme = styles.DefaultTheme
	}

	code := strings.TrimRight(c.Code, "\n")
	if !c.Plain {
		code = highlightCode(code, c.Language)
	}

	lines := strings.Split(code, "\n")
	rendered := make([]string, 0, len(lines)+1)
	rendered = append(rendered, theme.CodeLangBadge.Render(c.Label()))
	for i, line := range lines {
		rendered = append(rendered, theme.CodeLineNum.Render(strconv.Itoa(i+1))+line)
	}

	maxWidth := c.MaxWidth - 2
	if maxWidth < 20 {
		maxWidth = 20
	}

	return theme.CodeBlock.
		MaxWidth(maxWidth).
		Render(strings.Join(rendered, "\n"))
}

// =============================================================================
// SYNTAX HIGHLIGHTING
// =============================================================================

// highlightCode colors code for a 256-color terminal. Unknown languages are
// guessed from the content; on any failure the code comes back unchanged.
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return strings.TrimRight(buf.String(), "\n")
}
