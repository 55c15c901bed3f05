// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTerminal(t *testing.T, width int) *Terminal {
	t.Helper()
	term, err := NewTerminal(WithStyle("notty"), WithWidth(width))
	require.NoError(t, err)
	return term
}

func TestTerminal_Plain(t *testing.T) {
	term := newTestTerminal(t, 40)

	assert.Equal(t, "a   b\n  c", term.Plain("a   b\n  c"))
	assert.Equal(t, "**not bold**", term.Plain("**not bold**"))
}

func TestTerminal_MarkdownProse(t *testing.T) {
	term := newTestTerminal(t, 60)

	out := ansi.Strip(term.Markdown("# Title\n\nUse `fmt.Println` here.\n\n- first\n- second"))
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "fmt.Println")
	assert.Contains(t, out, "first")
	assert.Contains(t, out, "second")
}

func TestTerminal_MarkdownCodeBlockLabel(t *testing.T) {
	term := newTestTerminal(t, 60)

	out := ansi.Strip(term.Markdown("Here:\n\n```python\nprint('hi')\n```"))
	assert.Contains(t, out, "Here:")
	assert.Contains(t, out, "python")
	assert.Contains(t, out, "print('hi')")
	assert.Contains(t, out, "╭")

	out = ansi.Strip(term.Markdown("```\nplain\n```"))
	assert.Contains(t, out, DefaultCodeLabel)
	assert.Contains(t, out, "plain")
}

func TestTerminal_SetWidth(t *testing.T) {
	term := newTestTerminal(t, 80)

	require.NoError(t, term.SetWidth(30))
	assert.Equal(t, 30, term.Width())
	require.NoError(t, term.SetWidth(0))
	assert.Equal(t, 30, term.Width())

	out := ansi.Strip(term.Markdown(strings.Repeat("wrap me ", 20)))
	assert.Greater(t, strings.Count(out, "\n"), 2)
}

func TestCodeBlock_Render(t *testing.T) {
	cb := NewCodeBlock("go", "package main\n\nfunc main() {}\n")
	out := ansi.Strip(cb.Render())

	assert.Contains(t, out, "go")
	assert.Contains(t, out, "package")
	assert.Contains(t, out, "3")
	assert.Equal(t, DefaultCodeLabel, NewCodeBlock("", "x").Label())
}
