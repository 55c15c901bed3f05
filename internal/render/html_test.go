// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderHTML(t *testing.T, src string) string {
	t.Helper()
	out, err := NewHTML().Markdown(src)
	require.NoError(t, err)
	return string(out)
}

func TestHTML_InlineCode(t *testing.T) {
	out := renderHTML(t, "Compare `a < b` first.")
	assert.Contains(t, out, `<code class="inline-code">a &lt; b</code>`)
}

func TestHTML_FencedCodeLabel(t *testing.T) {
	out := renderHTML(t, "```python\nprint('hi')\n```")
	assert.Contains(t, out, `<div class="code-block"><div class="code-lang">python</div>`)
	assert.Contains(t, out, "print")
	assert.Contains(t, out, "<pre")

	out = renderHTML(t, "```\nplain text\n```")
	assert.Contains(t, out, `<div class="code-lang">code</div>`)
	assert.Contains(t, out, "plain text")
}

func TestHTML_Links(t *testing.T) {
	out := renderHTML(t, "[docs](https://example.com/a?b=c)")
	assert.Contains(t, out, `href="https://example.com/a?b=c"`)
	assert.Contains(t, out, `target="_blank" rel="noopener noreferrer">docs</a>`)

	out = renderHTML(t, "see https://go.dev today")
	assert.Contains(t, out, `<a href="https://go.dev" target="_blank" rel="noopener noreferrer">https://go.dev</a>`)

	out = renderHTML(t, "[x](javascript:alert(1))")
	assert.Contains(t, out, `<a href="" target="_blank"`)
	assert.NotContains(t, out, "javascript:")
}

func TestHTML_GFMAndRawHTML(t *testing.T) {
	out := renderHTML(t, "| a | b |\n|---|---|\n| 1 | 2 |\n\n<script>alert(1)</script>\n\n> quoted\n\n---")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<blockquote>")
	assert.Contains(t, out, "<hr>")
	assert.NotContains(t, out, "<script>")
}

func TestHTML_Plain(t *testing.T) {
	h := NewHTML()
	assert.Equal(t, "&lt;b&gt;hi&lt;/b&gt;", string(h.Plain("<b>hi</b>")))
}
