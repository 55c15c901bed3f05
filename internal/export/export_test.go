// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/neuralchat/internal/model"
)

func testConversation() *model.Conversation {
	conv := model.NewConversation()
	conv.Append(model.NewUserMessage("How do I print <b>?"))
	conv.Append(model.NewAssistantMessage("Use `fmt.Println`:\n\n```go\nfmt.Println(\"<b>\")\n```\n\nSee [docs](https://pkg.go.dev/fmt)."))
	return conv
}

func fixedOptions(dir string) *Options {
	opts := DefaultOptions()
	opts.OutputDir = dir
	opts.Model = "mistral"
	opts.Now = func() time.Time {
		return time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	}
	return opts
}

func TestHTMLExporter_Export(t *testing.T) {
	out, err := NewHTMLExporter(fixedOptions("")).Export(testConversation())
	require.NoError(t, err)
	page := string(out)

	assert.Contains(t, page, "<!DOCTYPE html>")
	assert.Contains(t, page, "Neural Chat")
	assert.Contains(t, page, "mistral")

	// User text is escaped, never interpreted.
	assert.Contains(t, page, "How do I print &lt;b&gt;?")
	assert.NotContains(t, page, "print <b>?")

	// Assistant text is markdown.
	assert.Contains(t, page, `<code class="inline-code">fmt.Println</code>`)
	assert.Contains(t, page, `<div class="code-lang">go</div>`)
	assert.Contains(t, page, `target="_blank" rel="noopener noreferrer"`)
	assert.Contains(t, page, "March 4, 2025")
}

func TestHTMLExporter_EscapesFenceLanguage(t *testing.T) {
	conv := model.NewConversation()
	conv.Append(model.NewAssistantMessage("```<script>alert('xss')</script>\ncode here\n```"))

	out, err := NewHTMLExporter(nil).Export(conv)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<script>alert")
}

func TestMarkdownExporter_Export(t *testing.T) {
	out, err := NewMarkdownExporter(fixedOptions("")).Export(testConversation())
	require.NoError(t, err)
	md := string(out)

	assert.True(t, strings.HasPrefix(md, "---\n"))
	assert.Contains(t, md, "model: mistral")
	assert.Contains(t, md, "### You")
	assert.Contains(t, md, "> How do I print <b>?")
	assert.Contains(t, md, "### Assistant")
	assert.Contains(t, md, "```go\nfmt.Println")
}

func TestExport_EmptyConversation(t *testing.T) {
	_, err := NewHTMLExporter(nil).Export(model.NewConversation())
	assert.ErrorIs(t, err, ErrEmptyConversation)

	_, err = NewMarkdownExporter(nil).Export(nil)
	assert.Error(t, err)
}

func TestExportToFile(t *testing.T) {
	dir := t.TempDir()

	path, err := ExportHTML(testConversation(), fixedOptions(dir))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "neuralchat-20250304-050607.html"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "inline-code")

	path, err = ExportMarkdown(testConversation(), fixedOptions(dir))
	require.NoError(t, err)
	assert.Equal(t, ".md", filepath.Ext(path))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"", FormatHTML},
		{"HTML", FormatHTML},
		{"markdown", FormatMarkdown},
		{" md ", FormatMarkdown},
	}
	for _, tc := range tests {
		got, err := ParseFormat(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
	}

	_, err := ParseFormat("pdf")
	assert.Error(t, err)

	exp, err := New(FormatMarkdown, nil)
	require.NoError(t, err)
	assert.Equal(t, "text/markdown", exp.MimeType())
}

func TestEscapeYAML(t *testing.T) {
	assert.Equal(t, "plain", escapeYAML("plain"))
	assert.Equal(t, `"a\nb: c"`, escapeYAML("a\nb: c"))
}
