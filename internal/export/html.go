// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/jeranaias/neuralchat/internal/model"
	"github.com/jeranaias/neuralchat/internal/render"
)

// =============================================================================
// HTML EXPORTER
// =============================================================================

// HTMLExporter writes a standalone page with embedded CSS. Assistant turns
// are rendered markdown; user turns are escaped text.
type HTMLExporter struct {
	options  *Options
	markdown *render.HTML
}

// NewHTMLExporter creates a new HTML exporter.
func NewHTMLExporter(opts *Options) *HTMLExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	codeStyle := "github-dark"
	if opts.Theme == "light" {
		codeStyle = "github"
	}
	return &HTMLExporter{
		options:  opts,
		markdown: render.NewHTML(render.WithCodeStyle(codeStyle)),
	}
}

type pageMessage struct {
	Role    string
	Label   string
	Time    string
	Content template.HTML
}

type pageData struct {
	Title    string
	Model    string
	Created  string
	Exported string
	Theme    string
	Messages []pageMessage
	CSS      template.CSS
}

// Export converts a conversation to HTML.
func (e *HTMLExporter) Export(conv *model.Conversation) ([]byte, error) {
	if err := checkConversation(conv); err != nil {
		return nil, err
	}

	theme := e.options.Theme
	if theme != "light" {
		theme = "dark"
	}

	data := pageData{
		Title:    conv.Title(),
		Model:    e.options.Model,
		Created:  formatTimestamp(conv.CreatedAt()),
		Exported: e.options.now().Format("January 2, 2006 at 3:04 PM"),
		Theme:    theme,
		CSS:      template.CSS(pageCSS),
	}

	for _, msg := range conv.Messages() {
		pm := pageMessage{
			Role:  msg.Role().String(),
			Label: msg.Role().DisplayName(),
		}
		if e.options.IncludeTimestamps {
			pm.Time = formatShortTimestamp(msg.CreatedAt())
		}

		if msg.Role() == model.RoleAssistant {
			content, err := e.markdown.Markdown(msg.Content())
			if err != nil {
				return nil, fmt.Errorf("render message %s: %w", msg.ID(), err)
			}
			pm.Content = content
		} else {
			pm.Content = template.HTML(`<div class="plain">`) + e.markdown.Plain(msg.Content()) + template.HTML(`</div>`)
		}
		data.Messages = append(data.Messages, pm)
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}

// FileExtension returns the file extension for HTML.
func (e *HTMLExporter) FileExtension() string {
	return ".html"
}

// MimeType returns the MIME type for HTML.
func (e *HTMLExporter) MimeType() string {
	return "text/html"
}

// =============================================================================
// PAGE TEMPLATE
// =============================================================================

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <meta name="generator" content="neuralchat">
    <title>{{.Title}}</title>
    <style>{{.CSS}}</style>
</head>
<body class="{{.Theme}}-theme">
    <div class="container">
        <header class="header">
            <h1>Neural Chat</h1>
            <p class="subtitle">Powered by Ollama Local LLM</p>
            <div class="metadata">
                <span><strong>Conversation:</strong> {{.Title}}</span>
                {{- if .Model}}
                <span><strong>Model:</strong> {{.Model}}</span>
                {{- end}}
                <span><strong>Started:</strong> {{.Created}}</span>
                <span><strong>Messages:</strong> {{len .Messages}}</span>
            </div>
        </header>
        <main class="conversation">
{{- range .Messages}}
            <div class="message {{.Role}}-message">
                <div class="message-header">
                    <span class="role-label">{{.Label}}</span>
                    {{- if .Time}}
                    <span class="timestamp">{{.Time}}</span>
                    {{- end}}
                </div>
                <div class="message-content">{{.Content}}</div>
            </div>
{{- end}}
        </main>
        <footer class="footer">
            <p>All conversations stay local on your machine. Exported from Neural Chat on {{.Exported}}</p>
        </footer>
    </div>
</body>
</html>
`))

const pageCSS = `
* { margin: 0; padding: 0; box-sizing: border-box; }
:root {
    --font-sans: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
    --font-mono: "SF Mono", Monaco, "Fira Code", "Source Code Pro", monospace;
}
.dark-theme {
    --bg-primary: #1e1e2e; --bg-secondary: #181825; --bg-tertiary: #313244;
    --text-primary: #cdd6f4; --text-secondary: #bac2de; --text-muted: #6c7086;
    --border-color: #45475a; --user-bg: #89b4fa; --user-fg: #1e1e2e;
    --code-bg: #11111b; --accent: #89b4fa;
}
.light-theme {
    --bg-primary: #ffffff; --bg-secondary: #f7f8fa; --bg-tertiary: #e1e4e8;
    --text-primary: #24292e; --text-secondary: #586069; --text-muted: #6a737d;
    --border-color: #e1e4e8; --user-bg: #dbeafe; --user-fg: #1e40af;
    --code-bg: #f6f8fa; --accent: #0366d6;
}
body { font-family: var(--font-sans); font-size: 16px; line-height: 1.6; color: var(--text-primary); background: var(--bg-primary); padding: 20px; }
.container { max-width: 900px; margin: 0 auto; background: var(--bg-secondary); border-radius: 12px; overflow: hidden; }
.header { padding: 24px 32px; border-bottom: 1px solid var(--border-color); }
.header h1 { font-size: 24px; font-weight: 700; }
.subtitle { font-size: 12px; color: var(--accent); margin-bottom: 12px; }
.metadata { display: flex; flex-wrap: wrap; gap: 16px; font-size: 14px; color: var(--text-secondary); }
.conversation { padding: 24px 32px; display: flex; flex-direction: column; gap: 16px; }
.message { max-width: 85%; padding: 12px 16px; border-radius: 8px; }
.user-message { align-self: flex-end; background: var(--user-bg); color: var(--user-fg); border-bottom-right-radius: 0; }
.assistant-message { align-self: flex-start; background: var(--bg-tertiary); border: 1px solid var(--border-color); border-bottom-left-radius: 0; }
.message-header { display: flex; justify-content: space-between; gap: 16px; font-size: 13px; margin-bottom: 6px; }
.role-label { font-weight: 600; }
.timestamp { font-family: var(--font-mono); opacity: 0.7; }
.plain { white-space: pre-wrap; }
.message-content p { margin: 0.5em 0; }
.message-content ul, .message-content ol { margin: 0.5em 0 0.5em 1.5em; }
.message-content blockquote { border-left: 3px solid var(--border-color); padding-left: 12px; color: var(--text-secondary); }
.message-content table { border-collapse: collapse; margin: 0.5em 0; }
.message-content th, .message-content td { border: 1px solid var(--border-color); padding: 4px 8px; }
.message-content a { color: var(--accent); }
.inline-code { font-family: var(--font-mono); font-size: 0.9em; background: var(--code-bg); padding: 2px 6px; border-radius: 4px; }
.code-block { margin: 0.75em 0; border-radius: 6px; overflow: hidden; background: var(--code-bg); }
.code-lang { font-family: var(--font-mono); font-size: 12px; color: var(--text-muted); padding: 4px 12px; border-bottom: 1px solid var(--border-color); }
.code-block pre { margin: 0; padding: 12px; overflow-x: auto; font-family: var(--font-mono); font-size: 14px; }
.footer { padding: 16px 32px; text-align: center; font-size: 12px; color: var(--text-muted); border-top: 1px solid var(--border-color); }
`
