// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// =============================================================================
// HTML RENDERER
// =============================================================================

// HTML renders assistant markdown to an HTML fragment. Raw HTML in the
// source is omitted and links open in a new browsing context.
type HTML struct {
	md          goldmark.Markdown
	chromaStyle string
}

// HTMLOption configures an HTML renderer.
type HTMLOption func(*HTML)

// WithCodeStyle sets the chroma style used for fenced code.
func WithCodeStyle(name string) HTMLOption {
	return func(h *HTML) {
		h.chromaStyle = name
	}
}

// NewHTML creates an HTML renderer with GitHub-flavored markdown.
func NewHTML(opts ...HTMLOption) *HTML {
	h := &HTML{chromaStyle: "github-dark"}
	for _, opt := range opts {
		opt(h)
	}

	h.md = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			renderer.WithNodeRenderers(
				util.Prioritized(&chatNodeRenderer{chromaStyle: h.chromaStyle}, 100),
			),
		),
	)
	return h
}

// Markdown converts markdown source to HTML.
func (h *HTML) Markdown(source string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := h.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// Plain renders user text: escaped, with whitespace kept by the caller's
// CSS (white-space: pre-wrap).
func (h *HTML) Plain(text string) template.HTML {
	return template.HTML(template.HTMLEscapeString(text))
}

// =============================================================================
// NODE RENDERER
// =============================================================================

// chatNodeRenderer overrides goldmark's defaults for code and links.
type chatNodeRenderer struct {
	chromaStyle string
}

func (r *chatNodeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
	reg.Register(ast.KindCodeBlock, r.renderCodeBlock)
	reg.Register(ast.KindCodeSpan, r.renderCodeSpan)
	reg.Register(ast.KindLink, r.renderLink)
	reg.Register(ast.KindAutoLink, r.renderAutoLink)
}

func (r *chatNodeRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)
	r.writeCodeBlock(w, string(n.Language(source)), blockText(n, source))
	return ast.WalkSkipChildren, nil
}

func (r *chatNodeRenderer) renderCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	r.writeCodeBlock(w, "", blockText(node, source))
	return ast.WalkSkipChildren, nil
}

func (r *chatNodeRenderer) writeCodeBlock(w util.BufWriter, language, code string) {
	label := language
	if label == "" {
		label = DefaultCodeLabel
	}

	_, _ = w.WriteString(`<div class="code-block"><div class="code-lang">`)
	_, _ = w.Write(util.EscapeHTML([]byte(label)))
	_, _ = w.WriteString("</div>")

	if err := r.highlight(w, language, code); err != nil {
		_, _ = w.WriteString("<pre><code>")
		_, _ = w.Write(util.EscapeHTML([]byte(code)))
		_, _ = w.WriteString("</code></pre>")
	}
	_, _ = w.WriteString("</div>\n")
}

// highlight writes code as inline-styled chroma HTML. It writes nothing when
// it fails.
func (r *chatNodeRenderer) highlight(w util.BufWriter, language, code string) error {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get(r.chromaStyle)
	if style == nil {
		style = chromaStyles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := chromahtml.New(chromahtml.WithClasses(false)).Format(&buf, style, iterator); err != nil {
		return err
	}
	_, err = w.Write(buf.Bytes())
	return err
}

func (r *chatNodeRenderer) renderCodeSpan(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		_, _ = w.WriteString("</code>")
		return ast.WalkContinue, nil
	}

	_, _ = w.WriteString(`<code class="inline-code">`)
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		var value []byte
		switch t := c.(type) {
		case *ast.Text:
			value = t.Segment.Value(source)
		case *ast.String:
			value = t.Value
		default:
			continue
		}
		// Line endings inside a code span render as spaces.
		if bytes.HasSuffix(value, []byte("\n")) {
			value = append(value[:len(value)-1:len(value)-1], ' ')
		}
		_, _ = w.Write(util.EscapeHTML(value))
	}
	return ast.WalkSkipChildren, nil
}

func (r *chatNodeRenderer) renderLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Link)
	if !entering {
		_, _ = w.WriteString("</a>")
		return ast.WalkContinue, nil
	}

	_, _ = w.WriteString(`<a href="`)
	if !html.IsDangerousURL(n.Destination) {
		_, _ = w.Write(util.EscapeHTML(util.URLEscape(n.Destination, true)))
	}
	_ = w.WriteByte('"')
	if n.Title != nil {
		_, _ = w.WriteString(` title="`)
		_, _ = w.Write(util.EscapeHTML(n.Title))
		_ = w.WriteByte('"')
	}
	_, _ = w.WriteString(` target="_blank" rel="noopener noreferrer">`)
	return ast.WalkContinue, nil
}

func (r *chatNodeRenderer) renderAutoLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.AutoLink)
	if !entering {
		return ast.WalkContinue, nil
	}

	url := n.URL(source)
	label := n.Label(source)
	if n.AutoLinkType == ast.AutoLinkEmail && !bytes.HasPrefix(bytes.ToLower(url), []byte("mailto:")) {
		url = append([]byte("mailto:"), url...)
	}

	_, _ = w.WriteString(`<a href="`)
	if !html.IsDangerousURL(url) {
		_, _ = w.Write(util.EscapeHTML(util.URLEscape(url, false)))
	}
	_, _ = w.WriteString(`" target="_blank" rel="noopener noreferrer">`)
	_, _ = w.Write(util.EscapeHTML(label))
	_, _ = w.WriteString("</a>")
	return ast.WalkContinue, nil
}

// blockText joins the raw lines of a code block.
func blockText(node ast.Node, source []byte) string {
	var sb strings.Builder
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		sb.Write(line.Value(source))
	}
	return sb.String()
}
