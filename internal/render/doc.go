// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render turns message content into terminal or HTML output.
//
// User text is shown as typed: whitespace kept, wrapped to width, no markdown.
// Assistant text is markdown. Fenced code blocks carry a label taken from the
// first word of the fence info string, or "code" when there is none.
//
// # Key Types
//
//   - Terminal: glamour for prose, bordered chroma CodeBlocks for fences
//   - HTML: goldmark with GFM; links open in a new browsing context
//   - Segment: One prose run or fenced block from SplitSegments
//
// # Usage
//
//	term, err := render.NewTerminal(render.WithWidth(100))
//	if err != nil {
//	    return err
//	}
//	fmt.Println(term.Markdown(reply))
//
//	page, err := render.NewHTML().Markdown(reply)
package render
