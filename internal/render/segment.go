// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import "strings"

// DefaultCodeLabel labels a fenced block that names no language.
const DefaultCodeLabel = "code"

// SegmentKind distinguishes prose from fenced code.
type SegmentKind int

const (
	SegmentText SegmentKind = iota
	SegmentCode
)

// Segment is a run of markdown prose or the body of one fenced code block.
type Segment struct {
	Kind     SegmentKind
	Text     string
	Language string
}

// Label returns the language shown on a code block.
func (s Segment) Label() string {
	if s.Language == "" {
		return DefaultCodeLabel
	}
	return s.Language
}

// =============================================================================
// FENCE PARSING
// =============================================================================

type fence struct {
	char byte
	size int
	info string
}

// openFence recognizes an opening fence: up to three spaces of indent, then
// three or more backticks or tildes. Backtick fences may not carry a
// backtick in their info string.
func openFence(line string) (fence, bool) {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 || len(trimmed) < 3 {
		return fence{}, false
	}

	ch := trimmed[0]
	if ch != '`' && ch != '~' {
		return fence{}, false
	}
	n := 0
	for n < len(trimmed) && trimmed[n] == ch {
		n++
	}
	if n < 3 {
		return fence{}, false
	}

	info := strings.TrimSpace(trimmed[n:])
	if ch == '`' && strings.ContainsRune(info, '`') {
		return fence{}, false
	}
	return fence{char: ch, size: n, info: info}, true
}

// closes reports whether line closes f: the same character, at least as
// many of them, and nothing but whitespace after.
func (f fence) closes(line string) bool {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return false
	}
	n := 0
	for n < len(trimmed) && trimmed[n] == f.char {
		n++
	}
	return n >= f.size && strings.TrimSpace(trimmed[n:]) == ""
}

// language is the first word of the info string.
func (f fence) language() string {
	if fields := strings.Fields(f.info); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

// SplitSegments cuts markdown into prose and fenced code segments, in order.
// An unclosed fence runs to the end of the text. Prose segments keep their
// original line breaks; empty prose between blocks is dropped.
func SplitSegments(markdown string) []Segment {
	var (
		segments []Segment
		prose    []string
		code     []string
		open     fence
		inCode   bool
	)

	flushProse := func() {
		text := strings.Join(prose, "\n")
		if strings.TrimSpace(text) != "" {
			segments = append(segments, Segment{Kind: SegmentText, Text: text})
		}
		prose = nil
	}
	flushCode := func() {
		segments = append(segments, Segment{
			Kind:     SegmentCode,
			Text:     strings.Join(code, "\n"),
			Language: open.language(),
		})
		code = nil
		inCode = false
	}

	for _, line := range strings.Split(markdown, "\n") {
		if inCode {
			if open.closes(line) {
				flushCode()
			} else {
				code = append(code, line)
			}
			continue
		}
		if f, ok := openFence(line); ok {
			flushProse()
			open = f
			inCode = true
			continue
		}
		prose = append(prose, line)
	}

	if inCode {
		flushCode()
	}
	flushProse()
	return segments
}
