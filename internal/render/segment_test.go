// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSegments(t *testing.T) {
	src := "Intro text\n\n```python title=\"x\"\nprint('hi')\n```\nOutro"

	segs := SplitSegments(src)
	require.Len(t, segs, 3)

	assert.Equal(t, SegmentText, segs[0].Kind)
	assert.Equal(t, "Intro text\n", segs[0].Text)

	assert.Equal(t, SegmentCode, segs[1].Kind)
	assert.Equal(t, "python", segs[1].Language)
	assert.Equal(t, "python", segs[1].Label())
	assert.Equal(t, "print('hi')", segs[1].Text)

	assert.Equal(t, "Outro", segs[2].Text)
}

func TestSplitSegments_NoLanguage(t *testing.T) {
	segs := SplitSegments("```\nx := 1\n```")
	require.Len(t, segs, 1)
	assert.Equal(t, "", segs[0].Language)
	assert.Equal(t, DefaultCodeLabel, segs[0].Label())
}

func TestSplitSegments_TildeAndLongFences(t *testing.T) {
	src := "~~~go\nfmt.Println()\n```\nstill code\n~~~\n````\n```\ninner\n```\n````"

	segs := SplitSegments(src)
	require.Len(t, segs, 2)
	assert.Equal(t, "go", segs[0].Language)
	assert.Equal(t, "fmt.Println()\n```\nstill code", segs[0].Text)
	assert.Equal(t, "```\ninner\n```", segs[1].Text)
}

func TestSplitSegments_Unclosed(t *testing.T) {
	segs := SplitSegments("text\n```js\nlet a = 1;")
	require.Len(t, segs, 2)
	assert.Equal(t, SegmentCode, segs[1].Kind)
	assert.Equal(t, "js", segs[1].Language)
	assert.Equal(t, "let a = 1;", segs[1].Text)
}

func TestSplitSegments_NotFences(t *testing.T) {
	tests := []string{
		"``not a fence``",
		"    ```indented too far",
		"```a`b",
	}
	for _, src := range tests {
		segs := SplitSegments(src)
		require.Len(t, segs, 1, src)
		assert.Equal(t, SegmentText, segs[0].Kind, src)
	}
}

func TestSplitSegments_Empty(t *testing.T) {
	assert.Empty(t, SplitSegments(""))
	assert.Empty(t, SplitSegments("\n  \n"))
}
