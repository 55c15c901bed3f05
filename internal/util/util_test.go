// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports", "chat.html")

	if err := AtomicWriteFile(path, []byte("first"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}
	if err := AtomicWriteFile(path, []byte("second"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile overwrite failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(content) != "second" {
		t.Errorf("content = %q, want second", content)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want only the target file", len(entries))
	}
}

func TestAtomicWriteFileWithDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "newdir", "test.txt")

	if err := AtomicWriteFileWithDir(path, []byte("test"), 0600, 0700); err != nil {
		t.Fatalf("AtomicWriteFileWithDir failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("File not created: %v", err)
	}
}

// =============================================================================
// STRING TESTS
// =============================================================================

func TestTruncateRunes(t *testing.T) {
	testCases := []struct {
		input    string
		maxRunes int
		want     string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"日本語テキスト", 5, "日本..."},
		{"abc", 2, "ab"},
		{"abc", 0, ""},
	}

	for _, tc := range testCases {
		if got := TruncateRunes(tc.input, tc.maxRunes); got != tc.want {
			t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tc.input, tc.maxRunes, got, tc.want)
		}
	}
}

func TestTruncateWidth(t *testing.T) {
	if got := TruncateWidth("hello world", 8); got != "hello..." {
		t.Errorf("TruncateWidth ASCII = %q", got)
	}
	if got := TruncateWidth("日本語", 10); got != "日本語" {
		t.Errorf("TruncateWidth fits = %q", got)
	}
	if w := StringWidth(TruncateWidth("日本語テキスト", 7)); w > 7 {
		t.Errorf("TruncateWidth CJK width = %d, want <= 7", w)
	}
	if got := TruncateWidth("abc", 0); got != "" {
		t.Errorf("TruncateWidth zero = %q", got)
	}
}

func TestStringWidth(t *testing.T) {
	if StringWidth("abc") != 3 {
		t.Error("ASCII width should be 3")
	}
	if StringWidth("日本") != 4 {
		t.Error("CJK width should be 4")
	}
	if MaxLineWidth("ab\nabcd\n") != 4 {
		t.Error("MaxLineWidth should be 4")
	}
}

func TestWrapPreserve(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"fits", "  keep  spaces  ", 20, "  keep  spaces  "},
		{"newlines kept", "a\n\n  b", 10, "a\n\n  b"},
		{"break at space", "hello big world", 10, "hello big \nworld"},
		{"hard break", "abcdefghij", 4, "abcd\nefgh\nij"},
		{"zero width", "text", 0, "text"},
		{"tab expanded", "\tx", 10, "    x"},
		{"tab counts toward width", "\t\tabc def", 10, "        \nabc def"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := WrapPreserve(tc.text, tc.width); got != tc.want {
				t.Errorf("WrapPreserve(%q, %d) = %q, want %q", tc.text, tc.width, got, tc.want)
			}
		})
	}
}

func TestWrapPreserve_NoLineExceedsWidth(t *testing.T) {
	text := strings.Repeat("word 日本 ", 30)
	for _, line := range strings.Split(WrapPreserve(text, 13), "\n") {
		if w := StringWidth(line); w > 13 {
			t.Errorf("line %q has width %d", line, w)
		}
	}
}

func TestExpandTabs(t *testing.T) {
	if got := ExpandTabs("a\tb"); got != "a    b" {
		t.Errorf("ExpandTabs = %q", got)
	}
	if got := ExpandTabs("none"); got != "none" {
		t.Errorf("ExpandTabs = %q", got)
	}
}

func TestWrapPreserve_TabIndentedFitsWidth(t *testing.T) {
	text := "func main() {\n\tfor i := 0; i < 10; i++ {\n\t\tfmt.Println(i, \"tab indented\")\n\t}\n}"
	for _, line := range strings.Split(WrapPreserve(text, 20), "\n") {
		if w := StringWidth(line); w > 20 {
			t.Errorf("line %q has width %d", line, w)
		}
	}
}
