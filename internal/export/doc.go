// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes a conversation transcript to disk.
//
// # Key Types
//
//   - Exporter: Converts a conversation to one format
//   - HTMLExporter: Standalone page; assistant markdown rendered by goldmark
//   - MarkdownExporter: Markdown with YAML frontmatter
//   - Options: Output directory, theme and clock
//
// Files are named neuralchat-<timestamp><ext> and written atomically.
//
// # Usage
//
//	path, err := export.ExportHTML(conv, export.DefaultOptions())
package export
