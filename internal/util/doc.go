// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides string and file helpers shared across neuralchat.
//
// # Key Functions
//
// String Utilities:
//   - TruncateRunes, TruncateWidth: UTF-8 and width safe truncation
//   - StringWidth, MaxLineWidth: Terminal column widths
//   - WrapPreserve, ExpandTabs: Wrapping that keeps the user's whitespace
//
// File Operations:
//   - AtomicWriteFile: Crash-safe file writing with fsync
//
// # Usage
//
//	wrapped := util.WrapPreserve(msg.Content(), width)
//	err := util.AtomicWriteFile(path, data, 0644)
package util
