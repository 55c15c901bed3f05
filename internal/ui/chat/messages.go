// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

// ReplyMsg carries the result of one send back to the event loop.
type ReplyMsg struct {
	Reply string
	Err   error
}

// ExportCompleteMsg reports the result of a transcript export.
type ExportCompleteMsg struct {
	Path string
	Err  error
}
