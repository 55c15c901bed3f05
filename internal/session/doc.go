// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session drives the send cycle of one chat session.
//
// A session is Idle until a non-blank draft is submitted, then Sending until
// the reply (or failure) arrives. Submissions while Sending are ignored, so
// at most one request is outstanding. There is no cancel or timeout state.
//
// # Key Types
//
//   - Controller: Draft, conversation and Idle/Sending state machine
//   - Sender: Anything that turns a history into a reply (transport.Client)
//
// # Usage
//
// Inline, as the line REPL does:
//
//	ctrl := session.NewController(nil)
//	ctrl.SetDraft(line)
//	if _, err := ctrl.Send(ctx, client); err != nil {
//	    log.Printf("send failed: %v", err)
//	}
//
// Split across an event loop, as the TUI does:
//
//	history, ok := ctrl.Submit()
//	// ... later, with the result of client.Send(ctx, history):
//	ctrl.Complete(reply, err)
package session
