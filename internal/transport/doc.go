// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package transport sends a conversation to the chat proxy and returns the reply.
//
// Each call serializes the history as {role, content} pairs and makes one
// POST. Failures of any kind come back as *RequestFailed.
//
// # Usage
//
//	client := transport.NewClient("http://127.0.0.1:3000/api/chat")
//	reply, err := client.Send(ctx, conv.Messages())
//	var rf *transport.RequestFailed
//	if errors.As(err, &rf) {
//	    log.Printf("CHAT_SEND_FAILED | status=%d message=%s", rf.Status, rf.Message)
//	}
package transport
