// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// This package defines the in-memory message store used by every client
// surface. Nothing here is persisted.
//
// # Key Types
//
//   - Message: Immutable turn with ID, role, content and creation time
//   - Conversation: Append-only ordered store with change listeners
//   - Role: Message role enumeration (user, assistant)
//
// # Usage
//
// Create a conversation and react to appends:
//
//	conv := model.NewConversation()
//	conv.OnAppend(func(msg model.Message) {
//	    fmt.Println(msg.Role().DisplayName(), msg.Content())
//	})
//	conv.Append(model.NewUserMessage("Hello!"))
package model
