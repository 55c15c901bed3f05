// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Listener is called after a message has been appended.
type Listener func(msg Message)

// Conversation is the append-only message store for one chat session.
//
// Append is the only way to mutate it. Messages are kept in insertion order,
// which is also display order and causal order. A Conversation is owned by a
// single goroutine (the UI event loop); it is not safe for concurrent use.
type Conversation struct {
	messages  []Message
	listeners []Listener
	createdAt time.Time
	updatedAt time.Time
}

// NewConversation creates an empty conversation.
func NewConversation() *Conversation {
	now := time.Now()
	return &Conversation{
		messages:  make([]Message, 0, 16),
		createdAt: now,
		updatedAt: now,
	}
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// Append adds msg to the end of the conversation and notifies listeners.
// Zero messages are ignored.
func (c *Conversation) Append(msg Message) {
	if msg.IsZero() {
		return
	}
	c.messages = append(c.messages, msg)
	c.updatedAt = time.Now()

	for _, fn := range c.listeners {
		fn(msg)
	}
}

// OnAppend registers fn to run after every Append.
func (c *Conversation) OnAppend(fn Listener) {
	if fn != nil {
		c.listeners = append(c.listeners, fn)
	}
}

// Messages returns a copy of the history in order.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Clone returns a copy with the same history and timestamps but no
// listeners. It lets another goroutine read a snapshot.
func (c *Conversation) Clone() *Conversation {
	return &Conversation{
		messages:  c.Messages(),
		createdAt: c.createdAt,
		updatedAt: c.updatedAt,
	}
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	return len(c.messages)
}

// IsEmpty reports whether no message has been appended yet.
func (c *Conversation) IsEmpty() bool {
	return len(c.messages) == 0
}

// Last returns the most recent message and false when the conversation is empty.
func (c *Conversation) Last() (Message, bool) {
	if len(c.messages) == 0 {
		return Message{}, false
	}
	return c.messages[len(c.messages)-1], true
}

// CreatedAt returns when the conversation was started.
func (c *Conversation) CreatedAt() time.Time {
	return c.createdAt
}

// UpdatedAt returns when the last message was appended.
func (c *Conversation) UpdatedAt() time.Time {
	return c.updatedAt
}

// Title derives a short title from the first user message.
func (c *Conversation) Title() string {
	for _, msg := range c.messages {
		if msg.role == RoleUser {
			return truncateTitle(msg.content, 50)
		}
	}
	return "New conversation"
}

func truncateTitle(s string, max int) string {
	runes := []rune(s)
	for i, r := range runes {
		if r == '\n' {
			runes = runes[:i]
			break
		}
	}
	if len(runes) <= max {
		return string(runes)
	}
	return string(runes[:max-3]) + "..."
}
