// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

var roleTitle = cases.Title(language.English)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// Valid reports whether r is a role the client may create.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	default:
		return roleTitle.String(string(r))
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single immutable turn in a conversation.
// Fields are read through accessors so a message never changes after creation.
type Message struct {
	id        string
	role      Role
	content   string
	createdAt time.Time
}

// NewMessage creates a message with a time-ordered ID.
func NewMessage(role Role, content string) Message {
	return Message{
		id:        generateID(),
		role:      role,
		content:   content,
		createdAt: time.Now(),
	}
}

// NewUserMessage creates a user message.
func NewUserMessage(content string) Message {
	return NewMessage(RoleUser, content)
}

// NewAssistantMessage creates an assistant message.
func NewAssistantMessage(content string) Message {
	return NewMessage(RoleAssistant, content)
}

// ID returns the message identifier.
func (m Message) ID() string { return m.id }

// Role returns who sent the message.
func (m Message) Role() Role { return m.role }

// Content returns the message text.
func (m Message) Content() string { return m.content }

// CreatedAt returns the creation time.
func (m Message) CreatedAt() time.Time { return m.createdAt }

// IsZero reports whether m is the zero Message.
func (m Message) IsZero() bool { return m.id == "" }

// generateID returns a UUIDv7, which sorts by creation time.
func generateID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
