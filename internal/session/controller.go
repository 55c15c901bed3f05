// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session drives the send cycle of one chat session.
package session

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/qmuntal/stateless"

	"github.com/jeranaias/neuralchat/internal/model"
)

// ErrorReply is appended as an assistant turn when a send fails.
const ErrorReply = "Sorry, I encountered an error. Please make sure Ollama is running (ollama serve)."

// =============================================================================
// STATES AND TRIGGERS
// =============================================================================

// State is a send cycle state.
type State string

const (
	// StateIdle accepts a submission.
	StateIdle State = "idle"
	// StateSending has one request outstanding and ignores submissions.
	StateSending State = "sending"
)

// Trigger moves the send cycle between states.
type Trigger string

const (
	TriggerSubmit Trigger = "submit"
	TriggerReply  Trigger = "reply"
	TriggerFail   Trigger = "fail"
)

// Sender delivers a history and returns the assistant reply.
// *transport.Client satisfies it.
type Sender interface {
	Send(ctx context.Context, history []model.Message) (string, error)
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller owns the draft, the conversation and the Idle/Sending latch.
//
// Like the Conversation it wraps, a Controller belongs to one goroutine.
// Submit and Complete split a send so an event loop can run the network
// call elsewhere; Send runs a whole cycle inline.
type Controller struct {
	sessionID string
	startTime time.Time

	conv  *model.Conversation
	draft string
	fsm   *stateless.StateMachine
}

// NewController creates a controller over conv, or over a fresh
// conversation when conv is nil.
func NewController(conv *model.Conversation) *Controller {
	if conv == nil {
		conv = model.NewConversation()
	}

	c := &Controller{
		sessionID: uuid.NewString(),
		startTime: time.Now(),
		conv:      conv,
		fsm:       stateless.NewStateMachine(StateIdle),
	}

	c.fsm.Configure(StateIdle).
		Permit(TriggerSubmit, StateSending)

	c.fsm.Configure(StateSending).
		Permit(TriggerReply, StateIdle).
		Permit(TriggerFail, StateIdle)

	c.fsm.OnTransitioned(func(_ context.Context, tr stateless.Transition) {
		log.Printf("SEND_STATE | session=%s trigger=%v from=%v to=%v", c.sessionID, tr.Trigger, tr.Source, tr.Destination)
	})

	return c
}

// SessionID returns the session identifier used in logs.
func (c *Controller) SessionID() string {
	return c.sessionID
}

// Duration returns how long the session has been open.
func (c *Controller) Duration() time.Duration {
	return time.Since(c.startTime)
}

// Conversation returns the message store.
func (c *Controller) Conversation() *model.Conversation {
	return c.conv
}

// State returns the current send cycle state.
func (c *Controller) State() State {
	return c.fsm.MustState().(State)
}

// IsSending reports whether a request is outstanding.
func (c *Controller) IsSending() bool {
	return c.State() == StateSending
}

// =============================================================================
// DRAFT
// =============================================================================

// Draft returns the pending input text.
func (c *Controller) Draft() string {
	return c.draft
}

// SetDraft replaces the pending input text.
func (c *Controller) SetDraft(text string) {
	c.draft = text
}

// CanSubmit reports whether Submit would start a send.
func (c *Controller) CanSubmit() bool {
	return strings.TrimSpace(c.draft) != "" && c.State() == StateIdle
}

// =============================================================================
// SEND CYCLE
// =============================================================================

// Submit starts a send. It appends the draft as a user turn, clears the
// draft, moves to Sending and returns the history to send. When the trimmed
// draft is empty or a send is outstanding it changes nothing and returns false.
func (c *Controller) Submit() ([]model.Message, bool) {
	if !c.CanSubmit() {
		return nil, false
	}
	if err := c.fsm.Fire(TriggerSubmit); err != nil {
		log.Printf("SEND_STATE_ERROR | session=%s trigger=%s error=%v", c.sessionID, TriggerSubmit, err)
		return nil, false
	}

	c.conv.Append(model.NewUserMessage(c.draft))
	c.draft = ""
	return c.conv.Messages(), true
}

// Complete finishes the outstanding send. On success the reply is appended;
// on failure ErrorReply is appended instead. Either way the controller returns
// to Idle. Complete outside Sending does nothing.
func (c *Controller) Complete(reply string, err error) {
	if c.State() != StateSending {
		return
	}

	trigger := TriggerReply
	content := reply
	if err != nil {
		log.Printf("CHAT_SEND_FAILED | session=%s error=%v", c.sessionID, err)
		trigger = TriggerFail
		content = ErrorReply
	}

	if fireErr := c.fsm.Fire(trigger); fireErr != nil {
		log.Printf("SEND_STATE_ERROR | session=%s trigger=%s error=%v", c.sessionID, trigger, fireErr)
		return
	}
	c.conv.Append(model.NewAssistantMessage(content))
}

// Send runs a whole cycle inline: Submit, sender.Send, Complete.
// It reports whether a send was started and returns the send error, if any.
func (c *Controller) Send(ctx context.Context, sender Sender) (bool, error) {
	history, ok := c.Submit()
	if !ok {
		return false, nil
	}

	reply, err := sender.Send(ctx, history)
	c.Complete(reply, err)
	return true, err
}
