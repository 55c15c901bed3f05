// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"log"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/neuralchat/internal/model"
)

var errNoSender = errors.New("no chat endpoint configured")

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		m, cmd = m.handleKey(msg)

	case ReplyMsg:
		m, cmd = m.handleReply(msg)

	case ExportCompleteMsg:
		m.handleExportComplete(msg)

	case spinner.TickMsg:
		m.typing, cmd = m.typing.Update(msg)

	default:
		var inputCmd, vpCmd tea.Cmd
		m.input, inputCmd = m.input.Update(msg)
		m.viewport, vpCmd = m.viewport.Update(msg)
		cmd = tea.Batch(inputCmd, vpCmd)
	}

	m.refresh()
	return m, cmd
}

// =============================================================================
// MESSAGE HANDLERS
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.Export):
		return m, m.exportCmd()

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.ViewDown()
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
		return m, nil
	}

	// The input is blurred while sending, so typing is ignored then.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit hands the input to the controller. Blank input and submissions
// while a reply is outstanding change nothing.
func (m Model) submit() (Model, tea.Cmd) {
	m.ctrl.SetDraft(m.input.Value())
	history, ok := m.ctrl.Submit()
	if !ok {
		return m, nil
	}

	m.input.Reset()
	m.input.Blur()
	m.footer.SetNotice("", false)

	return m, tea.Batch(m.typing.Start(), m.sendCmd(history))
}

// sendCmd runs the network call off the event loop.
func (m Model) sendCmd(history []model.Message) tea.Cmd {
	sender := m.sender
	ctx := m.ctx
	return func() tea.Msg {
		if sender == nil {
			return ReplyMsg{Err: errNoSender}
		}
		reply, err := sender.Send(ctx, history)
		return ReplyMsg{Reply: reply, Err: err}
	}
}

func (m Model) handleReply(msg ReplyMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		log.Printf("CHAT_REPLY_ERROR | session=%s error=%v", m.ctrl.SessionID(), msg.Err)
	}
	m.ctrl.Complete(msg.Reply, msg.Err)
	m.typing.Stop()
	return m, m.input.Focus()
}
