// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the chat screen of the terminal UI.

The screen is a Bubble Tea model: a header, a scrolling transcript, a
one-line input and a footer. Sends go through a session.Controller, so blank
input is ignored and at most one reply is outstanding; the network call runs
as a tea.Cmd and comes back as a ReplyMsg.

# Key Types

  - Model: The Bubble Tea model (model.go, update.go, view.go)
  - KeyMap: Key bindings (keys.go)
  - ReplyMsg, ExportCompleteMsg: Results of background work (messages.go)

# Usage

	m, err := chat.New(chat.Options{
	    Sender:    transport.NewClient(proxyURL),
	    ModelName: cfg.Ollama.Model,
	})
	if err != nil {
	    return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
*/
package chat
