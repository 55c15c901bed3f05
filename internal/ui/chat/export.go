// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/neuralchat/internal/export"
)

// =============================================================================
// EXPORT HANDLERS
// =============================================================================

// exportCmd writes the transcript as HTML off the event loop. The messages
// are copied first, so later appends do not race the writer.
func (m Model) exportCmd() tea.Cmd {
	conv := m.ctrl.Conversation()
	if conv.IsEmpty() {
		return func() tea.Msg {
			return ExportCompleteMsg{Err: export.ErrEmptyConversation}
		}
	}

	snapshot := conv.Clone()
	opts := *m.exportOpts
	return func() tea.Msg {
		path, err := export.ExportHTML(snapshot, &opts)
		return ExportCompleteMsg{Path: path, Err: err}
	}
}

func (m *Model) handleExportComplete(msg ExportCompleteMsg) {
	if msg.Err != nil {
		m.footer.SetNotice("Export failed: "+msg.Err.Error(), true)
		return
	}
	m.footer.SetNotice("Exported to "+msg.Path, false)
}
