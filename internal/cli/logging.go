// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// logging.go - Keeps event logs off the user's terminal.

package cli

import (
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/neuralchat/internal/config"
)

// routeLogs sends the standard logger to NEURALCHAT_LOG_FILE, or discards
// it when unset. Interactive commands own stdout and stderr, so event lines
// would otherwise interleave with the conversation. The returned func
// restores the previous logger.
func routeLogs() (restore func(), err error) {
	prevOut, prevPrefix, prevFlags := log.Writer(), log.Prefix(), log.Flags()
	reset := func() {
		log.SetOutput(prevOut)
		log.SetPrefix(prevPrefix)
		log.SetFlags(prevFlags)
	}

	path := os.Getenv(config.EnvLogFile)
	if path == "" {
		log.SetOutput(io.Discard)
		return reset, nil
	}

	f, err := tea.LogToFile(path, "neuralchat")
	if err != nil {
		return nil, err
	}
	return func() {
		reset()
		f.Close()
	}, nil
}
