// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// tui.go - Launches the full-screen chat UI.

package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/neuralchat/internal/config"
	"github.com/jeranaias/neuralchat/internal/export"
	"github.com/jeranaias/neuralchat/internal/ui/chat"
	"github.com/jeranaias/neuralchat/internal/ui/styles"
)

// RunTUI runs the chat UI until the user quits or ctx is done. With
// args.WithServer the proxy runs in the same process for the lifetime of
// the UI.
func RunTUI(ctx context.Context, cfg *config.Config, args Args) error {
	restoreLogs, err := routeLogs()
	if err != nil {
		return NewCommandError("tui", "open log file", err)
	}
	defer restoreLogs()

	if args.WithServer {
		stop, addr, err := StartBackground(cfg)
		if err != nil {
			return err
		}
		defer stop()
		if args.ProxyURL == "" {
			cfg.Client.ProxyURL = ProxyURLFor(addr)
		}
	}

	m, err := chat.New(tuiOptions(ctx, cfg))
	if err != nil {
		return NewCommandError("tui", "init", err)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running neuralchat: %w", err)
	}
	return nil
}

func tuiOptions(ctx context.Context, cfg *config.Config) chat.Options {
	exportOpts := export.DefaultOptions()
	if cfg.UI.ExportDir != "" {
		exportOpts.OutputDir = cfg.UI.ExportDir
	}
	exportOpts.Theme = cfg.UI.ExportTheme
	exportOpts.Model = cfg.Ollama.Model

	opts := chat.Options{
		Sender:    NewSender(cfg),
		Context:   ctx,
		ModelName: cfg.Ollama.Model,
		Theme:     styles.NewTheme(),
		Export:    exportOpts,
	}
	if style := strings.ToLower(cfg.UI.Style); style != "" && style != "auto" {
		opts.RenderStyle = style
	}
	return opts
}
