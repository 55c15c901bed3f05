// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - One question, one rendered answer.

package cli

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/jeranaias/neuralchat/internal/config"
	"github.com/jeranaias/neuralchat/internal/model"
	"github.com/jeranaias/neuralchat/internal/render"
	"github.com/jeranaias/neuralchat/internal/session"
)

// HandleAsk sends args.Query through the proxy and prints the reply as
// rendered markdown.
func HandleAsk(ctx context.Context, cfg *config.Config, args Args, out io.Writer) error {
	restoreLogs, err := routeLogs()
	if err != nil {
		return NewCommandError("ask", "open log file", err)
	}
	defer restoreLogs()

	renderer, err := render.NewTerminal(
		render.WithWidth(GetTerminalWidth()),
		render.WithStyle(ResolveStyle(cfg.UI.Style)),
	)
	if err != nil {
		return NewCommandError("ask", "init renderer", err)
	}
	return ask(ctx, NewSender(cfg), renderer, args.Query, out)
}

func ask(ctx context.Context, sender session.Sender, renderer *render.Terminal, query string, out io.Writer) error {
	ctrl := session.NewController(model.NewConversation())
	ctrl.SetDraft(query)

	sent, err := ctrl.Send(ctx, sender)
	if !sent {
		return &UsageError{Message: "nothing to ask"}
	}

	reply, _ := ctrl.Conversation().Last()
	if err != nil {
		log.Printf("CHAT_SEND_FAILED | command=ask error=%v", err)
		fmt.Fprintln(out, ErrorStyle.Render(reply.Content()))
		return err
	}

	fmt.Fprintln(out, renderer.Markdown(reply.Content()))
	return nil
}
