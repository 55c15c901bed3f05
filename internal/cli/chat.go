// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Line-mode chat session.
//
// The same controller as the TUI drives the conversation; only input
// (liner) and output (rendered text on stdout) differ.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/peterh/liner"

	"github.com/jeranaias/neuralchat/internal/config"
	"github.com/jeranaias/neuralchat/internal/export"
	"github.com/jeranaias/neuralchat/internal/model"
	"github.com/jeranaias/neuralchat/internal/render"
	"github.com/jeranaias/neuralchat/internal/session"
	"github.com/jeranaias/neuralchat/internal/ui/components"
)

// ChatPrompt is shown before each line of input. liner measures the prompt
// itself, so it carries no escape codes.
const ChatPrompt = "you › "

// =============================================================================
// LINE INPUT
// =============================================================================

// LineReader reads one line of user input.
type LineReader interface {
	Prompt(prompt string) (string, error)
}

// ChatCLI provides history and line editing for interactive chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a liner-backed reader with history from
// ~/.neuralchat/chat_history.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	dir, err := config.ConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	c := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(dir, "chat_history"),
	}

	if f, err := os.Open(c.historyFile); err == nil {
		_, _ = c.line.ReadHistory(f)
		f.Close()
	}
	return c
}

// Prompt reads a line and records non-empty input in history.
func (c *ChatCLI) Prompt(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves history and restores the terminal.
func (c *ChatCLI) Close() {
	if err := config.EnsureConfigDir(); err == nil {
		if f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			_, _ = c.line.WriteHistory(f)
			f.Close()
		}
	}
	c.line.Close()
}

// =============================================================================
// CHAT SESSION
// =============================================================================

// ChatSession is one line-mode conversation.
type ChatSession struct {
	ctrl     *session.Controller
	sender   session.Sender
	renderer *render.Terminal
	export   export.Options
	out      io.Writer

	// interactive enables the transient typing indicator.
	interactive bool
}

// NewChatSession creates a session that sends through sender.
func NewChatSession(sender session.Sender, renderer *render.Terminal, exportOpts export.Options, out io.Writer) *ChatSession {
	return &ChatSession{
		ctrl:     session.NewController(model.NewConversation()),
		sender:   sender,
		renderer: renderer,
		export:   exportOpts,
		out:      out,
	}
}

// Conversation returns the transcript so far.
func (s *ChatSession) Conversation() *model.Conversation {
	return s.ctrl.Conversation()
}

// HandleChat runs an interactive session on stdin and stdout.
func HandleChat(ctx context.Context, cfg *config.Config, out io.Writer) error {
	restoreLogs, err := routeLogs()
	if err != nil {
		return NewCommandError("chat", "open log file", err)
	}
	defer restoreLogs()

	renderer, err := render.NewTerminal(
		render.WithWidth(GetTerminalWidth()),
		render.WithStyle(ResolveStyle(cfg.UI.Style)),
	)
	if err != nil {
		return NewCommandError("chat", "init renderer", err)
	}

	opts := *export.DefaultOptions()
	if cfg.UI.ExportDir != "" {
		opts.OutputDir = cfg.UI.ExportDir
	}
	opts.Theme = cfg.UI.ExportTheme
	opts.Model = cfg.Ollama.Model

	s := NewChatSession(NewSender(cfg), renderer, opts, out)
	s.interactive = IsStdoutTTY()

	in := NewChatCLI()
	defer in.Close()
	return s.Run(ctx, in)
}

// Run reads lines until EOF, Ctrl+C, /quit or ctx is done.
func (s *ChatSession) Run(ctx context.Context, in LineReader) error {
	s.printWelcome()

	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := in.Prompt(ChatPrompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(s.out)
			return nil
		}
		if err != nil {
			return NewCommandError("chat", "read input", err)
		}

		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "/") {
			if quit := s.handleSlashCommand(trimmed); quit {
				return nil
			}
			continue
		}

		s.send(ctx, line)
	}
}

// send runs one turn. Blank input is dropped by the controller.
func (s *ChatSession) send(ctx context.Context, line string) {
	s.ctrl.SetDraft(line)
	if !s.ctrl.CanSubmit() {
		return
	}

	if s.interactive {
		fmt.Fprint(s.out, DimStyle.Render(components.TypingText+"..."))
	}
	_, err := s.ctrl.Send(ctx, s.sender)
	if s.interactive {
		fmt.Fprint(s.out, "\r"+ansi.EraseEntireLine)
	}

	reply, _ := s.ctrl.Conversation().Last()
	fmt.Fprintln(s.out, AssistantLabelStyle.Render(reply.Role().DisplayName()))
	if err != nil {
		log.Printf("CHAT_SEND_FAILED | command=chat error=%v", err)
		fmt.Fprintln(s.out, ErrorStyle.Render(reply.Content()))
		fmt.Fprintln(s.out)
		return
	}
	fmt.Fprintln(s.out, s.renderer.Markdown(reply.Content()))
}

// handleSlashCommand runs a /command and reports whether to quit.
func (s *ChatSession) handleSlashCommand(cmd string) bool {
	fields := strings.Fields(cmd)
	switch strings.ToLower(fields[0]) {
	case "/quit", "/exit", "/q":
		return true

	case "/help", "/?":
		s.printHelp()

	case "/export":
		format := export.FormatHTML
		if len(fields) > 1 {
			f, err := export.ParseFormat(fields[1])
			if err != nil {
				fmt.Fprintln(s.out, ErrorStyle.Render(err.Error()))
				return false
			}
			format = f
		}
		s.exportTranscript(format)

	default:
		fmt.Fprintln(s.out, ErrorStyle.Render("Unknown command "+fields[0]+". Type /help."))
	}
	return false
}

func (s *ChatSession) exportTranscript(format export.Format) {
	conv := s.ctrl.Conversation()
	if conv.IsEmpty() {
		fmt.Fprintln(s.out, ErrorStyle.Render(export.ErrEmptyConversation.Error()))
		return
	}

	opts := s.export
	exporter, err := export.New(format, &opts)
	if err != nil {
		fmt.Fprintln(s.out, ErrorStyle.Render(err.Error()))
		return
	}
	path, err := export.ExportToFile(conv, exporter, &opts)
	if err != nil {
		fmt.Fprintln(s.out, ErrorStyle.Render("Export failed: "+err.Error()))
		return
	}
	fmt.Fprintln(s.out, SuccessStyle.Render("Exported to "+path))
}

func (s *ChatSession) printWelcome() {
	fmt.Fprintln(s.out, TitleStyle.Render(components.DefaultTitle))
	fmt.Fprintln(s.out, DimStyle.Render(components.PrivacyNote))
	fmt.Fprintln(s.out, DimStyle.Render("Type a message and press Enter. /help for commands, Ctrl+D to quit."))
	fmt.Fprintln(s.out)
}

func (s *ChatSession) printHelp() {
	fmt.Fprintln(s.out, "Commands:")
	fmt.Fprintln(s.out, "  /export [html|md]  Save the conversation to a file")
	fmt.Fprintln(s.out, "  /help              Show this help")
	fmt.Fprintln(s.out, "  /quit              Leave the chat")
}
