// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command parsing, usage text and shared setup.
package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/jeranaias/neuralchat/internal/config"
	"github.com/jeranaias/neuralchat/internal/ollama"
	"github.com/jeranaias/neuralchat/internal/transport"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdServe
	CmdChat
	CmdAsk
	CmdConfig
	CmdVersion
	CmdHelp
)

var commandNames = map[Command]string{
	CmdTUI:     "tui",
	CmdServe:   "serve",
	CmdChat:    "chat",
	CmdAsk:     "ask",
	CmdConfig:  "config",
	CmdVersion: "version",
	CmdHelp:    "help",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	ConfigPath string
	Model      string
	ProxyURL   string

	// tui
	WithServer bool

	// serve
	Addr string

	// ask
	Query string

	// config
	Subcommand string
	Force      bool
}

// Flags accepted by each command, on top of the global ones.
var (
	globalFlags = []string{"config", "model", "proxy", "help", "h"}
	boolFlags   = []string{"with-server", "force", "help", "h", "version"}

	commandFlags = map[Command][]string{
		CmdTUI:     {"with-server", "addr"},
		CmdServe:   {"addr"},
		CmdConfig:  {"force"},
		CmdVersion: {"version"},
	}
)

const usageText = `neuralchat - chat with a local Ollama model

Usage:
  neuralchat [tui] [--with-server]   Start the terminal chat UI (default)
  neuralchat serve [--addr ADDR]     Run the HTTP proxy in front of Ollama
  neuralchat chat                    Line-mode chat session
  neuralchat ask "question"          Ask one question and print the answer
  neuralchat config [show|path|init] Inspect or create the config file
  neuralchat version                 Show version information
  neuralchat help                    Show this help

Global flags:
  --config PATH   Config file (default ~/.neuralchat/config.toml)
  --model NAME    Ollama model used by the proxy
  --proxy URL     Chat endpoint the client sends to

Environment:
  OLLAMA_API_URL, OLLAMA_MODEL, NEURALCHAT_ADDR, NEURALCHAT_PROXY_URL,
  NEURALCHAT_CONFIG, NEURALCHAT_LOG_FILE. A .env file in the working
  directory is read first and never overrides variables already set.

Version: %s
`

// PrintUsage writes the help text.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// PrintVersion writes version information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "neuralchat version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
	fmt.Fprintf(w, "  Go version: %s\n", runtime.Version())
}

// =============================================================================
// PARSING
// =============================================================================

// Parse turns argv (without the program name) into a command and its args.
// Usage mistakes come back as *UsageError.
func Parse(argv []string) (Command, Args, error) {
	p := NewArgParser(argv, boolFlags...)
	args := Args{
		ConfigPath: p.Flag("config"),
		Model:      p.Flag("model"),
		ProxyURL:   p.Flag("proxy"),
	}

	if p.BoolFlag("help") || p.BoolFlag("h") {
		return CmdHelp, args, nil
	}
	if p.BoolFlag("version") && p.PositionalCount() == 0 {
		return CmdVersion, args, nil
	}

	cmd := CmdTUI
	name := strings.ToLower(p.Positional(0))
	switch name {
	case "", "tui":
	case "serve", "server":
		cmd = CmdServe
	case "chat":
		cmd = CmdChat
	case "ask":
		cmd = CmdAsk
	case "config":
		cmd = CmdConfig
	case "version":
		cmd = CmdVersion
	case "help":
		return CmdHelp, args, nil
	default:
		return CmdHelp, args, &UsageError{Message: fmt.Sprintf("unknown command %q", p.Positional(0))}
	}

	allowed := append(append([]string{}, globalFlags...), commandFlags[cmd]...)
	if unknown := p.Unknown(allowed...); len(unknown) > 0 {
		return cmd, args, &UsageError{Message: fmt.Sprintf("unknown flag --%s for %s", unknown[0], cmd)}
	}

	switch cmd {
	case CmdTUI:
		args.WithServer = p.BoolFlag("with-server")
		args.Addr = p.Flag("addr")
	case CmdServe:
		args.Addr = p.Flag("addr")
	case CmdAsk:
		args.Query = strings.TrimSpace(JoinPositionalArgs(p, 1))
		if args.Query == "" {
			return cmd, args, &UsageError{Message: `ask needs a question, e.g. neuralchat ask "what is a goroutine?"`}
		}
	case CmdConfig:
		args.Subcommand = strings.ToLower(p.Positional(1))
		if args.Subcommand == "" {
			args.Subcommand = "show"
		}
		args.Force = p.BoolFlag("force")
	}

	return cmd, args, nil
}

// =============================================================================
// SHARED SETUP
// =============================================================================

// LoadConfig loads the config file named by args (or the default one) and
// applies the command-line overrides on top.
func LoadConfig(args Args) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if args.ConfigPath != "" {
		cfg, err = config.LoadFromPath(args.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	args.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

// Apply copies flag overrides into cfg.
func (a Args) Apply(cfg *config.Config) {
	if a.Model != "" {
		cfg.Ollama.Model = a.Model
	}
	if a.ProxyURL != "" {
		cfg.Client.ProxyURL = a.ProxyURL
	}
	if a.Addr != "" {
		cfg.Server.Addr = a.Addr
	}
}

// NewOllamaClient builds the upstream client from cfg.
func NewOllamaClient(cfg *config.Config) *ollama.Client {
	return ollama.NewClientWithConfig(&ollama.ClientConfig{
		APIURL:  cfg.Ollama.URL,
		Model:   cfg.Ollama.Model,
		Timeout: cfg.OllamaTimeout(),
	})
}

// NewSender builds the chat client that talks to the proxy.
func NewSender(cfg *config.Config) *transport.Client {
	return transport.NewClient(cfg.Client.ProxyURL, transport.WithTimeout(cfg.ClientTimeout()))
}
