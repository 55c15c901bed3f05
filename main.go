// neuralchat - chat with a local Ollama model from the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jeranaias/neuralchat/internal/cli"
	"github.com/jeranaias/neuralchat/internal/config"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	// .env must be read before parsing so it can feed env overrides.
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	cmd, args, err := cli.Parse(argv)
	if err != nil {
		cli.DisplayError(os.Stderr, err)
		return cli.ExitCode(err)
	}

	switch cmd {
	case cli.CmdHelp:
		cli.PrintUsage(os.Stdout)
		return cli.ExitSuccess
	case cli.CmdVersion:
		cli.PrintVersion(os.Stdout)
		return cli.ExitSuccess
	case cli.CmdConfig:
		return exit(cli.HandleConfig(args, os.Stdout))
	}

	cfg, err := cli.LoadConfig(args)
	if err != nil {
		return exit(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cmd {
	case cli.CmdServe:
		err = cli.HandleServe(ctx, cfg, os.Stdout)
	case cli.CmdChat:
		err = cli.HandleChat(ctx, cfg, os.Stdout)
	case cli.CmdAsk:
		err = cli.HandleAsk(ctx, cfg, args, os.Stdout)
	default:
		err = cli.RunTUI(ctx, cfg, args)
	}
	return exit(err)
}

func exit(err error) int {
	if err != nil {
		cli.DisplayError(os.Stderr, err)
	}
	return cli.ExitCode(err)
}
