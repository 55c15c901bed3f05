// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli parses the neuralchat command line and runs each command.
//
// # Key Types
//
//   - Command: The command to run (tui, serve, chat, ask, config, version, help)
//   - Args: Parsed global and per-command flags
//   - ArgParser: Flag and positional splitting shared by all commands
//   - ChatSession: Line-mode conversation driven by session.Controller
//   - UsageError, CommandError: Errors mapped to exit codes by ExitCode
//
// # Usage
//
//	cmd, args, err := cli.Parse(os.Args[1:])
//	if err != nil {
//	    cli.DisplayError(os.Stderr, err)
//	    os.Exit(cli.ExitCode(err))
//	}
//	cfg, err := cli.LoadConfig(args)
//	...
//	err = cli.HandleServe(ctx, cfg, os.Stdout)
package cli
