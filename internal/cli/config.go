// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - The config command: show, path and init.

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jeranaias/neuralchat/internal/config"
)

// HandleConfig dispatches "neuralchat config <subcommand>".
func HandleConfig(args Args, out io.Writer) error {
	path := args.ConfigPath
	if path == "" {
		p, err := config.ConfigPathTOML()
		if err != nil {
			return NewCommandError("config", "locate", err)
		}
		path = p
	}

	switch args.Subcommand {
	case "", "show":
		cfg, err := LoadConfig(args)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, DimStyle.Render("# effective configuration ("+path+" + environment)"))
		fmt.Fprint(out, cfg.String())
		return nil

	case "path":
		fmt.Fprintln(out, path)
		return nil

	case "init":
		return initConfig(path, args.Force, out)

	default:
		return &UsageError{Message: fmt.Sprintf("unknown config subcommand %q (use show, path or init)", args.Subcommand)}
	}
}

func initConfig(path string, force bool, out io.Writer) error {
	if _, err := os.Stat(path); err == nil && !force {
		return NewCommandError("config", "init", fmt.Errorf("%s already exists (use --force to overwrite)", path))
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return NewCommandError("config", "init", err)
	}

	if err := config.SaveTOML(config.Default(), path); err != nil {
		return NewCommandError("config", "init", err)
	}
	fmt.Fprintln(out, SuccessStyle.Render("Wrote "+path))
	return nil
}
