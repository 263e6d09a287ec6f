// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Configuration command handler for the haven CLI.
//
// Subcommands:
//   show (default)   Print the effective configuration
//   set KEY VALUE    Update one key and save
//   path             Print the config file path
//
// Settable keys: server_url, timeout_secs, show_timestamps,
// compact_mode.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/jeranaias/haven-tui/internal/config"
	"github.com/jeranaias/haven-tui/internal/ui/styles"
)

// HandleConfig dispatches the config subcommands.
func HandleConfig(args *Args) {
	cfg, err := config.Load()
	if err != nil {
		fail(err)
	}

	sub := "show"
	if len(args.Raw) > 0 {
		sub = args.Raw[0]
	}

	switch sub {
	case "show":
		configShow(cfg, args)
	case "set":
		configSet(cfg, args)
	case "path":
		fmt.Println(cfg.ConfigPath())
	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", sub)
		fmt.Fprintln(os.Stderr, "Usage: haven config [show|set|path]")
		os.Exit(2)
	}
}

func configShow(cfg *config.Config, args *Args) {
	if args.JSON {
		out, _ := json.MarshalIndent(cfg, "", "  ")
		fmt.Println(string(out))
		return
	}

	fmt.Printf("server_url      = %s\n", cfg.ServerURL)
	fmt.Printf("timeout_secs    = %d\n", cfg.TimeoutSecs)
	fmt.Printf("show_timestamps = %t\n", cfg.UI.ShowTimestamps)
	fmt.Printf("compact_mode    = %t\n", cfg.UI.CompactMode)
	fmt.Printf("\nstate dir: %s\n", cfg.StateDir())
}

func configSet(cfg *config.Config, args *Args) {
	if len(args.Raw) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: haven config set KEY VALUE")
		os.Exit(2)
	}
	key, value := args.Raw[1], args.Raw[2]

	switch key {
	case "server_url":
		cfg.ServerURL = value
	case "timeout_secs":
		secs, err := strconv.Atoi(value)
		if err != nil {
			fail(fmt.Errorf("timeout_secs must be a number, got %q", value))
		}
		cfg.TimeoutSecs = secs
	case "show_timestamps":
		cfg.UI.ShowTimestamps = value == "true"
	case "compact_mode":
		cfg.UI.CompactMode = value == "true"
	default:
		fail(fmt.Errorf("unknown config key %q", key))
	}

	if err := cfg.Save(); err != nil {
		fail(err)
	}
	fmt.Println(styles.RenderSuccess(fmt.Sprintf("%s = %s", key, value)))
}
