// haven TUI - a terminal client for the Haven assistant and community.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/haven-tui/internal/api"
	conv "github.com/jeranaias/haven-tui/internal/chat"
	"github.com/jeranaias/haven-tui/internal/cli"
	"github.com/jeranaias/haven-tui/internal/config"
	"github.com/jeranaias/haven-tui/internal/forum"
	"github.com/jeranaias/haven-tui/internal/identity"
	"github.com/jeranaias/haven-tui/internal/ui"
	chatui "github.com/jeranaias/haven-tui/internal/ui/chat"
	forumui "github.com/jeranaias/haven-tui/internal/ui/forum"
	loginui "github.com/jeranaias/haven-tui/internal/ui/login"
	"github.com/jeranaias/haven-tui/internal/ui/styles"
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
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdAsk:
		cli.HandleAsk(args)
	case cli.CmdChat:
		cli.HandleChat(args)
	case cli.CmdLogin:
		cli.HandleLogin(args)
	case cli.CmdSignup:
		cli.HandleSignup(args)
	case cli.CmdLogout:
		cli.HandleLogout(args)
	case cli.CmdWhoami:
		cli.HandleWhoami(args)
	case cli.CmdPosts:
		cli.HandlePosts(args)
	case cli.CmdConfig:
		cli.HandleConfig(args)
	case cli.CmdVersion:
		cli.HandleVersion(args)
	case cli.CmdHelp:
		cli.HandleHelp(args)
	}
}

// runTUI wires the full-screen application and blocks until exit.
func runTUI(args *cli.Args) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Request logs go to a file, not the alternate screen.
	logPath := filepath.Join(cfg.StateDir(), "haven.log")
	if f, err := tea.LogToFile(logPath, "haven"); err == nil {
		defer f.Close()
	} else {
		log.SetOutput(os.Stderr)
	}

	base := cfg.ServerURL
	if args.Server != "" {
		base = args.Server
	}
	client := api.NewClient(base).WithTimeout(cfg.Timeout())

	store := identity.NewStore(cfg.IdentityPath())
	store.Load()

	// Watching is best effort; without it the TUI just misses logins
	// performed by other processes.
	watcher, err := identity.NewWatcher(store)
	if err != nil {
		log.Printf("identity watch disabled: %v", err)
		watcher = nil
	} else {
		defer watcher.Close()
	}

	manager := conv.NewManager(client, store)
	listing := forum.NewListing(client, store)
	detail := forum.NewDetail(client, store)

	theme := styles.NewTheme()
	app := ui.NewApp(
		theme,
		store,
		watcher,
		manager,
		chatui.New(theme, manager, cfg.Timeout()),
		forumui.New(theme, listing, detail, cfg.Timeout()),
		loginui.New(theme, client, store, cfg.Timeout()),
	)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
