// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// helpers.go - Shared wiring for CLI handlers.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"

	"github.com/jeranaias/haven-tui/internal/api"
	"github.com/jeranaias/haven-tui/internal/config"
	"github.com/jeranaias/haven-tui/internal/identity"
)

// env assembles the pieces every handler needs: config, API client and
// the identity store.
type env struct {
	cfg    *config.Config
	client *api.Client
	store  *identity.Store
}

// setup loads configuration and builds the client. Exits on a config
// error; a broken config file is the one thing handlers cannot degrade
// around.
func setup(args *Args) *env {
	cfg, err := config.Load()
	if err != nil {
		fail(err)
	}

	base := cfg.ServerURL
	if args.Server != "" {
		base = args.Server
	}

	client := api.NewClient(base).WithTimeout(cfg.Timeout())
	store := identity.NewStore(cfg.IdentityPath())
	store.Load()

	return &env{cfg: cfg, client: client, store: store}
}

// fail prints an error and exits non-zero.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// friendlyError flattens API errors to their server message.
func friendlyError(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer renders assistant output when stdout is a TTY.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		markdownRenderer = nil
	}
}

// renderMarkdown renders markdown content for terminal display.
// Returns the original content if rendering fails or stdout is piped.
func renderMarkdown(content string) string {
	if markdownRenderer == nil || !term.IsTerminal(int(os.Stdout.Fd())) {
		return content
	}
	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// =============================================================================
// PROMPTS
// =============================================================================

// promptLine reads one line from stdin with a visible label.
func promptLine(label string) (string, error) {
	fmt.Print(label)
	var value string
	_, err := fmt.Scanln(&value)
	if err != nil {
		return "", err
	}
	return value, nil
}

// promptPassword reads a password without echo. Falls back to a plain
// read when stdin is not a terminal (piped input in scripts).
func promptPassword(label string) (string, error) {
	fmt.Print(label)
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return promptLine("")
	}
	raw, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
