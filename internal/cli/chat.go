// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive chat REPL for the haven CLI.
//
// A readline-style loop over the same conversation manager the TUI
// uses: the first reply binds the server session and every later turn
// reuses it. Input history persists across runs.
//
// Interactive commands:
//   /new, /n      Start a new conversation (drops the session)
//   /session      Show the bound session id
//   /quit, /q     Exit
//   Ctrl+D        Exit
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	conv "github.com/jeranaias/haven-tui/internal/chat"
	"github.com/jeranaias/haven-tui/internal/ui/styles"
)

// HandleChat runs the interactive REPL.
func HandleChat(args *Args) {
	e := setup(args)
	manager := conv.NewManager(e.client, e.store)

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	historyPath := e.cfg.HistoryPath()
	if f, err := os.Open(historyPath); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyPath); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	if !args.Quiet {
		// The seeded transcript starts with the greeting.
		greeting := manager.Messages()[0]
		fmt.Println(styles.RenderInfo(greeting.Text))
		fmt.Println()
	}

	for {
		input, err := line.Prompt("you> ")
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				fmt.Println()
				return
			}
			fail(err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if strings.HasPrefix(input, "/") {
			if done := handleChatCommand(manager, input); done {
				return
			}
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), e.cfg.Timeout())
		err = manager.Send(ctx, input)
		cancel()

		// The transcript holds the outcome either way; the last entry
		// is the bot reply or the failure notice.
		msgs := manager.Messages()
		last := msgs[len(msgs)-1]
		if err != nil {
			fmt.Println(styles.RenderError(last.Text))
			continue
		}
		fmt.Print(renderMarkdown(last.Text))
		if !strings.HasSuffix(last.Text, "\n") {
			fmt.Println()
		}
	}
}

// handleChatCommand executes a slash command. Returns true to exit.
func handleChatCommand(manager *conv.Manager, input string) bool {
	switch strings.Fields(input)[0] {
	case "/quit", "/q", "/exit":
		return true
	case "/new", "/n":
		if manager.Reset() {
			fmt.Println(styles.RenderInfo("Started a new conversation."))
		}
	case "/session":
		if manager.Bound() {
			fmt.Println(styles.RenderInfo("Session: " + manager.SessionID()))
		} else {
			fmt.Println(styles.RenderInfo("No session bound yet; send a message first."))
		}
	case "/help", "/h":
		fmt.Println("Commands: /new /session /quit")
	default:
		fmt.Println(styles.RenderWarning("Unknown command. Try /help."))
	}
	return false
}
