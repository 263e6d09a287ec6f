// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - Single question command handler for the haven CLI.
//
// Sends one message to the assistant and prints the reply. The
// exchange is stateless from the shell's point of view: each ask
// starts a fresh session on the backend.
//
// Examples:
//   haven ask "What is a goroutine?"
//   haven ask --json "Summarize this error"
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// HandleAsk sends a single question and prints the assistant's reply.
func HandleAsk(args *Args) {
	question := strings.TrimSpace(args.Query)
	if question == "" {
		fmt.Fprintln(os.Stderr, "Usage: haven ask \"question\"")
		os.Exit(2)
	}

	e := setup(args)
	ctx, cancel := context.WithTimeout(context.Background(), e.cfg.Timeout())
	defer cancel()

	result, err := e.client.Chat(ctx, question, "", e.store.Current().AuthorID())
	if err != nil {
		fail(fmt.Errorf("%s", friendlyError(err)))
	}

	if args.JSON {
		out, _ := json.Marshal(map[string]string{
			"sessionId": result.SessionID,
			"reply":     result.BotMessage.Text,
		})
		fmt.Println(string(out))
		return
	}

	fmt.Print(renderMarkdown(result.BotMessage.Text))
	if !strings.HasSuffix(result.BotMessage.Text, "\n") {
		fmt.Println()
	}
}
