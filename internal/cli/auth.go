// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// auth.go - Account command handlers for the haven CLI.
//
// Commands: login, signup, logout, whoami. Login and signup persist
// the returned identity to the state directory, where the TUI (and a
// concurrently running one, via the file watcher) picks it up.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jeranaias/haven-tui/internal/auth"
	"github.com/jeranaias/haven-tui/internal/ui/styles"
)

// HandleLogin prompts for credentials and signs in.
func HandleLogin(args *Args) {
	e := setup(args)

	identifier, err := promptLine("Email or username: ")
	if err != nil {
		fail(err)
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		fail(err)
	}

	form := auth.LoginForm{Identifier: identifier, Password: password}
	if errs := form.Validate(); len(errs) > 0 {
		for _, msg := range errs {
			fmt.Fprintln(os.Stderr, styles.RenderError(msg))
		}
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), e.cfg.Timeout())
	defer cancel()

	user, err := e.client.Login(ctx, form.Identifier, form.Password)
	if err != nil {
		fail(fmt.Errorf("%s", friendlyError(err)))
	}

	e.store.Save(user)
	fmt.Println(styles.RenderSuccess("Signed in as " + user.Username))
}

// HandleSignup prompts for account details and registers.
func HandleSignup(args *Args) {
	e := setup(args)

	username, err := promptLine("Username: ")
	if err != nil {
		fail(err)
	}
	email, err := promptLine("Email: ")
	if err != nil {
		fail(err)
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		fail(err)
	}
	confirm, err := promptPassword("Confirm password: ")
	if err != nil {
		fail(err)
	}

	form := auth.SignupForm{
		Username:        username,
		Email:           email,
		Password:        password,
		ConfirmPassword: confirm,
	}
	if errs := form.Validate(); len(errs) > 0 {
		for _, msg := range errs {
			fmt.Fprintln(os.Stderr, styles.RenderError(msg))
		}
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), e.cfg.Timeout())
	defer cancel()

	user, err := e.client.Signup(ctx, form.Username, form.Email, form.Password, form.ConfirmPassword)
	if err != nil {
		fail(fmt.Errorf("%s", friendlyError(err)))
	}

	e.store.Save(user)
	fmt.Println(styles.RenderSuccess("Account created. Signed in as " + user.Username))
}

// HandleLogout clears the persisted identity.
func HandleLogout(args *Args) {
	e := setup(args)
	e.store.Clear()
	if !args.Quiet {
		fmt.Println(styles.RenderSuccess("Signed out."))
	}
}

// HandleWhoami prints the current identity.
func HandleWhoami(args *Args) {
	e := setup(args)
	user := e.store.Current()

	if args.JSON {
		if user == nil {
			fmt.Println(`{"loggedIn":false}`)
			return
		}
		out, _ := json.Marshal(map[string]any{
			"loggedIn": true,
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		})
		fmt.Println(string(out))
		return
	}

	if user == nil {
		fmt.Println("Not signed in (chatting as anonymous).")
		return
	}
	fmt.Printf("%s <%s>\n", user.Username, user.Email)
}
