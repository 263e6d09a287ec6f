// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and top-level dispatch for haven.
package cli

import (
	"fmt"
	"os"
	"runtime"
	"strings"
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
	CmdAsk
	CmdChat
	CmdLogin
	CmdSignup
	CmdLogout
	CmdWhoami
	CmdPosts
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	JSON    bool
	Server  string // override for the backend URL

	// Command-specific
	Query      string
	Subcommand string

	// Raw args remaining after flag parsing
	Raw []string
}

const usageText = `haven - terminal client for the Haven assistant and community

Haven connects your terminal to a Haven backend:
  - AI assistant chat with session continuity
  - Community board: browse, post, reply
  - Account login/signup with a persistent local identity

Usage:
  haven                      Start TUI (default)
  haven ask "question"       Ask a single question
  haven chat                 Interactive chat REPL
  haven login                Sign in and persist the identity
  haven signup               Create an account
  haven logout               Clear the persisted identity
  haven whoami               Show the current identity
  haven posts [subcommand]   Community board (list|show|new|reply)
  haven config [show|set|path]  Configuration
  haven version              Show version
  haven help                 Show this help

Global flags:
  --server URL     Override the backend URL for this invocation
  --json           Machine-readable output where supported
  -q, --quiet      Minimal output
  -v, --verbose    Verbose output

Environment:
  HAVEN_SERVER_URL    Backend URL (overrides config)
  HAVEN_TIMEOUT_SECS  Request timeout in seconds
  HAVEN_STATE_DIR     State directory (default ~/.haven)

Examples:
  haven ask "How do I read a file in Go?"
  haven posts list
  haven posts show <id>
  haven posts new --title "Hello" --tags "intro,meta"
  haven config set server_url https://haven.example
`

// Parse inspects os.Args and returns the command plus parsed flags.
func Parse() (Command, *Args) {
	args := &Args{Raw: []string{}}
	argv := os.Args[1:]

	if len(argv) == 0 {
		return CmdTUI, args
	}

	cmd := CmdTUI
	rest := argv
	switch argv[0] {
	case "ask":
		cmd, rest = CmdAsk, argv[1:]
	case "chat":
		cmd, rest = CmdChat, argv[1:]
	case "login":
		cmd, rest = CmdLogin, argv[1:]
	case "signup", "register":
		cmd, rest = CmdSignup, argv[1:]
	case "logout":
		cmd, rest = CmdLogout, argv[1:]
	case "whoami":
		cmd, rest = CmdWhoami, argv[1:]
	case "posts", "forum":
		cmd, rest = CmdPosts, argv[1:]
	case "config":
		cmd, rest = CmdConfig, argv[1:]
	case "version", "--version", "-V":
		cmd, rest = CmdVersion, argv[1:]
	case "help", "--help", "-h":
		cmd, rest = CmdHelp, argv[1:]
	default:
		if strings.HasPrefix(argv[0], "-") {
			// Global flags before an implicit TUI start.
			rest = argv
		} else {
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", argv[0])
			fmt.Fprint(os.Stderr, usageText)
			os.Exit(2)
		}
	}

	// Extract global flags; everything else stays positional.
	for i := 0; i < len(rest); i++ {
		arg := rest[i]
		switch {
		case arg == "--json":
			args.JSON = true
		case arg == "-q" || arg == "--quiet":
			args.Quiet = true
		case arg == "-v" || arg == "--verbose":
			args.Verbose = true
		case arg == "--server" && i+1 < len(rest):
			args.Server = rest[i+1]
			i++
		case strings.HasPrefix(arg, "--server="):
			args.Server = strings.TrimPrefix(arg, "--server=")
		default:
			args.Raw = append(args.Raw, arg)
		}
	}

	if len(args.Raw) > 0 {
		args.Subcommand = args.Raw[0]
		args.Query = strings.Join(args.Raw, " ")
	}

	return cmd, args
}

// HandleVersion prints version information.
func HandleVersion(args *Args) {
	if args.JSON {
		fmt.Printf(`{"version":%q,"commit":%q,"built":%q,"go":%q}`+"\n",
			Version, GitCommit, BuildDate, runtime.Version())
		return
	}
	fmt.Printf("haven %s (commit %s, built %s, %s)\n", Version, GitCommit, BuildDate, runtime.Version())
}

// HandleHelp prints usage.
func HandleHelp(_ *Args) {
	fmt.Print(usageText)
}
