// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// posts.go - Community board command handlers for the haven CLI.
//
// Subcommands:
//   list               List posts (default)
//   show ID            Show one post with its replies
//   new                Create a post (--title, --tags, content from
//                      --content or stdin)
//   reply ID           Reply to a post (--content or stdin)
//
// Examples:
//   haven posts
//   haven posts show 3f2a
//   haven posts new --title "Hello" --tags "intro" --content "Hi all"
//   echo "Nice writeup" | haven posts reply 3f2a
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jeranaias/haven-tui/internal/forum"
	"github.com/jeranaias/haven-tui/internal/model"
	"github.com/jeranaias/haven-tui/internal/ui/styles"
)

// HandlePosts dispatches the posts subcommands.
func HandlePosts(args *Args) {
	sub := "list"
	if len(args.Raw) > 0 {
		sub = args.Raw[0]
	}

	e := setup(args)
	switch sub {
	case "list", "ls":
		postsList(e, args)
	case "show":
		postsShow(e, args)
	case "new", "create":
		postsNew(e, args)
	case "reply":
		postsReply(e, args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown posts subcommand: %s\n", sub)
		fmt.Fprintln(os.Stderr, "Usage: haven posts [list|show|new|reply]")
		os.Exit(2)
	}
}

func postsList(e *env, args *Args) {
	listing := forum.NewListing(e.client, e.store)

	ctx, cancel := context.WithTimeout(context.Background(), e.cfg.Timeout())
	defer cancel()
	if err := listing.Refresh(ctx); err != nil {
		fail(fmt.Errorf("%s", friendlyError(err)))
	}

	posts := listing.Posts()
	if args.JSON {
		out, _ := json.Marshal(posts)
		fmt.Println(string(out))
		return
	}

	if len(posts) == 0 {
		fmt.Println("No posts yet.")
		return
	}
	for _, p := range posts {
		pin := "   "
		if p.IsPinned {
			pin = "PIN"
		}
		fmt.Printf("%s  %-10s  %-40s  %s  %d replies\n",
			pin, p.ID, p.Title, p.CreatedAt.Format("2006-01-02"), p.ReplyCount)
	}
}

func postsShow(e *env, args *Args) {
	if len(args.Raw) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: haven posts show ID")
		os.Exit(2)
	}
	postID := args.Raw[1]
	detail := forum.NewDetail(e.client, e.store)

	ctx, cancel := context.WithTimeout(context.Background(), e.cfg.Timeout())
	defer cancel()
	if err := detail.Load(ctx, postID); err != nil {
		fail(fmt.Errorf("%s", friendlyError(err)))
	}

	post := detail.Post()
	replies := detail.Replies()

	if args.JSON {
		out, _ := json.Marshal(map[string]any{"post": post, "replies": replies})
		fmt.Println(string(out))
		return
	}

	fmt.Printf("%s\nby %s on %s", post.Title, post.Author(), post.CreatedAt.Format("2006-01-02 15:04"))
	if len(post.Tags) > 0 {
		fmt.Printf("  [%s]", strings.Join(post.Tags, ", "))
	}
	fmt.Println()
	fmt.Println()
	fmt.Print(renderMarkdown(post.Content))
	fmt.Printf("\n--- %d replies ---\n", len(replies))
	for _, r := range replies {
		fmt.Printf("\n%s (%s):\n%s\n", r.Author(), r.CreatedAt.Format("2006-01-02 15:04"), r.Content)
	}
}

func postsNew(e *env, args *Args) {
	flags := scanFlags(args.Raw[1:])
	draft := model.PostDraft{
		Title:   flags["title"],
		Content: flags["content"],
		Tags:    flags["tags"],
	}
	if draft.Content == "" {
		draft.Content = readStdin()
	}

	listing := forum.NewListing(e.client, e.store)
	ctx, cancel := context.WithTimeout(context.Background(), e.cfg.Timeout())
	defer cancel()

	if err := listing.CreatePost(ctx, draft); err != nil {
		fail(fmt.Errorf("%s", friendlyError(err)))
	}
	fmt.Println(styles.RenderSuccess("Post published."))
}

func postsReply(e *env, args *Args) {
	if len(args.Raw) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: haven posts reply ID [--content TEXT]")
		os.Exit(2)
	}
	postID := args.Raw[1]
	flags := scanFlags(args.Raw[2:])
	content := flags["content"]
	if content == "" {
		content = readStdin()
	}

	detail := forum.NewDetail(e.client, e.store)
	ctx, cancel := context.WithTimeout(context.Background(), e.cfg.Timeout())
	defer cancel()

	if err := detail.AddReply(ctx, postID, content); err != nil {
		fail(fmt.Errorf("%s", friendlyError(err)))
	}
	fmt.Println(styles.RenderSuccess("Reply posted."))
}

// scanFlags extracts --key value / --key=value pairs.
func scanFlags(raw []string) map[string]string {
	flags := make(map[string]string)
	for i := 0; i < len(raw); i++ {
		arg := raw[i]
		if !strings.HasPrefix(arg, "--") {
			continue
		}
		name := strings.TrimPrefix(arg, "--")
		if eq := strings.IndexByte(name, '='); eq >= 0 {
			flags[name[:eq]] = name[eq+1:]
			continue
		}
		if i+1 < len(raw) && !strings.HasPrefix(raw[i+1], "--") {
			flags[name] = raw[i+1]
			i++
		}
	}
	return flags
}

// readStdin slurps piped content for new/reply bodies.
func readStdin() string {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
