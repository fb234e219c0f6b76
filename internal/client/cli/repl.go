package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Refresh(ctx context.Context) error
	List(ctx context.Context) error
	SetTab(ctx context.Context, name string) error
	SetSearch(ctx context.Context, term string) error
	SetClient(ctx context.Context, arg string) error
	Show(ctx context.Context, arg string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, arg string) error
	Delete(ctx context.Context, arg string) error
	Access(ctx context.Context, arg string) error
	GenPass(ctx context.Context) error
	About(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the Passdoo CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - login          — pair this device via the browser
//	  - genpass        — generate a random password
//	  - about          — client and portal info
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - list | l       — print the grouped password list
//	  - tab <name>     — switch between all/personal/shared
//	  - search [text]  — set or clear the search term
//	  - client [id]    — filter by client id, or clear
//	  - show <id>      — display one record and its secret
//	  - add            — create a record
//	  - edit <id>      — update a record
//	  - delete <id>    — remove a record
//	  - access <id>    — open the sharing editor
//	  - genpass        — generate a random password
//	  - refresh        — reload the list from the portal
//	  - logout         — log out
//	  - about          — client and portal info
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("passdoo %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, tab, search, client, show, add, edit, delete, access, genpass, refresh, logout, about, exit")
			} else {
				printlnFn("Available commands: login, genpass, about, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "tab":
			if len(args) == 0 {
				printlnFn("Usage: tab <all|personal|shared>")
				continue
			}
			_ = a.SetTab(ctx, args[0])

		case "search":
			_ = a.SetSearch(ctx, strings.Join(args, " "))

		case "client":
			arg := ""
			if len(args) > 0 {
				arg = args[0]
			}
			_ = a.SetClient(ctx, arg)

		case "show":
			if len(args) == 0 {
				printlnFn("Usage: show <id>")
				continue
			}
			_ = a.Show(ctx, args[0])

		case "add":
			_ = a.Add(ctx)

		case "edit":
			if len(args) == 0 {
				printlnFn("Usage: edit <id>")
				continue
			}
			_ = a.Edit(ctx, args[0])

		case "delete":
			if len(args) == 0 {
				printlnFn("Usage: delete <id>")
				continue
			}
			_ = a.Delete(ctx, args[0])

		case "access":
			if len(args) == 0 {
				printlnFn("Usage: access <id>")
				continue
			}
			_ = a.Access(ctx, args[0])

		case "genpass":
			_ = a.GenPass(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "about":
			_ = a.About(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
