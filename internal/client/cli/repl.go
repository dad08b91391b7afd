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
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	List(ctx context.Context) error
	Send(ctx context.Context, args []string) error
	Reply(ctx context.Context, args []string) error
	Select(ctx context.Context, args []string) error
	Notifications(ctx context.Context) error
	Read(ctx context.Context, args []string) error
	ClearNotifications(ctx context.Context) error
	Profile(ctx context.Context) error
	Avatar(ctx context.Context, args []string) error
	Shop(ctx context.Context) error
	Buy(ctx context.Context, args []string) error
}

// runREPL reads a line, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on scanner EOF or when the user types "exit" or
// "quit".
//
// Any errors returned by command handlers are ignored here; handlers print
// their own messages. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("oceanchat %s > ", statusFn()))
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
				printlnFn("Available commands: (l)ist, send, reply, select, notifications, read, clear, profile, avatar, shop, buy, whoami, logout, exit")
			} else {
				printlnFn("Available commands: register, login, list, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "send":
			_ = a.Send(ctx, args)

		case "reply":
			_ = a.Reply(ctx, args)

		case "select":
			_ = a.Select(ctx, args)

		case "notifications", "notifs":
			_ = a.Notifications(ctx)

		case "read":
			_ = a.Read(ctx, args)

		case "clear":
			_ = a.ClearNotifications(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "avatar":
			_ = a.Avatar(ctx, args)

		case "shop":
			_ = a.Shop(ctx)

		case "buy":
			_ = a.Buy(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
