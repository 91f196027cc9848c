package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. App satisfies it;
// tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	Users(ctx context.Context, term string) error
	Contacts(ctx context.Context) error
	Open(ctx context.Context, phone string) error
	Room(ctx context.Context, token string) error
	Send(ctx context.Context, text string) error
	Image(ctx context.Context, path string) error
	Delete(ctx context.Context, id string) error
	Rename(ctx context.Context, name string) error
	CloseConversation(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: login, ping, exit"
	helpLoggedIn  = "Available commands: users [term], contacts, open <phone>, room <token>, send <text>, " +
		"image <file>, delete <id>, rename <name>, close, ping, logout, exit"
)

// runREPL reads commands from scanner and dispatches them to a until EOF,
// "exit" or "quit". The text after the command word is passed on verbatim
// (trimmed), so messages and room tokens keep their inner spacing.
// Handler errors are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("sc %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cmd, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "ping":
			err = a.Ping(ctx)
		case "users":
			err = a.Users(ctx, rest)
		case "contacts":
			err = a.Contacts(ctx)

		case "open", "room", "image", "delete", "rename":
			if rest == "" {
				printlnFn(fmt.Sprintf("Usage: %s <%s>", cmd, usageArg[cmd]))
				continue
			}
			switch cmd {
			case "open":
				err = a.Open(ctx, rest)
			case "room":
				err = a.Room(ctx, rest)
			case "image":
				err = a.Image(ctx, rest)
			case "delete":
				err = a.Delete(ctx, rest)
			case "rename":
				err = a.Rename(ctx, rest)
			}

		case "send":
			err = a.Send(ctx, rest)
		case "close":
			err = a.CloseConversation(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}

var usageArg = map[string]string{
	"open":   "phone",
	"room":   "token",
	"image":  "file",
	"delete": "id",
	"rename": "name",
}
