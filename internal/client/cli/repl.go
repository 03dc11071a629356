package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. App satisfies
// it; tests provide a stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Me(ctx context.Context) error
	List(ctx context.Context) error
	Add(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Done(ctx context.Context, args []string) error
	Undo(ctx context.Context, args []string) error
	Rename(ctx context.Context, args []string) error
	Remove(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
}

// runREPL reads commands line by line and dispatches them to a. Command
// errors are printed and the loop carries on. It returns on EOF, exit or
// quit.
//
//	Not logged in:  help, login, exit
//	Logged in:      help, me, (l)ist, add [title], show <id>, done <id>,
//	                undo <id>, rename <id> [title], rm <id>, logout, exit
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "todo %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(w)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, "Available commands: me, (l)ist, add [title], show <id>, done <id>, undo <id>, rename <id> [title], rm <id>, logout, exit")
			} else {
				fmt.Fprintln(w, "Available commands: login, exit")
			}
		case "login":
			cmdErr = a.Login(ctx)
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		case "me", "l", "list", "add", "show", "done", "undo", "rename", "rm", "logout":
			if !a.isLoggedIn() {
				fmt.Fprintln(w, "Please login first")
				continue
			}
			cmdErr = dispatch(ctx, a, cmd, args)
		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintln(w, "Error:", cmdErr)
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "me":
		return a.Me(ctx)
	case "l", "list":
		return a.List(ctx)
	case "add":
		return a.Add(ctx, args)
	case "show":
		return a.Show(ctx, args)
	case "done":
		return a.Done(ctx, args)
	case "undo":
		return a.Undo(ctx, args)
	case "rename":
		return a.Rename(ctx, args)
	case "rm":
		return a.Remove(ctx, args)
	case "logout":
		return a.Logout(ctx)
	}
	return nil
}
