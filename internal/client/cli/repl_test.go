package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	err      error

	calls []string
	args  [][]string
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return f.err
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login", nil)
}
func (f *fakeExec) Me(context.Context) error                 { return f.record("me", nil) }
func (f *fakeExec) List(context.Context) error               { return f.record("list", nil) }
func (f *fakeExec) Add(_ context.Context, a []string) error  { return f.record("add", a) }
func (f *fakeExec) Show(_ context.Context, a []string) error { return f.record("show", a) }
func (f *fakeExec) Done(_ context.Context, a []string) error { return f.record("done", a) }
func (f *fakeExec) Undo(_ context.Context, a []string) error { return f.record("undo", a) }
func (f *fakeExec) Rename(_ context.Context, a []string) error {
	return f.record("rename", a)
}
func (f *fakeExec) Remove(_ context.Context, a []string) error { return f.record("rm", a) }
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout", nil)
}

func runLines(exec *fakeExec, lines ...string) string {
	var out bytes.Buffer
	in := bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
	runREPL(context.Background(), exec, func() string { return "" }, in, &out)
	return out.String()
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	exec := &fakeExec{}
	out := runLines(exec,
		"help",
		"list",
		"login",
		"help",
		"",
		"me",
		"l",
		"add Buy milk",
		"show 1",
		"done 1",
		"undo 1",
		"rename 1 Buy oat milk",
		"rm 1",
		"foobar",
		"logout",
		"exit",
		"list",
	)

	assert.Equal(t, []string{"login", "me", "list", "add", "show", "done", "undo", "rename", "rm", "logout"}, exec.calls)
	assert.Equal(t, []string{"Buy", "milk"}, exec.args[3])
	assert.Equal(t, []string{"1", "Buy", "oat", "milk"}, exec.args[7])

	assert.Contains(t, out, "Available commands: login, exit")
	assert.Contains(t, out, "Please login first")
	assert.Contains(t, out, "Unknown command: foobar")
	assert.Contains(t, out, "Bye!")
}

func TestRunREPL_PrintsCommandErrors(t *testing.T) {
	exec := &fakeExec{loggedIn: true, err: errors.New("task not found")}
	out := runLines(exec, "show 9", "quit")

	assert.Equal(t, []string{"show"}, exec.calls)
	assert.Contains(t, out, "Error: task not found")
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	exec := &fakeExec{loggedIn: true}
	var out bytes.Buffer
	runREPL(context.Background(), exec, func() string { return "(s) " }, bufio.NewReader(strings.NewReader("me")), &out)

	assert.Equal(t, []string{"me"}, exec.calls)
	assert.Contains(t, out.String(), "todo (s) > ")
}
