package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	err   error
}

func (f *fakeExec) record(call string) error {
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) Ping(ctx context.Context) error                { return f.record("ping") }
func (f *fakeExec) Users(ctx context.Context, term string) error  { return f.record("users:" + term) }
func (f *fakeExec) Contacts(ctx context.Context) error            { return f.record("contacts") }
func (f *fakeExec) Open(ctx context.Context, phone string) error  { return f.record("open:" + phone) }
func (f *fakeExec) Room(ctx context.Context, token string) error  { return f.record("room:" + token) }
func (f *fakeExec) Send(ctx context.Context, text string) error   { return f.record("send:" + text) }
func (f *fakeExec) Image(ctx context.Context, path string) error  { return f.record("image:" + path) }
func (f *fakeExec) Delete(ctx context.Context, id string) error   { return f.record("delete:" + id) }
func (f *fakeExec) Rename(ctx context.Context, name string) error { return f.record("rename:" + name) }
func (f *fakeExec) CloseConversation(ctx context.Context) error   { return f.record("close") }

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &lines
}

func TestRunREPL_Commands(t *testing.T) {
	captureOutput(t)

	input := strings.NewReader(strings.Join([]string{
		"login",
		"users",
		"users bo b",
		"contacts",
		"open +91 2222",
		"send   hello   there  ",
		"image /tmp/cat.png",
		"delete 01HX",
		"rename Bob  Smith",
		"room Blue  Fox",
		"close",
		"ping",
		"logout",
		"exit",
		"send never",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewScanner(input))

	assert.Equal(t, []string{
		"login",
		"users:",
		"users:bo b",
		"contacts",
		"open:+91 2222",
		"send:hello   there",
		"image:/tmp/cat.png",
		"delete:01HX",
		"rename:Bob  Smith",
		"room:Blue  Fox",
		"close",
		"ping",
		"logout",
	}, exec.calls)
}

func TestRunREPL_UsageUnknownAndQuit(t *testing.T) {
	out := captureOutput(t)

	input := strings.NewReader("open\nrename   \nfoobar\nquit\n")
	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(input))

	assert.Empty(t, exec.calls)
	assert.Contains(t, *out, "Usage: open <phone>")
	assert.Contains(t, *out, "Usage: rename <name>")
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Contains(t, *out, "Bye!")
}

func TestRunREPL_HelpDependsOnLogin(t *testing.T) {
	out := captureOutput(t)

	input := strings.NewReader("help\nlogin\nhelp\n")
	runREPL(context.Background(), &fakeExec{}, func() string { return "" }, bufio.NewScanner(input))

	assert.Contains(t, *out, helpLoggedOut)
	assert.Contains(t, *out, helpLoggedIn)
}

func TestRunREPL_PrintsHandlerErrors(t *testing.T) {
	out := captureOutput(t)

	input := strings.NewReader("send hi\n")
	runREPL(context.Background(), &fakeExec{err: errors.New("boom")}, func() string { return "" }, bufio.NewScanner(input))

	assert.Contains(t, *out, "Error: boom")
}
