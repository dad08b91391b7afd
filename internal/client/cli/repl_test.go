package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  [][]string
}

func (f *fakeExec) record(name string, args []string) {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	f.record("register", nil)
	return nil
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.record("login", nil)
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.record("logout", nil)
	f.loggedIn = false
	return nil
}
func (f *fakeExec) Whoami(ctx context.Context) error { f.record("whoami", nil); return nil }
func (f *fakeExec) List(ctx context.Context) error   { f.record("list", nil); return nil }
func (f *fakeExec) Send(ctx context.Context, args []string) error {
	f.record("send", args)
	return nil
}
func (f *fakeExec) Reply(ctx context.Context, args []string) error {
	f.record("reply", args)
	return nil
}
func (f *fakeExec) Select(ctx context.Context, args []string) error {
	f.record("select", args)
	return nil
}
func (f *fakeExec) Notifications(ctx context.Context) error { f.record("notifications", nil); return nil }
func (f *fakeExec) Read(ctx context.Context, args []string) error {
	f.record("read", args)
	return nil
}
func (f *fakeExec) ClearNotifications(ctx context.Context) error {
	f.record("clear", nil)
	return nil
}
func (f *fakeExec) Profile(ctx context.Context) error { f.record("profile", nil); return nil }
func (f *fakeExec) Avatar(ctx context.Context, args []string) error {
	f.record("avatar", args)
	return nil
}
func (f *fakeExec) Shop(ctx context.Context) error { f.record("shop", nil); return nil }
func (f *fakeExec) Buy(ctx context.Context, args []string) error {
	f.record("buy", args)
	return nil
}

func silencePrintln(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

func TestRunREPL_DispatchesCommandsInOrder(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"send hello world",
		"reply 12345",
		"list",
		"notifications",
		"read notif-12345",
		"buy gold",
		"foobar",
		"logout",
		"exit",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewScanner(input))

	assert.Equal(t, []string{"login", "send", "reply", "list", "notifications", "read", "buy", "logout"}, exec.calls)
}

func TestRunREPL_PassesArguments(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader("send hello deep blue sea\nexit\n")
	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(input))

	assert.Equal(t, []string{"hello", "deep", "blue", "sea"}, exec.args[0])
}

func TestRunREPL_ExitsOnEOF(t *testing.T) {
	silencePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(strings.NewReader("")))

	assert.Empty(t, exec.calls)
}

func TestRunREPL_BlankLinesIgnored(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader("\n\n   \nwhoami\nquit\n")
	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(input))

	assert.Equal(t, []string{"whoami"}, exec.calls)
}
