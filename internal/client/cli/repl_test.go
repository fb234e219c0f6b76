package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  []string
}

func (f *fakeExec) record(name, arg string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, arg)
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login", "")
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout", "")
}
func (f *fakeExec) Refresh(ctx context.Context) error { return f.record("refresh", "") }
func (f *fakeExec) List(ctx context.Context) error    { return f.record("list", "") }
func (f *fakeExec) SetTab(ctx context.Context, name string) error {
	return f.record("tab", name)
}
func (f *fakeExec) SetSearch(ctx context.Context, term string) error {
	return f.record("search", term)
}
func (f *fakeExec) SetClient(ctx context.Context, arg string) error {
	return f.record("client", arg)
}
func (f *fakeExec) Show(ctx context.Context, arg string) error   { return f.record("show", arg) }
func (f *fakeExec) Add(ctx context.Context) error                { return f.record("add", "") }
func (f *fakeExec) Edit(ctx context.Context, arg string) error   { return f.record("edit", arg) }
func (f *fakeExec) Delete(ctx context.Context, arg string) error { return f.record("delete", arg) }
func (f *fakeExec) Access(ctx context.Context, arg string) error { return f.record("access", arg) }
func (f *fakeExec) GenPass(ctx context.Context) error            { return f.record("genpass", "") }
func (f *fakeExec) About(ctx context.Context) error              { return f.record("about", "") }

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"list",
		"tab shared",
		"search acme mail",
		"show 123",
		"refresh",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"login", "list", "tab", "search", "show", "refresh"}
	if len(exec.calls) < len(wantOrder) {
		t.Fatalf("few calls: %+v", exec.calls)
	}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}
}

func TestRunREPL_ArgumentsPassedThrough(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("tab personal\nsearch mario rossi\nclient 7\nshow 42\naccess 9\nquit\n")
	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(input))

	wantArgs := map[string]string{
		"tab":    "personal",
		"search": "mario rossi",
		"client": "7",
		"show":   "42",
		"access": "9",
	}
	for i, c := range exec.calls {
		if want, ok := wantArgs[c]; ok && exec.args[i] != want {
			t.Fatalf("%s arg = %q, want %q", c, exec.args[i], want)
		}
	}
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("show\nedit\ndelete\naccess\ntab\nquit\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
