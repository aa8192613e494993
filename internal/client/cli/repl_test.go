package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubExec struct {
	loggedIn bool
	calls    []string
}

func (s *stubExec) record(name string) error {
	s.calls = append(s.calls, name)
	return nil
}

func (s *stubExec) isLoggedIn() bool { return s.loggedIn }

func (s *stubExec) Register(ctx context.Context) error { return s.record("register") }
func (s *stubExec) Login(ctx context.Context) error    { return s.record("login") }
func (s *stubExec) List(ctx context.Context) error     { return s.record("list") }
func (s *stubExec) Add(ctx context.Context) error      { return s.record("add") }
func (s *stubExec) Update(ctx context.Context) error   { return s.record("update") }
func (s *stubExec) Done(ctx context.Context) error     { return s.record("done") }
func (s *stubExec) Delete(ctx context.Context) error   { return s.record("delete") }
func (s *stubExec) WhoAmI(ctx context.Context) error   { return s.record("whoami") }
func (s *stubExec) Logout(ctx context.Context) error   { return s.record("logout") }

func runScript(t *testing.T, exec *stubExec, script string) []string {
	t.Helper()

	var lines []string
	orig := printlnFn
	printlnFn = func(a ...interface{}) (int, error) {
		lines = append(lines, fmt.Sprint(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })

	reader := bufio.NewReader(strings.NewReader(script))
	runREPL(context.Background(), exec, func() string { return "anonymous" }, reader)
	return lines
}

func TestREPL_DispatchesCommands(t *testing.T) {
	exec := &stubExec{}
	runScript(t, exec, "login\nlist\nadd\ndone\nlogout\nexit\n")
	require.Equal(t, []string{"login", "list", "add", "done", "logout"}, exec.calls)
}

func TestREPL_ListAlias(t *testing.T) {
	exec := &stubExec{}
	runScript(t, exec, "l\nquit\n")
	require.Equal(t, []string{"list"}, exec.calls)
}

func TestREPL_UnknownCommandReported(t *testing.T) {
	exec := &stubExec{}
	lines := runScript(t, exec, "frobnicate\nexit\n")
	require.Empty(t, exec.calls)

	var found bool
	for _, line := range lines {
		if strings.Contains(line, "Unknown command") {
			found = true
		}
	}
	require.True(t, found)
}

func TestREPL_BlankLinesIgnored(t *testing.T) {
	exec := &stubExec{}
	runScript(t, exec, "\n   \nexit\n")
	require.Empty(t, exec.calls)
}

func TestREPL_ExitsOnEOF(t *testing.T) {
	exec := &stubExec{}
	runScript(t, exec, "list")
	require.Empty(t, exec.calls)
}

func TestREPL_HelpVariesWithSession(t *testing.T) {
	out := runScript(t, &stubExec{loggedIn: false}, "help\nexit\n")
	require.Contains(t, strings.Join(out, "\n"), "register, login")

	out = runScript(t, &stubExec{loggedIn: true}, "help\nexit\n")
	require.Contains(t, strings.Join(out, "\n"), "logout")
}
