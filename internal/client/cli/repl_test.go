package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/Clairebear8888/Microlearning/internal/client/auth"
	"github.com/Clairebear8888/Microlearning/internal/client/client"
	"github.com/Clairebear8888/Microlearning/internal/client/quiz"
	"github.com/Clairebear8888/Microlearning/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool
	fail     error

	calls []string
	args  []string
}

func (f *fakeExec) record(name string, arg ...string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, strings.Join(arg, "|"))
	return f.fail
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }

func (f *fakeExec) commandContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithCancel(ctx)
}

func (f *fakeExec) Signup(context.Context) error { return f.record("signup") }
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) WhoAmI(context.Context) error { return f.record("whoami") }
func (f *fakeExec) Topics(context.Context) error { return f.record("topics") }
func (f *fakeExec) Generate(_ context.Context, t string) error { return f.record("generate", t) }
func (f *fakeExec) Lessons(_ context.Context, t string) error { return f.record("lessons", t) }
func (f *fakeExec) Show(context.Context) error { return f.record("show") }
func (f *fakeExec) Next(context.Context) error { return f.record("next") }
func (f *fakeExec) Prev(context.Context) error { return f.record("prev") }
func (f *fakeExec) Complete(context.Context) error { return f.record("complete") }
func (f *fakeExec) Edit(context.Context) error { return f.record("edit") }
func (f *fakeExec) Delete(context.Context) error { return f.record("delete") }
func (f *fakeExec) Quiz(_ context.Context, t string) error { return f.record("quiz", t) }
func (f *fakeExec) Answer(_ context.Context, a []string) error { return f.record("answer", a...) }
func (f *fakeExec) Submit(context.Context) error { return f.record("submit") }
func (f *fakeExec) Retry(context.Context) error { return f.record("retry") }
func (f *fakeExec) Profile(context.Context) error { return f.record("profile") }

// capturePrintln swaps printlnFn for a recorder for the duration of t.
func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	capturePrintln(t)

	input := strings.Join([]string{
		"help",
		"login",
		"generate Machine Learning",
		"lessons",
		"n",
		"p",
		"done",
		"quiz Spanish",
		"answer 1 2",
		"submit",
		"profile",
		"exit",
		"logout",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(strings.NewReader(input)))

	assert.Equal(t, []string{
		"login", "generate", "lessons", "next", "prev", "complete", "quiz", "answer", "submit", "profile",
	}, exec.calls)
	assert.Equal(t, "Machine Learning", exec.args[1])
	assert.Equal(t, "", exec.args[2])
	assert.Equal(t, "Spanish", exec.args[6])
	assert.Equal(t, "1|2", exec.args[7])
}

func TestRunREPL_HelpDependsOnSession(t *testing.T) {
	lines := capturePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewReader(strings.NewReader("help\nlogin\nhelp\n")))

	assert.Contains(t, *lines, helpGuest)
	assert.Contains(t, *lines, helpUser)
}

func TestRunREPL_UsageUnknownAndEOF(t *testing.T) {
	lines := capturePrintln(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewReader(strings.NewReader("generate\nfoobar\n\nwhoami")))

	assert.Equal(t, []string{"whoami"}, exec.calls)
	assert.Contains(t, *lines, "Usage: generate <topic>")
	assert.Contains(t, *lines, "Unknown command: foobar")
}

func TestRunREPL_PrintsCommandErrors(t *testing.T) {
	lines := capturePrintln(t)

	exec := &fakeExec{fail: &client.APIError{StatusCode: http.StatusBadRequest, Message: "No lessons found for this topic"}}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewReader(strings.NewReader("quiz Go\nquit\n")))

	assert.Contains(t, *lines, "Error: No lessons found for this topic")
	assert.Equal(t, "Bye!", (*lines)[len(*lines)-1])
}

func TestRunREPL_StopsWhenContextDone(t *testing.T) {
	capturePrintln(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "s" }, bufio.NewReader(strings.NewReader("login\n")))
	assert.Empty(t, exec.calls)
}

func TestDescribeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"unanswered", fmt.Errorf("wrap: %w", &quiz.UnansweredError{Indices: []int{0, 2}}),
			"please answer all questions before submitting (missing: 1, 3)"},
		{"guard", auth.ErrAccessDenied, "please log in first"},
		{"empty input", fmt.Errorf("login: %w", common.ErrEmptyInput), "all fields are required"},
		{"server message", fmt.Errorf("login: %w", &client.APIError{StatusCode: 401, Message: "Unable to authenticate the user"}),
			"Unable to authenticate the user"},
		{"token rejected", fmt.Errorf("verify: %w", client.ErrUnauthorized), "session expired, please log in"},
		{"unavailable", fmt.Errorf("%w: dial tcp", client.ErrUnavailable), "server unavailable, please try again later"},
		{"cancelled", context.Canceled, "cancelled"},
		{"other", errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, describeError(tt.err))
		})
	}
}
