package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Clairebear8888/Microlearning/internal/client/auth"
	"github.com/Clairebear8888/Microlearning/internal/client/client"
	"github.com/Clairebear8888/Microlearning/internal/client/lessons"
	"github.com/Clairebear8888/Microlearning/internal/client/quiz"
	"github.com/Clairebear8888/Microlearning/internal/common"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	commandContext(ctx context.Context) (context.Context, context.CancelFunc)

	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error

	Topics(ctx context.Context) error
	Generate(ctx context.Context, topic string) error
	Lessons(ctx context.Context, topic string) error
	Show(ctx context.Context) error
	Next(ctx context.Context) error
	Prev(ctx context.Context) error
	Complete(ctx context.Context) error
	Edit(ctx context.Context) error
	Delete(ctx context.Context) error

	Quiz(ctx context.Context, topic string) error
	Answer(ctx context.Context, args []string) error
	Submit(ctx context.Context) error
	Retry(ctx context.Context) error

	Profile(ctx context.Context) error
}

const (
	helpGuest = "Available commands: signup, login, topics, whoami, exit"
	helpUser  = "Available commands: topics, generate <topic>, lessons [topic], show, (n)ext, (p)rev, complete, edit, delete, " +
		"quiz [topic], answer <q> <option>, submit, retry, profile, whoami, logout, exit"
)

// runREPL starts a read-eval-print loop for the MicroLearn CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a'; the remaining tokens are its arguments.
// Unknown commands are reported back to the user. The loop exits on EOF,
// when ctx is done, or when the user types "exit" or "quit".
//
// Each command runs under its own context from a.commandContext, so
// cancelling one command leaves the loop running. Errors returned by command
// handlers are printed through describeError and never end the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("ml %s > ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		cmdCtx, done := a.commandContext(ctx)
		quit, cmdErr := dispatch(cmdCtx, a, cmd, args)
		done()

		if quit {
			return
		}
		if cmdErr != nil {
			printlnFn("Error:", describeError(cmdErr))
		}
		if err != nil {
			return
		}
	}
}

// dispatch runs one command. quit is set by exit and quit.
func dispatch(ctx context.Context, a execIface, cmd string, args []string) (quit bool, err error) {
	topic := strings.Join(args, " ")

	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn(helpUser)
		} else {
			printlnFn(helpGuest)
		}

	case "signup", "register":
		return false, a.Signup(ctx)
	case "login":
		return false, a.Login(ctx)
	case "logout":
		return false, a.Logout(ctx)
	case "whoami":
		return false, a.WhoAmI(ctx)

	case "topics":
		return false, a.Topics(ctx)
	case "generate":
		if topic == "" {
			printlnFn("Usage: generate <topic>")
			return false, nil
		}
		return false, a.Generate(ctx, topic)
	case "lessons":
		return false, a.Lessons(ctx, topic)
	case "show":
		return false, a.Show(ctx)
	case "n", "next":
		return false, a.Next(ctx)
	case "p", "prev":
		return false, a.Prev(ctx)
	case "complete", "done":
		return false, a.Complete(ctx)
	case "edit":
		return false, a.Edit(ctx)
	case "delete":
		return false, a.Delete(ctx)

	case "quiz":
		return false, a.Quiz(ctx, topic)
	case "answer", "a":
		return false, a.Answer(ctx, args)
	case "submit":
		return false, a.Submit(ctx)
	case "retry":
		return false, a.Retry(ctx)

	case "profile":
		return false, a.Profile(ctx)

	case "exit", "quit":
		printlnFn("Bye!")
		return true, nil

	default:
		printlnFn("Unknown command:", cmd)
	}
	return false, nil
}

// describeError turns a command error into the line shown to the user.
// Server-provided messages win over generic text.
func describeError(err error) string {
	var unanswered *quiz.UnansweredError
	switch {
	case errors.As(err, &unanswered):
		return unanswered.Error()
	case errors.Is(err, auth.ErrAccessDenied):
		return "please log in first"
	case errors.Is(err, common.ErrEmptyInput):
		return "all fields are required"
	case errors.Is(err, lessons.ErrNotConfirmed):
		return "cancelled"
	case errors.Is(err, context.Canceled):
		return "cancelled"
	}

	if msg := client.UserMessage(err, ""); msg != "" {
		return msg
	}
	if client.IsAuthError(err) {
		return "session expired, please log in"
	}
	if errors.Is(err, client.ErrUnavailable) {
		return "server unavailable, please try again later"
	}
	return err.Error()
}
