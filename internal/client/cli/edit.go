package cli

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/Clairebear8888/Microlearning/internal/client/client"
)

const editHelp = "Edit commands: subtopic <text>, summary, add <text>, insert <n> <text>, set <n> <text>, rm <n>, show, save, cancel"

// Edit enters edit mode on the current lesson and reads edit commands until
// the draft is saved or cancelled. EOF cancels.
func (a *App) Edit(ctx context.Context) error {
	return a.onLessonPage(ctx, func(ctx context.Context) error {
		if err := a.browser.StartEdit(); err != nil {
			return err
		}
		a.println(editHelp)
		a.renderDraft()

		for {
			if ctx.Err() != nil {
				a.browser.CancelEdit()
				return ctx.Err()
			}
			a.printf("edit> ")

			line, err := a.reader.ReadString('\n')
			if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
				a.browser.CancelEdit()
				a.println()
				return nil
			}

			done, cmdErr := a.editCommand(ctx, strings.TrimSpace(line))
			if cmdErr != nil {
				a.println("Error:", describeError(cmdErr))
			}
			if done {
				return nil
			}
		}
	})
}

// editCommand applies one edit command. done is true once the editor should
// close.
func (a *App) editCommand(ctx context.Context, line string) (done bool, err error) {
	draft, ok := a.browser.Draft()
	if !ok {
		return true, nil
	}

	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "":
		return false, nil

	case "subtopic":
		if rest == "" {
			if rest, err = getSimpleText(a.reader, "Enter subtopic", a.out); err != nil {
				return false, err
			}
		}
		draft.Subtopic = rest

	case "summary":
		text, err := GetMultiline(a.reader, "Enter summary", a.out)
		if err != nil {
			return false, err
		}
		draft.Summary = text

	case "add":
		if rest == "" {
			return false, errUsage("add <text>")
		}
		draft.BulletPoints.Append(rest)

	case "insert", "set":
		n, text, err := bulletArgs(rest)
		if err != nil {
			return false, errUsage(cmd + " <n> <text>")
		}
		if cmd == "insert" {
			err = draft.BulletPoints.InsertAt(n, text)
		} else {
			err = draft.BulletPoints.ReplaceAt(n, text)
		}
		if err != nil {
			return false, err
		}

	case "rm":
		n, err := strconv.Atoi(rest)
		if err != nil {
			return false, errUsage("rm <n>")
		}
		if err := draft.BulletPoints.RemoveAt(n - 1); err != nil {
			return false, err
		}

	case "show":

	case "save":
		if err := a.browser.SaveEdit(ctx); err != nil {
			a.println(client.UserMessage(err, "Failed to save the lesson, your changes are kept."))
			return false, nil
		}
		a.println("Lesson saved.")
		a.renderLesson()
		return true, nil

	case "cancel":
		a.browser.CancelEdit()
		a.println("Edit cancelled.")
		a.renderLesson()
		return true, nil

	default:
		a.println(editHelp)
		return false, nil
	}

	a.renderDraft()
	return false, nil
}

// bulletArgs parses "<n> <text>" with a 1-based n into a 0-based index.
func bulletArgs(s string) (int, string, error) {
	num, text, ok := strings.Cut(s, " ")
	text = strings.TrimSpace(text)
	if !ok || text == "" {
		return 0, "", strconv.ErrSyntax
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return 0, "", err
	}
	return n - 1, text, nil
}

func (a *App) renderDraft() {
	draft, ok := a.browser.Draft()
	if !ok {
		return
	}
	a.println("-- editing --")
	a.println("Subtopic:", draft.Subtopic)
	a.println("Summary: ", draft.Summary)
	renderBullets(a.out, draft.BulletPoints)
}
