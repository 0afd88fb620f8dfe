package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Clairebear8888/Microlearning/internal/client/models"
	"github.com/Clairebear8888/Microlearning/internal/client/quiz"
	"github.com/Clairebear8888/Microlearning/internal/client/task"
	"github.com/Clairebear8888/Microlearning/internal/common"
)

var (
	errNoQuizPage = errors.New("no quiz is open, use: quiz [topic]")
	errQuizLocked = errors.New("complete every lesson and reach the last one before taking the quiz")
)

func errUsage(usage string) error {
	return fmt.Errorf("%w, usage: %s", common.ErrInvalidArgument, usage)
}

// Quiz opens the quiz page. Without a topic the quiz covers the open lesson
// set and is only offered once it is finished. With a topic the open
// lesson ids are reused when they belong to it; otherwise the lessons are
// resolved from the topic.
func (a *App) Quiz(ctx context.Context, topic string) error {
	if topic == "" {
		topic = a.browser.Topic()
		if topic == "" {
			a.println("Usage: quiz [topic]")
			return nil
		}
		if !a.browser.CanTakeQuiz() {
			return errQuizLocked
		}
	}

	var ids []string
	if topic == a.browser.Topic() && a.browser.Len() > 0 {
		ids = a.browser.LessonIDs()
	}

	page := a.openPage(ctx, common.QuizRoute(topic))
	a.quiz = quiz.NewSession(a.api, a.log)
	a.printf("Generating your quiz on %s...\n", topic)
	if err := a.quiz.Begin(topic, ids); err != nil {
		return err
	}
	return a.runQuizGeneration(ctx, page)
}

// Retry repeats a failed quiz generation.
func (a *App) Retry(ctx context.Context) error {
	if !a.onQuizPage() {
		return errNoQuizPage
	}
	page := a.openPage(ctx, a.route)
	if err := a.quiz.BeginRetry(); err != nil {
		return err
	}
	a.println("Retrying...")
	return a.runQuizGeneration(ctx, page)
}

type generatedQuiz struct {
	quiz models.Quiz
	err  error
}

// runQuizGeneration fetches the quiz of the started generation. The
// session only sees the outcome while the quiz page is still open.
func (a *App) runQuizGeneration(ctx context.Context, page *task.Runner) error {
	var genErr error
	err := task.Run(ctx, page,
		func(ctx context.Context) (generatedQuiz, error) {
			q, err := a.quiz.Fetch(ctx)
			return generatedQuiz{quiz: q, err: err}, nil
		},
		func(g generatedQuiz) {
			if genErr = a.quiz.Finish(ctx, g.quiz, g.err); genErr == nil {
				a.renderQuiz()
			}
		},
	)
	if err == nil {
		err = genErr
	}
	if err != nil && a.quiz.State() == quiz.StateGenerating {
		// Interrupted before the outcome was applied.
		_ = a.quiz.Finish(ctx, models.Quiz{}, err)
	}
	if err != nil {
		a.println("Failed to generate the quiz. Type 'retry' to try again.")
	}
	return err
}

// Answer selects option <option> (1-based) for question <q> (1-based).
func (a *App) Answer(ctx context.Context, args []string) error {
	if !a.onQuizPage() {
		return errNoQuizPage
	}
	if len(args) != 2 {
		return errUsage("answer <q> <option>")
	}
	q, err := strconv.Atoi(args[0])
	if err != nil {
		return errUsage("answer <q> <option>")
	}
	opt, err := strconv.Atoi(args[1])
	if err != nil {
		return errUsage("answer <q> <option>")
	}

	if err := a.quiz.SelectOption(q-1, opt-1); err != nil {
		return err
	}
	a.renderQuestion(q - 1)
	if missing := len(a.quiz.Unanswered()); missing > 0 {
		a.printf("%d question(s) left.\n", missing)
	} else {
		a.println("All answered. Type 'submit' when ready.")
	}
	return nil
}

// Submit grades the quiz and records it in the user's progress.
func (a *App) Submit(ctx context.Context) error {
	if !a.onQuizPage() {
		return errNoQuizPage
	}
	page := a.openPage(ctx, a.route)

	return task.Run(ctx, page,
		func(ctx context.Context) (quiz.Result, error) { return a.quiz.Submit(ctx) },
		func(res quiz.Result) {
			a.renderQuiz()
			a.printf("You scored %d/%d (%d%%).\n", res.Score, a.quiz.Quiz().Total(), a.quiz.Percentage())
			if a.quiz.Perfect() {
				a.println("Perfect score!")
			}
			if res.ProgressErr != nil {
				a.println("Your score was graded but could not be saved to your progress.")
			}
			a.printf("Type 'lessons %s' to go back or 'profile' to see your progress.\n", a.quiz.Topic())
		},
	)
}

func (a *App) onQuizPage() bool {
	return strings.HasPrefix(a.route, "/quiz/")
}
