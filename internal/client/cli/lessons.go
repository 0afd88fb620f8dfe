package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/Clairebear8888/Microlearning/internal/client/lessons"
	"github.com/Clairebear8888/Microlearning/internal/client/models"
	"github.com/Clairebear8888/Microlearning/internal/client/task"
	"github.com/Clairebear8888/Microlearning/internal/common"
)

var errNoLessonPage = errors.New("no lesson set is open, use: lessons <topic>")

func (a *App) Topics(ctx context.Context) error {
	a.openPage(ctx, common.RouteTopics)

	a.println("Popular topics:")
	for _, t := range lessons.PopularTopics {
		a.println("  -", t)
	}
	a.println("Type 'generate <topic>' to create a lesson set.")
	return nil
}

type generated struct {
	topic   string
	lessons []models.Lesson
}

// Generate requests a new lesson set from the topics page and opens it.
func (a *App) Generate(ctx context.Context, topic string) error {
	page := a.openPage(ctx, common.RouteTopics)
	a.printf("Generating lessons on %q...\n", strings.TrimSpace(topic))

	var got *generated
	err := task.Run(ctx, page,
		func(ctx context.Context) (generated, error) {
			t, ls, err := lessons.Generate(ctx, a.api, topic)
			return generated{topic: t, lessons: ls}, err
		},
		func(g generated) { got = &g },
	)
	if err != nil || got == nil {
		return err
	}

	a.browser.SetLessons(got.topic, got.lessons)
	a.Navigate(common.LessonsRoute(got.topic))
	return a.guard.Render(ctx, func(ctx context.Context) error {
		a.renderLesson()
		return nil
	})
}

// Lessons opens the guarded lessons page of topic, or reloads the open one
// when topic is empty.
func (a *App) Lessons(ctx context.Context, topic string) error {
	if topic == "" {
		topic = a.browser.Topic()
	}
	if topic == "" {
		a.println("Usage: lessons <topic>")
		return nil
	}

	page := a.openPage(ctx, common.LessonsRoute(topic))
	return a.guard.Render(ctx, func(ctx context.Context) error {
		empty := false
		err := task.Run(ctx, page,
			func(ctx context.Context) ([]models.Lesson, error) {
				return a.browser.Fetch(ctx, topic)
			},
			func(ls []models.Lesson) {
				a.browser.SetLessons(topic, ls)
				if empty = len(ls) == 0; !empty {
					a.renderLesson()
				}
			},
		)
		if err == nil && empty {
			return lessons.ErrNoLessons
		}
		return err
	})
}

// onLessonPage runs fn on the open lessons page, re-checking the guard.
func (a *App) onLessonPage(ctx context.Context, fn func(ctx context.Context) error) error {
	if !strings.HasPrefix(a.route, "/lessons/") {
		return errNoLessonPage
	}
	return a.guard.Render(ctx, fn)
}

func (a *App) Show(ctx context.Context) error {
	return a.onLessonPage(ctx, func(context.Context) error {
		a.renderLesson()
		return nil
	})
}

func (a *App) Next(ctx context.Context) error {
	return a.onLessonPage(ctx, func(context.Context) error {
		if !a.browser.Next() {
			a.println("This is the last lesson.")
			return nil
		}
		a.renderLesson()
		return nil
	})
}

func (a *App) Prev(ctx context.Context) error {
	return a.onLessonPage(ctx, func(context.Context) error {
		if !a.browser.Previous() {
			a.println("This is the first lesson.")
			return nil
		}
		a.renderLesson()
		return nil
	})
}

func (a *App) Complete(ctx context.Context) error {
	return a.onLessonPage(ctx, func(ctx context.Context) error {
		if err := a.browser.MarkComplete(ctx); err != nil {
			return err
		}
		a.printf("Lesson completed (%d/%d).\n", a.browser.CompletedCount(), a.browser.Len())
		if a.browser.CanTakeQuiz() {
			a.println("All lessons completed! Type 'quiz' to test yourself.")
		}
		return nil
	})
}

// Delete removes the current lesson after a y/N confirmation.
func (a *App) Delete(ctx context.Context) error {
	return a.onLessonPage(ctx, func(ctx context.Context) error {
		l, ok := a.browser.Current()
		if !ok {
			return lessons.ErrNoCurrentLesson
		}

		confirm := func() bool {
			return GetConfirmation(a.reader, "Delete lesson \""+l.Subtopic+"\"?", a.out)
		}
		if err := a.browser.Delete(ctx, l.ID, confirm); err != nil {
			return err
		}

		a.println("Lesson deleted.")
		a.renderLesson()
		return nil
	})
}
