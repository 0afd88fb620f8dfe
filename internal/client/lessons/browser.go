package lessons

import (
	"context"
	"fmt"

	"github.com/Clairebear8888/Microlearning/internal/client/models"
	"github.com/Clairebear8888/Microlearning/internal/logging"
)

// NoLesson is the index of an empty browser.
const NoLesson = -1

// API is the part of the backend contract the lessons page uses.
type API interface {
	ListLessons(ctx context.Context) ([]models.Lesson, error)
	UpdateLesson(ctx context.Context, lessonID string, draft models.LessonDraft) (models.Lesson, error)
	DeleteLesson(ctx context.Context, lessonID string) error
	CompleteLesson(ctx context.Context, lessonID, topic string) error
}

type Mode int

const (
	ModeViewing Mode = iota
	ModeEditing
)

func (m Mode) String() string {
	if m == ModeEditing {
		return "editing"
	}
	return "viewing"
}

// Browser holds the lesson list of one topic and the editing submachine.
type Browser struct {
	api API
	log logging.Logger

	topic     string
	lessons   []models.Lesson
	index     int
	completed map[int]struct{}

	mode      Mode
	editingID string
	draft     *models.LessonDraft
}

func NewBrowser(api API, log logging.Logger) *Browser {
	return &Browser{
		api:       api,
		log:       log,
		index:     NoLesson,
		completed: make(map[int]struct{}),
	}
}

// Load fetches all lessons and keeps those of topic. The browser is reset
// even when the topic turns out to have no lessons, in which case
// ErrNoLessons is returned.
func (b *Browser) Load(ctx context.Context, topic string) error {
	lessons, err := b.Fetch(ctx, topic)
	if err != nil {
		return err
	}

	b.SetLessons(topic, lessons)
	if len(b.lessons) == 0 {
		return ErrNoLessons
	}
	return nil
}

// Fetch returns the user's lessons on topic without touching the browser.
func (b *Browser) Fetch(ctx context.Context, topic string) ([]models.Lesson, error) {
	all, err := b.api.ListLessons(ctx)
	if err != nil {
		b.log.Error(ctx, "failed to load lessons", "topic", topic, logging.Err(err))
		return nil, fmt.Errorf("load lessons: %w", err)
	}
	return models.FilterByTopic(all, topic), nil
}

// SetLessons replaces the lesson set, e.g. with freshly generated lessons.
func (b *Browser) SetLessons(topic string, lessons []models.Lesson) {
	b.topic = topic
	b.lessons = append([]models.Lesson(nil), lessons...)
	b.completed = make(map[int]struct{})
	b.resetIndex()
	b.CancelEdit()
}

func (b *Browser) resetIndex() {
	if len(b.lessons) == 0 {
		b.index = NoLesson
		return
	}
	b.index = 0
}

func (b *Browser) Topic() string { return b.topic }

func (b *Browser) Len() int { return len(b.lessons) }

func (b *Browser) Index() int { return b.index }

// Lessons returns a copy of the lesson list.
func (b *Browser) Lessons() []models.Lesson {
	return append([]models.Lesson(nil), b.lessons...)
}

// Current returns the lesson being viewed.
func (b *Browser) Current() (models.Lesson, bool) {
	if b.index < 0 || b.index >= len(b.lessons) {
		return models.Lesson{}, false
	}
	return b.lessons[b.index], true
}

// Next moves to the following lesson; it reports false on the last one.
func (b *Browser) Next() bool {
	if b.index < 0 || b.index >= len(b.lessons)-1 {
		return false
	}
	b.index++
	return true
}

// Previous moves to the preceding lesson; it reports false on the first one.
func (b *Browser) Previous() bool {
	if b.index <= 0 {
		return false
	}
	b.index--
	return true
}

// Position renders "Lesson i of n", or "" when empty.
func (b *Browser) Position() string {
	if b.index == NoLesson {
		return ""
	}
	return fmt.Sprintf("Lesson %d of %d", b.index+1, len(b.lessons))
}

// MarkComplete records the current lesson as completed on the server and,
// on success, in the completion set.
func (b *Browser) MarkComplete(ctx context.Context) error {
	l, ok := b.Current()
	if !ok {
		return ErrNoCurrentLesson
	}

	if err := b.api.CompleteLesson(ctx, l.ID, b.topic); err != nil {
		b.log.Error(ctx, "failed to mark lesson complete", "lesson_id", l.ID, logging.Err(err))
		return fmt.Errorf("complete lesson: %w", err)
	}
	b.completed[b.index] = struct{}{}
	return nil
}

func (b *Browser) IsCompleted(i int) bool {
	_, ok := b.completed[i]
	return ok
}

func (b *Browser) CompletedCount() int { return len(b.completed) }

func (b *Browser) AllCompleted() bool {
	return len(b.lessons) > 0 && len(b.completed) == len(b.lessons)
}

// CanTakeQuiz reports whether the quiz may be started: the last lesson is
// shown and every lesson is completed.
func (b *Browser) CanTakeQuiz() bool {
	return b.index == len(b.lessons)-1 && b.AllCompleted()
}

func (b *Browser) LessonIDs() []string {
	return models.LessonIDs(b.lessons)
}
