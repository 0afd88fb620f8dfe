package lessons

import "errors"

var (
	ErrNoLessons       = errors.New("no lessons found for this topic")
	ErrNotEditing      = errors.New("no lesson is being edited")
	ErrNotConfirmed    = errors.New("deletion not confirmed")
	ErrEmptyTopic      = errors.New("topic is empty")
	ErrNoCurrentLesson = errors.New("no lesson selected")
)
