package lessons

import (
	"context"
	"fmt"

	"github.com/Clairebear8888/Microlearning/internal/client/models"
	"github.com/Clairebear8888/Microlearning/internal/logging"
)

func (b *Browser) Mode() Mode { return b.mode }

// EditingID is the id of the lesson being edited, "" while viewing.
func (b *Browser) EditingID() string { return b.editingID }

// StartEdit enters edit mode on the current lesson with a fresh draft.
func (b *Browser) StartEdit() error {
	l, ok := b.Current()
	if !ok {
		return ErrNoCurrentLesson
	}

	draft := l.Draft()
	b.mode = ModeEditing
	b.editingID = l.ID
	b.draft = &draft
	return nil
}

// Draft returns the mutable edit buffer.
func (b *Browser) Draft() (*models.LessonDraft, bool) {
	if b.mode != ModeEditing {
		return nil, false
	}
	return b.draft, true
}

// SaveEdit sends the draft to the server. On success the edited lesson is
// replaced in place by the server's copy and the browser returns to viewing.
// On failure the draft is kept.
func (b *Browser) SaveEdit(ctx context.Context) error {
	if b.mode != ModeEditing {
		return ErrNotEditing
	}

	updated, err := b.api.UpdateLesson(ctx, b.editingID, *b.draft)
	if err != nil {
		b.log.Error(ctx, "failed to update lesson", "lesson_id", b.editingID, logging.Err(err))
		return fmt.Errorf("update lesson: %w", err)
	}

	for i := range b.lessons {
		if b.lessons[i].ID == b.editingID {
			b.lessons[i] = updated
			break
		}
	}
	b.log.Info(ctx, "lesson updated", "lesson_id", b.editingID)
	b.CancelEdit()
	return nil
}

// CancelEdit discards the draft.
func (b *Browser) CancelEdit() {
	b.mode = ModeViewing
	b.editingID = ""
	b.draft = nil
}

// Delete removes a lesson after confirm approves it. Indices shift, so the
// view returns to the first lesson and the completion set is cleared.
func (b *Browser) Delete(ctx context.Context, lessonID string, confirm func() bool) error {
	if confirm == nil || !confirm() {
		return ErrNotConfirmed
	}

	if err := b.api.DeleteLesson(ctx, lessonID); err != nil {
		b.log.Error(ctx, "failed to delete lesson", "lesson_id", lessonID, logging.Err(err))
		return fmt.Errorf("delete lesson: %w", err)
	}

	kept := b.lessons[:0]
	for _, l := range b.lessons {
		if l.ID != lessonID {
			kept = append(kept, l)
		}
	}
	b.lessons = kept

	if b.editingID == lessonID {
		b.CancelEdit()
	}
	b.completed = make(map[int]struct{})
	b.resetIndex()

	b.log.Info(ctx, "lesson deleted", "lesson_id", lessonID)
	return nil
}
