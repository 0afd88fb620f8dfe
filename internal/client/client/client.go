package client

import (
	"context"

	"github.com/Clairebear8888/Microlearning/internal/client/models"
)

// TokenSource provides the bearer token for protected calls. ok is false
// when no token is stored.
type TokenSource interface {
	Get(ctx context.Context) (token string, ok bool, err error)
}

// Client is the MicroLearn backend HTTP contract.
type Client interface {
	Verify(ctx context.Context) (models.User, error)
	Login(ctx context.Context, email string, password []byte) (string, error)
	Signup(ctx context.Context, username, email string, password []byte) (models.User, error)
	GetProfile(ctx context.Context, userID string) (models.Profile, error)

	ListLessons(ctx context.Context) ([]models.Lesson, error)
	GenerateLessons(ctx context.Context, topic string) ([]models.Lesson, error)
	UpdateLesson(ctx context.Context, lessonID string, draft models.LessonDraft) (models.Lesson, error)
	DeleteLesson(ctx context.Context, lessonID string) error

	CompleteLesson(ctx context.Context, lessonID, topic string) error
	GetProgress(ctx context.Context, userID string) ([]models.TopicProgress, error)

	GenerateQuiz(ctx context.Context, topic string, lessonIDs []string) (models.Quiz, error)
	SubmitQuiz(ctx context.Context, quizID string, answers []string) (int, error)
	CompleteQuiz(ctx context.Context, quizID, topic string, score int) error
	QuizHistory(ctx context.Context, userID string) ([]models.QuizResult, error)
}
