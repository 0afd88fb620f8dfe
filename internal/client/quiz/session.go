// Package quiz implements the quiz-taking session: generating a quiz for a
// topic, collecting one answer per question and submitting them exactly once.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Clairebear8888/Microlearning/internal/client/models"
	"github.com/Clairebear8888/Microlearning/internal/logging"
)

var (
	ErrInvalidState       = errors.New("operation not allowed in the current quiz state")
	ErrNoQuestions        = errors.New("generated quiz has no questions")
	ErrQuestionOutOfRange = errors.New("question index out of range")
	ErrOptionOutOfRange   = errors.New("option index out of range")
)

// UnansweredError lists the questions left empty at submission.
type UnansweredError struct {
	Indices []int
}

func (e *UnansweredError) Error() string {
	nums := make([]string, len(e.Indices))
	for i, idx := range e.Indices {
		nums[i] = strconv.Itoa(idx + 1)
	}
	return "please answer all questions before submitting (missing: " + strings.Join(nums, ", ") + ")"
}

type State int

const (
	StateIdle State = iota
	StateGenerating
	StateInProgress
	StateSubmitted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateGenerating:
		return "generating"
	case StateInProgress:
		return "in progress"
	case StateSubmitted:
		return "submitted"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// API is the part of the backend contract the quiz page uses.
type API interface {
	ListLessons(ctx context.Context) ([]models.Lesson, error)
	GenerateQuiz(ctx context.Context, topic string, lessonIDs []string) (models.Quiz, error)
	SubmitQuiz(ctx context.Context, quizID string, answers []string) (int, error)
	CompleteQuiz(ctx context.Context, quizID, topic string, score int) error
}

// Result of a successful submission. ProgressErr is set when recording the
// attempt in the user's progress failed; the score stands regardless.
type Result struct {
	Score       int
	ProgressErr error
}

// Session is one quiz attempt. It is not safe for concurrent use.
type Session struct {
	api API
	log logging.Logger

	state     State
	topic     string
	lessonIDs []string
	quiz      models.Quiz
	answers   []string
	score     int
	err       error
}

func NewSession(api API, log logging.Logger) *Session {
	return &Session{api: api, log: log}
}

func (s *Session) State() State      { return s.state }
func (s *Session) Topic() string     { return s.topic }
func (s *Session) Quiz() models.Quiz { return s.quiz }
func (s *Session) Score() int        { return s.score }

// Err is the generation failure while in StateFailed.
func (s *Session) Err() error { return s.err }

// Answers returns a copy of the answer vector.
func (s *Session) Answers() []string {
	return append([]string(nil), s.answers...)
}

// Generate builds a quiz for topic from lessonIDs. An empty id list is
// resolved from the user's lessons on topic. Allowed from idle or failed.
func (s *Session) Generate(ctx context.Context, topic string, lessonIDs []string) error {
	if err := s.Begin(topic, lessonIDs); err != nil {
		return err
	}
	quiz, err := s.Fetch(ctx)
	return s.Finish(ctx, quiz, err)
}

// Retry repeats a failed generation with the original arguments.
func (s *Session) Retry(ctx context.Context) error {
	if s.state != StateFailed {
		return ErrInvalidState
	}
	return s.Generate(ctx, s.topic, s.lessonIDs)
}

// Begin moves an idle or failed session to StateGenerating. Fetch and
// Finish complete the generation; Generate runs all three.
func (s *Session) Begin(topic string, lessonIDs []string) error {
	if s.state != StateIdle && s.state != StateFailed {
		return ErrInvalidState
	}

	s.state = StateGenerating
	s.topic = topic
	s.lessonIDs = append([]string(nil), lessonIDs...)
	s.err = nil
	return nil
}

// BeginRetry restarts a failed generation with its original arguments.
func (s *Session) BeginRetry() error {
	if s.state != StateFailed {
		return ErrInvalidState
	}
	return s.Begin(s.topic, s.lessonIDs)
}

// Fetch asks the backend for the quiz of the generation in progress. It does
// not change the session.
func (s *Session) Fetch(ctx context.Context) (models.Quiz, error) {
	if s.state != StateGenerating {
		return models.Quiz{}, ErrInvalidState
	}

	ids := s.lessonIDs
	if len(ids) == 0 {
		all, err := s.api.ListLessons(ctx)
		if err != nil {
			return models.Quiz{}, fmt.Errorf("resolve lessons: %w", err)
		}
		ids = models.LessonIDs(models.FilterByTopic(all, s.topic))
		s.log.Debug(ctx, "resolved quiz lessons", "topic", s.topic, "count", len(ids))
	}

	quiz, err := s.api.GenerateQuiz(ctx, s.topic, ids)
	if err != nil {
		return models.Quiz{}, fmt.Errorf("generate quiz: %w", err)
	}
	if len(quiz.Questions) == 0 {
		return models.Quiz{}, ErrNoQuestions
	}
	return quiz, nil
}

// Finish applies the outcome of Fetch: the quiz starts on success, the
// session fails otherwise. The fetch error is returned unchanged.
func (s *Session) Finish(ctx context.Context, quiz models.Quiz, err error) error {
	if s.state != StateGenerating {
		return ErrInvalidState
	}
	if err != nil {
		s.log.Error(ctx, "failed to generate quiz", "topic", s.topic, logging.Err(err))
		s.state = StateFailed
		s.err = err
		return err
	}

	s.quiz = quiz
	s.answers = make([]string, len(quiz.Questions))
	s.score = 0
	s.state = StateInProgress
	return nil
}

// SelectAnswer stores value as the answer to question i. Only allowed while
// the quiz is in progress.
func (s *Session) SelectAnswer(i int, value string) error {
	if s.state != StateInProgress {
		return ErrInvalidState
	}
	if i < 0 || i >= len(s.answers) {
		return fmt.Errorf("%w: %d", ErrQuestionOutOfRange, i)
	}
	s.answers[i] = value
	return nil
}

// SelectOption answers question i with its option opt.
func (s *Session) SelectOption(i, opt int) error {
	if s.state != StateInProgress {
		return ErrInvalidState
	}
	if i < 0 || i >= len(s.quiz.Questions) {
		return fmt.Errorf("%w: %d", ErrQuestionOutOfRange, i)
	}
	options := s.quiz.Questions[i].Options
	if opt < 0 || opt >= len(options) {
		return fmt.Errorf("%w: %d", ErrOptionOutOfRange, opt)
	}
	return s.SelectAnswer(i, options[opt])
}

// Unanswered returns the indices of empty answer slots.
func (s *Session) Unanswered() []int {
	var out []int
	for i, a := range s.answers {
		if a == "" {
			out = append(out, i)
		}
	}
	return out
}

// Submit sends the answers for grading and then records the attempt in the
// user's progress. Empty answers are rejected before any request. A failed
// grading call leaves the quiz in progress.
func (s *Session) Submit(ctx context.Context) (Result, error) {
	if s.state != StateInProgress {
		return Result{}, ErrInvalidState
	}
	if missing := s.Unanswered(); len(missing) > 0 {
		return Result{}, &UnansweredError{Indices: missing}
	}

	score, err := s.api.SubmitQuiz(ctx, s.quiz.ID, s.Answers())
	if err != nil {
		s.log.Error(ctx, "failed to submit quiz", "quiz_id", s.quiz.ID, logging.Err(err))
		return Result{}, fmt.Errorf("submit quiz: %w", err)
	}
	s.score = score
	s.state = StateSubmitted

	res := Result{Score: score}
	if err := s.api.CompleteQuiz(ctx, s.quiz.ID, s.topic, score); err != nil {
		s.log.Warn(ctx, "failed to record quiz progress", "quiz_id", s.quiz.ID, logging.Err(err))
		res.ProgressErr = err
	}
	return res, nil
}

// Percentage is the rounded score percentage of a submitted quiz.
func (s *Session) Percentage() int {
	return models.Percent(s.score, s.quiz.Total())
}

// Perfect reports a submitted quiz with every answer right.
func (s *Session) Perfect() bool {
	return s.state == StateSubmitted && s.score == s.quiz.Total()
}
