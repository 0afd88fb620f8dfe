// Package profile loads and summarises the profile page: account details,
// per-topic progress and quiz history.
package profile

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/Clairebear8888/Microlearning/internal/client/models"
	"golang.org/x/sync/errgroup"
)

const (
	minutesPerLesson = 5
	minutesPerQuiz   = 10
	recentQuizzes    = 5
)

type API interface {
	GetProfile(ctx context.Context, userID string) (models.Profile, error)
	GetProgress(ctx context.Context, userID string) ([]models.TopicProgress, error)
	QuizHistory(ctx context.Context, userID string) ([]models.QuizResult, error)
}

// Page is everything the profile page shows.
type Page struct {
	Profile  models.Profile
	Progress []models.TopicProgress
	Quizzes  []models.QuizResult
}

// Load fetches the three parts of the page concurrently. The first failure
// cancels the others.
func Load(ctx context.Context, api API, userID string) (Page, error) {
	var p Page
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		profile, err := api.GetProfile(ctx, userID)
		if err != nil {
			return fmt.Errorf("get profile: %w", err)
		}
		p.Profile = profile
		return nil
	})
	g.Go(func() error {
		progress, err := api.GetProgress(ctx, userID)
		if err != nil {
			return fmt.Errorf("get progress: %w", err)
		}
		p.Progress = progress
		return nil
	})
	g.Go(func() error {
		quizzes, err := api.QuizHistory(ctx, userID)
		if err != nil {
			return fmt.Errorf("get quiz history: %w", err)
		}
		p.Quizzes = quizzes
		return nil
	})

	if err := g.Wait(); err != nil {
		return Page{}, err
	}
	return p, nil
}

// Summary holds the derived statistics of a profile page.
type Summary struct {
	TopicsLearned    int
	LessonsCompleted int
	QuizzesTaken     int
	MinutesLearning  int
	AverageScore     int
	Recent           []models.QuizResult
}

// Summarize derives the page statistics. Learning time is estimated at five
// minutes per lesson and ten per quiz. The average score is the rounded mean
// of the per-quiz percentages.
func (p Page) Summarize() Summary {
	s := Summary{
		TopicsLearned: len(p.Progress),
		QuizzesTaken:  len(p.Quizzes),
	}
	for _, tp := range p.Progress {
		s.LessonsCompleted += tp.LessonsCompleted
	}
	s.MinutesLearning = s.LessonsCompleted*minutesPerLesson + s.QuizzesTaken*minutesPerQuiz

	if len(p.Quizzes) > 0 {
		var sum float64
		for _, q := range p.Quizzes {
			if q.TotalQuestions > 0 {
				sum += float64(q.Score) / float64(q.TotalQuestions) * 100
			}
		}
		s.AverageScore = int(math.Round(sum / float64(len(p.Quizzes))))
	}

	recent := append([]models.QuizResult(nil), p.Quizzes...)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > recentQuizzes {
		recent = recent[:recentQuizzes]
	}
	s.Recent = recent
	return s
}
