package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Clairebear8888/Microlearning/internal/client/apitest"
	"github.com/Clairebear8888/Microlearning/internal/client/client"
	"github.com/Clairebear8888/Microlearning/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	profileErr error
	progress   []models.TopicProgress
	quizzes    []models.QuizResult
}

func (f fakeAPI) GetProfile(_ context.Context, id string) (models.Profile, error) {
	return models.Profile{ID: id, Username: "ada"}, f.profileErr
}

func (f fakeAPI) GetProgress(context.Context, string) ([]models.TopicProgress, error) {
	return f.progress, nil
}

func (f fakeAPI) QuizHistory(ctx context.Context, _ string) ([]models.QuizResult, error) {
	if f.profileErr != nil {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.quizzes, nil
}

func TestLoad(t *testing.T) {
	api := fakeAPI{
		progress: []models.TopicProgress{{Topic: "Python", LessonsCompleted: 3}},
		quizzes:  []models.QuizResult{{Topic: "Python", Score: 1, TotalQuestions: 2}},
	}

	p, err := Load(context.Background(), api, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", p.Profile.ID)
	assert.Len(t, p.Progress, 1)
	assert.Len(t, p.Quizzes, 1)
}

func TestLoad_FirstErrorCancelsTheRest(t *testing.T) {
	boom := errors.New("boom")

	_, err := Load(context.Background(), fakeAPI{profileErr: boom}, "u1")
	require.ErrorIs(t, err, boom)
}

func TestSummarize(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var quizzes []models.QuizResult
	for i := 0; i < 7; i++ {
		quizzes = append(quizzes, models.QuizResult{
			ID:             string(rune('a' + i)),
			Score:          i % 3,
			TotalQuestions: 3,
			CreatedAt:      base.Add(time.Duration(i) * time.Hour),
		})
	}
	p := Page{
		Progress: []models.TopicProgress{
			{Topic: "Python", LessonsCompleted: 4},
			{Topic: "Spanish", LessonsCompleted: 2},
		},
		Quizzes: quizzes,
	}

	s := p.Summarize()
	assert.Equal(t, 2, s.TopicsLearned)
	assert.Equal(t, 6, s.LessonsCompleted)
	assert.Equal(t, 7, s.QuizzesTaken)
	assert.Equal(t, 6*5+7*10, s.MinutesLearning)
	// scores 0,1,2,0,1,2,0 of 3: (0+33.3+66.7)*2/7 = 28.57
	assert.Equal(t, 29, s.AverageScore)

	require.Len(t, s.Recent, 5)
	assert.Equal(t, "g", s.Recent[0].ID)
	assert.Equal(t, "c", s.Recent[4].ID)
}

func TestSummarize_Empty(t *testing.T) {
	s := Page{}.Summarize()

	assert.Zero(t, s.TopicsLearned)
	assert.Zero(t, s.MinutesLearning)
	assert.Zero(t, s.AverageScore, "no quizzes means a zero average")
	assert.Empty(t, s.Recent)
}

func TestLoad_AgainstBackend(t *testing.T) {
	srv := apitest.New(t)
	u := srv.SeedUser("ada", "ada@example.com", "pw")
	token, err := srv.IssueToken(u.ID)
	require.NoError(t, err)

	c := client.NewHTTPClient(srv.URL(), 0, staticToken(token))
	p, err := Load(context.Background(), c, u.ID)
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", p.Profile.Email)
	assert.Empty(t, p.Progress)
	assert.Empty(t, p.Quizzes)
	assert.Equal(t, 1, srv.Hits(apitest.RouteProfile))
	assert.Equal(t, 1, srv.Hits(apitest.RouteProgress))
	assert.Equal(t, 1, srv.Hits(apitest.RouteQuizHistory))
}

type staticToken string

func (s staticToken) Get(context.Context) (string, bool, error) { return string(s), s != "", nil }
