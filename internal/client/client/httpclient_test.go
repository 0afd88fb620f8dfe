package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Clairebear8888/Microlearning/internal/client/apitest"
	"github.com/Clairebear8888/Microlearning/internal/client/models"
	"github.com/Clairebear8888/Microlearning/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) Get(context.Context) (string, bool, error) {
	return s.token, s.token != "", s.err
}

func newAuthedClient(t *testing.T) (*HTTPClient, *apitest.Server, models.User) {
	t.Helper()
	srv := apitest.New(t)
	u := srv.SeedUser("ada", "ada@example.com", "secret")
	token, err := srv.IssueToken(u.ID)
	require.NoError(t, err)
	return NewHTTPClient(srv.URL(), 5*time.Second, staticTokens{token: token}), srv, u
}

func TestHTTPClient_LoginAndVerify(t *testing.T) {
	srv := apitest.New(t)
	u := srv.SeedUser("ada", "ada@example.com", "secret")

	c := NewHTTPClient(srv.URL(), 0, staticTokens{})
	token, err := c.Login(context.Background(), "ada@example.com", []byte("secret"))
	require.NoError(t, err)
	require.NotEmpty(t, token)

	c = NewHTTPClient(srv.URL(), 0, staticTokens{token: token})
	got, err := c.Verify(context.Background())
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "ada", got.Username)
}

func TestHTTPClient_LoginWrongPasswordSurfacesServerMessage(t *testing.T) {
	srv := apitest.New(t)
	srv.SeedUser("ada", "ada@example.com", "secret")

	c := NewHTTPClient(srv.URL(), 0, staticTokens{})
	_, err := c.Login(context.Background(), "ada@example.com", []byte("nope"))

	require.ErrorIs(t, err, ErrUnauthorized)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Unable to authenticate the user", UserMessage(err, "fallback"))
}

func TestHTTPClient_SignupDuplicate(t *testing.T) {
	srv := apitest.New(t)
	c := NewHTTPClient(srv.URL(), 0, staticTokens{})
	ctx := context.Background()

	u, err := c.Signup(ctx, "bob", "bob@example.com", []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, "bob", u.Username)

	_, err = c.Signup(ctx, "bob", "bob@example.com", []byte("pw"))
	require.Error(t, err)
	assert.Equal(t, "User already exists.", UserMessage(err, "Signup failed"))
	assert.False(t, errors.Is(err, ErrUnauthorized))
}

func TestHTTPClient_VerifyWithoutTokenSendsNoHeader(t *testing.T) {
	srv := apitest.New(t)
	c := NewHTTPClient(srv.URL(), 0, staticTokens{})

	_, err := c.Verify(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestHTTPClient_SendsBearerHeader(t *testing.T) {
	got := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got <- r.Header.Get(common.AuthorizationHeaderName)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, 0, staticTokens{token: "abc"})
	_, err := c.ListLessons(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", <-got)
}

func TestIsAuthError(t *testing.T) {
	c, srv, _ := newAuthedClient(t)
	srv.FailWith(apitest.RouteLessons, http.StatusUnauthorized, "Invalid token")

	_, err := c.ListLessons(context.Background())
	assert.True(t, IsAuthError(err))
	assert.False(t, IsAuthError(ErrUnavailable))
	assert.False(t, IsAuthError(nil))
}

func TestHTTPClient_TokenSourceError(t *testing.T) {
	srv := apitest.New(t)
	boom := errors.New("disk gone")
	c := NewHTTPClient(srv.URL(), 0, staticTokens{err: boom})

	_, err := c.ListLessons(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Zero(t, srv.TotalHits())
}

func TestHTTPClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"forbidden", http.StatusForbidden, ErrUnauthorized},
		{"not found", http.StatusNotFound, ErrNotFound},
		{"bad gateway", http.StatusBadGateway, ErrUnavailable},
		{"unavailable", http.StatusServiceUnavailable, ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, srv, _ := newAuthedClient(t)
			srv.FailWith(apitest.RouteLessons, tt.status, "nope")

			_, err := c.ListLessons(context.Background())
			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, "nope", UserMessage(err, ""))
		})
	}
}

func TestHTTPClient_InternalErrorIsPlainAPIError(t *testing.T) {
	c, srv, _ := newAuthedClient(t)
	srv.RespondWith(apitest.RouteLessons, http.StatusInternalServerError, `{"message":"kaput"}`)

	_, err := c.ListLessons(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "kaput", apiErr.Message)
	assert.NotErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrUnavailable)
}

func TestHTTPClient_MalformedBody(t *testing.T) {
	c, srv, _ := newAuthedClient(t)
	srv.RespondWith(apitest.RouteVerify, http.StatusOK, `{"currentUser":`)

	_, err := c.Verify(context.Background())
	require.ErrorIs(t, err, ErrMalformed)
}

func TestHTTPClient_VerifyEmptyUserIsMalformed(t *testing.T) {
	c, srv, _ := newAuthedClient(t)
	srv.RespondWith(apitest.RouteVerify, http.StatusOK, `{"currentUser":{}}`)

	_, err := c.Verify(context.Background())
	require.ErrorIs(t, err, ErrMalformed)
}

func TestHTTPClient_TransportFailure(t *testing.T) {
	c := NewHTTPClient("http://127.0.0.1:1", time.Second, staticTokens{token: "t"})

	_, err := c.Verify(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestHTTPClient_CancelledContext(t *testing.T) {
	c, srv, _ := newAuthedClient(t)
	release := srv.Hold(apitest.RouteLessons)
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := c.ListLessons(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestHTTPClient_LessonLifecycle(t *testing.T) {
	c, srv, u := newAuthedClient(t)
	ctx := context.Background()

	generated, err := c.GenerateLessons(ctx, "Python")
	require.NoError(t, err)
	require.Len(t, generated, 3)

	all, err := c.ListLessons(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.LessonIDs(generated), models.LessonIDs(all))

	draft := generated[0].Draft()
	draft.Summary = "edited"
	require.NoError(t, draft.BulletPoints.RemoveAt(0))

	updated, err := c.UpdateLesson(ctx, generated[0].ID, draft)
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Summary)
	assert.Equal(t, []string{"History", "Use cases"}, updated.BulletPoints.Items())

	require.NoError(t, c.DeleteLesson(ctx, generated[1].ID))
	assert.Len(t, srv.Lessons(u.ID), 2)

	err = c.DeleteLesson(ctx, generated[1].ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestHTTPClient_QuizAndProgress(t *testing.T) {
	c, srv, u := newAuthedClient(t)
	ctx := context.Background()

	lessons := srv.SeedLessons(u.ID,
		models.Lesson{Topic: "Spanish", Subtopic: "Greetings", Summary: "hola"},
		models.Lesson{Topic: "Spanish", Subtopic: "Numbers", Summary: "uno"},
	)
	require.NoError(t, c.CompleteLesson(ctx, lessons[0].ID, "Spanish"))

	quiz, err := c.GenerateQuiz(ctx, "Spanish", models.LessonIDs(lessons))
	require.NoError(t, err)
	require.Len(t, quiz.Questions, 2)

	answers := []string{quiz.Questions[0].CorrectAnswer, "wrong"}
	score, err := c.SubmitQuiz(ctx, quiz.ID, answers)
	require.NoError(t, err)
	assert.Equal(t, 1, score)

	require.NoError(t, c.CompleteQuiz(ctx, quiz.ID, "Spanish", score))

	progress, err := c.GetProgress(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, progress, 1)
	assert.Equal(t, 1, progress[0].LessonsCompleted)
	assert.Equal(t, 1, progress[0].QuizzesTaken)
	assert.InDelta(t, 50, progress[0].AverageScore, 0.001)

	history, err := c.QuizHistory(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 50, history[0].Percent())

	profile, err := c.GetProfile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", profile.Email)
}

func TestHTTPClient_GenerateQuizSendsEmptyArray(t *testing.T) {
	c, _, _ := newAuthedClient(t)

	_, err := c.GenerateQuiz(context.Background(), "Python", nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "No lessons found for this topic", apiErr.Message)
}
