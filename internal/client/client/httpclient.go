package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Clairebear8888/Microlearning/internal/client/models"
	"github.com/Clairebear8888/Microlearning/internal/common"
	"github.com/go-resty/resty/v2"
)

// HTTPClient implements Client over HTTP/JSON using resty.
type HTTPClient struct {
	rc     *resty.Client
	tokens TokenSource
}

// NewHTTPClient creates a client for the backend at baseURL. A zero timeout
// leaves the transport default in place.
func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenSource) *HTTPClient {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		rc.SetTimeout(timeout)
	}
	return &HTTPClient{rc: rc, tokens: tokens}
}

type errorBody struct {
	ErrorMessage string `json:"errorMessage"`
	Message      string `json:"message"`
}

// userEnvelope accepts a user either bare or wrapped as {"currentUser": ...}
// or {"user": ...}.
type userEnvelope struct {
	CurrentUser *models.User `json:"currentUser"`
	Nested      *models.User `json:"user"`
	models.User
}

func (e userEnvelope) unwrap() models.User {
	switch {
	case e.CurrentUser != nil:
		return *e.CurrentUser
	case e.Nested != nil:
		return *e.Nested
	default:
		return e.User
	}
}

func (c *HTTPClient) newRequest(ctx context.Context) *resty.Request {
	return c.rc.R().SetContext(ctx).SetError(&errorBody{})
}

// authed returns a request carrying the bearer token, if one is stored.
func (c *HTTPClient) authed(ctx context.Context) (*resty.Request, error) {
	req := c.newRequest(ctx)
	token, ok, err := c.tokens.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("read token: %w", err)
	}
	if ok {
		req.SetHeader(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	}
	return req, nil
}

func (c *HTTPClient) execute(ctx context.Context, req *resty.Request, method, path string) error {
	resp, err := req.Execute(method, path)
	return mapError(ctx, resp, err)
}

func mapError(ctx context.Context, resp *resty.Response, err error) error {
	received := resp != nil && resp.RawResponse != nil

	if received && resp.IsError() {
		return statusError(resp)
	}
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if received {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func statusError(resp *resty.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode()}
	if body, ok := resp.Error().(*errorBody); ok && body != nil {
		apiErr.Message = body.ErrorMessage
		if apiErr.Message == "" {
			apiErr.Message = body.Message
		}
	}

	switch resp.StatusCode() {
	case http.StatusUnauthorized, http.StatusForbidden:
		apiErr.kind = ErrUnauthorized
	case http.StatusNotFound:
		apiErr.kind = ErrNotFound
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		apiErr.kind = ErrUnavailable
	}
	return apiErr
}

func (c *HTTPClient) Verify(ctx context.Context) (models.User, error) {
	req, err := c.authed(ctx)
	if err != nil {
		return models.User{}, err
	}

	var out userEnvelope
	if err := c.execute(ctx, req.SetResult(&out), http.MethodGet, "/auth/verify"); err != nil {
		return models.User{}, err
	}

	user := out.unwrap()
	if user.IsEmpty() {
		return models.User{}, fmt.Errorf("%w: verify returned no user", ErrMalformed)
	}
	return user, nil
}

func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) (string, error) {
	var out struct {
		AuthToken string `json:"authToken"`
	}
	req := c.newRequest(ctx).
		SetBody(map[string]string{"email": email, "password": string(password)}).
		SetResult(&out)

	if err := c.execute(ctx, req, http.MethodPost, "/auth/login"); err != nil {
		return "", err
	}
	if out.AuthToken == "" {
		return "", fmt.Errorf("%w: login returned no token", ErrMalformed)
	}
	return out.AuthToken, nil
}

func (c *HTTPClient) Signup(ctx context.Context, username, email string, password []byte) (models.User, error) {
	var out userEnvelope
	req := c.newRequest(ctx).
		SetBody(map[string]string{"username": username, "email": email, "password": string(password)}).
		SetResult(&out)

	if err := c.execute(ctx, req, http.MethodPost, "/auth/signup"); err != nil {
		return models.User{}, err
	}
	return out.unwrap(), nil
}

func (c *HTTPClient) GetProfile(ctx context.Context, userID string) (models.Profile, error) {
	req, err := c.authed(ctx)
	if err != nil {
		return models.Profile{}, err
	}

	var out models.Profile
	req.SetPathParam("userId", userID).SetResult(&out)
	if err := c.execute(ctx, req, http.MethodGet, "/auth/profile/{userId}"); err != nil {
		return models.Profile{}, err
	}
	return out, nil
}

func (c *HTTPClient) ListLessons(ctx context.Context) ([]models.Lesson, error) {
	req, err := c.authed(ctx)
	if err != nil {
		return nil, err
	}

	var out []models.Lesson
	if err := c.execute(ctx, req.SetResult(&out), http.MethodGet, "/lesson/alllesson"); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GenerateLessons(ctx context.Context, topic string) ([]models.Lesson, error) {
	req, err := c.authed(ctx)
	if err != nil {
		return nil, err
	}

	var out struct {
		Lessons []models.Lesson `json:"lessons"`
	}
	req.SetBody(map[string]string{"topic": topic}).SetResult(&out)
	if err := c.execute(ctx, req, http.MethodPost, "/lesson/generate"); err != nil {
		return nil, err
	}
	return out.Lessons, nil
}

func (c *HTTPClient) UpdateLesson(ctx context.Context, lessonID string, draft models.LessonDraft) (models.Lesson, error) {
	req, err := c.authed(ctx)
	if err != nil {
		return models.Lesson{}, err
	}

	var out models.Lesson
	req.SetPathParam("id", lessonID).SetBody(draft).SetResult(&out)
	if err := c.execute(ctx, req, http.MethodPut, "/lesson/{id}"); err != nil {
		return models.Lesson{}, err
	}
	if out.ID == "" {
		return models.Lesson{}, fmt.Errorf("%w: update returned no lesson", ErrMalformed)
	}
	return out, nil
}

func (c *HTTPClient) DeleteLesson(ctx context.Context, lessonID string) error {
	req, err := c.authed(ctx)
	if err != nil {
		return err
	}
	return c.execute(ctx, req.SetPathParam("id", lessonID), http.MethodDelete, "/lesson/{id}")
}

func (c *HTTPClient) CompleteLesson(ctx context.Context, lessonID, topic string) error {
	req, err := c.authed(ctx)
	if err != nil {
		return err
	}
	req.SetBody(map[string]string{"lessonId": lessonID, "topic": topic})
	return c.execute(ctx, req, http.MethodPost, "/progress/lesson-complete")
}

func (c *HTTPClient) GetProgress(ctx context.Context, userID string) ([]models.TopicProgress, error) {
	req, err := c.authed(ctx)
	if err != nil {
		return nil, err
	}

	var out struct {
		Progress []models.TopicProgress `json:"progress"`
	}
	req.SetPathParam("userId", userID).SetResult(&out)
	if err := c.execute(ctx, req, http.MethodGet, "/progress/{userId}"); err != nil {
		return nil, err
	}
	return out.Progress, nil
}

func (c *HTTPClient) GenerateQuiz(ctx context.Context, topic string, lessonIDs []string) (models.Quiz, error) {
	req, err := c.authed(ctx)
	if err != nil {
		return models.Quiz{}, err
	}
	if lessonIDs == nil {
		lessonIDs = []string{}
	}

	var out struct {
		Quiz *models.Quiz `json:"quiz"`
	}
	req.SetBody(map[string]any{"topic": topic, "lessonIds": lessonIDs}).SetResult(&out)
	if err := c.execute(ctx, req, http.MethodPost, "/quiz/generate"); err != nil {
		return models.Quiz{}, err
	}
	if out.Quiz == nil {
		return models.Quiz{}, fmt.Errorf("%w: generate returned no quiz", ErrMalformed)
	}
	return *out.Quiz, nil
}

func (c *HTTPClient) SubmitQuiz(ctx context.Context, quizID string, answers []string) (int, error) {
	req, err := c.authed(ctx)
	if err != nil {
		return 0, err
	}

	var out struct {
		Score *int `json:"score"`
	}
	req.SetPathParam("quizId", quizID).
		SetBody(map[string][]string{"answers": answers}).
		SetResult(&out)
	if err := c.execute(ctx, req, http.MethodPost, "/quiz/submit/{quizId}"); err != nil {
		return 0, err
	}
	if out.Score == nil {
		return 0, fmt.Errorf("%w: submit returned no score", ErrMalformed)
	}
	return *out.Score, nil
}

func (c *HTTPClient) CompleteQuiz(ctx context.Context, quizID, topic string, score int) error {
	req, err := c.authed(ctx)
	if err != nil {
		return err
	}
	req.SetBody(map[string]any{"quizId": quizID, "topic": topic, "score": score})
	return c.execute(ctx, req, http.MethodPost, "/progress/quiz-complete")
}

func (c *HTTPClient) QuizHistory(ctx context.Context, userID string) ([]models.QuizResult, error) {
	req, err := c.authed(ctx)
	if err != nil {
		return nil, err
	}

	var out []models.QuizResult
	req.SetPathParam("userId", userID).SetResult(&out)
	if err := c.execute(ctx, req, http.MethodGet, "/quiz/user/{userId}"); err != nil {
		return nil, err
	}
	return out, nil
}
