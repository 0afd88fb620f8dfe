// Package apitest runs an in-memory MicroLearn backend for package tests. It
// implements the HTTP contract the client speaks: bcrypt-hashed users, HS256
// bearer tokens, deterministic lesson and quiz generation. Every route is
// named, counted and can be made to fail on demand.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Clairebear8888/Microlearning/internal/client/models"
	"github.com/Clairebear8888/Microlearning/internal/common"
	"github.com/gorilla/mux"
)

// Route names, usable with Hits, FailWith, RespondWith and Hold.
const (
	RouteSignup          = "POST /auth/signup"
	RouteLogin           = "POST /auth/login"
	RouteVerify          = "GET /auth/verify"
	RouteProfile         = "GET /auth/profile"
	RouteLessons         = "GET /lesson/alllesson"
	RouteGenerateLessons = "POST /lesson/generate"
	RouteUpdateLesson    = "PUT /lesson"
	RouteDeleteLesson    = "DELETE /lesson"
	RouteLessonComplete  = "POST /progress/lesson-complete"
	RouteProgress        = "GET /progress"
	RouteGenerateQuiz    = "POST /quiz/generate"
	RouteSubmitQuiz      = "POST /quiz/submit"
	RouteQuizComplete    = "POST /progress/quiz-complete"
	RouteQuizHistory     = "GET /quiz/user"
)

type user struct {
	models.User
	passwordHash []byte
}

type canned struct {
	status int
	body   string
}

type quizRecord struct {
	models.Quiz
	owner string
}

// Server is the fake backend. The zero value is not usable; call New.
type Server struct {
	srv    *httptest.Server
	secret []byte
	now    func() time.Time

	mu        sync.Mutex
	users     map[string]*user
	byEmail   map[string]string
	lessons   []lessonRecord
	completed map[string]map[string]bool
	progress  map[string]map[string]*models.TopicProgress
	quizzes   map[string]*quizRecord
	history   map[string][]models.QuizResult
	hits      map[string]int
	canned    map[string]canned
	holds     map[string]chan struct{}
}

type lessonRecord struct {
	models.Lesson
	owner string
}

// New starts a fake backend and registers its shutdown with t.
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		secret:    []byte("apitest-secret"),
		now:       time.Now,
		users:     make(map[string]*user),
		byEmail:   make(map[string]string),
		completed: make(map[string]map[string]bool),
		progress:  make(map[string]map[string]*models.TopicProgress),
		quizzes:   make(map[string]*quizRecord),
		history:   make(map[string][]models.QuizResult),
		hits:      make(map[string]int),
		canned:    make(map[string]canned),
		holds:     make(map[string]chan struct{}),
	}
	s.srv = httptest.NewServer(s.router())
	t.Cleanup(s.srv.Close)
	return s
}

// URL is the base URL of the running server.
func (s *Server) URL() string { return s.srv.URL }

func (s *Server) router() http.Handler {
	r := mux.NewRouter()
	r.Use(s.instrument)

	r.HandleFunc("/auth/signup", s.handleSignup).Methods(http.MethodPost).Name(RouteSignup)
	r.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost).Name(RouteLogin)
	r.HandleFunc("/auth/verify", s.authed(s.handleVerify)).Methods(http.MethodGet).Name(RouteVerify)
	r.HandleFunc("/auth/profile/{userId}", s.authed(s.handleProfile)).Methods(http.MethodGet).Name(RouteProfile)

	r.HandleFunc("/lesson/alllesson", s.authed(s.handleListLessons)).Methods(http.MethodGet).Name(RouteLessons)
	r.HandleFunc("/lesson/generate", s.authed(s.handleGenerateLessons)).Methods(http.MethodPost).Name(RouteGenerateLessons)
	r.HandleFunc("/lesson/{id}", s.authed(s.handleUpdateLesson)).Methods(http.MethodPut).Name(RouteUpdateLesson)
	r.HandleFunc("/lesson/{id}", s.authed(s.handleDeleteLesson)).Methods(http.MethodDelete).Name(RouteDeleteLesson)

	r.HandleFunc("/progress/lesson-complete", s.authed(s.handleLessonComplete)).Methods(http.MethodPost).Name(RouteLessonComplete)
	r.HandleFunc("/progress/quiz-complete", s.authed(s.handleQuizComplete)).Methods(http.MethodPost).Name(RouteQuizComplete)
	r.HandleFunc("/progress/{userId}", s.authed(s.handleProgress)).Methods(http.MethodGet).Name(RouteProgress)

	r.HandleFunc("/quiz/generate", s.authed(s.handleGenerateQuiz)).Methods(http.MethodPost).Name(RouteGenerateQuiz)
	r.HandleFunc("/quiz/submit/{quizId}", s.authed(s.handleSubmitQuiz)).Methods(http.MethodPost).Name(RouteSubmitQuiz)
	r.HandleFunc("/quiz/user/{userId}", s.authed(s.handleQuizHistory)).Methods(http.MethodGet).Name(RouteQuizHistory)

	return r
}

// instrument counts hits per route, waits on holds and serves canned
// responses before the real handler runs.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := ""
		if route := mux.CurrentRoute(r); route != nil {
			name = route.GetName()
		}

		s.mu.Lock()
		s.hits[name]++
		hold := s.holds[name]
		c, fail := s.canned[name]
		s.mu.Unlock()

		if hold != nil {
			select {
			case <-hold:
			case <-r.Context().Done():
				return
			}
		}

		if fail {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(c.status)
			_, _ = w.Write([]byte(c.body))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// authed rejects requests without a valid bearer token.
func (s *Server) authed(h func(w http.ResponseWriter, r *http.Request, userID string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get(common.AuthorizationHeaderName), common.BearerScheme+" ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "No token provided")
			return
		}

		userID, err := userIDFromToken(token, s.secret)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		s.mu.Lock()
		_, ok = s.users[userID]
		s.mu.Unlock()
		if !ok {
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		h(w, r, userID)
	}
}

// Hits returns how many requests reached route.
func (s *Server) Hits(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[route]
}

// TotalHits returns the number of requests across all routes.
func (s *Server) TotalHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, v := range s.hits {
		n += v
	}
	return n
}

// FailWith makes route answer status with {"errorMessage": message} until
// Heal is called.
func (s *Server) FailWith(route string, status int, message string) {
	body, _ := json.Marshal(map[string]string{"errorMessage": message})
	s.RespondWith(route, status, string(body))
}

// RespondWith makes route answer status with a raw JSON body.
func (s *Server) RespondWith(route string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canned[route] = canned{status: status, body: body}
}

// Heal removes a canned response.
func (s *Server) Heal(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.canned, route)
}

// Hold blocks requests to route until release is called or the request is
// cancelled.
func (s *Server) Hold(route string) (release func()) {
	ch := make(chan struct{})

	s.mu.Lock()
	s.holds[route] = ch
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.holds, route)
			s.mu.Unlock()
			close(ch)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"errorMessage": message})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
