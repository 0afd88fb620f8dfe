package apitest

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/Clairebear8888/Microlearning/internal/client/models"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"
)

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Provide email, password and name")
		return
	}

	s.mu.Lock()
	_, exists := s.byEmail[req.Email]
	s.mu.Unlock()
	if exists {
		writeError(w, http.StatusBadRequest, "User already exists.")
		return
	}

	u, err := s.addUser(req.Username, req.Email, req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]models.User{"user": u})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Provide email and password.")
		return
	}

	s.mu.Lock()
	var found *user
	if id, ok := s.byEmail[req.Email]; ok {
		found = s.users[id]
	}
	s.mu.Unlock()

	if found == nil || bcrypt.CompareHashAndPassword(found.passwordHash, []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "Unable to authenticate the user")
		return
	}

	token, err := s.IssueToken(found.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"authToken": token})
}

func (s *Server) handleVerify(w http.ResponseWriter, _ *http.Request, userID string) {
	s.mu.Lock()
	u := s.users[userID].User
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]models.User{"currentUser": u})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request, _ string) {
	id := mux.Vars(r)["userId"]

	s.mu.Lock()
	u, ok := s.users[id]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, models.Profile{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	})
}

func (s *Server) handleListLessons(w http.ResponseWriter, _ *http.Request, userID string) {
	writeJSON(w, http.StatusOK, s.Lessons(userID))
}

func (s *Server) handleGenerateLessons(w http.ResponseWriter, r *http.Request, userID string) {
	var req struct {
		Topic string `json:"topic"`
	}
	if !decode(w, r, &req) {
		return
	}
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		writeError(w, http.StatusBadRequest, "Topic is required")
		return
	}

	generated := []models.Lesson{
		{
			Topic:        topic,
			Subtopic:     "Introduction to " + topic,
			Summary:      fmt.Sprintf("What %s is and why it matters.", topic),
			BulletPoints: models.NewBulletPoints("Definition", "History", "Use cases"),
		},
		{
			Topic:        topic,
			Subtopic:     "Core concepts of " + topic,
			Summary:      fmt.Sprintf("The building blocks of %s.", topic),
			BulletPoints: models.NewBulletPoints("Terminology", "Key ideas"),
		},
		{
			Topic:        topic,
			Subtopic:     "Practising " + topic,
			Summary:      fmt.Sprintf("Exercises to apply %s.", topic),
			BulletPoints: models.NewBulletPoints("Warm-up", "Project", "Review"),
		},
	}
	writeJSON(w, http.StatusCreated, map[string][]models.Lesson{"lessons": s.SeedLessons(userID, generated...)})
}

func (s *Server) handleUpdateLesson(w http.ResponseWriter, r *http.Request, userID string) {
	id := mux.Vars(r)["id"]

	var draft models.LessonDraft
	if !decode(w, r, &draft) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lessons {
		l := &s.lessons[i]
		if l.ID != id || l.owner != userID {
			continue
		}
		l.Subtopic = draft.Subtopic
		l.Summary = draft.Summary
		l.BulletPoints = draft.BulletPoints.Clone()
		writeJSON(w, http.StatusOK, l.Lesson)
		return
	}
	writeError(w, http.StatusNotFound, "Lesson not found")
}

func (s *Server) handleDeleteLesson(w http.ResponseWriter, r *http.Request, userID string) {
	id := mux.Vars(r)["id"]

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.lessons {
		if l.ID != id || l.owner != userID {
			continue
		}
		s.lessons = append(s.lessons[:i:i], s.lessons[i+1:]...)
		writeJSON(w, http.StatusOK, map[string]string{"message": "Lesson deleted"})
		return
	}
	writeError(w, http.StatusNotFound, "Lesson not found")
}

func (s *Server) handleLessonComplete(w http.ResponseWriter, r *http.Request, userID string) {
	var req struct {
		LessonID string `json:"lessonId"`
		Topic    string `json:"topic"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.LessonID == "" || req.Topic == "" {
		writeError(w, http.StatusBadRequest, "lessonId and topic are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	done := s.completed[userID]
	if done == nil {
		done = make(map[string]bool)
		s.completed[userID] = done
	}
	p := s.topicProgress(userID, req.Topic)
	if !done[req.LessonID] {
		done[req.LessonID] = true
		p.LessonsCompleted++
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleQuizComplete(w http.ResponseWriter, r *http.Request, userID string) {
	var req struct {
		QuizID string `json:"quizId"`
		Topic  string `json:"topic"`
		Score  int    `json:"score"`
	}
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.quizzes[req.QuizID]
	if !ok || q.owner != userID {
		writeError(w, http.StatusNotFound, "Quiz not found")
		return
	}

	p := s.topicProgress(userID, req.Topic)
	percent := float64(models.Percent(req.Score, q.Total()))
	p.AverageScore = (p.AverageScore*float64(p.QuizzesTaken) + percent) / float64(p.QuizzesTaken+1)
	p.QuizzesTaken++
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request, _ string) {
	writeJSON(w, http.StatusOK, map[string][]models.TopicProgress{"progress": s.Progress(mux.Vars(r)["userId"])})
}

func (s *Server) handleGenerateQuiz(w http.ResponseWriter, r *http.Request, userID string) {
	var req struct {
		Topic     string   `json:"topic"`
		LessonIDs []string `json:"lessonIds"`
	}
	if !decode(w, r, &req) {
		return
	}
	if len(req.LessonIDs) == 0 {
		writeError(w, http.StatusBadRequest, "No lessons found for this topic")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	byID := make(map[string]models.Lesson, len(s.lessons))
	for _, l := range s.lessons {
		if l.owner == userID {
			byID[l.ID] = l.Lesson
		}
	}

	quiz := models.Quiz{ID: uuid.NewString(), Topic: req.Topic}
	for i, id := range req.LessonIDs {
		l, ok := byID[id]
		if !ok {
			continue
		}
		quiz.Questions = append(quiz.Questions, question(i, l))
	}
	if len(quiz.Questions) == 0 {
		writeError(w, http.StatusBadRequest, "No lessons found for this topic")
		return
	}
	quiz.TotalQuestions = len(quiz.Questions)

	s.quizzes[quiz.ID] = &quizRecord{Quiz: quiz, owner: userID}
	writeJSON(w, http.StatusCreated, map[string]models.Quiz{"quiz": quiz})
}

// question asks for the subtopic of a lesson; the correct option rotates
// with the question index.
func question(i int, l models.Lesson) models.Question {
	options := []string{"None of these", "All of these", "Not covered", l.Subtopic}
	pos := i % len(options)
	options[pos], options[len(options)-1] = options[len(options)-1], options[pos]

	return models.Question{
		QuestionText:  fmt.Sprintf("Which lesson says: %q?", l.Summary),
		Options:       options,
		CorrectAnswer: l.Subtopic,
	}
}

func (s *Server) handleSubmitQuiz(w http.ResponseWriter, r *http.Request, userID string) {
	id := mux.Vars(r)["quizId"]

	var req struct {
		Answers []string `json:"answers"`
	}
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.quizzes[id]
	if !ok || q.owner != userID {
		writeError(w, http.StatusNotFound, "Quiz not found")
		return
	}
	if len(req.Answers) != len(q.Questions) {
		writeError(w, http.StatusBadRequest, "Answer every question")
		return
	}

	score := 0
	for i, a := range req.Answers {
		if a == q.Questions[i].CorrectAnswer {
			score++
		}
	}

	s.history[userID] = append(s.history[userID], models.QuizResult{
		ID:             q.ID,
		Topic:          q.Topic,
		Score:          score,
		TotalQuestions: q.Total(),
		CreatedAt:      s.now().UTC(),
	})
	writeJSON(w, http.StatusOK, map[string]int{"score": score, "totalQuestions": q.Total()})
}

func (s *Server) handleQuizHistory(w http.ResponseWriter, r *http.Request, _ string) {
	writeJSON(w, http.StatusOK, s.History(mux.Vars(r)["userId"]))
}

// topicProgress returns the progress row for (userID, topic), creating it.
// Callers hold s.mu.
func (s *Server) topicProgress(userID, topic string) *models.TopicProgress {
	byTopic := s.progress[userID]
	if byTopic == nil {
		byTopic = make(map[string]*models.TopicProgress)
		s.progress[userID] = byTopic
	}
	p := byTopic[topic]
	if p == nil {
		p = &models.TopicProgress{Topic: topic}
		byTopic[topic] = p
	}
	return p
}

// SeedUser registers a user directly and returns it.
func (s *Server) SeedUser(username, email, password string) models.User {
	u, err := s.addUser(username, email, password)
	if err != nil {
		panic(err)
	}
	return u
}

func (s *Server) addUser(username, email, password string) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return models.User{}, err
	}

	u := &user{
		User: models.User{
			ID:        uuid.NewString(),
			Username:  username,
			Email:     email,
			CreatedAt: s.now().UTC().Truncate(0),
		},
		passwordHash: hash,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
	s.byEmail[email] = u.ID
	return u.User, nil
}

// IssueToken mints a valid bearer token for userID.
func (s *Server) IssueToken(userID string) (string, error) {
	return generateToken(userID, s.secret, tokenValidity)
}

// SeedLessons stores lessons owned by userID, assigning ids to those without
// one, and returns them as stored.
func (s *Server) SeedLessons(userID string, lessons ...models.Lesson) []models.Lesson {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Lesson, 0, len(lessons))
	for _, l := range lessons {
		if l.ID == "" {
			l.ID = uuid.NewString()
		}
		l.BulletPoints = l.BulletPoints.Clone()
		s.lessons = append(s.lessons, lessonRecord{Lesson: l, owner: userID})
		out = append(out, l)
	}
	return out
}

// Lessons returns the lessons owned by userID in insertion order.
func (s *Server) Lessons(userID string) []models.Lesson {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Lesson, 0)
	for _, l := range s.lessons {
		if l.owner == userID {
			out = append(out, l.Lesson)
		}
	}
	return out
}

// Progress returns userID's per-topic progress sorted by topic.
func (s *Server) Progress(userID string) []models.TopicProgress {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.TopicProgress, 0, len(s.progress[userID]))
	for _, p := range s.progress[userID] {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Topic < out[j].Topic })
	return out
}

// History returns userID's submitted quizzes, oldest first.
func (s *Server) History(userID string) []models.QuizResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(make([]models.QuizResult, 0, len(s.history[userID])), s.history[userID]...)
}

// Quiz returns a generated quiz by id.
func (s *Server) Quiz(id string) (models.Quiz, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.quizzes[id]
	if !ok {
		return models.Quiz{}, false
	}
	return q.Quiz, true
}
