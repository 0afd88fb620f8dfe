package models

import "time"

// Question is a multiple-choice quiz question. CorrectAnswer holds the text
// of the correct option.
type Question struct {
	QuestionText  string   `json:"questionText"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// Quiz is generated once per quiz-taking session and never changes after.
type Quiz struct {
	ID             string     `json:"_id"`
	Topic          string     `json:"topic"`
	Questions      []Question `json:"questions"`
	TotalQuestions int        `json:"totalQuestions"`
}

// Total returns TotalQuestions, falling back to the number of questions.
func (q Quiz) Total() int {
	if q.TotalQuestions > 0 {
		return q.TotalQuestions
	}
	return len(q.Questions)
}

// QuizResult is one entry of a user's quiz history.
type QuizResult struct {
	ID             string    `json:"_id"`
	Topic          string    `json:"topic"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Percent returns the rounded score percentage, 0 when there are no questions.
func (r QuizResult) Percent() int {
	return Percent(r.Score, r.TotalQuestions)
}

// Percent computes round(score/total*100); a non-positive total yields 0.
func Percent(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(float64(score)/float64(total)*100 + 0.5)
}
