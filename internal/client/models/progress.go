package models

// TopicProgress aggregates a user's activity on one topic.
type TopicProgress struct {
	Topic            string  `json:"topic"`
	LessonsCompleted int     `json:"lessonsCompleted"`
	QuizzesTaken     int     `json:"quizzesTaken"`
	AverageScore     float64 `json:"averageScore"`
}
