package lessons

import (
	"context"
	"fmt"
	"strings"

	"github.com/Clairebear8888/Microlearning/internal/client/models"
)

// PopularTopics are offered as suggestions on the topics page.
var PopularTopics = []string{"Python", "Marketing", "Photoshop", "Spanish"}

type Generator interface {
	GenerateLessons(ctx context.Context, topic string) ([]models.Lesson, error)
}

// Generate asks the backend for a new lesson set on topic. Blank topics are
// rejected without a request. The trimmed topic is returned with the lessons.
func Generate(ctx context.Context, g Generator, topic string) (string, []models.Lesson, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "", nil, ErrEmptyTopic
	}

	lessons, err := g.GenerateLessons(ctx, topic)
	if err != nil {
		return topic, nil, fmt.Errorf("generate lessons: %w", err)
	}
	return topic, lessons, nil
}
