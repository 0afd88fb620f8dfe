package models

// Lesson is one AI-generated micro lesson. The id is assigned by the server.
type Lesson struct {
	ID           string       `json:"_id"`
	Topic        string       `json:"topic"`
	Subtopic     string       `json:"subtopic"`
	Summary      string       `json:"summary"`
	BulletPoints BulletPoints `json:"bulletPoints"`
}

// LessonDraft is the edit buffer of a lesson in edit mode.
type LessonDraft struct {
	Subtopic     string       `json:"subtopic"`
	Summary      string       `json:"summary"`
	BulletPoints BulletPoints `json:"bulletPoints"`
}

// Draft copies the editable fields of l. Bullet points are cloned, not shared.
func (l Lesson) Draft() LessonDraft {
	return LessonDraft{
		Subtopic:     l.Subtopic,
		Summary:      l.Summary,
		BulletPoints: l.BulletPoints.Clone(),
	}
}

// FilterByTopic returns the lessons whose topic equals topic, in order.
func FilterByTopic(lessons []Lesson, topic string) []Lesson {
	out := make([]Lesson, 0, len(lessons))
	for _, l := range lessons {
		if l.Topic == topic {
			out = append(out, l)
		}
	}
	return out
}

// LessonIDs returns the ids of lessons, in order.
func LessonIDs(lessons []Lesson) []string {
	ids := make([]string, 0, len(lessons))
	for _, l := range lessons {
		ids = append(ids, l.ID)
	}
	return ids
}
