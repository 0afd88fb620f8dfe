package cli

import (
	"fmt"
	"io"

	"github.com/Clairebear8888/Microlearning/internal/client/models"
	"github.com/Clairebear8888/Microlearning/internal/client/profile"
	"github.com/Clairebear8888/Microlearning/internal/client/quiz"
)

const dateLayout = "Jan 2, 2006"

func renderBullets(w io.Writer, bp models.BulletPoints) {
	for i, p := range bp.Items() {
		fmt.Fprintf(w, "  %d. %s\n", i+1, p)
	}
}

func (a *App) renderLesson() {
	l, ok := a.browser.Current()
	if !ok {
		a.println("No lessons found for this topic.")
		return
	}

	a.printf("== %s: %s ==\n", a.browser.Topic(), a.browser.Position())
	title := l.Subtopic
	if a.browser.IsCompleted(a.browser.Index()) {
		title += " (completed)"
	}
	a.println(title)
	a.println(l.Summary)
	renderBullets(a.out, l.BulletPoints)

	if a.browser.CanTakeQuiz() {
		a.println("All lessons completed! Type 'quiz' to test yourself.")
	}
}

func (a *App) renderQuiz() {
	q := a.quiz.Quiz()
	switch a.quiz.State() {
	case quiz.StateInProgress:
		a.printf("Quiz: %s (%d questions)\n", a.quiz.Topic(), q.Total())
	case quiz.StateSubmitted:
		a.printf("Results: %s\n", a.quiz.Topic())
	default:
		return
	}

	for i := range q.Questions {
		a.renderQuestion(i)
	}
	if a.quiz.State() == quiz.StateInProgress {
		a.println("Answer with 'answer <q> <option>', then 'submit'.")
	}
}

func (a *App) renderQuestion(i int) {
	marks, err := a.quiz.Annotate(i)
	if err != nil {
		return
	}
	q := a.quiz.Quiz().Questions[i]

	a.printf("Q%d. %s\n", i+1, q.QuestionText)
	for j, opt := range q.Options {
		if m := marks[j]; m != quiz.MarkNone {
			a.printf("   %d) %s  [%s]\n", j+1, opt, m)
			continue
		}
		a.printf("   %d) %s\n", j+1, opt)
	}
}

func (a *App) renderProfile(p profile.Page) {
	s := p.Summarize()
	u := a.session.CurrentUser()

	a.printf("[%s] %s\n", u.Initial(), p.Profile.Username)
	a.println(p.Profile.Email)
	if !p.Profile.CreatedAt.IsZero() {
		a.println("Member since", p.Profile.CreatedAt.Format(dateLayout))
	}

	a.printf("Topics learned: %d | Lessons completed: %d | Quizzes taken: %d | Minutes learning: %d | Average score: %d%%\n",
		s.TopicsLearned, s.LessonsCompleted, s.QuizzesTaken, s.MinutesLearning, s.AverageScore)

	if len(p.Progress) > 0 {
		a.println("Progress:")
		for _, tp := range p.Progress {
			a.printf("  %s: %d lessons, %d quizzes, average %.0f%%\n",
				tp.Topic, tp.LessonsCompleted, tp.QuizzesTaken, tp.AverageScore)
		}
	}

	if len(s.Recent) == 0 {
		a.println("No quizzes taken yet. Type 'topics' to start learning.")
		return
	}
	a.println("Recent quizzes:")
	for _, r := range s.Recent {
		a.printf("  %s  %d/%d (%d%%)  %s\n", r.Topic, r.Score, r.TotalQuestions, r.Percent(), r.CreatedAt.Format(dateLayout))
	}
}
