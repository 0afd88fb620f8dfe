package quiz

import "fmt"

// OptionMark classifies one option of a question for display.
type OptionMark int

const (
	MarkNone OptionMark = iota
	MarkSelected
	MarkSelectedCorrect
	MarkSelectedWrong
	MarkCorrectUnselected
)

func (m OptionMark) String() string {
	switch m {
	case MarkSelected:
		return "selected"
	case MarkSelectedCorrect:
		return "correct"
	case MarkSelectedWrong:
		return "wrong"
	case MarkCorrectUnselected:
		return "answer"
	default:
		return ""
	}
}

// Annotate marks each option of question q. Before submission only the
// selection is shown; afterwards the correct option is revealed.
func (s *Session) Annotate(q int) ([]OptionMark, error) {
	if s.state != StateInProgress && s.state != StateSubmitted {
		return nil, ErrInvalidState
	}
	if q < 0 || q >= len(s.quiz.Questions) {
		return nil, fmt.Errorf("%w: %d", ErrQuestionOutOfRange, q)
	}

	question := s.quiz.Questions[q]
	answer := s.answers[q]
	marks := make([]OptionMark, len(question.Options))

	for i, opt := range question.Options {
		selected := answer != "" && opt == answer
		if s.state == StateInProgress {
			if selected {
				marks[i] = MarkSelected
			}
			continue
		}

		correct := opt == question.CorrectAnswer
		switch {
		case selected && correct:
			marks[i] = MarkSelectedCorrect
		case selected:
			marks[i] = MarkSelectedWrong
		case correct:
			marks[i] = MarkCorrectUnselected
		}
	}
	return marks, nil
}
