package result

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/examly-api/internal/apperror"
	"github.com/saulo-duarte/examly-api/internal/exam"
	"github.com/saulo-duarte/examly-api/internal/question"
	util "github.com/saulo-duarte/examly-api/internal/utils"
)

var ErrExamHasNoQuestions = apperror.Validation("exam has no questions")

// NormalizeAnswers lines raw up with an exam of n questions. Missing and null
// entries become Unanswered, entries past n are dropped, and any other value
// outside the option range is rejected.
func NormalizeAnswers(raw []*int, n int) ([]int, error) {
	out := make([]int, n)
	for i := range out {
		if i >= len(raw) || raw[i] == nil {
			out[i] = Unanswered
			continue
		}
		v := *raw[i]
		if v < 0 || v >= question.OptionCount {
			return nil, apperror.Validation("answers[%d] must be between 0 and %d", i, question.OptionCount-1)
		}
		out[i] = v
	}
	return out, nil
}

// Evaluate scores selections against the exam's question snapshot. Score and
// percentage are each rounded to two places from the raw ratio, and passed
// compares the rounded score with the passing mark.
func Evaluate(ex *exam.Exam, selections []int, studentID uuid.UUID, at time.Time) (*Result, error) {
	total := ex.QuestionCount()
	if total == 0 {
		return nil, ErrExamHasNoQuestions
	}

	answers := make([]Answer, 0, total)
	correct := 0
	for i, q := range ex.Questions {
		selected := Unanswered
		if i < len(selections) {
			selected = selections[i]
		}
		ok := selected != Unanswered && selected == q.CorrectOptionIndex
		if ok {
			correct++
		}
		answers = append(answers, Answer{
			QuestionID:          q.ID,
			SelectedOptionIndex: selected,
			IsCorrect:           ok,
		})
	}

	score := util.Ratio(correct, total, ex.TotalMarks)
	return &Result{
		ID:             uuid.New(),
		StudentID:      studentID,
		ExamID:         ex.ID,
		Answers:        answers,
		Score:          score,
		TotalQuestions: total,
		CorrectAnswers: correct,
		Percentage:     util.Ratio(correct, total, 100),
		Passed:         score >= ex.PassingMarks,
		SubmittedAt:    at,
	}, nil
}
