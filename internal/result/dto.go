package result

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/examly-api/internal/exam"
)

// SubmitDTO carries one answer per exam question, in exam order. A null
// entry means the question was left blank.
type SubmitDTO struct {
	ExamID  string `json:"exam_id" validate:"required,uuid"`
	Answers []*int `json:"answers"`
}

type ExamSummary struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Subject      string    `json:"subject"`
	TotalMarks   float64   `json:"total_marks"`
	PassingMarks float64   `json:"passing_marks"`
}

type StudentSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// AnswerReview pairs a recorded answer with the question it was given for,
// as the question stood when the exam was taken.
type AnswerReview struct {
	QuestionID          uuid.UUID `json:"question_id"`
	Text                string    `json:"text"`
	Options             []string  `json:"options"`
	CorrectOptionIndex  int       `json:"correct_option_index"`
	SelectedOptionIndex int       `json:"selected_option_index"`
	IsCorrect           bool      `json:"is_correct"`
}

type ResultResponse struct {
	ID             uuid.UUID       `json:"id"`
	StudentID      uuid.UUID       `json:"student_id"`
	ExamID         uuid.UUID       `json:"exam_id"`
	Answers        []Answer        `json:"answers"`
	Score          float64         `json:"score"`
	TotalQuestions int             `json:"total_questions"`
	CorrectAnswers int             `json:"correct_answers"`
	Percentage     float64         `json:"percentage"`
	Passed         bool            `json:"passed"`
	SubmittedAt    time.Time       `json:"submitted_at"`
	Exam           *ExamSummary    `json:"exam,omitempty"`
	Student        *StudentSummary `json:"student,omitempty"`
	Review         []AnswerReview  `json:"review,omitempty"`
}

func ToResponse(r *Result) ResultResponse {
	resp := ResultResponse{
		ID:             r.ID,
		StudentID:      r.StudentID,
		ExamID:         r.ExamID,
		Answers:        r.Answers,
		Score:          r.Score,
		TotalQuestions: r.TotalQuestions,
		CorrectAnswers: r.CorrectAnswers,
		Percentage:     r.Percentage,
		Passed:         r.Passed,
		SubmittedAt:    r.SubmittedAt,
	}
	if r.Exam != nil {
		resp.Exam = &ExamSummary{
			ID:           r.Exam.ID,
			Title:        r.Exam.Title,
			Subject:      r.Exam.Subject,
			TotalMarks:   r.Exam.TotalMarks,
			PassingMarks: r.Exam.PassingMarks,
		}
		resp.Review = buildReview(r.Answers, r.Exam.Questions)
	}
	if r.Student != nil {
		resp.Student = &StudentSummary{
			ID:    r.Student.ID,
			Name:  r.Student.Name,
			Email: r.Student.Email,
		}
	}
	return resp
}

// buildReview returns nil when the exam was loaded without its questions,
// which is the case for list reads.
func buildReview(answers []Answer, questions []exam.QuestionSnapshot) []AnswerReview {
	if len(questions) == 0 || len(answers) == 0 {
		return nil
	}
	byID := make(map[uuid.UUID]exam.QuestionSnapshot, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	review := make([]AnswerReview, 0, len(answers))
	for i, a := range answers {
		var q exam.QuestionSnapshot
		var ok bool
		if i < len(questions) && questions[i].ID == a.QuestionID {
			q, ok = questions[i], true
		} else {
			q, ok = byID[a.QuestionID]
		}
		if !ok {
			continue
		}
		review = append(review, AnswerReview{
			QuestionID:          a.QuestionID,
			Text:                q.Text,
			Options:             append([]string(nil), q.Options...),
			CorrectOptionIndex:  q.CorrectOptionIndex,
			SelectedOptionIndex: a.SelectedOptionIndex,
			IsCorrect:           a.IsCorrect,
		})
	}
	return review
}

func toResponses(results []*Result) []ResultResponse {
	out := make([]ResultResponse, 0, len(results))
	for _, r := range results {
		out = append(out, ToResponse(r))
	}
	return out
}
