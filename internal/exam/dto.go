package exam

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/examly-api/internal/question"
)

type CreateExamDTO struct {
	Title           string      `json:"title" validate:"required"`
	Description     string      `json:"description"`
	Subject         string      `json:"subject" validate:"required"`
	DurationMinutes int         `json:"duration_minutes" validate:"gt=0"`
	TotalMarks      float64     `json:"total_marks" validate:"gt=0"`
	PassingMarks    float64     `json:"passing_marks" validate:"gte=0"`
	QuestionIDs     []uuid.UUID `json:"question_ids" validate:"required,min=1"`
	ScheduledAt     time.Time   `json:"scheduled_at" validate:"required"`
	EndsAt          time.Time   `json:"ends_at" validate:"required"`
	IsActive        *bool       `json:"is_active"`
}

type UpdateExamDTO struct {
	Title           *string     `json:"title" validate:"omitnil,min=1"`
	Description     *string     `json:"description"`
	Subject         *string     `json:"subject" validate:"omitnil,min=1"`
	DurationMinutes *int        `json:"duration_minutes" validate:"omitnil,gt=0"`
	TotalMarks      *float64    `json:"total_marks" validate:"omitnil,gt=0"`
	PassingMarks    *float64    `json:"passing_marks" validate:"omitnil,gte=0"`
	QuestionIDs     []uuid.UUID `json:"question_ids" validate:"omitnil,min=1"`
	ScheduledAt     *time.Time  `json:"scheduled_at"`
	EndsAt          *time.Time  `json:"ends_at"`
	IsActive        *bool       `json:"is_active"`
}

// AvailableExam is the listing shape for students: no question content.
type AvailableExam struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Subject         string    `json:"subject"`
	DurationMinutes int       `json:"duration_minutes"`
	TotalMarks      float64   `json:"total_marks"`
	PassingMarks    float64   `json:"passing_marks"`
	TotalQuestions  int       `json:"total_questions"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	EndsAt          time.Time `json:"ends_at"`
	Attempted       bool      `json:"attempted"`
}

// StudentQuestion has no correct-answer field at all.
type StudentQuestion struct {
	ID         uuid.UUID           `json:"id"`
	Text       string              `json:"text"`
	Options    []string            `json:"options"`
	Subject    string              `json:"subject"`
	Difficulty question.Difficulty `json:"difficulty"`
}

type StudentExamView struct {
	ID              uuid.UUID         `json:"id"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	Subject         string            `json:"subject"`
	DurationMinutes int               `json:"duration_minutes"`
	TotalMarks      float64           `json:"total_marks"`
	PassingMarks    float64           `json:"passing_marks"`
	ScheduledAt     time.Time         `json:"scheduled_at"`
	EndsAt          time.Time         `json:"ends_at"`
	Questions       []StudentQuestion `json:"questions"`
}

func toAvailable(e *Exam, attempted bool) AvailableExam {
	return AvailableExam{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		Subject:         e.Subject,
		DurationMinutes: e.DurationMinutes,
		TotalMarks:      e.TotalMarks,
		PassingMarks:    e.PassingMarks,
		TotalQuestions:  len(e.QuestionIDs),
		ScheduledAt:     e.ScheduledAt,
		EndsAt:          e.EndsAt,
		Attempted:       attempted,
	}
}

func toStudentView(e *Exam) *StudentExamView {
	questions := make([]StudentQuestion, 0, len(e.Questions))
	for _, q := range e.Questions {
		questions = append(questions, StudentQuestion{
			ID:         q.ID,
			Text:       q.Text,
			Options:    q.Options,
			Subject:    q.Subject,
			Difficulty: q.Difficulty,
		})
	}
	return &StudentExamView{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		Subject:         e.Subject,
		DurationMinutes: e.DurationMinutes,
		TotalMarks:      e.TotalMarks,
		PassingMarks:    e.PassingMarks,
		ScheduledAt:     e.ScheduledAt,
		EndsAt:          e.EndsAt,
		Questions:       questions,
	}
}
