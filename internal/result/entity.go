package result

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/examly-api/internal/exam"
	"github.com/saulo-duarte/examly-api/internal/user"
	"gorm.io/datatypes"
)

// Unanswered marks a question the student left blank. It never matches a
// correct option index.
const Unanswered = -1

type Result struct {
	ID             uuid.UUID                   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StudentID      uuid.UUID                   `gorm:"type:uuid;not null;uniqueIndex:idx_results_student_exam,priority:1" json:"student_id"`
	ExamID         uuid.UUID                   `gorm:"type:uuid;not null;uniqueIndex:idx_results_student_exam,priority:2;index" json:"exam_id"`
	Answers        datatypes.JSONSlice[Answer] `gorm:"type:jsonb;not null" json:"answers"`
	Score          float64                     `gorm:"not null" json:"score"`
	TotalQuestions int                         `gorm:"not null" json:"total_questions"`
	CorrectAnswers int                         `gorm:"not null" json:"correct_answers"`
	Percentage     float64                     `gorm:"not null" json:"percentage"`
	Passed         bool                        `gorm:"not null" json:"passed"`
	SubmittedAt    time.Time                   `gorm:"not null;index" json:"submitted_at"`

	Exam    *exam.Exam `gorm:"foreignKey:ExamID;constraint:OnDelete:CASCADE" json:"-"`
	Student *user.User `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
}

type Answer struct {
	QuestionID          uuid.UUID `json:"question_id"`
	SelectedOptionIndex int       `json:"selected_option_index"`
	IsCorrect           bool      `json:"is_correct"`
}
