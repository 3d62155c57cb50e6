package exam

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/examly-api/internal/question"
	"gorm.io/datatypes"
)

type Exam struct {
	ID              uuid.UUID                             `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title           string                                `gorm:"type:text;not null" json:"title"`
	Description     string                                `gorm:"type:text" json:"description"`
	Subject         string                                `gorm:"type:text;not null;index" json:"subject"`
	DurationMinutes int                                   `gorm:"not null" json:"duration_minutes"`
	TotalMarks      float64                               `gorm:"not null" json:"total_marks"`
	PassingMarks    float64                               `gorm:"not null" json:"passing_marks"`
	QuestionIDs     datatypes.JSONSlice[uuid.UUID]        `gorm:"type:jsonb;not null" json:"question_ids"`
	Questions       datatypes.JSONSlice[QuestionSnapshot] `gorm:"type:jsonb;not null" json:"questions"`
	ScheduledAt     time.Time                             `gorm:"not null;index:idx_exams_window,priority:2" json:"scheduled_at"`
	EndsAt          time.Time                             `gorm:"not null;index:idx_exams_window,priority:3" json:"ends_at"`
	IsActive        bool                                  `gorm:"not null;index:idx_exams_window,priority:1" json:"is_active"`
	OwnerID         uuid.UUID                             `gorm:"type:uuid;not null;index" json:"owner_id"`
	CreatedAt       time.Time                             `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time                             `gorm:"autoUpdateTime" json:"updated_at"`
}

// QuestionSnapshot is the copy of a bank question frozen into an exam when
// the exam is created or its question list is changed. Scoring reads the
// snapshot, never the live bank.
type QuestionSnapshot struct {
	ID                 uuid.UUID           `json:"id"`
	Text               string              `json:"text"`
	Options            []string            `json:"options"`
	CorrectOptionIndex int                 `json:"correct_option_index"`
	Subject            string              `json:"subject"`
	Difficulty         question.Difficulty `json:"difficulty"`
}

// IsAvailableAt reports whether students may open or submit the exam at now.
// Both ends of the window are inclusive.
func (e *Exam) IsAvailableAt(now time.Time) bool {
	return e.IsActive && !now.Before(e.ScheduledAt) && !now.After(e.EndsAt)
}

func (e *Exam) QuestionCount() int {
	return len(e.Questions)
}

func snapshotOf(q *question.Question) QuestionSnapshot {
	opts := make([]string, len(q.Options))
	copy(opts, q.Options)
	return QuestionSnapshot{
		ID:                 q.ID,
		Text:               q.Text,
		Options:            opts,
		CorrectOptionIndex: q.CorrectOptionIndex,
		Subject:            q.Subject,
		Difficulty:         q.Difficulty,
	}
}
