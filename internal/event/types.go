package event

import (
	"time"

	"github.com/google/uuid"
)

const (
	ExamCreated     = "exam.created"
	ExamUpdated     = "exam.updated"
	ExamDeleted     = "exam.deleted"
	ResultSubmitted = "result.submitted"
)

type ExamPayload struct {
	ExamID      uuid.UUID `json:"exam_id"`
	Title       string    `json:"title"`
	ScheduledAt time.Time `json:"scheduled_at"`
	EndsAt      time.Time `json:"ends_at"`
	ActorID     string    `json:"actor_id"`
}

type ResultPayload struct {
	ResultID    uuid.UUID `json:"result_id"`
	ExamID      uuid.UUID `json:"exam_id"`
	StudentID   uuid.UUID `json:"student_id"`
	Score       float64   `json:"score"`
	Percentage  float64   `json:"percentage"`
	Passed      bool      `json:"passed"`
	SubmittedAt time.Time `json:"submitted_at"`
}
