package exam

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/saulo-duarte/examly-api/internal/apperror"
	"github.com/saulo-duarte/examly-api/internal/auth"
	"github.com/saulo-duarte/examly-api/internal/config"
	"github.com/saulo-duarte/examly-api/internal/event"
	"github.com/saulo-duarte/examly-api/internal/question"
	util "github.com/saulo-duarte/examly-api/internal/utils"
	"github.com/sirupsen/logrus"
)

var (
	ErrExamNotFound      = apperror.NotFound("exam not found")
	ErrExamNotAvailable  = apperror.Forbidden("exam is not available")
	ErrAlreadyAttempted  = apperror.Forbidden("you have already attempted this exam")
	ErrUnknownQuestions  = apperror.Validation("some questions are invalid")
	ErrInvalidSchedule   = apperror.Validation("ends_at must be after scheduled_at")
	ErrPassingAboveTotal = apperror.Validation("passing_marks must not exceed total_marks")
	ErrInvalidID         = apperror.Validation("invalid exam id")
)

// QuestionLookup resolves bank questions when an exam is assembled.
type QuestionLookup interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*question.Question, error)
}

// AttemptLookup answers whether students already hold a result for an exam.
type AttemptLookup interface {
	Exists(ctx context.Context, studentID, examID uuid.UUID) (bool, error)
	ExamIDsByStudent(ctx context.Context, studentID uuid.UUID) ([]uuid.UUID, error)
}

type ExamService interface {
	Create(ctx context.Context, dto CreateExamDTO) (*Exam, error)
	List(ctx context.Context) ([]*Exam, error)
	ListAvailable(ctx context.Context) ([]AvailableExam, error)
	GetForAdmin(ctx context.Context, id string) (*Exam, error)
	GetForStudent(ctx context.Context, id string) (*StudentExamView, error)
	Update(ctx context.Context, id string, dto UpdateExamDTO) (*Exam, error)
	Delete(ctx context.Context, id string) error
}

type examService struct {
	repo      ExamRepository
	questions QuestionLookup
	attempts  AttemptLookup
	clock     util.Clock
	publisher event.Publisher
}

func NewService(repo ExamRepository, questions QuestionLookup, attempts AttemptLookup, clock util.Clock, publisher event.Publisher) ExamService {
	return &examService{
		repo:      repo,
		questions: questions,
		attempts:  attempts,
		clock:     clock,
		publisher: publisher,
	}
}

func principalID(ctx context.Context) (*auth.UserClaims, uuid.UUID, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		return nil, uuid.Nil, err
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, uuid.Nil, auth.ErrUnauthenticated
	}
	return claims, id, nil
}

func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, ErrInvalidID
	}
	return parsed, nil
}

func validateExam(e *Exam) error {
	if e.DurationMinutes <= 0 {
		return apperror.Validation("duration_minutes must be greater than 0")
	}
	if e.TotalMarks <= 0 {
		return apperror.Validation("total_marks must be greater than 0")
	}
	if e.PassingMarks < 0 {
		return apperror.Validation("passing_marks must be at least 0")
	}
	if e.PassingMarks > e.TotalMarks {
		return ErrPassingAboveTotal
	}
	if !e.EndsAt.After(e.ScheduledAt) {
		return ErrInvalidSchedule
	}
	return nil
}

// snapshot resolves ids against the bank and returns one snapshot per id,
// in request order. Repeated ids are kept.
func (s *examService) snapshot(ctx context.Context, ids []uuid.UUID) ([]QuestionSnapshot, error) {
	found, err := s.questions.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*question.Question, len(found))
	for _, q := range found {
		byID[q.ID] = q
	}

	snapshots := make([]QuestionSnapshot, 0, len(ids))
	for _, id := range ids {
		q, ok := byID[id]
		if !ok {
			config.WithContext(ctx).WithField("question_id", id).Warn("Exam references unknown question")
			return nil, ErrUnknownQuestions
		}
		snapshots = append(snapshots, snapshotOf(q))
	}
	return snapshots, nil
}

func (s *examService) Create(ctx context.Context, dto CreateExamDTO) (*Exam, error) {
	log := config.WithContext(ctx)

	claims, ownerID, err := principalID(ctx)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(dto); err != nil {
		return nil, err
	}

	e := &Exam{
		ID:              uuid.New(),
		Title:           strings.TrimSpace(dto.Title),
		Description:     dto.Description,
		Subject:         strings.TrimSpace(dto.Subject),
		DurationMinutes: dto.DurationMinutes,
		TotalMarks:      dto.TotalMarks,
		PassingMarks:    dto.PassingMarks,
		QuestionIDs:     dto.QuestionIDs,
		ScheduledAt:     dto.ScheduledAt.UTC(),
		EndsAt:          dto.EndsAt.UTC(),
		IsActive:        true,
		OwnerID:         ownerID,
	}
	if dto.IsActive != nil {
		e.IsActive = *dto.IsActive
	}
	if err := validateExam(e); err != nil {
		return nil, err
	}

	snapshots, err := s.snapshot(ctx, dto.QuestionIDs)
	if err != nil {
		if !isDomainError(err) {
			log.WithError(err).Error("Failed to resolve exam questions")
		}
		return nil, err
	}
	e.Questions = snapshots

	if err := s.repo.Create(ctx, e); err != nil {
		log.WithError(err).Error("Failed to create exam")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"exam_id":   e.ID,
		"questions": len(e.Questions),
	}).Info("Exam created")
	s.publisher.Publish(ctx, event.ExamCreated, examPayload(e, claims.UserID))
	return e, nil
}

func (s *examService) List(ctx context.Context) ([]*Exam, error) {
	exams, err := s.repo.List(ctx)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list exams")
		return nil, err
	}
	return exams, nil
}

func (s *examService) ListAvailable(ctx context.Context) ([]AvailableExam, error) {
	log := config.WithContext(ctx)

	_, studentID, err := principalID(ctx)
	if err != nil {
		return nil, err
	}

	exams, err := s.repo.ListAvailable(ctx, s.clock.Now())
	if err != nil {
		log.WithError(err).Error("Failed to list available exams")
		return nil, err
	}

	attemptedIDs, err := s.attempts.ExamIDsByStudent(ctx, studentID)
	if err != nil {
		log.WithError(err).Error("Failed to load attempted exams")
		return nil, err
	}
	attempted := make(map[uuid.UUID]bool, len(attemptedIDs))
	for _, id := range attemptedIDs {
		attempted[id] = true
	}

	out := make([]AvailableExam, 0, len(exams))
	for _, e := range exams {
		out = append(out, toAvailable(e, attempted[e.ID]))
	}
	return out, nil
}

func (s *examService) GetForAdmin(ctx context.Context, id string) (*Exam, error) {
	eid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.find(ctx, eid)
}

func (s *examService) GetForStudent(ctx context.Context, id string) (*StudentExamView, error) {
	log := config.WithContext(ctx)

	_, studentID, err := principalID(ctx)
	if err != nil {
		return nil, err
	}
	eid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	e, err := s.find(ctx, eid)
	if err != nil {
		return nil, err
	}

	if !e.IsAvailableAt(s.clock.Now()) {
		log.WithField("exam_id", eid).Warn("Student opened exam outside its window")
		return nil, ErrExamNotAvailable
	}

	attempted, err := s.attempts.Exists(ctx, studentID, eid)
	if err != nil {
		log.WithError(err).Error("Failed to check previous attempt")
		return nil, err
	}
	if attempted {
		log.WithField("exam_id", eid).Warn("Student reopened an attempted exam")
		return nil, ErrAlreadyAttempted
	}

	return toStudentView(e), nil
}

func (s *examService) Update(ctx context.Context, id string, dto UpdateExamDTO) (*Exam, error) {
	log := config.WithContext(ctx)

	claims, _, err := principalID(ctx)
	if err != nil {
		return nil, err
	}
	eid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(dto); err != nil {
		return nil, err
	}

	e, err := s.find(ctx, eid)
	if err != nil {
		return nil, err
	}

	if dto.Title != nil {
		e.Title = strings.TrimSpace(*dto.Title)
	}
	if dto.Description != nil {
		e.Description = *dto.Description
	}
	if dto.Subject != nil {
		e.Subject = strings.TrimSpace(*dto.Subject)
	}
	if dto.DurationMinutes != nil {
		e.DurationMinutes = *dto.DurationMinutes
	}
	if dto.TotalMarks != nil {
		e.TotalMarks = *dto.TotalMarks
	}
	if dto.PassingMarks != nil {
		e.PassingMarks = *dto.PassingMarks
	}
	if dto.ScheduledAt != nil {
		e.ScheduledAt = dto.ScheduledAt.UTC()
	}
	if dto.EndsAt != nil {
		e.EndsAt = dto.EndsAt.UTC()
	}
	if dto.IsActive != nil {
		e.IsActive = *dto.IsActive
	}
	if err := validateExam(e); err != nil {
		return nil, err
	}

	if dto.QuestionIDs != nil {
		snapshots, err := s.snapshot(ctx, dto.QuestionIDs)
		if err != nil {
			if !isDomainError(err) {
				log.WithError(err).Error("Failed to resolve exam questions")
			}
			return nil, err
		}
		e.QuestionIDs = dto.QuestionIDs
		e.Questions = snapshots
	}

	if err := s.repo.Update(ctx, e); err != nil {
		log.WithError(err).Error("Failed to update exam")
		return nil, err
	}

	log.WithField("exam_id", e.ID).Info("Exam updated")
	s.publisher.Publish(ctx, event.ExamUpdated, examPayload(e, claims.UserID))
	return e, nil
}

func (s *examService) Delete(ctx context.Context, id string) error {
	log := config.WithContext(ctx)

	claims, _, err := principalID(ctx)
	if err != nil {
		return err
	}
	eid, err := parseID(id)
	if err != nil {
		return err
	}

	e, err := s.find(ctx, eid)
	if err != nil {
		return err
	}

	removed, err := s.repo.DeleteCascade(ctx, eid)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrExamNotFound
		}
		log.WithError(err).Error("Failed to delete exam")
		return err
	}

	log.WithFields(logrus.Fields{
		"exam_id":         eid,
		"results_removed": removed,
	}).Info("Exam deleted")
	s.publisher.Publish(ctx, event.ExamDeleted, examPayload(e, claims.UserID))
	return nil
}

func (s *examService) find(ctx context.Context, id uuid.UUID) (*Exam, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			config.WithContext(ctx).WithField("exam_id", id).Warn("Exam not found")
			return nil, ErrExamNotFound
		}
		config.WithContext(ctx).WithError(err).Error("Failed to find exam")
		return nil, err
	}
	return e, nil
}

func isDomainError(err error) bool {
	return apperror.KindOf(err) != apperror.KindInternal
}

func examPayload(e *Exam, actorID string) event.ExamPayload {
	return event.ExamPayload{
		ExamID:      e.ID,
		Title:       e.Title,
		ScheduledAt: e.ScheduledAt,
		EndsAt:      e.EndsAt,
		ActorID:     actorID,
	}
}
