package result

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/saulo-duarte/examly-api/internal/apperror"
	"github.com/saulo-duarte/examly-api/internal/auth"
	"github.com/saulo-duarte/examly-api/internal/config"
	"github.com/saulo-duarte/examly-api/internal/event"
	"github.com/saulo-duarte/examly-api/internal/exam"
	"github.com/saulo-duarte/examly-api/internal/metrics"
	util "github.com/saulo-duarte/examly-api/internal/utils"
	"github.com/sirupsen/logrus"
)

var (
	ErrResultNotFound   = apperror.NotFound("result not found")
	ErrAlreadySubmitted = apperror.Forbidden("you have already submitted this exam")
	ErrInvalidID        = apperror.Validation("invalid result id")
	ErrInvalidExamID    = apperror.Validation("invalid exam id")
)

// ExamReader is the slice of the exam store submission needs.
type ExamReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*exam.Exam, error)
}

type ResultService interface {
	Submit(ctx context.Context, dto SubmitDTO) (*ResultResponse, error)
	ListMine(ctx context.Context) ([]ResultResponse, error)
	GetByID(ctx context.Context, id string) (*ResultResponse, error)
	ListByExam(ctx context.Context, examID string) ([]ResultResponse, error)
	ListAll(ctx context.Context) ([]ResultResponse, error)
}

type resultService struct {
	repo      ResultRepository
	exams     ExamReader
	clock     util.Clock
	publisher event.Publisher
}

func NewService(repo ResultRepository, exams ExamReader, clock util.Clock, publisher event.Publisher) ResultService {
	return &resultService{
		repo:      repo,
		exams:     exams,
		clock:     clock,
		publisher: publisher,
	}
}

func principal(ctx context.Context) (*auth.UserClaims, uuid.UUID, error) {
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

// Submit scores one attempt and stores it. Every rule is checked before the
// insert, and the unique index decides between concurrent duplicates.
func (s *resultService) Submit(ctx context.Context, dto SubmitDTO) (*ResultResponse, error) {
	log := config.WithContext(ctx)

	_, studentID, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(dto); err != nil {
		return nil, err
	}
	examID, err := uuid.Parse(dto.ExamID)
	if err != nil {
		return nil, ErrInvalidExamID
	}
	log = log.WithField("exam_id", examID)

	ex, err := s.findExam(ctx, examID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if !ex.IsAvailableAt(now) {
		log.Warn("Submission outside the exam window")
		metrics.SubmissionRejected("not_available")
		return nil, exam.ErrExamNotAvailable
	}
	if ex.QuestionCount() == 0 {
		metrics.SubmissionRejected("no_questions")
		return nil, ErrExamHasNoQuestions
	}

	exists, err := s.repo.Exists(ctx, studentID, examID)
	if err != nil {
		log.WithError(err).Error("Failed to check previous submission")
		return nil, err
	}
	if exists {
		log.Warn("Duplicate submission rejected")
		metrics.SubmissionRejected("already_submitted")
		return nil, ErrAlreadySubmitted
	}

	selections, err := NormalizeAnswers(dto.Answers, ex.QuestionCount())
	if err != nil {
		metrics.SubmissionRejected("invalid_answers")
		return nil, err
	}

	res, err := Evaluate(ex, selections, studentID, now)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, res); err != nil {
		if errors.Is(err, ErrDuplicate) {
			log.Warn("Concurrent duplicate submission rejected")
			metrics.SubmissionRejected("already_submitted")
			return nil, ErrAlreadySubmitted
		}
		log.WithError(err).Error("Failed to store result")
		return nil, err
	}
	res.Exam = ex

	log.WithFields(logrus.Fields{
		"result_id": res.ID,
		"score":     res.Score,
		"passed":    res.Passed,
	}).Info("Exam submitted")
	metrics.ResultSubmitted(res.Passed)
	s.publisher.Publish(ctx, event.ResultSubmitted, event.ResultPayload{
		ResultID:    res.ID,
		ExamID:      res.ExamID,
		StudentID:   res.StudentID,
		Score:       res.Score,
		Percentage:  res.Percentage,
		Passed:      res.Passed,
		SubmittedAt: res.SubmittedAt,
	})

	resp := ToResponse(res)
	return &resp, nil
}

func (s *resultService) ListMine(ctx context.Context) ([]ResultResponse, error) {
	_, studentID, err := principal(ctx)
	if err != nil {
		return nil, err
	}

	results, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list student results")
		return nil, err
	}
	return toResponses(results), nil
}

func (s *resultService) GetByID(ctx context.Context, id string) (*ResultResponse, error) {
	log := config.WithContext(ctx)

	claims, _, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	rid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	res, err := s.repo.FindByID(ctx, rid)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.WithField("result_id", rid).Warn("Result not found")
			return nil, ErrResultNotFound
		}
		log.WithError(err).Error("Failed to find result")
		return nil, err
	}

	if err := auth.AuthorizeOwner(claims, res.StudentID.String()); err != nil {
		log.WithField("result_id", rid).Warn("Result read by another student")
		return nil, err
	}

	resp := ToResponse(res)
	return &resp, nil
}

func (s *resultService) ListByExam(ctx context.Context, examID string) ([]ResultResponse, error) {
	eid, err := uuid.Parse(examID)
	if err != nil {
		return nil, ErrInvalidExamID
	}
	if _, err := s.findExam(ctx, eid); err != nil {
		return nil, err
	}

	results, err := s.repo.ListByExam(ctx, eid)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list exam results")
		return nil, err
	}
	return toResponses(results), nil
}

func (s *resultService) ListAll(ctx context.Context) ([]ResultResponse, error) {
	results, err := s.repo.ListAll(ctx)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list results")
		return nil, err
	}
	return toResponses(results), nil
}

func (s *resultService) findExam(ctx context.Context, id uuid.UUID) (*exam.Exam, error) {
	ex, err := s.exams.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, exam.ErrNotFound) {
			config.WithContext(ctx).WithField("exam_id", id).Warn("Exam not found")
			return nil, exam.ErrExamNotFound
		}
		config.WithContext(ctx).WithError(err).Error("Failed to find exam")
		return nil, err
	}
	return ex, nil
}
