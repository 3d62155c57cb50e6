package question

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/saulo-duarte/examly-api/internal/apperror"
	"github.com/saulo-duarte/examly-api/internal/auth"
	"github.com/saulo-duarte/examly-api/internal/config"
	"github.com/sirupsen/logrus"
)

var (
	ErrQuestionNotFound   = apperror.NotFound("question not found")
	ErrInvalidOptionCount = apperror.Validation("question must have exactly %d options", OptionCount)
	ErrInvalidDifficulty  = apperror.Validation("difficulty must be one of [easy medium hard]")
	ErrInvalidID          = apperror.Validation("invalid question id")
)

type QuestionService interface {
	Create(ctx context.Context, dto CreateQuestionDTO) (*Question, error)
	List(ctx context.Context, filter Filter) ([]*Question, error)
	GetByID(ctx context.Context, id string) (*Question, error)
	Update(ctx context.Context, id string, dto UpdateQuestionDTO) (*Question, error)
	Delete(ctx context.Context, id string) error
	Subjects(ctx context.Context) ([]string, error)
}

type questionService struct {
	repo QuestionRepository
}

func NewService(repo QuestionRepository) QuestionService {
	return &questionService{repo: repo}
}

func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, ErrInvalidID
	}
	return parsed, nil
}

func (s *questionService) Create(ctx context.Context, dto CreateQuestionDTO) (*Question, error) {
	log := config.WithContext(ctx)

	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	ownerID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, auth.ErrUnauthenticated
	}

	if len(dto.Options) != OptionCount {
		log.WithField("options", len(dto.Options)).Warn("Question rejected: wrong option count")
		return nil, ErrInvalidOptionCount
	}
	if err := config.Validate(dto); err != nil {
		return nil, err
	}

	q := &Question{
		ID:                 uuid.New(),
		Text:               strings.TrimSpace(dto.Text),
		Options:            dto.Options,
		CorrectOptionIndex: *dto.CorrectOptionIndex,
		Subject:            strings.TrimSpace(dto.Subject),
		Difficulty:         dto.Difficulty,
		OwnerID:            ownerID,
	}

	if err := s.repo.Create(ctx, q); err != nil {
		log.WithError(err).Error("Failed to create question")
		return nil, err
	}

	log.WithField("question_id", q.ID).Info("Question created")
	return q, nil
}

func (s *questionService) List(ctx context.Context, filter Filter) ([]*Question, error) {
	if filter.Difficulty != "" && !filter.Difficulty.IsValid() {
		return nil, ErrInvalidDifficulty
	}

	questions, err := s.repo.List(ctx, filter)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list questions")
		return nil, err
	}
	return questions, nil
}

func (s *questionService) GetByID(ctx context.Context, id string) (*Question, error) {
	qid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.find(ctx, qid)
}

func (s *questionService) Update(ctx context.Context, id string, dto UpdateQuestionDTO) (*Question, error) {
	log := config.WithContext(ctx)

	qid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if dto.Options != nil && len(dto.Options) != OptionCount {
		return nil, ErrInvalidOptionCount
	}
	if err := config.Validate(dto); err != nil {
		return nil, err
	}

	q, err := s.find(ctx, qid)
	if err != nil {
		return nil, err
	}

	if dto.Text != nil {
		q.Text = strings.TrimSpace(*dto.Text)
	}
	if dto.Options != nil {
		q.Options = dto.Options
	}
	if dto.CorrectOptionIndex != nil {
		q.CorrectOptionIndex = *dto.CorrectOptionIndex
	}
	if dto.Subject != nil {
		q.Subject = strings.TrimSpace(*dto.Subject)
	}
	if dto.Difficulty != nil {
		q.Difficulty = *dto.Difficulty
	}

	if err := s.repo.Update(ctx, q); err != nil {
		log.WithError(err).Error("Failed to update question")
		return nil, err
	}

	log.WithField("question_id", q.ID).Info("Question updated")
	return q, nil
}

// Delete removes the question from the bank. Exams keep their own snapshot
// of every question they were built from, so they are unaffected.
func (s *questionService) Delete(ctx context.Context, id string) error {
	log := config.WithContext(ctx)

	qid, err := parseID(id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, qid); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrQuestionNotFound
		}
		log.WithError(err).Error("Failed to delete question")
		return err
	}

	log.WithField("question_id", qid).Info("Question deleted")
	return nil
}

func (s *questionService) Subjects(ctx context.Context) ([]string, error) {
	subjects, err := s.repo.DistinctSubjects(ctx)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list subjects")
		return nil, err
	}
	return subjects, nil
}

func (s *questionService) find(ctx context.Context, id uuid.UUID) (*Question, error) {
	q, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			config.WithContext(ctx).WithFields(logrus.Fields{
				"question_id": id,
			}).Warn("Question not found")
			return nil, ErrQuestionNotFound
		}
		config.WithContext(ctx).WithError(err).Error("Failed to find question")
		return nil, err
	}
	return q, nil
}
