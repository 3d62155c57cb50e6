package question

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("question not found")

type QuestionRepository interface {
	Create(ctx context.Context, q *Question) error
	FindByID(ctx context.Context, id uuid.UUID) (*Question, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Question, error)
	List(ctx context.Context, filter Filter) ([]*Question, error)
	Update(ctx context.Context, q *Question) error
	Delete(ctx context.Context, id uuid.UUID) error
	DistinctSubjects(ctx context.Context) ([]string, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(ctx context.Context, q *Question) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *questionRepository) FindByID(ctx context.Context, id uuid.UUID) (*Question, error) {
	var q Question
	if err := r.db.WithContext(ctx).First(&q, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &q, nil
}

// FindByIDs returns the distinct questions matching ids, in no particular
// order.
func (r *questionRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Question, error) {
	var questions []*Question
	if len(ids) == 0 {
		return questions, nil
	}
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) List(ctx context.Context, filter Filter) ([]*Question, error) {
	var questions []*Question
	query := r.db.WithContext(ctx).Model(&Question{})
	if filter.Subject != "" {
		query = query.Where("subject = ?", filter.Subject)
	}
	if filter.Difficulty != "" {
		query = query.Where("difficulty = ?", filter.Difficulty)
	}
	if err := query.Order("created_at DESC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) Update(ctx context.Context, q *Question) error {
	return r.db.WithContext(ctx).Save(q).Error
}

func (r *questionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&Question{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *questionRepository) DistinctSubjects(ctx context.Context) ([]string, error) {
	var subjects []string
	if err := r.db.WithContext(ctx).
		Model(&Question{}).
		Distinct("subject").
		Order("subject ASC").
		Pluck("subject", &subjects).Error; err != nil {
		return nil, err
	}
	return subjects, nil
}
