package exam

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("exam not found")

// resultsTable holds the submissions scored against each exam.
const resultsTable = "results"

type ExamRepository interface {
	Create(ctx context.Context, e *Exam) error
	FindByID(ctx context.Context, id uuid.UUID) (*Exam, error)
	List(ctx context.Context) ([]*Exam, error)
	ListAvailable(ctx context.Context, now time.Time) ([]*Exam, error)
	Update(ctx context.Context, e *Exam) error
	DeleteCascade(ctx context.Context, id uuid.UUID) (int64, error)
}

type examRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ExamRepository {
	return &examRepository{db: db}
}

func (r *examRepository) Create(ctx context.Context, e *Exam) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *examRepository) FindByID(ctx context.Context, id uuid.UUID) (*Exam, error) {
	var e Exam
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *examRepository) List(ctx context.Context) ([]*Exam, error) {
	var exams []*Exam
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&exams).Error; err != nil {
		return nil, err
	}
	return exams, nil
}

// ListAvailable leaves the question snapshot unloaded; callers only need
// the schedule and the question count.
func (r *examRepository) ListAvailable(ctx context.Context, now time.Time) ([]*Exam, error) {
	var exams []*Exam
	if err := r.db.WithContext(ctx).
		Omit("questions").
		Where("is_active = ? AND scheduled_at <= ? AND ends_at >= ?", true, now, now).
		Order("scheduled_at ASC").
		Find(&exams).Error; err != nil {
		return nil, err
	}
	return exams, nil
}

func (r *examRepository) Update(ctx context.Context, e *Exam) error {
	return r.db.WithContext(ctx).Save(e).Error
}

// DeleteCascade removes the exam and every result scored against it in one
// transaction and reports how many results went with it.
func (r *examRepository) DeleteCascade(ctx context.Context, id uuid.UUID) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec("DELETE FROM "+resultsTable+" WHERE exam_id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected

		res = tx.Delete(&Exam{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
