package result

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("result not found")
var ErrDuplicate = errors.New("duplicate result")

const uniqueViolation = "23505"

type ResultRepository interface {
	Create(ctx context.Context, r *Result) error
	FindByID(ctx context.Context, id uuid.UUID) (*Result, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*Result, error)
	ListByExam(ctx context.Context, examID uuid.UUID) ([]*Result, error)
	ListAll(ctx context.Context) ([]*Result, error)
	Exists(ctx context.Context, studentID, examID uuid.UUID) (bool, error)
	ExamIDsByStudent(ctx context.Context, studentID uuid.UUID) ([]uuid.UUID, error)
}

type resultRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

// Create relies on idx_results_student_exam: a second row for the same
// student and exam fails with ErrDuplicate.
func (r *resultRepository) Create(ctx context.Context, res *Result) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(res).Error
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func examSummaryColumns(db *gorm.DB) *gorm.DB {
	return db.Select("id", "title", "subject", "total_marks", "passing_marks")
}

func studentSummaryColumns(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "email")
}

// FindByID loads the full exam, question snapshot included, so a single
// result can be reviewed answer by answer.
func (r *resultRepository) FindByID(ctx context.Context, id uuid.UUID) (*Result, error) {
	var res Result
	err := r.db.WithContext(ctx).
		Preload("Exam").
		Preload("Student", studentSummaryColumns).
		First(&res, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &res, nil
}

func (r *resultRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*Result, error) {
	var results []*Result
	if err := r.db.WithContext(ctx).
		Preload("Exam", examSummaryColumns).
		Where("student_id = ?", studentID).
		Order("submitted_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *resultRepository) ListByExam(ctx context.Context, examID uuid.UUID) ([]*Result, error) {
	var results []*Result
	if err := r.db.WithContext(ctx).
		Preload("Exam", examSummaryColumns).
		Preload("Student", studentSummaryColumns).
		Where("exam_id = ?", examID).
		Order("submitted_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *resultRepository) ListAll(ctx context.Context) ([]*Result, error) {
	var results []*Result
	if err := r.db.WithContext(ctx).
		Preload("Exam", examSummaryColumns).
		Preload("Student", studentSummaryColumns).
		Order("submitted_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *resultRepository) Exists(ctx context.Context, studentID, examID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&Result{}).
		Where("student_id = ? AND exam_id = ?", studentID, examID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *resultRepository) ExamIDsByStudent(ctx context.Context, studentID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&Result{}).
		Where("student_id = ?", studentID).
		Pluck("exam_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
