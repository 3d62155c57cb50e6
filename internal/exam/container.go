package exam

import (
	"github.com/saulo-duarte/examly-api/internal/event"
	util "github.com/saulo-duarte/examly-api/internal/utils"
	"gorm.io/gorm"
)

type ExamContainer struct {
	Handler *Handler
	Repo    ExamRepository
	Service ExamService
}

func NewExamContainer(
	db *gorm.DB,
	questions QuestionLookup,
	attempts AttemptLookup,
	clock util.Clock,
	publisher event.Publisher,
) *ExamContainer {
	repo := NewRepository(db)
	service := NewService(repo, questions, attempts, clock, publisher)
	handler := NewHandler(service)

	return &ExamContainer{
		Handler: handler,
		Repo:    repo,
		Service: service,
	}
}
