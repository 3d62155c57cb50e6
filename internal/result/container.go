package result

import (
	"github.com/saulo-duarte/examly-api/internal/event"
	util "github.com/saulo-duarte/examly-api/internal/utils"
)

type ResultContainer struct {
	Handler *Handler
	Repo    ResultRepository
	Service ResultService
}

// NewResultContainer receives repo from the caller; the exam container shares
// it for attempt checks.
func NewResultContainer(
	repo ResultRepository,
	exams ExamReader,
	clock util.Clock,
	publisher event.Publisher,
) *ResultContainer {
	service := NewService(repo, exams, clock, publisher)
	handler := NewHandler(service)

	return &ResultContainer{
		Handler: handler,
		Repo:    repo,
		Service: service,
	}
}
