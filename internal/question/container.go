package question

import "gorm.io/gorm"

type QuestionContainer struct {
	Handler *Handler
	Repo    QuestionRepository
}

func NewQuestionContainer(db *gorm.DB) *QuestionContainer {
	repo := NewRepository(db)
	service := NewService(repo)
	handler := NewHandler(service)

	return &QuestionContainer{
		Handler: handler,
		Repo:    repo,
	}
}
