package user

import (
	"time"

	"github.com/saulo-duarte/examly-api/internal/auth"
	"gorm.io/gorm"
)

type UserContainer struct {
	Handler *Handler
	Repo    UserRepository
	Service UserService
}

func NewUserContainer(db *gorm.DB, tokenTTL time.Duration, allowAdminSignup bool, sessions *auth.Handler) *UserContainer {
	repo := NewRepository(db)
	service := NewService(repo, tokenTTL, allowAdminSignup)
	handler := NewHandler(service, sessions)

	return &UserContainer{
		Handler: handler,
		Repo:    repo,
		Service: service,
	}
}
