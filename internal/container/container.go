package container

import (
	"context"
	"fmt"

	"github.com/saulo-duarte/examly-api/internal/auth"
	"github.com/saulo-duarte/examly-api/internal/config"
	"github.com/saulo-duarte/examly-api/internal/event"
	"github.com/saulo-duarte/examly-api/internal/exam"
	"github.com/saulo-duarte/examly-api/internal/question"
	"github.com/saulo-duarte/examly-api/internal/result"
	"github.com/saulo-duarte/examly-api/internal/router"
	"github.com/saulo-duarte/examly-api/internal/user"
	util "github.com/saulo-duarte/examly-api/internal/utils"
)

type Container struct {
	Settings          *config.Settings
	Publisher         event.Publisher
	SessionHandler    *auth.Handler
	UserContainer     *user.UserContainer
	QuestionContainer *question.QuestionContainer
	ExamContainer     *exam.ExamContainer
	ResultContainer   *result.ResultContainer
}

func New(ctx context.Context) (*Container, error) {
	config.Init()

	settings, err := config.LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	auth.Init(settings.JWTSecret)

	if err := config.Connect(ctx, settings.DatabaseDSN); err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if settings.AutoMigrate {
		if err := config.Migrate(&user.User{}, &question.Question{}, &exam.Exam{}, &result.Result{}); err != nil {
			config.Close()
			return nil, fmt.Errorf("migrate database: %w", err)
		}
	}

	publisher := newPublisher(ctx, settings)
	clock := util.SystemClock{}
	sessions := auth.NewHandler(settings.CookieDomain)

	userContainer := user.NewUserContainer(config.DB, settings.TokenTTL, settings.AllowAdminSignup, sessions)
	questionContainer := question.NewQuestionContainer(config.DB)

	resultRepo := result.NewRepository(config.DB)
	examContainer := exam.NewExamContainer(config.DB, questionContainer.Repo, resultRepo, clock, publisher)
	resultContainer := result.NewResultContainer(resultRepo, examContainer.Repo, clock, publisher)

	return &Container{
		Settings:          settings,
		Publisher:         publisher,
		SessionHandler:    sessions,
		UserContainer:     userContainer,
		QuestionContainer: questionContainer,
		ExamContainer:     examContainer,
		ResultContainer:   resultContainer,
	}, nil
}

// newPublisher falls back to a no-op publisher when no broker is configured
// or reachable; events are best-effort.
func newPublisher(ctx context.Context, s *config.Settings) event.Publisher {
	log := config.WithContext(ctx)
	if s.RabbitURL == "" {
		log.Info("RABBITMQ_URL not set, domain events disabled")
		return event.NewNopPublisher()
	}

	p, err := event.NewRabbitPublisher(s.RabbitURL, s.RabbitExchange)
	if err != nil {
		log.WithError(err).Warn("RabbitMQ unavailable, domain events disabled")
		return event.NewNopPublisher()
	}
	log.WithField("exchange", s.RabbitExchange).Info("Publishing domain events")
	return p
}

func (c *Container) RouterConfig() router.RouterConfig {
	return router.RouterConfig{
		UserHandler:     c.UserContainer.Handler,
		SessionHandler:  c.SessionHandler,
		QuestionHandler: c.QuestionContainer.Handler,
		ExamHandler:     c.ExamContainer.Handler,
		ResultHandler:   c.ResultContainer.Handler,
		AllowedOrigins:  c.Settings.AllowedOrigins,
	}
}

func (c *Container) Close() {
	c.Publisher.Close()
	config.Close()
}
