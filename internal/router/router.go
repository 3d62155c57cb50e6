package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/saulo-duarte/examly-api/internal/auth"
	"github.com/saulo-duarte/examly-api/internal/config"
	"github.com/saulo-duarte/examly-api/internal/exam"
	"github.com/saulo-duarte/examly-api/internal/metrics"
	"github.com/saulo-duarte/examly-api/internal/middlewares"
	"github.com/saulo-duarte/examly-api/internal/question"
	"github.com/saulo-duarte/examly-api/internal/result"
	"github.com/saulo-duarte/examly-api/internal/user"
)

type RouterConfig struct {
	UserHandler     *user.Handler
	SessionHandler  *auth.Handler
	QuestionHandler *question.Handler
	ExamHandler     *exam.Handler
	ResultHandler   *result.Handler
	AllowedOrigins  []string
}

func New(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.Cors(cfg.AllowedOrigins))
	r.Use(middlewares.Metrics)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		config.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", cfg.UserHandler.Register)
		r.Post("/login", cfg.UserHandler.Login)
		r.Post("/logout", cfg.SessionHandler.Logout)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/users", user.Routes(cfg.UserHandler))
		r.Mount("/questions", question.Routes(cfg.QuestionHandler))
		r.Mount("/exams", exam.Routes(cfg.ExamHandler))
		r.Mount("/results", result.Routes(cfg.ResultHandler))
	})
	return r
}
